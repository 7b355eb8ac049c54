package user

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyInUse   = errors.New("user with this email already exists")
	ErrAdminRequired       = errors.New("access denied: admin role required")
	ErrManagerNotInCompany = errors.New("manager must belong to the same company")
	ErrCannotDeleteSelf    = errors.New("admin cannot delete their own account")
	ErrInvalidRole         = errors.New("invalid role")
)

// Store is the persistence surface the service needs
type Store interface {
	Create(ctx context.Context, companyID int64, name, email, passwordHash string, role Role, managerID *int64) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*User, error)
	FindAdminByCompany(ctx context.Context, companyID int64) (*User, error)
	Update(ctx context.Context, id int64, req *UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier records a user-addressed message. Implementations must never
// fail the calling operation.
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string)
}

// Service handles user management business logic
type Service struct {
	store    Store
	notifier Notifier
}

// NewService creates a new user service
func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// requireAdmin fetches the acting user and checks the admin role
func (s *Service) requireAdmin(ctx context.Context, actorID int64) (*User, error) {
	actor, err := s.store.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}
	if actor.Role != RoleAdmin {
		return nil, ErrAdminRequired
	}
	return actor, nil
}

// Create creates a new user inside the acting admin's company
func (s *Service) Create(ctx context.Context, actorID int64, req *CreateUserRequest) (*User, error) {
	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}

	role, ok := ParseRole(req.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	existing, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	var manager *User
	if req.ManagerID != nil {
		manager, err = s.store.GetByID(ctx, *req.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager == nil || manager.CompanyID != actor.CompanyID {
			return nil, ErrManagerNotInCompany
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, actor.CompanyID, req.Name, req.Email, hash, role, req.ManagerID)
	if err != nil {
		return nil, err
	}

	if manager != nil {
		s.notifier.Notify(ctx, created.ID, "You have been assigned a new manager: "+manager.Name+".")
		s.notifier.Notify(ctx, manager.ID, created.Name+" has been added to your team.")
	}

	return created, nil
}

// List retrieves all users of the acting admin's company
func (s *Service) List(ctx context.Context, actorID int64) ([]*User, error) {
	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.store.ListByCompany(ctx, actor.CompanyID)
}

// Update modifies a user inside the acting admin's company
func (s *Service) Update(ctx context.Context, actorID, id int64, req *UpdateUserRequest) (*User, error) {
	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil || target.CompanyID != actor.CompanyID {
		return nil, ErrUserNotFound
	}

	if req.Role != nil {
		if _, ok := ParseRole(*req.Role); !ok {
			return nil, ErrInvalidRole
		}
	}

	if req.ManagerID != nil {
		manager, err := s.store.GetByID(ctx, *req.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager == nil || manager.CompanyID != actor.CompanyID {
			return nil, ErrManagerNotInCompany
		}
	}

	updated, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}

// Delete removes a user from the acting admin's company
func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return err
	}

	target, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target == nil || target.CompanyID != actor.CompanyID {
		return ErrUserNotFound
	}
	if target.ID == actor.ID {
		return ErrCannotDeleteSelf
	}

	return s.store.Delete(ctx, id)
}
