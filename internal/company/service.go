package company

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrAdminRequired   = errors.New("access denied: admin role required")
)

// Store is the persistence surface the service needs
type Store interface {
	Create(ctx context.Context, name, currency, currencySymbol string) (*Company, error)
	GetByID(ctx context.Context, id int64) (*Company, error)
	Update(ctx context.Context, id int64, req *UpdateCompanyRequest) (*Company, error)
}

// Service handles company business logic
type Service struct {
	store Store
}

// NewService creates a new company service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get retrieves the caller's company
func (s *Service) Get(ctx context.Context, companyID int64) (*Company, error) {
	c, err := s.store.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCompanyNotFound
	}
	return c, nil
}

// Update applies a policy/details change on behalf of an admin
func (s *Service) Update(ctx context.Context, actorRole string, companyID int64, req *UpdateCompanyRequest) (*Company, error) {
	if actorRole != "admin" {
		return nil, ErrAdminRequired
	}

	c, err := s.store.Update(ctx, companyID, req)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCompanyNotFound
	}
	return c, nil
}
