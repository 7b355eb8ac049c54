package user

import (
	"context"
	"errors"
	"testing"
)

type stubStore struct {
	users   map[int64]*User
	byEmail map[string]*User

	created *User
	deleted int64
}

func newStubStore(users ...*User) *stubStore {
	s := &stubStore{users: make(map[int64]*User), byEmail: make(map[string]*User)}
	for _, u := range users {
		s.users[u.ID] = u
		s.byEmail[u.Email] = u
	}
	return s
}

func (s *stubStore) Create(ctx context.Context, companyID int64, name, email, passwordHash string, role Role, managerID *int64) (*User, error) {
	u := &User{ID: 100, CompanyID: companyID, Name: name, Email: email, Role: role, ManagerID: managerID}
	s.created = u
	return u, nil
}

func (s *stubStore) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.users[id], nil
}

func (s *stubStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.byEmail[email], nil
}

func (s *stubStore) ListByCompany(ctx context.Context, companyID int64) ([]*User, error) {
	var out []*User
	for _, u := range s.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubStore) FindAdminByCompany(ctx context.Context, companyID int64) (*User, error) {
	for _, u := range s.users {
		if u.CompanyID == companyID && u.Role == RoleAdmin {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubStore) Update(ctx context.Context, id int64, req *UpdateUserRequest) (*User, error) {
	return s.users[id], nil
}

func (s *stubStore) Delete(ctx context.Context, id int64) error {
	s.deleted = id
	return nil
}

type noopNotifier struct {
	messages map[int64][]string
}

func newNoopNotifier() *noopNotifier {
	return &noopNotifier{messages: make(map[int64][]string)}
}

func (n *noopNotifier) Notify(ctx context.Context, userID int64, message string) {
	n.messages[userID] = append(n.messages[userID], message)
}

func ptr(id int64) *int64 { return &id }

func fixtureStore() *stubStore {
	return newStubStore(
		&User{ID: 1, CompanyID: 1, Name: "Ada", Email: "ada@acme.test", Role: RoleAdmin},
		&User{ID: 2, CompanyID: 1, Name: "Mara", Email: "mara@acme.test", Role: RoleManager},
		&User{ID: 3, CompanyID: 2, Name: "Oren", Email: "oren@other.test", Role: RoleManager},
	)
}

func TestCreateRequiresAdmin(t *testing.T) {
	store := fixtureStore()
	svc := NewService(store, newNoopNotifier())

	_, err := svc.Create(context.Background(), 2, &CreateUserRequest{
		Name: "Evan", Email: "evan@acme.test", Password: "secret123", Role: "employee",
	})
	if !errors.Is(err, ErrAdminRequired) {
		t.Errorf("Create() error = %v, want ErrAdminRequired", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	store := fixtureStore()
	svc := NewService(store, newNoopNotifier())

	_, err := svc.Create(context.Background(), 1, &CreateUserRequest{
		Name: "Mara Two", Email: "mara@acme.test", Password: "secret123", Role: "employee",
	})
	if !errors.Is(err, ErrEmailAlreadyInUse) {
		t.Errorf("Create() error = %v, want ErrEmailAlreadyInUse", err)
	}
}

func TestCreateRejectsManagerFromOtherCompany(t *testing.T) {
	store := fixtureStore()
	svc := NewService(store, newNoopNotifier())

	_, err := svc.Create(context.Background(), 1, &CreateUserRequest{
		Name: "Evan", Email: "evan@acme.test", Password: "secret123", Role: "employee",
		ManagerID: ptr(3),
	})
	if !errors.Is(err, ErrManagerNotInCompany) {
		t.Errorf("Create() error = %v, want ErrManagerNotInCompany", err)
	}
}

func TestCreateWithManagerNotifiesBothParties(t *testing.T) {
	store := fixtureStore()
	notifier := newNoopNotifier()
	svc := NewService(store, notifier)

	created, err := svc.Create(context.Background(), 1, &CreateUserRequest{
		Name: "Evan", Email: "evan@acme.test", Password: "secret123", Role: "employee",
		ManagerID: ptr(2),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.CompanyID != 1 {
		t.Errorf("CompanyID = %d, want admin's company 1", created.CompanyID)
	}
	if created.Role != RoleEmployee {
		t.Errorf("Role = %v, want employee", created.Role)
	}
	if len(notifier.messages[created.ID]) != 1 {
		t.Errorf("new user got %d notifications, want 1", len(notifier.messages[created.ID]))
	}
	if len(notifier.messages[2]) != 1 {
		t.Errorf("manager got %d notifications, want 1", len(notifier.messages[2]))
	}
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	store := fixtureStore()
	svc := NewService(store, newNoopNotifier())

	_, err := svc.Create(context.Background(), 1, &CreateUserRequest{
		Name: "Evan", Email: "evan@acme.test", Password: "secret123", Role: "superuser",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Create() error = %v, want ErrInvalidRole", err)
	}
}

func TestUpdateHidesUsersFromOtherCompanies(t *testing.T) {
	store := fixtureStore()
	svc := NewService(store, newNoopNotifier())

	_, err := svc.Update(context.Background(), 1, 3, &UpdateUserRequest{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Update() error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateRejectsManagerFromOtherCompany(t *testing.T) {
	store := fixtureStore()
	svc := NewService(store, newNoopNotifier())

	_, err := svc.Update(context.Background(), 1, 2, &UpdateUserRequest{ManagerID: ptr(3)})
	if !errors.Is(err, ErrManagerNotInCompany) {
		t.Errorf("Update() error = %v, want ErrManagerNotInCompany", err)
	}
}

func TestDeleteGuardsSelfAndCompany(t *testing.T) {
	store := fixtureStore()
	svc := NewService(store, newNoopNotifier())
	ctx := context.Background()

	if err := svc.Delete(ctx, 1, 1); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Errorf("Delete(self) error = %v, want ErrCannotDeleteSelf", err)
	}
	if err := svc.Delete(ctx, 1, 3); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Delete(other company) error = %v, want ErrUserNotFound", err)
	}
	if err := svc.Delete(ctx, 1, 2); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if store.deleted != 2 {
		t.Errorf("deleted id = %d, want 2", store.deleted)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"employee", RoleEmployee, true},
		{"manager", RoleManager, true},
		{"admin", RoleAdmin, true},
		{"superuser", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseRole(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRoleCanApprove(t *testing.T) {
	if RoleEmployee.CanApprove() {
		t.Error("employee should not approve")
	}
	if !RoleManager.CanApprove() {
		t.Error("manager should approve")
	}
	if !RoleAdmin.CanApprove() {
		t.Error("admin should approve")
	}
}
