package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/company"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/user"
)

type stubUsers struct {
	byEmail map[string]*user.User
	created *user.User
}

func (s *stubUsers) Create(ctx context.Context, companyID int64, name, email, passwordHash string, role user.Role, managerID *int64) (*user.User, error) {
	u := &user.User{ID: 1, CompanyID: companyID, Name: name, Email: email, PasswordHash: passwordHash, Role: role}
	s.created = u
	return u, nil
}

func (s *stubUsers) GetByID(ctx context.Context, id int64) (*user.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.byEmail[email], nil
}

type stubCompanies struct {
	created *company.Company
}

func (s *stubCompanies) Create(ctx context.Context, name, currency, currencySymbol string) (*company.Company, error) {
	s.created = &company.Company{ID: 5, Name: name, Currency: currency, CurrencySymbol: currencySymbol}
	return s.created, nil
}

func newTestService(users *stubUsers, companies *stubCompanies) *Service {
	return NewService(users, companies, "test-secret", time.Hour)
}

func TestSignupCreatesCompanyAndAdmin(t *testing.T) {
	users := &stubUsers{byEmail: map[string]*user.User{}}
	companies := &stubCompanies{}
	svc := newTestService(users, companies)

	token, admin, err := svc.Signup(context.Background(), &SignupRequest{
		Name: "Ada", Email: "ada@acme.test", Password: "secret123",
		CompanyName: "Acme", Currency: "USD",
	})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if token == "" {
		t.Error("Signup() returned empty token")
	}
	if admin.Role != user.RoleAdmin {
		t.Errorf("Role = %v, want admin", admin.Role)
	}
	if admin.CompanyID != 5 {
		t.Errorf("CompanyID = %d, want new company 5", admin.CompanyID)
	}
	if companies.created.CurrencySymbol != "$" {
		t.Errorf("CurrencySymbol = %q, want default $", companies.created.CurrencySymbol)
	}
	if !user.CheckPassword(users.created.PasswordHash, "secret123") {
		t.Error("stored password hash does not verify")
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	users := &stubUsers{byEmail: map[string]*user.User{
		"ada@acme.test": {ID: 2, Email: "ada@acme.test"},
	}}
	svc := newTestService(users, &stubCompanies{})

	_, _, err := svc.Signup(context.Background(), &SignupRequest{
		Name: "Ada", Email: "ada@acme.test", Password: "secret123",
		CompanyName: "Acme", Currency: "USD",
	})
	if !errors.Is(err, ErrEmailAlreadyInUse) {
		t.Errorf("Signup() error = %v, want ErrEmailAlreadyInUse", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := user.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	users := &stubUsers{byEmail: map[string]*user.User{
		"ada@acme.test": {ID: 2, CompanyID: 5, Email: "ada@acme.test", PasswordHash: hash, Role: user.RoleAdmin},
	}}
	svc := newTestService(users, &stubCompanies{})
	ctx := context.Background()

	token, u, err := svc.Login(ctx, &LoginRequest{Email: "ada@acme.test", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" || u.ID != 2 {
		t.Errorf("Login() = (%q, %+v), want token for user 2", token, u)
	}

	if _, _, err := svc.Login(ctx, &LoginRequest{Email: "ada@acme.test", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, &LoginRequest{Email: "nobody@acme.test", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(unknown email) error = %v, want ErrInvalidCredentials", err)
	}
}
