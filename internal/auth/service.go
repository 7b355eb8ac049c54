package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/company"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/user"
	"github.com/ShahHet2812/IITxOdoo-Enterance/pkg/middleware"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// Users is the user persistence surface the service needs
type Users interface {
	Create(ctx context.Context, companyID int64, name, email, passwordHash string, role user.Role, managerID *int64) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Companies is the company persistence surface the service needs
type Companies interface {
	Create(ctx context.Context, name, currency, currencySymbol string) (*company.Company, error)
}

// Service handles signup, login, and current-user lookup
type Service struct {
	users     Users
	companies Companies
	jwtSecret string
	jwtExpiry time.Duration
}

// NewService creates a new auth service
func NewService(users Users, companies Companies, jwtSecret string, jwtExpiry time.Duration) *Service {
	return &Service{
		users:     users,
		companies: companies,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

func (s *Service) issueToken(u *user.User) (string, error) {
	return middleware.SignToken(s.jwtSecret, middleware.Principal{
		UserID:    u.ID,
		CompanyID: u.CompanyID,
		Role:      string(u.Role),
	}, s.jwtExpiry)
}

// Signup registers a new company and its admin user, returning a token
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (string, *user.User, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrEmailAlreadyInUse
	}

	symbol := req.CurrencySymbol
	if symbol == "" {
		symbol = "$"
	}

	comp, err := s.companies.Create(ctx, req.CompanyName, req.Currency, symbol)
	if err != nil {
		return "", nil, err
	}

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}

	admin, err := s.users.Create(ctx, comp.ID, req.Name, req.Email, hash, user.RoleAdmin, nil)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// Login authenticates a user by email and password, returning a token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, *user.User, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !user.CheckPassword(u.PasswordHash, req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Me retrieves the authenticated user
func (s *Service) Me(ctx context.Context, userID int64) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
