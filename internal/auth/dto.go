package auth

import "github.com/ShahHet2812/IITxOdoo-Enterance/internal/user"

// SignupRequest registers a new company together with its admin user
type SignupRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	CompanyName    string `json:"company_name" validate:"required,min=1,max=100"`
	Currency       string `json:"currency" validate:"required,len=3"`
	CurrencySymbol string `json:"currency_symbol" validate:"omitempty,min=1,max=5"`
}

// LoginRequest authenticates an existing user
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token and the authenticated user
type AuthResponse struct {
	Token string             `json:"token"`
	User  *user.UserResponse `json:"user"`
}
