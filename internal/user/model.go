package user

import "time"

// Role is the closed set of roles a user can hold within a company
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a string onto a known role
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// CanApprove reports whether the role may act on approval steps
func (r Role) CanApprove() bool {
	switch r {
	case RoleManager, RoleAdmin:
		return true
	case RoleEmployee:
		return false
	}
	return false
}

// User represents an identity within exactly one company
type User struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"company_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ManagerID    *int64    `json:"manager_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
