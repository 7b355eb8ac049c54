package user

// CreateUserRequest represents the request to create a user in the admin's company
type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=employee manager admin"`
	ManagerID *int64 `json:"manager_id,omitempty"`
}

// UpdateUserRequest represents the request to update a user.
// A nil ManagerID clears the manager assignment.
type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=employee manager admin"`
	ManagerID *int64  `json:"manager_id,omitempty"`
}

// UserResponse represents the response for a user
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CompanyID int64  `json:"company_id"`
	ManagerID *int64 `json:"manager_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
