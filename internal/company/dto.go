package company

// UpdateCompanyRequest represents the admin-only request to change
// company details and approval policy
type UpdateCompanyRequest struct {
	Name                   *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Currency               *string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	CurrencySymbol         *string  `json:"currency_symbol,omitempty" validate:"omitempty,min=1,max=5"`
	ApprovalThreshold      *float64 `json:"approval_threshold,omitempty" validate:"omitempty,gte=0"`
	RequireManagerApproval *bool    `json:"require_manager_approval,omitempty"`
	RequireAdminApproval   *bool    `json:"require_admin_approval,omitempty"`
}

// CompanyResponse represents the response for a company
type CompanyResponse struct {
	ID                     int64   `json:"id"`
	Name                   string  `json:"name"`
	Currency               string  `json:"currency"`
	CurrencySymbol         string  `json:"currency_symbol"`
	ApprovalThreshold      float64 `json:"approval_threshold"`
	RequireManagerApproval bool    `json:"require_manager_approval"`
	RequireAdminApproval   bool    `json:"require_admin_approval"`
	CreatedAt              string  `json:"created_at"`
}

// ToResponse converts a Company model to a CompanyResponse DTO
func (c *Company) ToResponse() *CompanyResponse {
	return &CompanyResponse{
		ID:                     c.ID,
		Name:                   c.Name,
		Currency:               c.Currency,
		CurrencySymbol:         c.CurrencySymbol,
		ApprovalThreshold:      c.ApprovalThreshold,
		RequireManagerApproval: c.RequireManagerApproval,
		RequireAdminApproval:   c.RequireAdminApproval,
		CreatedAt:              c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
