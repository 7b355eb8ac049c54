package company

import "time"

// Company is the tenant boundary: it owns users and expense claims and
// carries the approval policy the workflow engine reads on every submission.
type Company struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	Currency               string    `json:"currency"`
	CurrencySymbol         string    `json:"currency_symbol"`
	ApprovalThreshold      float64   `json:"approval_threshold"`
	RequireManagerApproval bool      `json:"require_manager_approval"`
	RequireAdminApproval   bool      `json:"require_admin_approval"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
