package expense

import (
	"time"

	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/expense/workflow"
)

// Expense represents an expense claim with its approval workflow
type Expense struct {
	ID          int64           `json:"id"`
	EmployeeID  int64           `json:"employee_id"`
	CompanyID   int64           `json:"company_id"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	ReceiptURL  *string         `json:"receipt_url,omitempty"`
	Status      workflow.Status `json:"status"`
	Version     int             `json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Populated via JOIN
	EmployeeName string `json:"employee_name,omitempty"`

	// Populated from the approval_steps table, in workflow order
	Steps []workflow.Step `json:"approval_steps"`

	// Populated during listing for manager/admin callers when the claim
	// currency differs from the company currency
	ConvertedAmount *float64 `json:"converted_amount,omitempty"`
}
