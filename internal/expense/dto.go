package expense

import "github.com/ShahHet2812/IITxOdoo-Enterance/internal/expense/workflow"

// CreateExpenseRequest represents the request to submit an expense claim
type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	Category    string  `json:"category" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Date        string  `json:"date" validate:"required"`
	ReceiptURL  *string `json:"receipt_url,omitempty"`
}

// DecideRequest represents an approver's decision on a claim
type DecideRequest struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments" validate:"max=500"`
}

// StepResponse represents an approval step in API responses
type StepResponse struct {
	ApproverID   int64   `json:"approver_id"`
	ApproverName string  `json:"approver_name"`
	ApproverRole string  `json:"approver_role"`
	Status       string  `json:"status"`
	Comments     *string `json:"comments,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

// ExpenseResponse represents the response for an expense claim
type ExpenseResponse struct {
	ID              int64           `json:"id"`
	EmployeeID      int64           `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	ConvertedAmount *float64        `json:"converted_amount,omitempty"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Date            string          `json:"date"`
	ReceiptURL      *string         `json:"receipt_url,omitempty"`
	Status          string          `json:"status"`
	ApprovalSteps   []*StepResponse `json:"approval_steps"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

func toStepResponse(s workflow.Step) *StepResponse {
	resp := &StepResponse{
		ApproverID:   s.ApproverID,
		ApproverName: s.ApproverName,
		ApproverRole: s.ApproverRole,
		Status:       string(s.Status),
		Comments:     s.Comments,
	}
	if s.DecidedAt != nil {
		ts := s.DecidedAt.Format("2006-01-02T15:04:05Z")
		resp.DecidedAt = &ts
	}
	return resp
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	steps := make([]*StepResponse, len(e.Steps))
	for i, s := range e.Steps {
		steps[i] = toStepResponse(s)
	}
	return &ExpenseResponse{
		ID:              e.ID,
		EmployeeID:      e.EmployeeID,
		EmployeeName:    e.EmployeeName,
		Amount:          e.Amount,
		Currency:        e.Currency,
		ConvertedAmount: e.ConvertedAmount,
		Category:        e.Category,
		Description:     e.Description,
		Date:            e.Date.Format("2006-01-02"),
		ReceiptURL:      e.ReceiptURL,
		Status:          string(e.Status),
		ApprovalSteps:   steps,
		CreatedAt:       e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:       e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
