package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/expense/workflow"
)

// Repository handles expense claim and approval step persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const expenseColumns = `e.id, e.employee_id, e.company_id, e.amount, e.currency,
	e.category, e.description, e.date, e.receipt_url, e.status, e.version,
	e.created_at, e.updated_at, u.name`

func scanExpense(scanner interface{ Scan(...interface{}) error }) (*Expense, error) {
	e := &Expense{}
	err := scanner.Scan(
		&e.ID,
		&e.EmployeeID,
		&e.CompanyID,
		&e.Amount,
		&e.Currency,
		&e.Category,
		&e.Description,
		&e.Date,
		&e.ReceiptURL,
		&e.Status,
		&e.Version,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.EmployeeName,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new claim and its approval steps in one transaction
func (r *Repository) Create(ctx context.Context, e *Expense, steps []workflow.Step) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (employee_id, company_id, amount, currency, category, description, date, receipt_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query,
		e.EmployeeID,
		e.CompanyID,
		e.Amount,
		e.Currency,
		e.Category,
		e.Description,
		e.Date,
		e.ReceiptURL,
		e.Status,
	).Scan(&e.ID, &e.Version, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	stepQuery := `
		INSERT INTO approval_steps (expense_id, approver_id, approver_name, approver_role, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, s := range steps {
		if _, err := tx.ExecContext(ctx, stepQuery, e.ID, s.ApproverID, s.ApproverName, s.ApproverRole, s.Status); err != nil {
			return nil, fmt.Errorf("failed to create approval step: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	e.Steps = steps
	return e, nil
}

// GetByID retrieves a claim with its approval steps
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN users u ON e.employee_id = u.id
		WHERE e.id = $1
	`

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := r.attachSteps(ctx, []*Expense{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := r.attachSteps(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// ListByCompany retrieves every claim of a company, newest incurred first
func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]*Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN users u ON e.employee_id = u.id
		WHERE e.company_id = $1
		ORDER BY e.date DESC
	`
	return r.list(ctx, query, companyID)
}

// ListByEmployee retrieves the claims submitted by one employee
func (r *Repository) ListByEmployee(ctx context.Context, employeeID int64) ([]*Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN users u ON e.employee_id = u.id
		WHERE e.employee_id = $1
		ORDER BY e.date DESC
	`
	return r.list(ctx, query, employeeID)
}

// ListVisibleToManager retrieves the deduplicated union of claims submitted
// by the manager's direct reports, by the manager themselves, and claims
// where the manager is a named approver on any step.
func (r *Repository) ListVisibleToManager(ctx context.Context, companyID, managerID int64) ([]*Expense, error) {
	query := `
		SELECT DISTINCT ` + expenseColumns + `
		FROM expenses e
		JOIN users u ON e.employee_id = u.id
		LEFT JOIN approval_steps s ON s.expense_id = e.id
		WHERE e.company_id = $1
		  AND (u.manager_id = $2 OR e.employee_id = $2 OR s.approver_id = $2)
		ORDER BY e.date DESC
	`
	return r.list(ctx, query, companyID, managerID)
}

// attachSteps loads the approval steps of all given claims in one query
func (r *Repository) attachSteps(ctx context.Context, expenses []*Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	ids := make([]int64, len(expenses))
	byID := make(map[int64]*Expense, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
		byID[e.ID] = e
		e.Steps = []workflow.Step{}
	}

	query := `
		SELECT expense_id, approver_id, approver_name, approver_role, status, comments, decided_at
		FROM approval_steps
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load approval steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID int64
		var s workflow.Step
		if err := rows.Scan(
			&expenseID,
			&s.ApproverID,
			&s.ApproverName,
			&s.ApproverRole,
			&s.Status,
			&s.Comments,
			&s.DecidedAt,
		); err != nil {
			return fmt.Errorf("failed to scan approval step: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.Steps = append(e.Steps, s)
		}
	}

	return nil
}

// ApplyDecision persists one approver's decision and the claim's new status.
// The step update is conditional on the step still being pending, and the
// claim update is a compare-and-swap on the version column, so a concurrent
// decision loses cleanly instead of silently overwriting.
func (r *Repository) ApplyDecision(ctx context.Context, expenseID int64, step workflow.Step, claimStatus workflow.Status, expectedVersion int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stepQuery := `
		UPDATE approval_steps
		SET status = $3, comments = $4, decided_at = $5
		WHERE expense_id = $1 AND approver_id = $2 AND status = $6
	`
	res, err := tx.ExecContext(ctx, stepQuery,
		expenseID,
		step.ApproverID,
		step.Status,
		step.Comments,
		step.DecidedAt,
		workflow.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update approval step: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDecisionConflict
	}

	claimQuery := `
		UPDATE expenses
		SET status = $2, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $3
	`
	res, err = tx.ExecContext(ctx, claimQuery, expenseID, claimStatus, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update expense status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDecisionConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit decision: %w", err)
	}
	return nil
}
