package company

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles company data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new company repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const companyColumns = `id, name, currency, currency_symbol, approval_threshold,
	require_manager_approval, require_admin_approval, created_at, updated_at`

func scanCompany(row *sql.Row) (*Company, error) {
	c := &Company{}
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Currency,
		&c.CurrencySymbol,
		&c.ApprovalThreshold,
		&c.RequireManagerApproval,
		&c.RequireAdminApproval,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new company with policy defaults
func (r *Repository) Create(ctx context.Context, name, currency, currencySymbol string) (*Company, error) {
	query := `
		INSERT INTO companies (name, currency, currency_symbol)
		VALUES ($1, $2, $3)
		RETURNING ` + companyColumns

	c, err := scanCompany(r.db.QueryRowContext(ctx, query, name, currency, currencySymbol))
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return c, nil
}

// GetByID retrieves a company by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	c, err := scanCompany(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// Update applies a partial update to a company
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateCompanyRequest) (*Company, error) {
	query := `
		UPDATE companies
		SET name = COALESCE($2, name),
		    currency = COALESCE($3, currency),
		    currency_symbol = COALESCE($4, currency_symbol),
		    approval_threshold = COALESCE($5, approval_threshold),
		    require_manager_approval = COALESCE($6, require_manager_approval),
		    require_admin_approval = COALESCE($7, require_admin_approval),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + companyColumns

	c, err := scanCompany(r.db.QueryRowContext(ctx, query, id,
		req.Name,
		req.Currency,
		req.CurrencySymbol,
		req.ApprovalThreshold,
		req.RequireManagerApproval,
		req.RequireAdminApproval,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return c, nil
}
