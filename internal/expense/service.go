package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/company"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/currency"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/expense/workflow"
	"github.com/ShahHet2812/IITxOdoo-Enterance/internal/user"
)

// Common errors
var (
	ErrClaimNotFound        = errors.New("expense not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrApproverRoleRequired = errors.New("not authorized to approve or reject expenses")
	ErrWrongCompany         = errors.New("not authorized to act on this expense")
	ErrInvalidDate          = errors.New("invalid date: expected YYYY-MM-DD")
	ErrDecisionConflict     = errors.New("expense was modified concurrently, please retry")
)

// Store is the persistence surface the service needs
type Store interface {
	Create(ctx context.Context, e *Expense, steps []workflow.Step) (*Expense, error)
	GetByID(ctx context.Context, id int64) (*Expense, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*Expense, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*Expense, error)
	ListVisibleToManager(ctx context.Context, companyID, managerID int64) ([]*Expense, error)
	ApplyDecision(ctx context.Context, expenseID int64, step workflow.Step, claimStatus workflow.Status, expectedVersion int) error
}

// Directory resolves users for workflow construction and authorization
type Directory interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	FindAdminByCompany(ctx context.Context, companyID int64) (*user.User, error)
}

// Policies reads company approval policy, freshly on each call
type Policies interface {
	GetByID(ctx context.Context, id int64) (*company.Company, error)
}

// Notifier records a user-addressed message without ever failing the caller
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string)
}

// Service handles expense claim business logic
type Service struct {
	store    Store
	users    Directory
	policies Policies
	notifier Notifier
	rates    currency.RateSource
	log      *zap.Logger
}

// NewService creates a new expense service
func NewService(store Store, users Directory, policies Policies, notifier Notifier, rates currency.RateSource, log *zap.Logger) *Service {
	return &Service{
		store:    store,
		users:    users,
		policies: policies,
		notifier: notifier,
		rates:    rates,
		log:      log,
	}
}

func toApprover(u *user.User) *workflow.Approver {
	if u == nil {
		return nil
	}
	return &workflow.Approver{ID: u.ID, Name: u.Name, Role: string(u.Role)}
}

// Submit creates a new claim, builds its approval workflow from the
// company's current policy, and notifies the parties involved.
func (s *Service) Submit(ctx context.Context, employeeID int64, req *CreateExpenseRequest) (*Expense, error) {
	emp, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrUserNotFound
	}

	// Policy is read fresh on every submission, never cached across requests.
	comp, err := s.policies.GetByID(ctx, emp.CompanyID)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, ErrCompanyNotFound
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	var manager *user.User
	if emp.ManagerID != nil {
		manager, err = s.users.GetByID(ctx, *emp.ManagerID)
		if err != nil {
			return nil, err
		}
	}

	admin, err := s.users.FindAdminByCompany(ctx, emp.CompanyID)
	if err != nil {
		return nil, err
	}

	steps, status := workflow.Build(req.Amount, workflow.Policy{
		Threshold:              comp.ApprovalThreshold,
		RequireManagerApproval: comp.RequireManagerApproval,
		RequireAdminApproval:   comp.RequireAdminApproval,
	}, toApprover(manager), toApprover(admin))

	claim := &Expense{
		EmployeeID:   emp.ID,
		CompanyID:    emp.CompanyID,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Category:     req.Category,
		Description:  req.Description,
		Date:         date,
		ReceiptURL:   req.ReceiptURL,
		Status:       status,
		EmployeeName: emp.Name,
	}

	created, err := s.store.Create(ctx, claim, steps)
	if err != nil {
		return nil, err
	}

	s.notifySubmission(ctx, emp, manager, admin, created)
	return created, nil
}

func (s *Service) notifySubmission(ctx context.Context, emp, manager, admin *user.User, claim *Expense) {
	if len(claim.Steps) == 0 {
		s.notifier.Notify(ctx, emp.ID,
			fmt.Sprintf("Your expense claim of %.2f %s was approved automatically.", claim.Amount, claim.Currency))
		return
	}

	for _, step := range claim.Steps {
		switch {
		case manager != nil && step.ApproverID == manager.ID:
			s.notifier.Notify(ctx, manager.ID,
				emp.Name+" submitted an expense claim awaiting your approval.")
			if admin != nil && admin.ID != manager.ID {
				s.notifier.Notify(ctx, admin.ID,
					"An expense claim from "+emp.Name+" was routed to their manager for approval.")
			}
		case admin != nil && step.ApproverID == admin.ID:
			s.notifier.Notify(ctx, admin.ID,
				"Your approval is required for an expense claim from "+emp.Name+".")
		}
	}

	s.notifier.Notify(ctx, emp.ID, "Your expense claim was submitted for approval.")
}

// List returns the claims visible to the acting user per their role,
// newest incurred first. Manager and admin listings carry amounts converted
// into the company currency.
func (s *Service) List(ctx context.Context, actorID int64) ([]*Expense, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	comp, err := s.policies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, ErrCompanyNotFound
	}

	var expenses []*Expense
	switch actor.Role {
	case user.RoleAdmin:
		expenses, err = s.store.ListByCompany(ctx, actor.CompanyID)
	case user.RoleManager:
		expenses, err = s.store.ListVisibleToManager(ctx, actor.CompanyID, actor.ID)
	case user.RoleEmployee:
		expenses, err = s.store.ListByEmployee(ctx, actor.ID)
	default:
		expenses, err = s.store.ListByEmployee(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	if actor.Role.CanApprove() {
		// One converter per listing batch: each currency pair hits the
		// upstream rate source at most once per request.
		conv := currency.NewConverter(s.rates, s.log)
		for _, e := range expenses {
			if e.Currency != comp.Currency {
				converted := conv.Convert(ctx, e.Amount, e.Currency, comp.Currency)
				e.ConvertedAmount = &converted
			}
		}
	}

	return expenses, nil
}

// Get retrieves one claim, enforcing company membership
func (s *Service) Get(ctx context.Context, actorID, id int64) (*Expense, error) {
	claim, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}
	if claim.CompanyID != actor.CompanyID {
		return nil, ErrWrongCompany
	}

	return claim, nil
}

// Decide records an approver's decision on a claim and transitions its
// status per the workflow rules.
func (s *Service) Decide(ctx context.Context, actorID, claimID int64, req *DecideRequest) (*Expense, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}
	if !actor.Role.CanApprove() {
		return nil, ErrApproverRoleRequired
	}

	claim, err := s.store.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}
	if claim.CompanyID != actor.CompanyID {
		return nil, ErrWrongCompany
	}

	decision, ok := workflow.ParseDecision(req.Status)
	if !ok {
		return nil, workflow.ErrInvalidDecision
	}

	idx, newStatus, err := workflow.Decide(claim.Steps, actor.ID, decision, req.Comments, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// A claim already rejected stays rejected even when a remaining step is
	// approved afterwards.
	if claim.Status == workflow.StatusRejected {
		newStatus = workflow.StatusRejected
	}

	if err := s.store.ApplyDecision(ctx, claim.ID, claim.Steps[idx], newStatus, claim.Version); err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, actor, claim, decision)

	return s.store.GetByID(ctx, claimID)
}

func (s *Service) notifyDecision(ctx context.Context, actor *user.User, claim *Expense, decision workflow.Status) {
	var msg string
	if decision == workflow.StatusRejected {
		msg = fmt.Sprintf("Your expense claim of %.2f %s was rejected by %s.", claim.Amount, claim.Currency, actor.Name)
	} else {
		msg = fmt.Sprintf("Your expense claim of %.2f %s was approved by %s.", claim.Amount, claim.Currency, actor.Name)
	}
	s.notifier.Notify(ctx, claim.EmployeeID, msg)

	admin, err := s.users.FindAdminByCompany(ctx, claim.CompanyID)
	if err != nil {
		s.log.Warn("failed to resolve company admin for decision notification", zap.Error(err))
		return
	}
	if admin != nil && admin.ID != actor.ID {
		s.notifier.Notify(ctx, admin.ID,
			fmt.Sprintf("%s %s an expense claim from %s.", actor.Name, decision, claim.EmployeeName))
	}
}
