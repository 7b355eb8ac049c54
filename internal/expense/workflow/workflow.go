// Package workflow builds the approval-step sequence for a newly submitted
// expense claim and transitions claim status on approver decisions. It is
// pure: persistence and notifications live with the caller.
package workflow

import (
	"errors"
	"time"
)

// Status is the state of a claim or of a single approval step
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseDecision maps a string onto a valid approver decision
func ParseDecision(s string) (Status, bool) {
	switch Status(s) {
	case StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// Policy is the slice of company configuration the engine reads
type Policy struct {
	Threshold              float64
	RequireManagerApproval bool
	RequireAdminApproval   bool
}

// Approver identifies a candidate approver. Name and Role are copied onto
// the step as a snapshot so later user edits do not rewrite history.
type Approver struct {
	ID   int64
	Name string
	Role string
}

// Step is one (claim, approver) pairing with an independent decision
type Step struct {
	ApproverID   int64      `json:"approver_id"`
	ApproverName string     `json:"approver_name"`
	ApproverRole string     `json:"approver_role"`
	Status       Status     `json:"status"`
	Comments     *string    `json:"comments,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

// Common errors
var (
	ErrNoPendingStep   = errors.New("no pending approval step found for this user, or you have already acted on it")
	ErrInvalidDecision = errors.New("invalid decision: must be approved or rejected")
)

func pendingStep(approver Approver) Step {
	return Step{
		ApproverID:   approver.ID,
		ApproverName: approver.Name,
		ApproverRole: approver.Role,
		Status:       StatusPending,
	}
}

// Build constructs the ordered approval steps for a claim of the given
// amount under the company policy, and returns the claim's initial status.
//
// Amounts at or under the threshold auto-approve with no steps, regardless
// of policy flags. Otherwise a manager step is appended when the policy
// requires it and the submitter has a manager, then an admin step when the
// policy requires it and the admin is not already an approver. An empty
// result defaults the claim to approved.
func Build(amount float64, p Policy, manager, admin *Approver) ([]Step, Status) {
	if amount <= p.Threshold {
		return nil, StatusApproved
	}

	var steps []Step

	if p.RequireManagerApproval && manager != nil {
		steps = append(steps, pendingStep(*manager))
	}

	if p.RequireAdminApproval && admin != nil {
		duplicate := false
		for _, s := range steps {
			if s.ApproverID == admin.ID {
				duplicate = true
				break
			}
		}
		if !duplicate {
			steps = append(steps, pendingStep(*admin))
		}
	}

	if len(steps) == 0 {
		return nil, StatusApproved
	}
	return steps, StatusPending
}

// Decide records an approver's decision on their pending step, mutating the
// step in place, and returns the index of that step plus the claim's new
// overall status.
//
// Rejection is terminal and overriding. Approval flips the claim to approved
// only once every step is approved; approvers may act in any order. A claim
// already rejected stays rejected even when a remaining step is approved
// afterwards (the step decision is still recorded).
func Decide(steps []Step, approverID int64, decision Status, comments string, now time.Time) (int, Status, error) {
	if decision != StatusApproved && decision != StatusRejected {
		return -1, "", ErrInvalidDecision
	}

	idx := -1
	for i := range steps {
		if steps[i].ApproverID == approverID && steps[i].Status == StatusPending {
			idx = i
			break
		}
	}
	if idx == -1 {
		return -1, "", ErrNoPendingStep
	}

	steps[idx].Status = decision
	steps[idx].DecidedAt = &now
	if comments != "" {
		steps[idx].Comments = &comments
	}

	return idx, Outcome(steps), nil
}

// Outcome derives the claim status from the step statuses: any rejected step
// rejects the claim, unanimous approval approves it, anything else is pending.
func Outcome(steps []Step) Status {
	allApproved := len(steps) > 0
	for _, s := range steps {
		switch s.Status {
		case StatusRejected:
			return StatusRejected
		case StatusPending:
			allApproved = false
		}
	}
	if allApproved {
		return StatusApproved
	}
	return StatusPending
}
