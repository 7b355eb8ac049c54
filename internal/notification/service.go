package notification

import (
	"context"

	"go.uber.org/zap"
)

// Store is the persistence surface the service needs
type Store interface {
	Create(ctx context.Context, userID int64, message string) (*Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]*Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

// Service handles notification business logic
type Service struct {
	store Store
	log   *zap.Logger
}

// NewService creates a new notification service
func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// Notify records a message for a user. A persistence failure is logged and
// swallowed: notifications must never fail the operation that emits them.
func (s *Service) Notify(ctx context.Context, userID int64, message string) {
	if _, err := s.store.Create(ctx, userID, message); err != nil {
		s.log.Warn("failed to persist notification",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// ListByUser retrieves the user's notifications, newest first
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

// MarkAllRead marks all of the user's notifications as read
func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.store.MarkAllRead(ctx, userID)
}

// UnreadCount returns the user's unread notification count
func (s *Service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.store.UnreadCount(ctx, userID)
}
