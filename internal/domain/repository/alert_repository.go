package repository

import (
	"context"
	"errors"
	"time"

	"helpmate/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAlertNotFound is a domain-specific error returned when an alert is not found.
var ErrAlertNotFound = errors.New("alert not found")

// AlertRepository defines the standard operations for alert persistence.
//
// Status mutations are single-row conditional updates; concurrent closers of
// the same alert race as last-write-wins at the row level, with no optimistic
// lock beyond the WHERE status = 'active' guard.
type AlertRepository interface {
	// FindByID retrieves a single alert with its notification records.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Alert, error)

	// ListByUser retrieves the user's alerts ordered by creation time
	// descending (most recent first). A nil status returns all alerts.
	ListByUser(ctx context.Context, userID uuid.UUID, status *entity.AlertStatus) ([]*entity.Alert, error)

	// Create persists a new alert with an empty notification history.
	Create(ctx context.Context, alert *entity.Alert) error

	// CloseFromActive transitions the alert to the target terminal status,
	// guarded on the current status being active. It returns false when the
	// alert was already closed by another writer.
	CloseFromActive(ctx context.Context, id uuid.UUID, target entity.AlertStatus, by entity.ResolverKind, at time.Time, responseSeconds int) (bool, error)

	// CancelActiveByUser cancels every active alert owned by the user and
	// returns how many were cancelled.
	CancelActiveByUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)

	// Delete removes an alert and its notification records regardless of status.
	Delete(ctx context.Context, id uuid.UUID) error

	// AppendNotifications appends fan-out records to the alert's ordered history.
	AppendNotifications(ctx context.Context, alertID uuid.UUID, records []entity.NotificationRecord) error
}
