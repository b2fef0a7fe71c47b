package usecase

import (
	"context"

	"helpmate/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateAlertInput defines the data for raising a new alert. Severity is
// optional and defaults to the standard level when omitted. Location is
// required; a trigger that fires before a position fix resolves will see
// its submission rejected.
type CreateAlertInput struct {
	Type     entity.AlertType `json:"type" validate:"required"`
	Location *entity.Location `json:"location" validate:"required"`
	Message  string           `json:"message" validate:"omitempty,max=500"`
	Severity *int             `json:"severity" validate:"omitempty,min=1,max=5"`
}

// ResolveAlertInput names who closed the alert.
type ResolveAlertInput struct {
	ResolvedBy entity.ResolverKind `json:"resolvedBy" validate:"required"`
}

// CancelAlertsOutput reports how many active alerts a cancel swept up.
type CancelAlertsOutput struct {
	Cancelled int64 `json:"cancelled"`
}

// AlertUsecase defines the interface for alert lifecycle operations.
type AlertUsecase interface {
	// CreateAlert stores a new active alert and fans out notifications to
	// the user's active contacts in priority order. Notification failures
	// are recorded on the alert but never fail the creation.
	CreateAlert(ctx context.Context, userID uuid.UUID, input *CreateAlertInput) (*entity.Alert, error)

	// ListAlerts returns the user's alerts newest first, optionally
	// filtered by status.
	ListAlerts(ctx context.Context, userID uuid.UUID, status *entity.AlertStatus) ([]*entity.Alert, error)

	// GetAlert loads one alert owned by the user.
	GetAlert(ctx context.Context, userID, alertID uuid.UUID) (*entity.Alert, error)

	// ResolveAlert closes an active alert as resolved and stamps the
	// response time. Closing an already closed alert is a conflict.
	ResolveAlert(ctx context.Context, userID, alertID uuid.UUID, input *ResolveAlertInput) (*entity.Alert, error)

	// CancelActiveAlerts marks every active alert of the user cancelled.
	// Cancelling when nothing is active succeeds and reports zero.
	CancelActiveAlerts(ctx context.Context, userID uuid.UUID) (*CancelAlertsOutput, error)

	// DeleteAlert removes one alert and its notification history.
	DeleteAlert(ctx context.Context, userID, alertID uuid.UUID) error
}
