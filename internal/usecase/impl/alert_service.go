package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	deliverycontext "helpmate/internal/delivery/context"
	"helpmate/internal/domain/entity"
	domainerrors "helpmate/internal/domain/errors"
	"helpmate/internal/domain/repository"
	"helpmate/internal/domain/service"
	"helpmate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// alertService implements the AlertUsecase interface.
type alertService struct {
	alertRepo   repository.AlertRepository
	contactRepo repository.ContactRepository
	notifier    service.ContactNotifier
	logger      *slog.Logger
}

// AlertServiceParams holds dependencies for AlertService, injected by Fx.
type AlertServiceParams struct {
	fx.In

	AlertRepo   repository.AlertRepository
	ContactRepo repository.ContactRepository
	Notifier    service.ContactNotifier
	Logger      *slog.Logger
}

// NewAlertService is the constructor for alertService.
func NewAlertService(params AlertServiceParams) usecase.AlertUsecase {
	return &alertService{
		alertRepo:   params.AlertRepo,
		contactRepo: params.ContactRepo,
		notifier:    params.Notifier,
		logger:      params.Logger,
	}
}

func (srv *alertService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAlert stores a new active alert and fans out notifications to the
// user's active contacts in priority order.
func (srv *alertService) CreateAlert(ctx context.Context, userID uuid.UUID, input *usecase.CreateAlertInput) (*entity.Alert, error) {
	alert, err := buildAlert(userID, input)
	if err != nil {
		return nil, err
	}

	if err := srv.alertRepo.Create(ctx, alert); err != nil {
		srv.log(ctx).Error("Failed to create alert", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create alert")
	}

	srv.log(ctx).Info("Alert created",
		slog.Any("alertID", alert.ID),
		slog.Any("userID", userID),
		slog.String("type", string(alert.Type)),
		slog.Int("severity", alert.Severity),
	)

	srv.notifyContacts(ctx, alert)

	return alert, nil
}

// notifyContacts delivers the alert to every active contact, highest priority
// first. Each contact is attempted at most once; a failed delivery is recorded
// on the alert and the fan-out moves on. Failures never fail the alert itself.
func (srv *alertService) notifyContacts(ctx context.Context, alert *entity.Alert) {
	contacts, err := srv.contactRepo.ListActiveByUser(ctx, alert.UserID)
	if err != nil {
		srv.log(ctx).Error("Failed to list contacts for fan-out", slog.Any("alertID", alert.ID), slog.Any("error", err))

		return
	}

	if len(contacts) == 0 {
		srv.log(ctx).Warn("No active contacts to notify", slog.Any("alertID", alert.ID))

		return
	}
	sortContactsByPriority(contacts)

	records := make([]entity.NotificationRecord, 0, len(contacts))
	for _, contact := range contacts {
		notifiedAt := time.Now()
		method, notifyErr := srv.notifier.Notify(ctx, contact, alert)

		record := entity.NotificationRecord{
			ContactID:  contact.ID,
			NotifiedAt: notifiedAt,
			Method:     method,
			Status:     entity.DeliverySent,
		}

		if notifyErr != nil {
			record.Status = entity.DeliveryFailed
			srv.log(ctx).Warn("Contact notification failed",
				slog.Any("alertID", alert.ID),
				slog.Any("contactID", contact.ID),
				slog.Any("error", notifyErr),
			)
		} else if err := srv.contactRepo.RecordNotification(ctx, contact.ID, notifiedAt); err != nil {
			srv.log(ctx).Warn("Failed to record contact notification", slog.Any("contactID", contact.ID), slog.Any("error", err))
		}

		records = append(records, record)
	}

	if err := srv.alertRepo.AppendNotifications(ctx, alert.ID, records); err != nil {
		srv.log(ctx).Error("Failed to append notification history", slog.Any("alertID", alert.ID), slog.Any("error", err))

		return
	}

	alert.ContactsNotified = append(alert.ContactsNotified, records...)

	srv.log(ctx).Info("Alert fan-out completed",
		slog.Any("alertID", alert.ID),
		slog.Int("contacts", len(records)),
	)
}

// ListAlerts returns the user's alerts newest first.
func (srv *alertService) ListAlerts(ctx context.Context, userID uuid.UUID, status *entity.AlertStatus) ([]*entity.Alert, error) {
	if status != nil && !status.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown alert status")
	}

	alerts, err := srv.alertRepo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list alerts")
	}

	// Newest first, independent of the store's ordering.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})

	return alerts, nil
}

// GetAlert loads one alert owned by the user.
func (srv *alertService) GetAlert(ctx context.Context, userID, alertID uuid.UUID) (*entity.Alert, error) {
	return srv.ownedAlert(ctx, userID, alertID)
}

// ResolveAlert closes an active alert as resolved and stamps the response
// time. The close is a conditional update keyed on the active status, so two
// racing closers cannot both win.
func (srv *alertService) ResolveAlert(ctx context.Context, userID, alertID uuid.UUID, input *usecase.ResolveAlertInput) (*entity.Alert, error) {
	resolvedBy := input.ResolvedBy
	if !resolvedBy.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown resolver")
	}

	alert, err := srv.ownedAlert(ctx, userID, alertID)
	if err != nil {
		return nil, err
	}

	if !alert.CanTransitionTo(entity.AlertStatusResolved) {
		return nil, domainerrors.ErrAlertAlreadyClosed
	}

	resolvedAt := time.Now()
	responseSeconds := int(resolvedAt.Sub(alert.CreatedAt) / time.Second)

	closed, err := srv.alertRepo.CloseFromActive(ctx, alertID, entity.AlertStatusResolved, resolvedBy, resolvedAt, responseSeconds)
	if err != nil {
		srv.log(ctx).Error("Failed to resolve alert", slog.Any("alertID", alertID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to resolve alert")
	}
	if !closed {
		// Someone else closed it between the read and the update.
		return nil, domainerrors.ErrAlertAlreadyClosed
	}

	alert.Status = entity.AlertStatusResolved
	alert.ResolvedAt = &resolvedAt
	alert.ResolvedBy = resolvedBy
	alert.ResponseTime = &responseSeconds

	srv.log(ctx).Info("Alert resolved",
		slog.Any("alertID", alertID),
		slog.String("resolvedBy", string(resolvedBy)),
		slog.Int("responseSeconds", responseSeconds),
	)

	return alert, nil
}

// CancelActiveAlerts marks every active alert of the user cancelled.
func (srv *alertService) CancelActiveAlerts(ctx context.Context, userID uuid.UUID) (*usecase.CancelAlertsOutput, error) {
	cancelled, err := srv.alertRepo.CancelActiveByUser(ctx, userID, time.Now())
	if err != nil {
		srv.log(ctx).Error("Failed to cancel active alerts", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to cancel active alerts")
	}

	srv.log(ctx).Info("Active alerts cancelled", slog.Any("userID", userID), slog.Int64("cancelled", cancelled))

	return &usecase.CancelAlertsOutput{Cancelled: cancelled}, nil
}

// DeleteAlert removes one alert and its notification history.
func (srv *alertService) DeleteAlert(ctx context.Context, userID, alertID uuid.UUID) error {
	if _, err := srv.ownedAlert(ctx, userID, alertID); err != nil {
		return err
	}

	if err := srv.alertRepo.Delete(ctx, alertID); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return domainerrors.ErrAlertNotFound
		}

		return errors.Wrap(err, "failed to delete alert")
	}

	srv.log(ctx).Debug("Alert deleted", slog.Any("alertID", alertID))

	return nil
}

// ownedAlert loads an alert and enforces ownership. An alert owned by another
// user reads as not found.
func (srv *alertService) ownedAlert(ctx context.Context, userID, alertID uuid.UUID) (*entity.Alert, error) {
	alert, err := srv.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return nil, domainerrors.ErrAlertNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert by id")
	}

	if alert.UserID != userID {
		return nil, domainerrors.ErrAlertNotFound
	}

	return alert, nil
}

func buildAlert(userID uuid.UUID, input *usecase.CreateAlertInput) (*entity.Alert, error) {
	if !input.Type.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown alert type")
	}

	if input.Location == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("location is required")
	}
	if !input.Location.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("location coordinates are out of range")
	}

	message := strings.TrimSpace(input.Message)
	if len(message) > entity.MaxMessageLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("message exceeds 500 characters")
	}

	severity := entity.DefaultSeverity
	if input.Severity != nil {
		severity = *input.Severity
		if severity < entity.SeverityMin || severity > entity.SeverityMax {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("severity must be between 1 and 5")
		}
	}

	return &entity.Alert{
		UserID:   userID,
		Type:     input.Type,
		Status:   entity.AlertStatusActive,
		Severity: severity,
		Location: *input.Location,
		Message:  message,
	}, nil
}
