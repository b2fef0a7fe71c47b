package postgres

import (
	"context"
	"time"

	"helpmate/internal/domain/entity"
	domainerrors "helpmate/internal/domain/errors"
	"helpmate/internal/domain/repository"
	"helpmate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// alertRepository implements the repository.AlertRepository interface using GORM.
//
// Status transitions are guarded single-row updates (WHERE status = 'active').
// Concurrent closers race as last-write-wins; the loser observes zero rows
// affected and reports the conflict.
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository is the constructor for alertRepository.
func NewAlertRepository(db *gorm.DB) repository.AlertRepository {
	return &alertRepository{db: db}
}

// FindByID retrieves a single alert with its ordered notification records.
func (repo *alertRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	var alertM model.AlertModel
	if err := repo.db.WithContext(ctx).
		Preload("Notifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("alert_notifications.id ASC")
		}).
		Where("id = ?", id).
		First(&alertM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAlertNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert by id")
	}

	return toAlertDomain(&alertM), nil
}

// ListByUser retrieves the user's alerts, most recent first.
func (repo *alertRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *entity.AlertStatus) ([]*entity.Alert, error) {
	query := repo.db.WithContext(ctx).
		Preload("Notifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("alert_notifications.id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var alertModels []*model.AlertModel
	if err := query.Find(&alertModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list alerts")
	}

	alerts := make([]*entity.Alert, 0, len(alertModels))
	for _, alertM := range alertModels {
		alerts = append(alerts, toAlertDomain(alertM))
	}

	return alerts, nil
}

// Create persists a new alert with an empty notification history.
func (repo *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	alertM := fromAlertDomain(alert)

	if err := repo.db.WithContext(ctx).Create(alertM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("alert references unknown user")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required alert information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create alert")
	}

	alert.ID = alertM.ID
	alert.CreatedAt = alertM.CreatedAt
	alert.UpdatedAt = alertM.UpdatedAt

	return nil
}

// CloseFromActive transitions the alert to a terminal status, guarded on the
// current status still being active.
func (repo *alertRepository) CloseFromActive(ctx context.Context, id uuid.UUID, target entity.AlertStatus, by entity.ResolverKind, at time.Time, responseSeconds int) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.AlertModel{}).
		Where("id = ? AND status = ?", id, string(entity.AlertStatusActive)).
		Updates(map[string]any{
			"status":        string(target),
			"resolved_at":   at,
			"resolved_by":   string(by),
			"response_time": responseSeconds,
		})

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to close alert")
	}

	return result.RowsAffected > 0, nil
}

// CancelActiveByUser cancels every active alert owned by the user.
func (repo *alertRepository) CancelActiveByUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.AlertModel{}).
		Where("user_id = ? AND status = ?", userID, string(entity.AlertStatusActive)).
		Updates(map[string]any{
			"status":      string(entity.AlertStatusCancelled),
			"resolved_at": at,
			"resolved_by": string(entity.ResolverUser),
		})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to cancel active alerts")
	}

	return result.RowsAffected, nil
}

// Delete removes an alert; its notification records cascade.
func (repo *alertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.AlertModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete alert")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAlertNotFound
	}

	return nil
}

// AppendNotifications appends fan-out records preserving their order.
func (repo *alertRepository) AppendNotifications(ctx context.Context, alertID uuid.UUID, records []entity.NotificationRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]*model.AlertNotificationModel, 0, len(records))
	for _, record := range records {
		rows = append(rows, &model.AlertNotificationModel{
			AlertID:    alertID,
			ContactID:  record.ContactID,
			NotifiedAt: record.NotifiedAt,
			Method:     string(record.Method),
			Status:     string(record.Status),
		})
	}

	if err := repo.db.WithContext(ctx).Create(rows).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAlertNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append notification records")
	}

	return nil
}

// --- Mapper Functions ---

// toAlertDomain converts a GORM AlertModel to a domain Alert entity.
func toAlertDomain(data *model.AlertModel) *entity.Alert {
	if data == nil {
		return nil
	}

	records := make([]entity.NotificationRecord, 0, len(data.Notifications))
	for _, row := range data.Notifications {
		records = append(records, entity.NotificationRecord{
			ContactID:  row.ContactID,
			NotifiedAt: row.NotifiedAt,
			Method:     entity.DeliveryMethod(row.Method),
			Status:     entity.DeliveryStatus(row.Status),
		})
	}

	return &entity.Alert{
		ID:       data.ID,
		UserID:   data.UserID,
		Type:     entity.AlertType(data.Type),
		Severity: data.Severity,
		Status:   entity.AlertStatus(data.Status),
		Location: entity.Location{
			Latitude:  data.Latitude,
			Longitude: data.Longitude,
			Accuracy:  data.Accuracy,
		},
		Message:          data.Message,
		ContactsNotified: records,
		ResolvedAt:       data.ResolvedAt,
		ResolvedBy:       entity.ResolverKind(data.ResolvedBy),
		ResponseTime:     data.ResponseTime,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromAlertDomain converts a domain Alert entity to a GORM AlertModel.
// Notification records are persisted separately via AppendNotifications.
func fromAlertDomain(data *entity.Alert) *model.AlertModel {
	if data == nil {
		return nil
	}

	return &model.AlertModel{
		ID:           data.ID,
		UserID:       data.UserID,
		Type:         string(data.Type),
		Severity:     data.Severity,
		Status:       string(data.Status),
		Latitude:     data.Location.Latitude,
		Longitude:    data.Location.Longitude,
		Accuracy:     data.Location.Accuracy,
		Message:      data.Message,
		ResolvedAt:   data.ResolvedAt,
		ResolvedBy:   string(data.ResolvedBy),
		ResponseTime: data.ResponseTime,
		CreatedAt:    data.CreatedAt,
	}
}
