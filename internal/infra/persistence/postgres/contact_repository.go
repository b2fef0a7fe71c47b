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

// contactRepository implements the repository.ContactRepository interface using GORM.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

// FindByID retrieves a single contact by its unique ID.
func (repo *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contactM model.ContactModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&contactM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by id")
	}

	return toContactDomain(&contactM), nil
}

// ListByUser retrieves all contacts owned by the user in fan-out order.
func (repo *contactRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error) {
	return repo.list(ctx, userID, false)
}

// ListActiveByUser retrieves only active contacts in fan-out order.
func (repo *contactRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error) {
	return repo.list(ctx, userID, true)
}

func (repo *contactRepository) list(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Contact, error) {
	query := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority ASC, created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var contactModels []*model.ContactModel
	if err := query.Find(&contactModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	contacts := make([]*entity.Contact, 0, len(contactModels))
	for _, contactM := range contactModels {
		contacts = append(contacts, toContactDomain(contactM))
	}

	return contacts, nil
}

// Create persists a new contact.
func (repo *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	contactM := fromContactDomain(contact)

	if err := repo.db.WithContext(ctx).Create(contactM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("contact references unknown user")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required contact information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	contact.ID = contactM.ID
	contact.CreatedAt = contactM.CreatedAt
	contact.UpdatedAt = contactM.UpdatedAt

	return nil
}

// Update modifies an existing contact.
func (repo *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	contactM := fromContactDomain(contact)

	if err := repo.db.WithContext(ctx).Save(contactM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update contact")
	}

	contact.UpdatedAt = contactM.UpdatedAt

	return nil
}

// Delete removes a contact.
func (repo *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ContactModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete contact")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// RecordNotification stamps LastNotified and bumps NotificationCount atomically.
func (repo *contactRepository) RecordNotification(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_notified":      at,
			"notification_count": gorm.Expr("notification_count + 1"),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to record contact notification")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toContactDomain converts a GORM ContactModel to a domain Contact entity.
func toContactDomain(data *model.ContactModel) *entity.Contact {
	if data == nil {
		return nil
	}

	return &entity.Contact{
		ID:                data.ID,
		UserID:            data.UserID,
		Name:              data.Name,
		Phone:             data.Phone,
		Email:             data.Email,
		Relationship:      entity.Relationship(data.Relationship),
		Priority:          data.Priority,
		IsActive:          data.IsActive,
		LastNotified:      data.LastNotified,
		NotificationCount: data.NotificationCount,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromContactDomain converts a domain Contact entity to a GORM ContactModel.
func fromContactDomain(data *entity.Contact) *model.ContactModel {
	if data == nil {
		return nil
	}

	return &model.ContactModel{
		ID:                data.ID,
		UserID:            data.UserID,
		Name:              data.Name,
		Phone:             data.Phone,
		Email:             data.Email,
		Relationship:      string(data.Relationship),
		Priority:          data.Priority,
		IsActive:          data.IsActive,
		LastNotified:      data.LastNotified,
		NotificationCount: data.NotificationCount,
		CreatedAt:         data.CreatedAt,
	}
}
