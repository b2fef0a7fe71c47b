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

// contactService implements the ContactUsecase interface.
type contactService struct {
	contactRepo repository.ContactRepository
	notifier    service.ContactNotifier
	logger      *slog.Logger
}

// ContactServiceParams holds dependencies for ContactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	ContactRepo repository.ContactRepository
	Notifier    service.ContactNotifier
	Logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	return &contactService{
		contactRepo: params.ContactRepo,
		notifier:    params.Notifier,
		logger:      params.Logger,
	}
}

func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListContacts returns the user's contacts ordered by priority.
func (srv *contactService) ListContacts(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error) {
	contacts, err := srv.contactRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contacts, nil
}

// CreateContact validates and stores a new contact for the user.
func (srv *contactService) CreateContact(ctx context.Context, userID uuid.UUID, input *usecase.ContactInput) (*entity.Contact, error) {
	contact, err := buildContact(userID, input)
	if err != nil {
		return nil, err
	}

	if err := srv.contactRepo.Create(ctx, contact); err != nil {
		srv.log(ctx).Error("Failed to create contact", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create contact")
	}

	srv.log(ctx).Debug("Contact created", slog.Any("userID", userID), slog.Any("contactID", contact.ID))

	return contact, nil
}

// UpdateContact replaces the editable fields of an existing contact.
func (srv *contactService) UpdateContact(ctx context.Context, userID, contactID uuid.UUID, input *usecase.ContactInput) (*entity.Contact, error) {
	existing, err := srv.ownedContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	updated, err := buildContact(userID, input)
	if err != nil {
		return nil, err
	}

	existing.Name = updated.Name
	existing.Phone = updated.Phone
	existing.Email = updated.Email
	existing.Relationship = updated.Relationship
	existing.Priority = updated.Priority

	if err := srv.contactRepo.Update(ctx, existing); err != nil {
		srv.log(ctx).Error("Failed to update contact", slog.Any("contactID", contactID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update contact")
	}

	return existing, nil
}

// DeleteContact removes a contact permanently.
func (srv *contactService) DeleteContact(ctx context.Context, userID, contactID uuid.UUID) error {
	if _, err := srv.ownedContact(ctx, userID, contactID); err != nil {
		return err
	}

	if err := srv.contactRepo.Delete(ctx, contactID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return domainerrors.ErrContactNotFound
		}

		return errors.Wrap(err, "failed to delete contact")
	}

	srv.log(ctx).Debug("Contact deleted", slog.Any("contactID", contactID))

	return nil
}

// ToggleContact flips the contact's active flag and returns the updated record.
func (srv *contactService) ToggleContact(ctx context.Context, userID, contactID uuid.UUID) (*entity.Contact, error) {
	contact, err := srv.ownedContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	contact.IsActive = !contact.IsActive

	if err := srv.contactRepo.Update(ctx, contact); err != nil {
		srv.log(ctx).Error("Failed to toggle contact", slog.Any("contactID", contactID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to toggle contact")
	}

	srv.log(ctx).Debug("Contact toggled", slog.Any("contactID", contactID), slog.Bool("isActive", contact.IsActive))

	return contact, nil
}

// TestContacts sends a test notification to every active contact in priority
// order. Delivery failures are reported per contact, never as an error.
func (srv *contactService) TestContacts(ctx context.Context, userID uuid.UUID) ([]*usecase.ContactTestResult, error) {
	contacts, err := srv.contactRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active contacts")
	}
	sortContactsByPriority(contacts)

	results := make([]*usecase.ContactTestResult, 0, len(contacts))
	for _, contact := range contacts {
		notifiedAt := time.Now()
		method, notifyErr := srv.notifier.NotifyTest(ctx, contact)

		result := &usecase.ContactTestResult{
			ContactID: contact.ID,
			Name:      contact.Name,
			Method:    method,
			Status:    entity.DeliverySent,
		}

		if notifyErr != nil {
			result.Status = entity.DeliveryFailed
			srv.log(ctx).Warn("Test notification failed", slog.Any("contactID", contact.ID), slog.Any("error", notifyErr))
		} else if err := srv.contactRepo.RecordNotification(ctx, contact.ID, notifiedAt); err != nil {
			srv.log(ctx).Warn("Failed to record test notification", slog.Any("contactID", contact.ID), slog.Any("error", err))
		}

		results = append(results, result)
	}

	return results, nil
}

// ownedContact loads a contact and enforces ownership. A contact owned by
// another user reads as not found.
func (srv *contactService) ownedContact(ctx context.Context, userID, contactID uuid.UUID) (*entity.Contact, error) {
	contact, err := srv.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by id")
	}

	if contact.UserID != userID {
		return nil, domainerrors.ErrContactNotFound
	}

	return contact, nil
}

// sortContactsByPriority orders contacts highest priority (lowest number)
// first, independent of how the store returned them. Ties keep store order.
func sortContactsByPriority(contacts []*entity.Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].Priority < contacts[j].Priority
	})
}

func buildContact(userID uuid.UUID, input *usecase.ContactInput) (*entity.Contact, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("contact name is required")
	}

	phone := strings.TrimSpace(input.Phone)
	if !entity.ValidPhone(phone) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("phone number must contain at least 10 digits")
	}

	relationship := entity.Relationship(input.Relationship)
	if !relationship.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown relationship")
	}

	if !entity.ValidPriority(input.Priority) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("priority must be between 1 and 4")
	}

	return &entity.Contact{
		UserID:       userID,
		Name:         name,
		Phone:        phone,
		Email:        normalizeEmail(input.Email),
		Relationship: relationship,
		Priority:     input.Priority,
		IsActive:     true,
	}, nil
}
