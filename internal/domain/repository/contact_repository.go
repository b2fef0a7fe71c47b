package repository

import (
	"context"
	"errors"
	"time"

	"helpmate/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrContactNotFound is a domain-specific error returned when a contact is not found.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository defines the standard operations for emergency contact persistence.
type ContactRepository interface {
	// FindByID retrieves a single contact by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)

	// ListByUser retrieves all contacts owned by the given user,
	// ordered by ascending priority, then creation time.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error)

	// ListActiveByUser retrieves the user's active contacts in fan-out order
	// (ascending priority, then creation time).
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error)

	// Create persists a new contact.
	Create(ctx context.Context, contact *entity.Contact) error

	// Update modifies an existing contact.
	Update(ctx context.Context, contact *entity.Contact) error

	// Delete removes a contact.
	Delete(ctx context.Context, id uuid.UUID) error

	// RecordNotification stamps LastNotified and increments NotificationCount
	// after a successful send.
	RecordNotification(ctx context.Context, id uuid.UUID, at time.Time) error
}
