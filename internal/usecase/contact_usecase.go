package usecase

import (
	"context"

	"helpmate/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactInput defines the data for creating or replacing an emergency
// contact.
type ContactInput struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Relationship string `json:"relationship" validate:"required"`
	Priority     int    `json:"priority" validate:"required"`
}

// ContactTestResult reports the outcome of a test notification for one
// contact.
type ContactTestResult struct {
	ContactID uuid.UUID             `json:"contactId"`
	Name      string                `json:"name"`
	Method    entity.DeliveryMethod `json:"method"`
	Status    entity.DeliveryStatus `json:"status"`
}

// ContactUsecase defines the interface for emergency contact operations.
// Every operation is scoped to the owning user; a contact belonging to
// another user behaves as if it did not exist.
type ContactUsecase interface {
	// ListContacts returns the user's contacts ordered by priority.
	ListContacts(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error)

	// CreateContact validates and stores a new contact for the user.
	CreateContact(ctx context.Context, userID uuid.UUID, input *ContactInput) (*entity.Contact, error)

	// UpdateContact replaces the editable fields of an existing contact.
	UpdateContact(ctx context.Context, userID, contactID uuid.UUID, input *ContactInput) (*entity.Contact, error)

	// DeleteContact removes a contact permanently.
	DeleteContact(ctx context.Context, userID, contactID uuid.UUID) error

	// ToggleContact flips the contact's active flag and returns the
	// updated record. Inactive contacts are skipped during alert fan-out.
	ToggleContact(ctx context.Context, userID, contactID uuid.UUID) (*entity.Contact, error)

	// TestContacts sends a test notification to every active contact so
	// the user can verify reachability without raising an alert. Results
	// are reported per contact in priority order.
	TestContacts(ctx context.Context, userID uuid.UUID) ([]*ContactTestResult, error)
}
