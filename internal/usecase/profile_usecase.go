package usecase

import (
	"context"

	"helpmate/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput carries the editable profile fields. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" validate:"omitempty"`
}

// ProfileUsecase defines the interface for profile business operations.
type ProfileUsecase interface {
	// GetProfile loads the user's own record.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies the provided fields and returns the updated
	// record. Email and password are not editable through this path.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
}
