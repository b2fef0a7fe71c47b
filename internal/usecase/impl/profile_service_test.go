package impl

import (
	"context"
	"testing"

	"helpmate/internal/domain/entity"
	domainerrors "helpmate/internal/domain/errors"
	mockrepo "helpmate/internal/mocks/repository"
	"helpmate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (usecase.ProfileUsecase, *mockrepo.MockUserRepository) {
	userRepo := mockrepo.NewMockUserRepository(t)

	svc := NewProfileService(ProfileServiceParams{
		UserRepo: userRepo,
		Logger:   testLogger(),
	})

	return svc, userRepo
}

func TestUpdateProfilePartialFields(t *testing.T) {
	t.Parallel()

	svc, userRepo := newProfileService(t)

	userID := uuid.New()
	user := &entity.User{ID: userID, Name: "Alice", Phone: "+15550001111", Email: "alice@example.com"}

	userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Name == "Alicia" && u.Phone == "+15550001111"
	})).Return(nil)

	name := "Alicia"
	updated, err := svc.UpdateProfile(context.Background(), userID, &usecase.UpdateProfileInput{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "+15550001111", updated.Phone, "unset fields stay untouched")
}

func TestUpdateProfileRejectsBadPhone(t *testing.T) {
	t.Parallel()

	svc, userRepo := newProfileService(t)

	userID := uuid.New()
	user := &entity.User{ID: userID, Name: "Alice", Phone: "+15550001111"}

	userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

	phone := "12345"
	_, err := svc.UpdateProfile(context.Background(), userID, &usecase.UpdateProfileInput{Phone: &phone})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
