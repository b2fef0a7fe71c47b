package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"helpmate/internal/domain/entity"
	domainerrors "helpmate/internal/domain/errors"
	"helpmate/internal/domain/repository"
	mockrepo "helpmate/internal/mocks/repository"
	mockservice "helpmate/internal/mocks/service"
	"helpmate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthService(t *testing.T) (usecase.AuthUsecase, *mockrepo.MockUserRepository, *mockservice.MockPasswordHasher, *mockservice.MockTokenService) {
	userRepo := mockrepo.NewMockUserRepository(t)
	hasher := mockservice.NewMockPasswordHasher(t)
	tokenSvc := mockservice.NewMockTokenService(t)

	svc := NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       testLogger(),
	})

	return svc, userRepo, hasher, tokenSvc
}

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()

	svc, userRepo, hasher, tokenSvc := newAuthService(t)

	userRepo.On("ExistsByEmailOrPhone", mock.Anything, "alice@example.com", "+15550001111").Return(false, nil)
	hasher.On("Hash", "secret123").Return("hashed", nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "alice@example.com" && u.Phone == "+15550001111" &&
			u.PasswordHash == "hashed" && u.IsActive
	})).Return(nil)
	tokenSvc.On("GenerateToken", mock.Anything).Return("token-abc", nil)

	output, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Alice",
		Email:    " Alice@Example.com ",
		Password: "secret123",
		Phone:    "+15550001111",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-abc", output.Token)
	assert.Equal(t, "alice@example.com", output.User.Email, "email is normalized before storage")
	assert.True(t, output.User.IsActive)
}

func TestRegisterDuplicateEmailOrPhone(t *testing.T) {
	t.Parallel()

	svc, userRepo, _, _ := newAuthService(t)

	userRepo.On("ExistsByEmailOrPhone", mock.Anything, "alice@example.com", "+15550001111").Return(true, nil)

	output, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Phone:    "+15550001111",
	})

	require.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode())
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterRejectsInvalidPhone(t *testing.T) {
	t.Parallel()

	svc, userRepo, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Phone:    "12345",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
	userRepo.AssertNotCalled(t, "ExistsByEmailOrPhone", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginSuccessStampsLastLogin(t *testing.T) {
	t.Parallel()

	svc, userRepo, hasher, tokenSvc := newAuthService(t)

	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "alice@example.com", PasswordHash: "hashed", IsActive: true}

	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	hasher.On("Check", "secret123", "hashed").Return(true)
	userRepo.On("TouchLastLogin", mock.Anything, userID, mock.AnythingOfType("time.Time")).Return(nil)
	tokenSvc.On("GenerateToken", userID).Return("token-abc", nil)

	output, err := svc.Login(context.Background(), &usecase.LoginInput{Email: "alice@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "token-abc", output.Token)
	require.NotNil(t, output.User.LastLogin)
	assert.WithinDuration(t, time.Now(), *output.User.LastLogin, time.Minute)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	inactive := &entity.User{ID: uuid.New(), PasswordHash: "hashed", IsActive: false}
	active := &entity.User{ID: uuid.New(), PasswordHash: "hashed", IsActive: true}

	tests := []struct {
		name  string
		setup func(userRepo *mockrepo.MockUserRepository, hasher *mockservice.MockPasswordHasher)
	}{
		{
			name: "unknown email",
			setup: func(userRepo *mockrepo.MockUserRepository, _ *mockservice.MockPasswordHasher) {
				userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, repository.ErrUserNotFound)
			},
		},
		{
			name: "deactivated account",
			setup: func(userRepo *mockrepo.MockUserRepository, _ *mockservice.MockPasswordHasher) {
				userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(inactive, nil)
			},
		},
		{
			name: "wrong password",
			setup: func(userRepo *mockrepo.MockUserRepository, hasher *mockservice.MockPasswordHasher) {
				userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(active, nil)
				hasher.On("Check", "wrong", "hashed").Return(false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, userRepo, hasher, _ := newAuthService(t)
			tt.setup(userRepo, hasher)

			output, err := svc.Login(context.Background(), &usecase.LoginInput{Email: "alice@example.com", Password: "wrong"})

			require.Nil(t, output)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestCurrentUserNotFound(t *testing.T) {
	t.Parallel()

	svc, userRepo, _, _ := newAuthService(t)

	userID := uuid.New()
	userRepo.On("FindByID", mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	_, err := svc.CurrentUser(context.Background(), userID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
