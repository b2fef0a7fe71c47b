package impl

import (
	"context"
	"testing"

	"helpmate/internal/domain/entity"
	domainerrors "helpmate/internal/domain/errors"
	mockrepo "helpmate/internal/mocks/repository"
	mockservice "helpmate/internal/mocks/service"
	"helpmate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContactService(t *testing.T) (usecase.ContactUsecase, *mockrepo.MockContactRepository, *mockservice.MockContactNotifier) {
	contactRepo := mockrepo.NewMockContactRepository(t)
	notifier := mockservice.NewMockContactNotifier(t)

	svc := NewContactService(ContactServiceParams{
		ContactRepo: contactRepo,
		Notifier:    notifier,
		Logger:      testLogger(),
	})

	return svc, contactRepo, notifier
}

func validContactInput() *usecase.ContactInput {
	return &usecase.ContactInput{
		Name:         "Bob",
		Phone:        "+1 555 000 2222",
		Email:        "bob@example.com",
		Relationship: "Family",
		Priority:     1,
	}
}

func TestCreateContactSuccess(t *testing.T) {
	t.Parallel()

	svc, contactRepo, _ := newContactService(t)
	userID := uuid.New()

	contactRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Contact) bool {
		return c.UserID == userID && c.Name == "Bob" && c.Relationship == entity.RelationshipFamily &&
			c.Priority == 1 && c.IsActive
	})).Return(nil)

	contact, err := svc.CreateContact(context.Background(), userID, validContactInput())

	require.NoError(t, err)
	assert.True(t, contact.IsActive, "new contacts start active")
}

func TestCreateContactValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*usecase.ContactInput)
	}{
		{"empty name", func(in *usecase.ContactInput) { in.Name = "  " }},
		{"short phone", func(in *usecase.ContactInput) { in.Phone = "12345" }},
		{"letters in phone", func(in *usecase.ContactInput) { in.Phone = "call-me-maybe-now" }},
		{"unknown relationship", func(in *usecase.ContactInput) { in.Relationship = "Acquaintance" }},
		{"priority too low", func(in *usecase.ContactInput) { in.Priority = 0 }},
		{"priority too high", func(in *usecase.ContactInput) { in.Priority = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, contactRepo, _ := newContactService(t)

			input := validContactInput()
			tt.mutate(input)

			_, err := svc.CreateContact(context.Background(), uuid.New(), input)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 400, appErr.HTTPCode())
			contactRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestToggleContactFlipsActiveOnly(t *testing.T) {
	t.Parallel()

	svc, contactRepo, _ := newContactService(t)

	userID := uuid.New()
	contact := &entity.Contact{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Bob",
		Phone:        "+15550002222",
		Relationship: entity.RelationshipFriend,
		Priority:     2,
		IsActive:     true,
	}

	contactRepo.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)
	contactRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Contact) bool {
		return !c.IsActive && c.Name == "Bob" && c.Priority == 2
	})).Return(nil)

	updated, err := svc.ToggleContact(context.Background(), userID, contact.ID)

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestContactOwnershipMismatchReadsAsNotFound(t *testing.T) {
	t.Parallel()

	svc, contactRepo, _ := newContactService(t)

	owner := uuid.New()
	intruder := uuid.New()
	contact := &entity.Contact{ID: uuid.New(), UserID: owner}

	contactRepo.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)

	_, err := svc.ToggleContact(context.Background(), intruder, contact.ID)
	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestTestContactsReportsPerContactOutcome(t *testing.T) {
	t.Parallel()

	svc, contactRepo, notifier := newContactService(t)
	userID := uuid.New()

	reachable := &entity.Contact{ID: uuid.New(), UserID: userID, Name: "First", Priority: 1, IsActive: true}
	unreachable := &entity.Contact{ID: uuid.New(), UserID: userID, Name: "Second", Priority: 2, IsActive: true}

	// Store order scrambled; results must still follow priority.
	contactRepo.On("ListActiveByUser", mock.Anything, userID).
		Return([]*entity.Contact{unreachable, reachable}, nil)
	notifier.On("NotifyTest", mock.Anything, reachable).Return(entity.DeliverySMS, nil)
	notifier.On("NotifyTest", mock.Anything, unreachable).Return(entity.DeliverySMS, errors.New("no route"))
	contactRepo.On("RecordNotification", mock.Anything, reachable.ID, mock.AnythingOfType("time.Time")).Return(nil)

	results, err := svc.TestContacts(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, reachable.ID, results[0].ContactID)
	assert.Equal(t, entity.DeliverySent, results[0].Status)
	assert.Equal(t, unreachable.ID, results[1].ContactID)
	assert.Equal(t, entity.DeliveryFailed, results[1].Status)
	contactRepo.AssertNotCalled(t, "RecordNotification", mock.Anything, unreachable.ID, mock.Anything)
}
