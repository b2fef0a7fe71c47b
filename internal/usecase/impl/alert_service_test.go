package impl

import (
	"context"
	"testing"
	"time"

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

func newAlertService(t *testing.T) (usecase.AlertUsecase, *mockrepo.MockAlertRepository, *mockrepo.MockContactRepository, *mockservice.MockContactNotifier) {
	alertRepo := mockrepo.NewMockAlertRepository(t)
	contactRepo := mockrepo.NewMockContactRepository(t)
	notifier := mockservice.NewMockContactNotifier(t)

	svc := NewAlertService(AlertServiceParams{
		AlertRepo:   alertRepo,
		ContactRepo: contactRepo,
		Notifier:    notifier,
		Logger:      testLogger(),
	})

	return svc, alertRepo, contactRepo, notifier
}

func validAlertInput() *usecase.CreateAlertInput {
	return &usecase.CreateAlertInput{
		Type:     entity.AlertTypeSOSButtonPress,
		Location: &entity.Location{Latitude: 12.97, Longitude: 77.59},
	}
}

func TestCreateAlertDefaults(t *testing.T) {
	t.Parallel()

	svc, alertRepo, contactRepo, _ := newAlertService(t)
	userID := uuid.New()

	alertRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Alert) bool {
		return a.UserID == userID && a.Status == entity.AlertStatusActive &&
			a.Severity == entity.DefaultSeverity && len(a.ContactsNotified) == 0
	})).Return(nil)
	contactRepo.On("ListActiveByUser", mock.Anything, userID).Return([]*entity.Contact{}, nil)

	alert, err := svc.CreateAlert(context.Background(), userID, validAlertInput())

	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusActive, alert.Status)
	assert.Equal(t, 3, alert.Severity)
	assert.Empty(t, alert.ContactsNotified, "no active contacts means no notification records")
}

func TestCreateAlertValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*usecase.CreateAlertInput)
	}{
		{"unknown type", func(in *usecase.CreateAlertInput) { in.Type = "SHOUTING" }},
		{"missing location", func(in *usecase.CreateAlertInput) { in.Location = nil }},
		{"latitude out of range", func(in *usecase.CreateAlertInput) { in.Location.Latitude = 91 }},
		{"severity out of range", func(in *usecase.CreateAlertInput) {
			severity := 6
			in.Severity = &severity
		}},
		{"message too long", func(in *usecase.CreateAlertInput) {
			long := make([]byte, entity.MaxMessageLength+1)
			for i := range long {
				long[i] = 'a'
			}
			in.Message = string(long)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, alertRepo, _, _ := newAlertService(t)

			input := validAlertInput()
			tt.mutate(input)

			_, err := svc.CreateAlert(context.Background(), uuid.New(), input)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 400, appErr.HTTPCode())
			alertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateAlertFansOutInPriorityOrder(t *testing.T) {
	t.Parallel()

	svc, alertRepo, contactRepo, notifier := newAlertService(t)
	userID := uuid.New()

	first := &entity.Contact{ID: uuid.New(), UserID: userID, Name: "First", Priority: 1, IsActive: true}
	second := &entity.Contact{ID: uuid.New(), UserID: userID, Name: "Second", Priority: 2, IsActive: true}
	third := &entity.Contact{ID: uuid.New(), UserID: userID, Name: "Third", Priority: 3, IsActive: true}

	alertRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Alert")).Return(nil)
	// The store hands contacts back out of order; the fan-out must not rely
	// on it sorting.
	contactRepo.On("ListActiveByUser", mock.Anything, userID).
		Return([]*entity.Contact{third, first, second}, nil)

	var notified []uuid.UUID
	notifier.On("Notify", mock.Anything, mock.AnythingOfType("*entity.Contact"), mock.AnythingOfType("*entity.Alert")).
		Run(func(args mock.Arguments) {
			notified = append(notified, args.Get(1).(*entity.Contact).ID)
		}).
		Return(entity.DeliverySMS, nil).
		Times(2)
	notifier.On("Notify", mock.Anything, third, mock.AnythingOfType("*entity.Alert")).
		Run(func(args mock.Arguments) {
			notified = append(notified, third.ID)
		}).
		Return(entity.DeliverySMS, errors.New("provider down"))

	contactRepo.On("RecordNotification", mock.Anything, first.ID, mock.AnythingOfType("time.Time")).Return(nil)
	contactRepo.On("RecordNotification", mock.Anything, second.ID, mock.AnythingOfType("time.Time")).Return(nil)

	alertRepo.On("AppendNotifications", mock.Anything, mock.Anything, mock.MatchedBy(func(records []entity.NotificationRecord) bool {
		return len(records) == 3 &&
			records[0].ContactID == first.ID && records[0].Status == entity.DeliverySent &&
			records[1].ContactID == second.ID && records[1].Status == entity.DeliverySent &&
			records[2].ContactID == third.ID && records[2].Status == entity.DeliveryFailed
	})).Return(nil)

	alert, err := svc.CreateAlert(context.Background(), userID, validAlertInput())

	require.NoError(t, err, "delivery failures never fail alert creation")
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, notified, "fan-out follows priority order")
	require.Len(t, alert.ContactsNotified, 3)
	assert.Equal(t, entity.DeliveryFailed, alert.ContactsNotified[2].Status)
	contactRepo.AssertNotCalled(t, "RecordNotification", mock.Anything, third.ID, mock.Anything)
}

func TestResolveAlertSuccess(t *testing.T) {
	t.Parallel()

	svc, alertRepo, _, _ := newAlertService(t)

	userID := uuid.New()
	alertID := uuid.New()
	alert := &entity.Alert{
		ID:        alertID,
		UserID:    userID,
		Status:    entity.AlertStatusActive,
		CreatedAt: time.Now().Add(-90 * time.Second),
	}

	alertRepo.On("FindByID", mock.Anything, alertID).Return(alert, nil)
	alertRepo.On("CloseFromActive", mock.Anything, alertID, entity.AlertStatusResolved, entity.ResolverUser,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("int")).Return(true, nil)

	resolved, err := svc.ResolveAlert(context.Background(), userID, alertID, &usecase.ResolveAlertInput{ResolvedBy: entity.ResolverUser})

	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusResolved, resolved.Status)
	assert.Equal(t, entity.ResolverUser, resolved.ResolvedBy)
	require.NotNil(t, resolved.ResponseTime)
	assert.GreaterOrEqual(t, *resolved.ResponseTime, 90)
}

func TestResolveAlertAlreadyClosed(t *testing.T) {
	t.Parallel()

	svc, alertRepo, _, _ := newAlertService(t)

	userID := uuid.New()
	alertID := uuid.New()
	alert := &entity.Alert{ID: alertID, UserID: userID, Status: entity.AlertStatusCancelled}

	alertRepo.On("FindByID", mock.Anything, alertID).Return(alert, nil)

	_, err := svc.ResolveAlert(context.Background(), userID, alertID, &usecase.ResolveAlertInput{ResolvedBy: entity.ResolverUser})

	assert.ErrorIs(t, err, domainerrors.ErrAlertAlreadyClosed)
	alertRepo.AssertNotCalled(t, "CloseFromActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveAlertLosesRaceToAnotherCloser(t *testing.T) {
	t.Parallel()

	svc, alertRepo, _, _ := newAlertService(t)

	userID := uuid.New()
	alertID := uuid.New()
	alert := &entity.Alert{ID: alertID, UserID: userID, Status: entity.AlertStatusActive, CreatedAt: time.Now()}

	alertRepo.On("FindByID", mock.Anything, alertID).Return(alert, nil)
	alertRepo.On("CloseFromActive", mock.Anything, alertID, entity.AlertStatusResolved, entity.ResolverUser,
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("int")).Return(false, nil)

	_, err := svc.ResolveAlert(context.Background(), userID, alertID, &usecase.ResolveAlertInput{ResolvedBy: entity.ResolverUser})

	assert.ErrorIs(t, err, domainerrors.ErrAlertAlreadyClosed)
}

func TestAlertOwnershipMismatchReadsAsNotFound(t *testing.T) {
	t.Parallel()

	svc, alertRepo, _, _ := newAlertService(t)

	alertID := uuid.New()
	alert := &entity.Alert{ID: alertID, UserID: uuid.New(), Status: entity.AlertStatusActive}

	alertRepo.On("FindByID", mock.Anything, alertID).Return(alert, nil)

	_, err := svc.GetAlert(context.Background(), uuid.New(), alertID)
	assert.ErrorIs(t, err, domainerrors.ErrAlertNotFound)
}

func TestCancelActiveAlertsReportsCount(t *testing.T) {
	t.Parallel()

	svc, alertRepo, _, _ := newAlertService(t)
	userID := uuid.New()

	alertRepo.On("CancelActiveByUser", mock.Anything, userID, mock.AnythingOfType("time.Time")).Return(int64(2), nil)

	output, err := svc.CancelActiveAlerts(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), output.Cancelled)
}

func TestCancelWithNothingActiveSucceeds(t *testing.T) {
	t.Parallel()

	svc, alertRepo, _, _ := newAlertService(t)
	userID := uuid.New()

	alertRepo.On("CancelActiveByUser", mock.Anything, userID, mock.AnythingOfType("time.Time")).Return(int64(0), nil)

	output, err := svc.CancelActiveAlerts(context.Background(), userID)

	require.NoError(t, err)
	assert.Zero(t, output.Cancelled)
}

func TestListAlertsReturnsNewestFirst(t *testing.T) {
	t.Parallel()

	svc, alertRepo, _, _ := newAlertService(t)
	userID := uuid.New()

	now := time.Now()
	oldest := &entity.Alert{ID: uuid.New(), UserID: userID, CreatedAt: now.Add(-2 * time.Hour)}
	middle := &entity.Alert{ID: uuid.New(), UserID: userID, CreatedAt: now.Add(-time.Hour)}
	newest := &entity.Alert{ID: uuid.New(), UserID: userID, CreatedAt: now}

	alertRepo.On("ListByUser", mock.Anything, userID, (*entity.AlertStatus)(nil)).
		Return([]*entity.Alert{oldest, newest, middle}, nil)

	alerts, err := svc.ListAlerts(context.Background(), userID, nil)

	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, []uuid.UUID{newest.ID, middle.ID, oldest.ID},
		[]uuid.UUID{alerts[0].ID, alerts[1].ID, alerts[2].ID},
		"alerts come back newest first whatever the store order")
}

func TestListAlertsRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newAlertService(t)

	bogus := entity.AlertStatus("archived")
	_, err := svc.ListAlerts(context.Background(), uuid.New(), &bogus)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
}
