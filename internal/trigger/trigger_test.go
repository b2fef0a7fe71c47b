package trigger

import (
	"context"
	"sync"
	"testing"
	"time"

	"helpmate/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu          sync.Mutex
	submissions []*Submission
	cancels     int
	submitErr   error
}

func (f *fakeSubmitter) SubmitAlert(_ context.Context, submission *Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, submission)

	return f.submitErr
}

func (f *fakeSubmitter) CancelAlerts(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++

	return nil
}

func (f *fakeSubmitter) submissionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.submissions)
}

func (f *fakeSubmitter) cancelCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.cancels
}

type fakeProvider struct {
	location *entity.Location
	err      error
	delay    time.Duration
}

func (f *fakeProvider) CurrentLocation(ctx context.Context) (*entity.Location, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return f.location, f.err
}

func testConfig() Config {
	return Config{
		CountdownSeconds: 3,
		TickInterval:     10 * time.Millisecond,
		DisplayDuration:  40 * time.Millisecond,
	}
}

func waitFor(t *testing.T, condition func() bool, msg string) {
	t.Helper()
	require.Eventually(t, condition, time.Second, time.Millisecond, msg)
}

func TestPressAndHoldSubmitsOneAlert(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	submitter := &fakeSubmitter{}
	provider := &fakeProvider{location: &entity.Location{Latitude: 12.97, Longitude: 77.59}}

	var mu sync.Mutex
	var ticks []int
	events := Events{
		OnTick: func(remaining int) {
			mu.Lock()
			defer mu.Unlock()
			ticks = append(ticks, remaining)
		},
	}

	controller := New(testConfig(), userID, provider, submitter, events, nil)

	pressedAt := time.Now()
	controller.Press(context.Background())

	waitFor(t, func() bool { return controller.State() == StateEmergency }, "countdown should expire into emergency")
	waitFor(t, func() bool { return submitter.submissionCount() == 1 }, "exactly one submission expected")

	submitter.mu.Lock()
	submission := submitter.submissions[0]
	submitter.mu.Unlock()

	assert.Equal(t, userID, submission.UserID)
	assert.Equal(t, entity.AlertTypeSOSButtonPress, submission.Type)
	require.NotNil(t, submission.Location)
	assert.InDelta(t, 12.97, submission.Location.Latitude, 0.0001)
	assert.False(t, submission.Timestamp.Before(pressedAt), "timestamp is the submission time, not the press time")

	// Holding past expiry never produces a second submission.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, submitter.submissionCount())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, ticks[0], "first tick reports the full countdown")
	assert.Equal(t, 0, ticks[len(ticks)-1])
}

func TestReleaseBeforeExpiryCancels(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	provider := &fakeProvider{location: &entity.Location{Latitude: 1, Longitude: 1}}
	controller := New(testConfig(), uuid.New(), provider, submitter, Events{}, nil)

	controller.Press(context.Background())
	require.Equal(t, StateArming, controller.State())

	controller.Release()
	assert.Equal(t, StateIdle, controller.State())

	// Give an orphaned countdown every chance to misfire.
	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, submitter.submissionCount())
}

func TestSlowLocationLookupSubmitsNil(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	provider := &fakeProvider{
		location: &entity.Location{Latitude: 1, Longitude: 1},
		delay:    time.Second,
	}
	controller := New(testConfig(), uuid.New(), provider, submitter, Events{}, nil)

	controller.Press(context.Background())

	waitFor(t, func() bool { return submitter.submissionCount() == 1 }, "submission expected")

	submitter.mu.Lock()
	defer submitter.mu.Unlock()
	assert.Nil(t, submitter.submissions[0].Location, "unresolved lookup must not block the submission")
}

func TestLocationFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	provider := &fakeProvider{err: errors.New("gps unavailable")}
	controller := New(testConfig(), uuid.New(), provider, submitter, Events{}, nil)

	controller.Press(context.Background())

	waitFor(t, func() bool { return submitter.submissionCount() == 1 }, "submission expected despite lookup failure")

	submitter.mu.Lock()
	defer submitter.mu.Unlock()
	assert.Nil(t, submitter.submissions[0].Location)
}

func TestSubmitFailureReportedWithoutStateChange(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{submitErr: errors.New("api down")}
	provider := &fakeProvider{location: &entity.Location{Latitude: 1, Longitude: 1}}

	resultCh := make(chan error, 1)
	events := Events{OnSubmitResult: func(err error) { resultCh <- err }}
	controller := New(testConfig(), uuid.New(), provider, submitter, events, nil)

	controller.Press(context.Background())

	select {
	case err := <-resultCh:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("submit result not reported")
	}

	assert.Equal(t, StateEmergency, controller.State(), "submission failure must not leave the emergency state")
}

func TestEmergencyAutoRevertsAfterDisplayWindow(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	provider := &fakeProvider{location: &entity.Location{Latitude: 1, Longitude: 1}}
	controller := New(testConfig(), uuid.New(), provider, submitter, Events{}, nil)

	controller.Press(context.Background())

	waitFor(t, func() bool { return controller.State() == StateEmergency }, "emergency expected")
	waitFor(t, func() bool { return controller.State() == StateIdle }, "display window should revert to idle")

	assert.Zero(t, submitter.cancelCount(), "auto-revert never cancels the alert")
}

func TestCancelEmergencyIssuesCancelAndRevertsImmediately(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	provider := &fakeProvider{location: &entity.Location{Latitude: 1, Longitude: 1}}
	controller := New(testConfig(), uuid.New(), provider, submitter, Events{}, nil)

	controller.Press(context.Background())
	waitFor(t, func() bool { return controller.State() == StateEmergency }, "emergency expected")

	controller.CancelEmergency(context.Background())
	assert.Equal(t, StateIdle, controller.State(), "cancel does not wait out the display window")

	waitFor(t, func() bool { return submitter.cancelCount() == 1 }, "cancel request expected")
}

func TestPressWhileArmingIsIgnored(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	provider := &fakeProvider{location: &entity.Location{Latitude: 1, Longitude: 1}}
	controller := New(testConfig(), uuid.New(), provider, submitter, Events{}, nil)

	controller.Press(context.Background())
	controller.Press(context.Background())

	waitFor(t, func() bool { return controller.State() == StateEmergency }, "emergency expected")

	// A second press must not have started a second countdown cycle.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, submitter.submissionCount())
}
