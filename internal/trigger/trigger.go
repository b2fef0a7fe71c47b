// Package trigger implements the SOS press-and-hold state machine that sits
// between a user interface and the alert API. A press arms a countdown and
// kicks off a location lookup; holding through the countdown raises an
// emergency, releasing early cancels it. All I/O runs off the caller's
// goroutine.
package trigger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"helpmate/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// State is the trigger's observable condition.
type State string

const (
	// StateIdle means no press is in progress.
	StateIdle State = "idle"

	// StateArming means the button is held and the countdown is running.
	StateArming State = "arming"

	// StateEmergency means the countdown expired and an alert was submitted.
	StateEmergency State = "emergency"
)

// Default timings: a three second hold, one tick per second, and a five
// second emergency display window.
const (
	DefaultCountdownSeconds = 3
	DefaultTickInterval     = time.Second
	DefaultDisplayDuration  = 5 * time.Second
)

// Submission is the immutable payload produced when the countdown expires.
// Location is whatever the lookup had resolved by then, possibly nil.
type Submission struct {
	Timestamp time.Time
	Location  *entity.Location
	UserID    uuid.UUID
	Type      entity.AlertType
}

// AlertSubmitter delivers trigger outcomes to the alert store.
type AlertSubmitter interface {
	// SubmitAlert raises an emergency alert from a trigger submission.
	SubmitAlert(ctx context.Context, submission *Submission) error

	// CancelAlerts cancels the caller's active alerts.
	CancelAlerts(ctx context.Context) error
}

// LocationProvider resolves the device position. Lookups may be slow or fail;
// the trigger never waits for them.
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (*entity.Location, error)
}

// Events are optional observer callbacks. They are invoked from the
// controller's internal goroutines; nil fields are skipped.
type Events struct {
	// OnStateChange fires on every transition.
	OnStateChange func(state State)

	// OnTick fires once per countdown tick with the remaining seconds,
	// including the initial full value on press.
	OnTick func(remaining int)

	// OnSubmitResult reports the outcome of the emergency submission. The
	// outcome never changes the state machine.
	OnSubmitResult func(err error)

	// OnCancelResult reports the outcome of a cancel request.
	OnCancelResult func(err error)
}

// Config carries the controller timings. Zero values fall back to defaults;
// tests shrink them.
type Config struct {
	CountdownSeconds int
	TickInterval     time.Duration
	DisplayDuration  time.Duration
}

func (cfg Config) withDefaults() Config {
	if cfg.CountdownSeconds <= 0 {
		cfg.CountdownSeconds = DefaultCountdownSeconds
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.DisplayDuration <= 0 {
		cfg.DisplayDuration = DefaultDisplayDuration
	}

	return cfg
}

// Controller is the press-hold-release state machine. Methods are safe for
// concurrent use; callbacks run on internal goroutines.
type Controller struct {
	cfg       Config
	userID    uuid.UUID
	provider  LocationProvider
	submitter AlertSubmitter
	events    Events
	logger    *slog.Logger

	mu sync.Mutex
	// seq identifies the current press cycle. Incrementing it orphans the
	// countdown, lookup and display timers of earlier cycles.
	seq      uint64
	state    State
	location *entity.Location
}

// New builds a Controller for one user.
func New(cfg Config, userID uuid.UUID, provider LocationProvider, submitter AlertSubmitter, events Events, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		cfg:       cfg.withDefaults(),
		userID:    userID,
		provider:  provider,
		submitter: submitter,
		events:    events,
		logger:    logger,
		state:     StateIdle,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Press starts a countdown cycle. A press in any state but Idle is ignored.
// The ctx bounds the location lookup and the eventual submission, so it must
// outlive the hold.
func (c *Controller) Press(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()

		return
	}
	c.state = StateArming
	c.location = nil
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.emitStateChange(StateArming)
	c.emitTick(c.cfg.CountdownSeconds)

	go c.lookupLocation(ctx, seq)
	go c.runCountdown(ctx, seq)
}

// Release aborts the countdown. Releasing after the countdown expired does
// nothing; the emergency stands until cancelled or timed out.
func (c *Controller) Release() {
	c.mu.Lock()
	if c.state != StateArming {
		c.mu.Unlock()

		return
	}
	c.state = StateIdle
	c.seq++
	c.mu.Unlock()

	c.emitStateChange(StateIdle)
}

// CancelEmergency reverts to Idle immediately and asks the store to cancel
// the active alerts. It does nothing outside the Emergency state.
func (c *Controller) CancelEmergency(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateEmergency {
		c.mu.Unlock()

		return
	}
	c.state = StateIdle
	c.seq++
	c.mu.Unlock()

	c.emitStateChange(StateIdle)

	go func() {
		err := c.submitter.CancelAlerts(ctx)
		if err != nil {
			c.logger.Warn("Failed to cancel alerts", slog.Any("error", err))
		}
		c.emitCancelResult(err)
	}()
}

// lookupLocation resolves the position in the background. The result is kept
// only while its press cycle is still current; a lookup failure is logged and
// the cycle proceeds without a position.
func (c *Controller) lookupLocation(ctx context.Context, seq uint64) {
	location, err := c.provider.CurrentLocation(ctx)
	if err != nil {
		c.logger.Warn("Location lookup failed", slog.Any("error", err))

		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != seq || c.state != StateArming {
		return
	}
	c.location = location
}

func (c *Controller) runCountdown(ctx context.Context, seq uint64) {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	remaining := c.cfg.CountdownSeconds
	for range ticker.C {
		c.mu.Lock()
		if c.seq != seq || c.state != StateArming {
			c.mu.Unlock()

			return
		}

		remaining--
		if remaining > 0 {
			c.mu.Unlock()
			c.emitTick(remaining)

			continue
		}

		// Expiry while held. The payload takes whatever location the
		// lookup has resolved by now.
		location := c.location
		c.state = StateEmergency
		c.mu.Unlock()

		c.emitTick(0)
		c.emitStateChange(StateEmergency)
		c.fireEmergency(ctx, seq, location)

		return
	}
}

func (c *Controller) fireEmergency(ctx context.Context, seq uint64, location *entity.Location) {
	submission := &Submission{
		Timestamp: time.Now(),
		Location:  location,
		UserID:    c.userID,
		Type:      entity.AlertTypeSOSButtonPress,
	}

	go func() {
		err := c.submitter.SubmitAlert(ctx, submission)
		if err != nil {
			c.logger.Warn("Alert submission failed", slog.Any("error", err))
			err = errors.Wrap(err, "alert submission failed")
		}
		c.emitSubmitResult(err)
	}()

	time.AfterFunc(c.cfg.DisplayDuration, func() {
		c.mu.Lock()
		if c.seq != seq || c.state != StateEmergency {
			c.mu.Unlock()

			return
		}
		c.state = StateIdle
		c.mu.Unlock()

		c.emitStateChange(StateIdle)
	})
}

func (c *Controller) emitStateChange(state State) {
	if c.events.OnStateChange != nil {
		c.events.OnStateChange(state)
	}
}

func (c *Controller) emitTick(remaining int) {
	if c.events.OnTick != nil {
		c.events.OnTick(remaining)
	}
}

func (c *Controller) emitSubmitResult(err error) {
	if c.events.OnSubmitResult != nil {
		c.events.OnSubmitResult(err)
	}
}

func (c *Controller) emitCancelResult(err error) {
	if c.events.OnCancelResult != nil {
		c.events.OnCancelResult(err)
	}
}
