// Package api is the REST client for the alert service. It backs the
// terminal SOS client with the same endpoints the web front-end calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"helpmate/config"
	"helpmate/internal/domain/entity"
	"helpmate/internal/trigger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to the alert service. The zero value is not usable; construct
// with New and authenticate with Login before submitting alerts.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	userID  uuid.UUID
}

// envelope mirrors the service's unified response shape.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

// New builds a client against one base URL.
func New(cfg *config.SOSClientConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// Health checks that the service is reachable before starting a session.
func (c *Client) Health(ctx context.Context) error {
	var data struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &data); err != nil {
		return errors.Wrap(err, "health check failed")
	}
	if data.Status != "ok" {
		return errors.Errorf("unexpected health status %q", data.Status)
	}

	return nil
}

// Login authenticates and stores the bearer token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &data); err != nil {
		return errors.Wrap(err, "login failed")
	}

	c.token = data.Token
	c.userID = data.User.ID

	return nil
}

// UserID returns the authenticated user, or uuid.Nil before login.
func (c *Client) UserID() uuid.UUID {
	return c.userID
}

// SubmitAlert raises an emergency alert from a trigger submission.
func (c *Client) SubmitAlert(ctx context.Context, submission *trigger.Submission) error {
	body := map[string]any{
		"type":      submission.Type,
		"timestamp": submission.Timestamp.Format(time.RFC3339),
	}
	if submission.Location != nil {
		body["location"] = submission.Location
	}

	if err := c.do(ctx, http.MethodPost, "/alerts/emergency", body, nil); err != nil {
		return errors.Wrap(err, "failed to submit alert")
	}

	return nil
}

// CancelAlerts cancels the user's active alerts.
func (c *Client) CancelAlerts(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/alerts/cancel", nil, nil); err != nil {
		return errors.Wrap(err, "failed to cancel alerts")
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request %s %s failed", method, path)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", path)
	}

	if !env.Success {
		if env.Error != nil {
			return errors.Errorf("%s: %s (%s)", env.Message, env.Error.Details, env.Error.Code)
		}

		return errors.Errorf("request failed with status %d: %s", env.Code, env.Message)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "failed to decode response data from %s", path)
		}
	}

	return nil
}

// StaticLocationProvider reports a fixed position from configuration. The
// terminal client has no GPS; operators configure their location once.
type StaticLocationProvider struct {
	location *entity.Location
}

// NewStaticLocationProvider builds a provider from the client configuration.
// Without configured coordinates the provider reports an error and the
// trigger proceeds without a position.
func NewStaticLocationProvider(cfg *config.SOSClientConfig) *StaticLocationProvider {
	if cfg.Latitude == nil || cfg.Longitude == nil {
		return &StaticLocationProvider{}
	}

	return &StaticLocationProvider{
		location: &entity.Location{
			Latitude:  *cfg.Latitude,
			Longitude: *cfg.Longitude,
		},
	}
}

// CurrentLocation returns the configured position.
func (p *StaticLocationProvider) CurrentLocation(_ context.Context) (*entity.Location, error) {
	if p.location == nil || !p.location.Valid() {
		return nil, errors.New("no valid location configured")
	}

	return p.location, nil
}
