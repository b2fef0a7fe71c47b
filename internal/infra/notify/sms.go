package notify

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"helpmate/config"

	"github.com/pkg/errors"
)

const twilioAPIBaseURL = "https://api.twilio.com"

// smsSender delivers messages through the Twilio Messages API.
type smsSender struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	client     *http.Client
}

func newSMSSender(cfg *config.SMSConfig) *smsSender {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = twilioAPIBaseURL
	}

	return &smsSender{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: cfg.FromNumber,
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts one message to the Twilio REST API.
func (s *smsSender) Send(ctx context.Context, to, body string) error {
	if s.accountSID == "" || s.authToken == "" || s.fromNumber == "" {
		return errors.New("missing SMS configuration: AccountSID, AuthToken, or FromNumber is empty")
	}

	endpoint := s.baseURL + "/2010-04-01/Accounts/" + s.accountSID + "/Messages.json"
	msgData := url.Values{}
	msgData.Set("To", to)
	msgData.Set("From", s.fromNumber)
	msgData.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(msgData.Encode()))
	if err != nil {
		return errors.Wrapf(err, "failed to create SMS request for %s", to)
	}

	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to send SMS to %s", to)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return errors.Errorf("SMS API returned status %d for %s", resp.StatusCode, to)
	}

	return nil
}
