// Package notify implements outbound notification delivery to emergency
// contacts over SMS and email. Delivery is best-effort and single-shot; the
// caller records outcomes and never retries.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"helpmate/config"
	"helpmate/internal/domain/entity"
	"helpmate/internal/domain/service"

	"github.com/pkg/errors"
)

// notifier picks a channel per contact: SMS when a provider is configured
// (every contact has a phone), otherwise email when the contact has an
// address and SMTP is configured.
type notifier struct {
	sms    *smsSender
	email  *emailSender
	logger *slog.Logger
}

// New builds a ContactNotifier from provider configuration. With no providers
// configured it returns the no-op notifier, which records attempts without
// sending anything.
func New(cfg *config.Config, logger *slog.Logger) service.ContactNotifier {
	if cfg.Notify == nil || (cfg.Notify.SMS == nil && cfg.Notify.Email == nil) {
		logger.Warn("No notification providers configured, contact fan-out records attempts only")

		return NewNoop(logger)
	}

	n := &notifier{logger: logger}
	if cfg.Notify.SMS != nil {
		n.sms = newSMSSender(cfg.Notify.SMS)
	}
	if cfg.Notify.Email != nil {
		n.email = newEmailSender(cfg.Notify.Email)
	}

	return n
}

// Notify sends the alert to the contact and returns the channel attempted.
func (n *notifier) Notify(ctx context.Context, contact *entity.Contact, alert *entity.Alert) (entity.DeliveryMethod, error) {
	subject := "EMERGENCY ALERT"
	body := alertBody(alert)

	return n.send(ctx, contact, subject, body)
}

// NotifyTest sends a reachability test message outside of any alert.
func (n *notifier) NotifyTest(ctx context.Context, contact *entity.Contact) (entity.DeliveryMethod, error) {
	subject := "Helpmate test notification"
	body := fmt.Sprintf("Hi %s, this is a test message confirming you are set up as an emergency contact.", contact.Name)

	return n.send(ctx, contact, subject, body)
}

func (n *notifier) send(ctx context.Context, contact *entity.Contact, subject, body string) (entity.DeliveryMethod, error) {
	if n.sms != nil && contact.Phone != "" {
		return entity.DeliverySMS, n.sms.Send(ctx, contact.Phone, subject+"\n"+body)
	}
	if n.email != nil && contact.Email != "" {
		return entity.DeliveryEmail, n.email.Send(ctx, contact.Email, subject, body)
	}

	return entity.DeliverySMS, errors.Errorf("no delivery channel available for contact %s", contact.ID)
}

func alertBody(alert *entity.Alert) string {
	body := fmt.Sprintf("%s (severity %d). Location: https://maps.google.com/?q=%f,%f",
		alert.Type, alert.Severity, alert.Location.Latitude, alert.Location.Longitude)
	if alert.Message != "" {
		body = body + "\n" + alert.Message
	}

	return body
}
