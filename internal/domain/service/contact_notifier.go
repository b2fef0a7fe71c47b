package service

import (
	"context"

	"helpmate/internal/domain/entity"
)

// ContactNotifier delivers an alert notification to a single emergency
// contact. Implementations choose the channel (SMS, email, push) from what
// the contact and provider configuration support.
//
// Delivery is best-effort, at most one attempt per contact per alert; callers
// record failures and never retry.
type ContactNotifier interface {
	// Notify sends the alert to the contact and returns the channel used.
	// The returned method is valid even when err is non-nil, so failures can
	// be recorded against the attempted channel.
	Notify(ctx context.Context, contact *entity.Contact, alert *entity.Alert) (entity.DeliveryMethod, error)

	// NotifyTest sends a test message outside of any alert, used to verify a
	// contact is reachable.
	NotifyTest(ctx context.Context, contact *entity.Contact) (entity.DeliveryMethod, error)
}
