package notify

import (
	"context"
	"log/slog"

	"helpmate/internal/domain/entity"
	"helpmate/internal/domain/service"
)

// noopNotifier records notification attempts without delivering anything.
// It reports the SMS channel so fan-out history matches what a configured
// deployment would write.
type noopNotifier struct {
	logger *slog.Logger
}

// NewNoop returns the no-op ContactNotifier.
func NewNoop(logger *slog.Logger) service.ContactNotifier {
	return &noopNotifier{logger: logger}
}

func (n *noopNotifier) Notify(ctx context.Context, contact *entity.Contact, alert *entity.Alert) (entity.DeliveryMethod, error) {
	n.logger.InfoContext(ctx, "Skipping contact notification, no provider configured",
		slog.Any("contactID", contact.ID),
		slog.Any("alertID", alert.ID),
	)

	return entity.DeliverySMS, nil
}

func (n *noopNotifier) NotifyTest(ctx context.Context, contact *entity.Contact) (entity.DeliveryMethod, error) {
	n.logger.InfoContext(ctx, "Skipping test notification, no provider configured",
		slog.Any("contactID", contact.ID),
	)

	return entity.DeliverySMS, nil
}
