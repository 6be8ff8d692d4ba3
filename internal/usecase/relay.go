package usecase

import (
	"context"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// NotificationRelay forwards records of the notifications collection to the
// customer they name.
type NotificationRelay struct {
	lookup     lookup
	dispatcher *Dispatcher
	logger     ports.Logger
}

// NewNotificationRelay constructs a NotificationRelay.
func NewNotificationRelay(directory ports.Directory, dispatcher *Dispatcher, logger ports.Logger) *NotificationRelay {
	return &NotificationRelay{
		lookup:     lookup{directory: directory, logger: logger},
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle returns nil when the record is incomplete or the customer cannot be
// reached; otherwise the delivery result.
func (r *NotificationRelay) Handle(ctx context.Context, notificationID string, record model.Record) *model.DeliveryResult {
	r.logger.Info(ctx, "notification received", "notificationId", notificationID)

	rec, err := model.ParseNotificationRecord(record)
	if err != nil {
		r.logger.Warn(ctx, "notification skipped", "notificationId", notificationID, "reason", err.Error())
		return nil
	}
	if rec.DroppedItems > 0 {
		r.logger.Warn(ctx, "ignoring malformed order lines", "notificationId", notificationID, "dropped", rec.DroppedItems)
	}

	token := r.lookup.token(ctx, rec.CustomerID, model.RoleCustomer)
	if token == "" {
		r.dispatcher.Skip(ctx, rec.CustomerID, model.RoleCustomer, rec.Kind, model.OutcomeNoToken)
		return nil
	}

	result := r.dispatcher.Deliver(ctx, rec.CustomerID, model.RoleCustomer, token, rec.Event())
	if result.Success {
		r.logger.Info(ctx, "customer notified", "customerId", rec.CustomerID, "kind", rec.Kind, "messageId", result.MessageID)
	} else {
		r.logger.Error(ctx, "customer notification failed", "customerId", rec.CustomerID, "kind", rec.Kind, "error", result.Error)
	}
	return &result
}
