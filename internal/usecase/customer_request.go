package usecase

import (
	"context"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// CustomerRequestRelay tells a business that a customer asked to join it.
type CustomerRequestRelay struct {
	lookup     lookup
	dispatcher *Dispatcher
	logger     ports.Logger
}

// NewCustomerRequestRelay constructs a CustomerRequestRelay.
func NewCustomerRequestRelay(directory ports.Directory, dispatcher *Dispatcher, logger ports.Logger) *CustomerRequestRelay {
	return &CustomerRequestRelay{
		lookup:     lookup{directory: directory, logger: logger},
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle acts only on relations whose status is exactly "pending".
func (c *CustomerRequestRelay) Handle(ctx context.Context, relationID string, record model.Record) *model.DeliveryResult {
	rec, err := model.ParseRelationRecord(record)
	if !rec.Pending() {
		c.logger.Info(ctx, "relation is not pending, nothing to send", "relationId", relationID, "status", rec.Status)
		return nil
	}
	if err != nil {
		c.logger.Warn(ctx, "relation skipped", "relationId", relationID, "reason", err.Error())
		return nil
	}

	info := c.lookup.info(ctx, rec.CustomerID)

	token := c.lookup.token(ctx, rec.BusinessID, model.RoleBusiness)
	if token == "" {
		c.dispatcher.Skip(ctx, rec.BusinessID, model.RoleBusiness, model.KindNewCustomerRequest, model.OutcomeNoToken)
		return nil
	}

	event := model.Event{
		Kind:         model.KindNewCustomerRequest,
		CustomerID:   rec.CustomerID,
		BusinessID:   rec.BusinessID,
		CustomerName: info.DisplayName,
	}
	result := c.dispatcher.Deliver(ctx, rec.BusinessID, model.RoleBusiness, token, event)
	if result.Success {
		c.logger.Info(ctx, "business notified of customer request", "businessId", rec.BusinessID, "customerId", rec.CustomerID, "messageId", result.MessageID)
	} else {
		c.logger.Error(ctx, "customer request notification failed", "businessId", rec.BusinessID, "customerId", rec.CustomerID, "error", result.Error)
	}
	return &result
}
