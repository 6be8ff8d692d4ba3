package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// ErrBusinessTokenMissing is the error text of the result returned when the
// business itself could not be notified.
const ErrBusinessTokenMissing = "business token not found"

// NewOrderFanOut notifies a business and all of its staff about a new order.
type NewOrderFanOut struct {
	lookup     lookup
	dispatcher *Dispatcher
	observer   ports.Observer
	logger     ports.Logger
}

// NewNewOrderFanOut constructs a NewOrderFanOut. observer may be nil.
func NewNewOrderFanOut(directory ports.Directory, dispatcher *Dispatcher, observer ports.Observer, logger ports.Logger) *NewOrderFanOut {
	return &NewOrderFanOut{
		lookup:     lookup{directory: directory, logger: logger},
		dispatcher: dispatcher,
		observer:   observer,
		logger:     logger,
	}
}

// Handle sends the business notification first, then fans out to staff. The
// returned result reflects the business delivery only; staff outcomes are
// logged and observed.
func (n *NewOrderFanOut) Handle(ctx context.Context, orderID string, record model.Record) *model.DeliveryResult {
	n.logger.Info(ctx, "order received", "orderId", orderID)

	rec, err := model.ParseOrderRecord(record)
	if err != nil {
		n.logger.Warn(ctx, "order skipped", "orderId", orderID, "reason", err.Error())
		return nil
	}
	if rec.DroppedItems > 0 {
		n.logger.Warn(ctx, "ignoring malformed order lines", "orderId", orderID, "dropped", rec.DroppedItems)
	}

	info := n.lookup.info(ctx, rec.CustomerID)
	event := model.Event{
		Kind:            model.KindNewOrder,
		CustomerID:      rec.CustomerID,
		BusinessID:      rec.BusinessID,
		OrderID:         orderID,
		CustomerName:    info.DisplayName,
		CustomerCompany: info.Affiliation,
		TotalPrice:      model.Float(rec.TotalPrice),
		Items:           rec.Items,
	}

	var businessResult *model.DeliveryResult
	if token := n.lookup.token(ctx, rec.BusinessID, model.RoleBusiness); token != "" {
		result := n.dispatcher.Deliver(ctx, rec.BusinessID, model.RoleBusiness, token, event)
		businessResult = &result
		msg := n.dispatcher.Format(event)
		if result.Success {
			n.logger.Info(ctx, "business notified of order", "businessId", rec.BusinessID, "orderId", orderID, "title", msg.Title, "messageId", result.MessageID)
		} else {
			n.logger.Error(ctx, "business order notification failed", "businessId", rec.BusinessID, "orderId", orderID, "error", result.Error)
		}
	} else {
		n.dispatcher.Skip(ctx, rec.BusinessID, model.RoleBusiness, model.KindNewOrder, model.OutcomeNoToken)
	}

	staff := n.lookup.staff(ctx, rec.BusinessID)
	if len(staff) == 0 {
		n.logger.Info(ctx, "no staff registered for business", "businessId", rec.BusinessID)
	} else {
		summary := n.fanOut(ctx, staff, event)
		n.logger.Info(ctx, "staff fan-out completed",
			"businessId", rec.BusinessID,
			"orderId", orderID,
			"delivered", summary.Delivered,
			"failed", summary.Failed,
			"noToken", summary.NoToken)
		if n.observer != nil {
			n.observer.ObserveFanOut(ctx, model.KindNewOrder, summary)
		}
	}

	if businessResult != nil {
		return businessResult
	}
	result := model.Failed(ErrBusinessTokenMissing)
	return &result
}

// fanOut sends event to every staff member concurrently and waits for all of them.
func (n *NewOrderFanOut) fanOut(ctx context.Context, staff []model.StaffRecipient, event model.Event) model.FanOutSummary {
	outcomes := make([]model.Outcome, len(staff))

	var g errgroup.Group
	for i, member := range staff {
		g.Go(func() error {
			if !member.HasToken() {
				n.logger.Warn(ctx, "staff member has no device token", "staffId", member.ID, "name", member.NameSurname)
				n.dispatcher.Skip(ctx, member.ID, model.RoleStaff, event.Kind, model.OutcomeNoToken)
				outcomes[i] = model.OutcomeNoToken
				return nil
			}

			result := n.dispatcher.Deliver(ctx, member.ID, model.RoleStaff, strings.TrimSpace(member.FCMToken), event)
			if result.Success {
				n.logger.Info(ctx, "staff member notified", "staffId", member.ID, "name", member.NameSurname, "messageId", result.MessageID)
				outcomes[i] = model.OutcomeDelivered
			} else {
				n.logger.Error(ctx, "staff notification failed", "staffId", member.ID, "name", member.NameSurname, "error", result.Error)
				outcomes[i] = model.OutcomeFailed
			}
			return nil
		})
	}
	_ = g.Wait()

	var summary model.FanOutSummary
	for _, o := range outcomes {
		switch o {
		case model.OutcomeDelivered:
			summary.Delivered++
		case model.OutcomeFailed:
			summary.Failed++
		default:
			summary.NoToken++
		}
	}
	return summary
}
