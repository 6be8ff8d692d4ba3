package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// Collections names the observed document collections.
type Collections struct {
	Notifications string
	Orders        string
	Relations     string
}

// DefaultCollections returns the collection names used by the mobile apps.
func DefaultCollections() Collections {
	return Collections{
		Notifications: "notifications",
		Orders:        "orders",
		Relations:     "relations",
	}
}

// UnknownCollectionError is returned for events from a collection with no handler.
type UnknownCollectionError struct {
	Collection string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("no handler for collection %q", e.Collection)
}

type recordHandler func(ctx context.Context, id string, record model.Record) *model.DeliveryResult

// Router dispatches created-document events to the handler of their collection.
type Router struct {
	handlers map[string]recordHandler
	logger   ports.Logger
}

var _ ports.EventHandler = (*Router)(nil)

// NewRouter wires the three handlers to their collections.
func NewRouter(
	collections Collections,
	relay *NotificationRelay,
	orders *NewOrderFanOut,
	requests *CustomerRequestRelay,
	logger ports.Logger,
) *Router {
	return &Router{
		handlers: map[string]recordHandler{
			collections.Notifications: relay.Handle,
			collections.Orders:        orders.Handle,
			collections.Relations:     requests.Handle,
		},
		logger: logger,
	}
}

// Route handles one event. A nil result means the event was a no-op.
func (r *Router) Route(ctx context.Context, event model.CreatedEvent) (*model.DeliveryResult, error) {
	handle, ok := r.handlers[event.Collection]
	if !ok {
		r.logger.Warn(ctx, "event from unknown collection ignored", "collection", event.Collection, "id", event.ID)
		return nil, &UnknownCollectionError{Collection: event.Collection}
	}

	ctx = ports.WithInvocationID(ctx, uuid.NewString())
	r.logger.Debug(ctx, "routing event", "collection", event.Collection, "id", event.ID)
	return handle(ctx, event.ID, event.Data), nil
}
