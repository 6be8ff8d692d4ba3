package ports

import (
	"context"

	"cayyap-notifier/internal/domain/model"
)

// EventHandler consumes created-document events.
type EventHandler interface {
	Route(ctx context.Context, event model.CreatedEvent) (*model.DeliveryResult, error)
}

// EventSource delivers created-document events until ctx is cancelled.
type EventSource interface {
	Name() string
	Listen(ctx context.Context, handler EventHandler) error
}
