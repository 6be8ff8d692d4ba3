package ports

import (
	"context"

	"cayyap-notifier/internal/domain/model"
)

// Messenger transmits a push payload and returns the provider message id.
type Messenger interface {
	Send(ctx context.Context, payload model.DeliveryPayload) (string, error)
}
