package ports

import (
	"context"
	"time"

	"cayyap-notifier/internal/domain/model"
)

// Delivery describes one observed delivery attempt.
type Delivery struct {
	Kind        model.Kind
	RecipientID string
	Role        model.RecipientRole
	Outcome     model.Outcome
	Duration    time.Duration
}

// Observer records delivery outcomes.
type Observer interface {
	ObserveDelivery(ctx context.Context, d Delivery)
	ObserveFanOut(ctx context.Context, kind model.Kind, summary model.FanOutSummary)
}
