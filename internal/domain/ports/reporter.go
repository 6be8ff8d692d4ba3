package ports

import (
	"context"

	"cayyap-notifier/internal/domain/model"
)

// Reporter posts operational reports.
type Reporter interface {
	Report(ctx context.Context, report model.Report) error
}

// StatsSource exposes the current delivery counters.
type StatsSource interface {
	Snapshot() model.DeliveryStats
}
