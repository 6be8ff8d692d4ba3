package usecase

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// DeliverySummary logs the delivery counters and, when a reporter is
// configured, posts them to the ops channel.
type DeliverySummary struct {
	stats    ports.StatsSource
	reporter ports.Reporter
	logger   ports.Logger
}

// NewDeliverySummary creates the summary job. reporter may be nil.
func NewDeliverySummary(stats ports.StatsSource, reporter ports.Reporter, logger ports.Logger) *DeliverySummary {
	return &DeliverySummary{stats: stats, reporter: reporter, logger: logger}
}

// Run emits one summary.
func (s *DeliverySummary) Run(ctx context.Context) error {
	snap := s.stats.Snapshot()
	s.logger.Info(ctx, "delivery summary",
		"since", snap.Since.Format(time.RFC3339),
		"delivered", snap.Totals.Delivered,
		"failed", snap.Totals.Failed,
		"noToken", snap.Totals.NoToken,
		"skipped", snap.Totals.Skipped,
		"fanOuts", snap.FanOuts,
	)

	if s.reporter == nil {
		return nil
	}
	if err := s.reporter.Report(ctx, BuildSummaryReport(snap)); err != nil {
		return fmt.Errorf("post summary: %w", err)
	}
	return nil
}

// BuildSummaryReport renders the counters as a report with one field per kind.
func BuildSummaryReport(snap model.DeliveryStats) model.Report {
	report := model.Report{
		Title: "Push delivery summary",
		Description: fmt.Sprintf("Since %s: %d delivered, %d failed, %d without token, %d order fan-outs.",
			snap.Since.Format(time.RFC3339),
			snap.Totals.Delivered, snap.Totals.Failed, snap.Totals.NoToken, snap.FanOuts),
	}

	kinds := make([]model.Kind, 0, len(snap.ByKind))
	for k := range snap.ByKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	for _, k := range kinds {
		ks := snap.ByKind[k]
		report.Fields = append(report.Fields, model.ReportField{
			Name: string(k),
			Value: "✅ " + strconv.FormatInt(ks.Delivered, 10) +
				" • ❌ " + strconv.FormatInt(ks.Failed, 10) +
				" • 🚫 " + strconv.FormatInt(ks.NoToken, 10),
			Inline: true,
		})
	}
	return report
}
