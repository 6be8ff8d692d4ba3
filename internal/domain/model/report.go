package model

import "time"

// KindStats counts delivery outcomes of one notification kind.
type KindStats struct {
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
	NoToken   int64 `json:"noToken"`
	Skipped   int64 `json:"skipped"`
}

// Add counts one outcome.
func (k *KindStats) Add(o Outcome) {
	switch o {
	case OutcomeDelivered:
		k.Delivered++
	case OutcomeFailed:
		k.Failed++
	case OutcomeNoToken:
		k.NoToken++
	case OutcomeSkipped:
		k.Skipped++
	}
}

// DeliveryStats is a point-in-time view of delivery counters.
type DeliveryStats struct {
	Since   time.Time          `json:"since"`
	Totals  KindStats          `json:"totals"`
	ByKind  map[Kind]KindStats `json:"byKind"`
	FanOuts int64              `json:"fanOuts"`
}

// ReportField is a named value shown in an operational report.
type ReportField struct {
	Name   string
	Value  string
	Inline bool
}

// Report is an operational message posted to the ops channel.
type Report struct {
	Title       string
	Description string
	URL         string
	Color       int
	Fields      []ReportField
}
