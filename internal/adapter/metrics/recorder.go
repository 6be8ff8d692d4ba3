package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cayyap-notifier/internal/domain/model"
	"cayyap-notifier/internal/domain/ports"
)

// Recorder counts delivery outcomes in Prometheus and keeps an in-process
// snapshot for the stats endpoint and the periodic summary.
type Recorder struct {
	deliveries *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	fanOutSize *prometheus.HistogramVec

	gatherer prometheus.Gatherer

	mu      sync.Mutex
	since   time.Time
	totals  model.KindStats
	byKind  map[model.Kind]model.KindStats
	fanOuts int64
}

var (
	_ ports.Observer    = (*Recorder)(nil)
	_ ports.StatsSource = (*Recorder)(nil)
)

// NewRecorder registers the delivery collectors on reg.
func NewRecorder(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Recorder {
	r := &Recorder{
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "push_deliveries_total",
			Help: "Push delivery attempts by kind, recipient role and outcome.",
		}, []string{"kind", "role", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "push_delivery_duration_seconds",
			Help:    "Duration of push sends.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind", "outcome"}),
		fanOutSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "push_fanout_recipients",
			Help:    "Staff members considered per order fan-out.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}, []string{"kind"}),
		gatherer: gatherer,
		since:    time.Now().UTC(),
		byKind:   make(map[model.Kind]model.KindStats),
	}
	reg.MustRegister(r.deliveries, r.latency, r.fanOutSize)
	return r
}

// ObserveDelivery counts one delivery attempt and times completed sends.
func (r *Recorder) ObserveDelivery(_ context.Context, d ports.Delivery) {
	r.deliveries.WithLabelValues(string(d.Kind), string(d.Role), string(d.Outcome)).Inc()
	if d.Outcome == model.OutcomeDelivered || d.Outcome == model.OutcomeFailed {
		r.latency.WithLabelValues(string(d.Kind), string(d.Outcome)).Observe(d.Duration.Seconds())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.totals.Add(d.Outcome)
	ks := r.byKind[d.Kind]
	ks.Add(d.Outcome)
	r.byKind[d.Kind] = ks
}

// ObserveFanOut records the recipient count of one staff fan-out.
func (r *Recorder) ObserveFanOut(_ context.Context, kind model.Kind, summary model.FanOutSummary) {
	r.fanOutSize.WithLabelValues(string(kind)).Observe(float64(summary.Total()))

	r.mu.Lock()
	r.fanOuts++
	r.mu.Unlock()
}

// Snapshot returns a copy of the counters.
func (r *Recorder) Snapshot() model.DeliveryStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKind := make(map[model.Kind]model.KindStats, len(r.byKind))
	for k, v := range r.byKind {
		byKind[k] = v
	}
	return model.DeliveryStats{
		Since:   r.since,
		Totals:  r.totals,
		ByKind:  byKind,
		FanOuts: r.fanOuts,
	}
}

// PromHandler serves the registry in the Prometheus exposition format.
func (r *Recorder) PromHandler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

// JSONHandler serves the snapshot as JSON.
func (r *Recorder) JSONHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(r.Snapshot())
	})
}
