package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records outcomes of the cart mutation pipeline.
type PipelineMetrics struct {
	duration      *prometheus.HistogramVec
	saves         *prometheus.CounterVec
	totalsFailure prometheus.Counter
}

// NewPipelineMetrics registers the mutation pipeline metrics on the provided
// registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_item_save_duration_seconds",
		Help:    "Duration of cart item mutations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_item_saves_total",
		Help: "Cart item mutations by pipeline path.",
	}, []string{"path"})
	totalsFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_totals_recalculation_failures_total",
		Help: "Totals recalculation failures after a committed item mutation.",
	})
	reg.MustRegister(duration, saves, totalsFailure)
	return &PipelineMetrics{
		duration:      duration,
		saves:         saves,
		totalsFailure: totalsFailure,
	}
}

// ObserveSave records one mutation on the named path ("update" or "create").
func (m *PipelineMetrics) ObserveSave(path string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	label := normalizeLabel(path)
	m.duration.WithLabelValues(label).Observe(duration.Seconds())
	m.saves.WithLabelValues(label).Inc()
}

// IncTotalsFailure increments the totals recalculation failure counter.
func (m *PipelineMetrics) IncTotalsFailure() {
	if m == nil || m.totalsFailure == nil {
		return
	}
	m.totalsFailure.Inc()
}

func normalizeLabel(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
