package pregel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus-compatible metrics collection for engine
// execution, narrowed from the teacher's graph/metrics.go six-metric
// surface to what the channel/step model actually produces:
//
//   - pregel_active_tasks: current number of concurrently-running tasks.
//   - pregel_pending_writes: size of the current step's pending-writes buffer.
//   - pregel_step_latency_seconds: histogram of per-step wall time.
//   - pregel_unrouted_writes_total: writes dropped because their target
//     channel wasn't registered.
//   - pregel_cancellations_total: steps aborted by first-failure or timeout.
//
// All methods are safe for concurrent use.
type Metrics struct {
	activeTasks    prometheus.Gauge
	pendingWrites  prometheus.Gauge
	stepLatency    prometheus.Histogram
	unroutedWrites prometheus.Counter
	cancellations  *prometheus.CounterVec
}

// NewMetrics registers the engine's metrics against registry and returns a
// Metrics ready to pass to WithMetrics.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		activeTasks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pregel_active_tasks",
			Help: "Current number of concurrently-running tasks in the active step.",
		}),
		pendingWrites: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pregel_pending_writes",
			Help: "Current size of the active step's pending-writes buffer.",
		}),
		stepLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pregel_step_latency_seconds",
			Help:    "Wall-clock duration of a completed step.",
			Buckets: prometheus.DefBuckets,
		}),
		unroutedWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "pregel_unrouted_writes_total",
			Help: "Writes dropped because their target channel was not registered.",
		}),
		cancellations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pregel_cancellations_total",
			Help: "Steps aborted, labeled by reason (failure or timeout).",
		}, []string{"reason"}),
	}
}

func (m *Metrics) setActiveTasks(n int) {
	if m == nil {
		return
	}
	m.activeTasks.Set(float64(n))
}

func (m *Metrics) setPendingWrites(n int) {
	if m == nil {
		return
	}
	m.pendingWrites.Set(float64(n))
}

func (m *Metrics) observeStepLatencySeconds(s float64) {
	if m == nil {
		return
	}
	m.stepLatency.Observe(s)
}

func (m *Metrics) incUnroutedWrites(n int) {
	if m == nil || n == 0 {
		return
	}
	m.unroutedWrites.Add(float64(n))
}

func (m *Metrics) incCancellation(reason string) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(reason).Inc()
}
