package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Load results used as the "result" label.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics records topology load activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	loads    *prometheus.CounterVec
	states   *prometheus.GaugeVec
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// It panics if they are already registered, like prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ham_topology_loads_total",
				Help: "Total number of topology loads by result",
			},
			[]string{"result"},
		),
		states: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ham_topology_states",
				Help: "Number of states in the last loaded topology, init included",
			},
			[]string{"topology"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ham_topology_load_duration_seconds",
				Help:    "Duration of topology loads",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}
	reg.MustRegister(m.loads, m.states, m.duration)
	return m
}

// ObserveLoad records one load. states is only recorded on success.
func (m *Metrics) ObserveLoad(topology string, states int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.loads.WithLabelValues(ResultError).Inc()
		return
	}
	m.loads.WithLabelValues(ResultOK).Inc()
	m.states.WithLabelValues(topology).Set(float64(states))
}
