package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the engine. Create one with
// NewMetrics and pass it to the engine; register it on the registry that
// backs your /metrics endpoint.
type Metrics struct {
	FormsBuilt   *prometheus.CounterVec
	Binds        *prometheus.CounterVec
	BindDuration *prometheus.HistogramVec
}

// NewMetrics creates the engine collectors. They are not registered; call
// Register with a prometheus.Registerer (or use prometheus.MustRegister).
func NewMetrics() *Metrics {
	return &Metrics{
		FormsBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_forms_built_total",
				Help: "Total number of form trees built from definitions",
			},
			[]string{"form", "outcome"},
		),
		Binds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_binds_total",
				Help: "Total number of submissions bound",
			},
			[]string{"form", "outcome"},
		),
		BindDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "espalier_bind_duration_seconds",
				Help: "Duration of bind operations",
			},
			[]string{"form"},
		),
	}
}

// Register registers all collectors on r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.FormsBuilt, m.Binds, m.BindDuration} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveBuild records one form build.
func (m *Metrics) ObserveBuild(form string, err error) {
	if m == nil {
		return
	}
	m.FormsBuilt.WithLabelValues(form, outcome(err)).Inc()
}

// ObserveBind records one bind with its duration and outcome. Desynchronized
// binds count as "desynchronized" even when otherwise valid.
func (m *Metrics) ObserveBind(form string, valid, synchronized bool, d time.Duration) {
	if m == nil {
		return
	}
	out := "valid"
	switch {
	case !synchronized:
		out = "desynchronized"
	case !valid:
		out = "invalid"
	}
	m.Binds.WithLabelValues(form, out).Inc()
	m.BindDuration.WithLabelValues(form).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
