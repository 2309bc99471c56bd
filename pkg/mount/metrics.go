package mount

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/cargo/pkg/vdom"
)

// MetricsConfig configures the reconciliation metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "cargo").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the reconciliation metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the Prometheus collectors for diff/apply passes. One
// Metrics value is shared by every Root of a process.
type Metrics struct {
	passesTotal  *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
	passErrors   *prometheus.CounterVec
	changesTotal *prometheus.CounterVec
	unsupported  prometheus.Counter
	passRejected prometheus.Counter
}

// NewMetrics registers the reconciliation metrics:
//
//   - cargo_passes_total: passes by kind (hydrate, render, update, unmount)
//   - cargo_pass_duration_seconds: diff+apply duration by kind
//   - cargo_pass_errors_total: failed passes by kind
//   - cargo_changes_total: applied changes by type and action
//   - cargo_unsupported_changes_total: skipped unsupported changes
//   - cargo_passes_rejected_total: passes rejected while another was in flight
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "cargo",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of diff/apply passes",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Diff plus apply duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		passErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_errors_total",
			Help:        "Total number of passes that failed while applying",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		changesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "changes_total",
			Help:        "Total number of applied changes",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "action"}),

		unsupported: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unsupported_changes_total",
			Help:        "Total number of changes skipped as unsupported",
			ConstLabels: config.ConstLabels,
		}),

		passRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_rejected_total",
			Help:        "Total number of passes rejected because another pass was in flight",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// The record methods are nil-safe so a Root without metrics can call them.

func (m *Metrics) recordPass(kind string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.passesTotal.WithLabelValues(kind).Inc()
	m.passDuration.WithLabelValues(kind).Observe(seconds)
	if err != nil {
		m.passErrors.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) recordChange(c vdom.Change) {
	if m == nil {
		return
	}
	m.changesTotal.WithLabelValues(string(c.Type), string(c.Action)).Inc()
}

func (m *Metrics) recordUnsupported(vdom.Change) {
	if m == nil {
		return
	}
	m.unsupported.Inc()
}

func (m *Metrics) recordRejected() {
	if m == nil {
		return
	}
	m.passRejected.Inc()
}
