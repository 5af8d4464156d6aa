package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rebuild scopes.
const (
	ScopeForest   = "forest"
	ScopeChildren = "children"
	ScopeChild    = "child"
	ScopeItem     = "item"
)

// Keyed-list operations.
const (
	KeyedInsert = "insert"
	KeyedMove   = "move"
	KeyedRemove = "remove"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vlite").
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

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vlite",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the render-pass collectors.
type Metrics struct {
	passes       *prometheus.CounterVec
	passDuration prometheus.Histogram
	rebuilds     *prometheus.CounterVec
	patches      prometheus.Counter
	keyedOps     *prometheus.CounterVec
	stateUpdates *prometheus.CounterVec
}

// NewMetrics registers the collectors with the configured registry.
// Registering twice against the same registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_passes_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_pass_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		rebuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "full_rebuilds_total",
			Help:        "Host subtrees discarded and mounted from scratch",
			ConstLabels: config.ConstLabels,
		}, []string{"scope"}),

		patches: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Host nodes patched in place",
			ConstLabels: config.ConstLabels,
		}),

		keyedOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "keyed_ops_total",
			Help:        "Keyed-list reconciliation operations",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		stateUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "state_updates_total",
			Help:        "State merges by trigger mode",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),
	}
}

// ObservePass records one render pass.
func (m *Metrics) ObservePass(d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.passes.WithLabelValues(status).Inc()
	m.passDuration.Observe(d.Seconds())
}

// RecordRebuild records a subtree rebuilt from scratch.
func (m *Metrics) RecordRebuild(scope string) {
	if m == nil {
		return
	}
	m.rebuilds.WithLabelValues(scope).Inc()
}

// RecordPatch records an in-place patch.
func (m *Metrics) RecordPatch() {
	if m == nil {
		return
	}
	m.patches.Inc()
}

// RecordKeyed records a keyed-list operation.
func (m *Metrics) RecordKeyed(op string) {
	if m == nil {
		return
	}
	m.keyedOps.WithLabelValues(op).Inc()
}

// RecordStateUpdate records a state merge.
func (m *Metrics) RecordStateUpdate(triggered bool) {
	if m == nil {
		return
	}
	mode := "silent"
	if triggered {
		mode = "triggered"
	}
	m.stateUpdates.WithLabelValues(mode).Inc()
}

// Rebuilds exposes the rebuild counter for a scope, for tests and dashboards.
func (m *Metrics) Rebuilds(scope string) prometheus.Counter {
	return m.rebuilds.WithLabelValues(scope)
}

// KeyedOps exposes the keyed-op counter for op.
func (m *Metrics) KeyedOps(op string) prometheus.Counter {
	return m.keyedOps.WithLabelValues(op)
}

// Patches exposes the patch counter.
func (m *Metrics) Patches() prometheus.Counter {
	return m.patches
}

// Passes exposes the pass counter for a status.
func (m *Metrics) Passes(status string) prometheus.Counter {
	return m.passes.WithLabelValues(status)
}

// StateUpdates exposes the state update counter for a mode ("triggered" or
// "silent").
func (m *Metrics) StateUpdates(mode string) prometheus.Counter {
	return m.stateUpdates.WithLabelValues(mode)
}
