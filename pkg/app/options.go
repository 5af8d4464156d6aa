package app

import (
	"context"
	"log/slog"

	"github.com/vango-dev/vlite/pkg/reconcile"
	"github.com/vango-dev/vlite/pkg/telemetry"
)

// Config configures an App.
type Config struct {
	// Context is the parent context of render-pass spans.
	Context context.Context

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics records pass counts and durations. May be nil.
	Metrics *telemetry.Metrics

	// Tracer opens a span per render pass. May be nil.
	Tracer *telemetry.Tracer

	// Reconcile holds extra reconciler options, such as a custom keyed-list
	// signature.
	Reconcile []reconcile.Option
}

// Option configures an App.
type Option func(*Config)

// WithContext sets the parent context for render spans.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithMetrics sets the metrics sink. It is passed on to the reconciler.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithTracer sets the tracer.
func WithTracer(t *telemetry.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithReconcileOptions appends reconciler options.
func WithReconcileOptions(opts ...reconcile.Option) Option {
	return func(c *Config) {
		c.Reconcile = append(c.Reconcile, opts...)
	}
}
