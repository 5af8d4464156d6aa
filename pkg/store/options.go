package store

import (
	"log/slog"

	"github.com/vango-dev/vlite/pkg/telemetry"
)

// DefaultMaxPasses bounds the number of update passes one request may chain.
const DefaultMaxPasses = 100

// Config configures a Store.
type Config struct {
	// Initial is merged into the empty state at construction.
	Initial State

	// MaxPasses bounds chained update passes. Zero or negative means
	// DefaultMaxPasses.
	MaxPasses int

	// Metrics receives state update counters. May be nil.
	Metrics *telemetry.Metrics

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Option configures a Store.
type Option func(*Config)

// WithInitialState seeds the store.
func WithInitialState(s State) Option {
	return func(c *Config) {
		c.Initial = s
	}
}

// WithMaxPasses sets the update loop bound.
func WithMaxPasses(n int) Option {
	return func(c *Config) {
		c.MaxPasses = n
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// SetOption modifies a single SetState call.
type SetOption func(*setOptions)

type setOptions struct {
	silent bool
}

// Silent merges the partial state without notifying observers or running
// the update callback.
func Silent() SetOption {
	return func(o *setOptions) {
		o.silent = true
	}
}
