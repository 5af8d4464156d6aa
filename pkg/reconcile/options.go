package reconcile

import (
	"log/slog"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/telemetry"
)

// Default keyed-list signature and item state class.
const (
	DefaultKeyedTag   = "ul"
	DefaultKeyedClass = "keyed-list"
	DefaultStateClass = "editing"
	DefaultFocusFlag  = "autofocus"
)

// Config configures a Reconciler.
type Config struct {
	// KeyedTag and KeyedClass identify keyed-list containers: a host element
	// with this tag whose class list contains KeyedClass.
	KeyedTag   string
	KeyedClass string

	// StateClass is the item class whose presence flipping between renders
	// forces that one item to be rebuilt. Empty disables the check.
	StateClass string

	// FocusFlag names the boolean property marking the element to focus
	// after an item enters the StateClass state.
	FocusFlag string

	// Scheduler receives deferred focus calls. When nil, the Reconciler
	// keeps its own queue and drains it before Reconcile returns.
	Scheduler dom.Scheduler

	// Metrics receives rebuild/patch counters. May be nil.
	Metrics *telemetry.Metrics

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Config)

// WithKeyedContainer sets the keyed-list container signature.
func WithKeyedContainer(tag, class string) Option {
	return func(c *Config) {
		c.KeyedTag = tag
		c.KeyedClass = class
	}
}

// WithStateClass sets the item state class.
func WithStateClass(class string) Option {
	return func(c *Config) {
		c.StateClass = class
	}
}

// WithFocusFlag sets the property that marks the element to focus.
func WithFocusFlag(flag string) Option {
	return func(c *Config) {
		c.FocusFlag = flag
	}
}

// WithScheduler routes deferred focus calls to s.
func WithScheduler(s dom.Scheduler) Option {
	return func(c *Config) {
		c.Scheduler = s
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

func defaultConfig() Config {
	return Config{
		KeyedTag:   DefaultKeyedTag,
		KeyedClass: DefaultKeyedClass,
		StateClass: DefaultStateClass,
		FocusFlag:  DefaultFocusFlag,
	}
}
