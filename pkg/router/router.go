package router

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/vlite/pkg/dom"
)

// Handler runs when its route is navigated to.
type Handler func()

// Config configures a Router.
type Config struct {
	// NotFound runs for unregistered paths. May be nil.
	NotFound Handler

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Option configures a Router.
type Option func(*Config)

// WithNotFound sets the handler for unregistered paths.
func WithNotFound(h Handler) Option {
	return func(c *Config) {
		c.NotFound = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// Router dispatches fragments to handlers. It is safe for concurrent use;
// handlers run without the router's lock.
type Router struct {
	mu       sync.Mutex
	routes   map[string]Handler
	order    []string
	current  string
	notFound Handler
	logger   *slog.Logger
}

// New creates an empty Router.
func New(opts ...Option) *Router {
	var config Config
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Router{
		routes:   make(map[string]Handler),
		notFound: config.NotFound,
		logger:   config.Logger,
	}
}

// Handle registers fn for path, replacing any previous handler. A nil fn
// removes the route.
func (r *Router) Handle(path string, fn Handler) {
	p := Normalize(path)

	r.mu.Lock()
	defer r.mu.Unlock()

	if fn == nil {
		if _, ok := r.routes[p]; ok {
			delete(r.routes, p)
			for i, q := range r.order {
				if q == p {
					r.order = append(r.order[:i:i], r.order[i+1:]...)
					break
				}
			}
		}
		return
	}
	if _, ok := r.routes[p]; !ok {
		r.order = append(r.order, p)
	}
	r.routes[p] = fn
}

// Navigate records hash as the current location and runs its handler. It
// reports whether a route matched; unmatched paths run the not-found
// handler, if any.
func (r *Router) Navigate(hash string) bool {
	p := Normalize(hash)

	r.mu.Lock()
	r.current = p
	fn, ok := r.routes[p]
	if !ok {
		fn = r.notFound
	}
	r.mu.Unlock()

	if !ok {
		r.logger.Debug("no route", "path", p)
	}
	if fn != nil {
		fn()
	}
	return ok
}

// Init navigates to fallback unless a location has already been set, and
// reports whether the resulting navigation matched.
func (r *Router) Init(fallback string) bool {
	r.mu.Lock()
	current := r.current
	r.mu.Unlock()

	if current != "" {
		return r.Navigate(current)
	}
	return r.Navigate(fallback)
}

// Bind routes "hashchange" events dispatched on target.
func (r *Router) Bind(target dom.Element) {
	target.AddEventListener("hashchange", func(ev dom.Event) {
		r.Navigate(ev.Value)
	})
}

// Match reports whether path has a handler.
func (r *Router) Match(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.routes[Normalize(path)]
	return ok
}

// Current returns the last navigated path, or "" before any navigation.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Paths returns the registered paths in registration order.
func (r *Router) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
