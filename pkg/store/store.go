package store

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/vango-dev/vlite/pkg/telemetry"
)

// ErrUpdateLoop is returned when chained update passes exceed MaxPasses.
var ErrUpdateLoop = errors.New("store: update loop exceeded max passes")

// Observer is notified with a copy of the state after every non-silent
// merge.
type Observer func(State)

// UpdateFunc is the update callback, normally a render pass.
type UpdateFunc func() error

type subscription struct {
	fn Observer
}

// Store is the state container. It is safe for concurrent use; observers
// and the update callback run without the store's lock held.
type Store struct {
	mu        sync.Mutex
	state     State
	observers []*subscription
	update    UpdateFunc

	// Trampoline bookkeeping.
	running    bool
	pending    bool
	batchDepth int
	batchDirty bool

	maxPasses int
	metrics   *telemetry.Metrics
	logger    *slog.Logger
}

// New creates a Store.
func New(opts ...Option) *Store {
	var config Config
	for _, opt := range opts {
		opt(&config)
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = DefaultMaxPasses
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Store{
		state:     config.Initial.Clone(),
		maxPasses: config.MaxPasses,
		metrics:   config.Metrics,
		logger:    config.Logger,
	}
}

// GetState returns a shallow copy of the current state.
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SetState merges partial into the state. Unless Silent is given, observers
// are notified in order and the update callback runs before SetState
// returns. A nil partial is ignored. The returned State is a copy of the
// merged state; the error joins every update pass failure.
func (s *Store) SetState(partial State, opts ...SetOption) (State, error) {
	if partial == nil {
		return s.GetState(), nil
	}

	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}

	s.mu.Lock()
	for k, v := range partial {
		s.state[k] = v
	}
	next := s.state.Clone()
	observers := make([]*subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	s.metrics.RecordStateUpdate(!o.silent)
	if o.silent {
		return next, nil
	}

	// Observers run inside a batch so that state they set joins this
	// update instead of starting its own pass.
	err := s.Batch(func() {
		for _, sub := range observers {
			sub.fn(next.Clone())
		}
		s.RequestUpdate()
	})
	return next, err
}

// Subscribe appends fn to the observer list and returns a function that
// removes it. A nil fn is ignored.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	sub := &subscription{fn: fn}

	s.mu.Lock()
	s.observers = append(s.observers, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o == sub {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// SetUpdateCallback installs fn as the update callback, replacing any
// previous one. A nil fn clears it.
func (s *Store) SetUpdateCallback(fn UpdateFunc) {
	s.mu.Lock()
	s.update = fn
	s.mu.Unlock()
}

// RequestUpdate runs the update callback through the trampoline: inside a
// running pass or batch the request is deferred, otherwise passes run until
// no request is left.
func (s *Store) RequestUpdate() error {
	s.mu.Lock()
	switch {
	case s.batchDepth > 0:
		s.batchDirty = true
		s.mu.Unlock()
		return nil
	case s.running:
		s.pending = true
		s.mu.Unlock()
		return nil
	case s.update == nil:
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	return s.runPasses()
}

func (s *Store) runPasses() error {
	var errs []error
	for passes := 1; ; passes++ {
		s.mu.Lock()
		fn := s.update
		s.mu.Unlock()

		if fn != nil {
			if err := fn(); err != nil {
				errs = append(errs, err)
			}
		}

		s.mu.Lock()
		if !s.pending {
			s.running = false
			s.mu.Unlock()
			break
		}
		s.pending = false
		if passes >= s.maxPasses {
			s.running = false
			s.mu.Unlock()
			s.logger.Error("update loop stopped",
				"passes", passes,
				"max", s.maxPasses)
			errs = append(errs, ErrUpdateLoop)
			break
		}
		s.mu.Unlock()
	}
	return errors.Join(errs...)
}

// Batch runs fn with update requests held back, then runs a single update
// pass if any were made. Batches nest; only the outermost one flushes. If fn
// panics, the pending update is dropped.
func (s *Store) Batch(fn func()) (err error) {
	s.mu.Lock()
	s.batchDepth++
	s.mu.Unlock()

	completed := false
	defer func() {
		s.mu.Lock()
		s.batchDepth--
		flush := s.batchDepth == 0 && s.batchDirty
		if s.batchDepth == 0 {
			s.batchDirty = false
		}
		s.mu.Unlock()

		if flush && completed {
			err = s.RequestUpdate()
		}
	}()

	fn()
	completed = true
	return nil
}

// Updating reports whether an update pass is in progress.
func (s *Store) Updating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
