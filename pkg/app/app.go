package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/vlite/internal/errors"
	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/reconcile"
	"github.com/vango-dev/vlite/pkg/store"
	"github.com/vango-dev/vlite/pkg/telemetry"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// ViewFunc builds the forest for the current state.
type ViewFunc func(s *store.Store) []*vdom.VNode

// Pass describes a finished render pass.
type Pass struct {
	// Seq counts passes from 1.
	Seq        int
	ForestSize int
	Duration   time.Duration
	Root       dom.Element
	Err        error
}

// RenderHook observes finished render passes.
type RenderHook func(Pass)

// App renders a view into one mount point and re-renders on state changes.
type App struct {
	doc   dom.Document
	store *store.Store
	rec   *reconcile.Reconciler
	queue *dom.TaskQueue

	ctx     context.Context
	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer

	mu      sync.Mutex
	mountID string
	root    dom.Element
	view    ViewFunc
	seq     int
	hooks   []RenderHook
}

// New creates an unmounted App.
func New(doc dom.Document, s *store.Store, opts ...Option) *App {
	var config Config
	for _, opt := range opts {
		opt(&config)
	}
	if config.Context == nil {
		config.Context = context.Background()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	queue := dom.NewTaskQueue()
	recOpts := []reconcile.Option{
		reconcile.WithScheduler(queue),
		reconcile.WithMetrics(config.Metrics),
		reconcile.WithLogger(config.Logger),
	}
	recOpts = append(recOpts, config.Reconcile...)

	return &App{
		doc:     doc,
		store:   s,
		rec:     reconcile.New(doc, recOpts...),
		queue:   queue,
		ctx:     config.Context,
		logger:  config.Logger,
		metrics: config.Metrics,
		tracer:  config.Tracer,
	}
}

// Mount looks up the element with id mountID, installs the render pass as
// the store's update callback and renders once. A missing mount point is
// logged and reported as E101; the app then stays inert.
func (a *App) Mount(mountID string, view ViewFunc) error {
	a.mu.Lock()
	if a.root != nil {
		a.mu.Unlock()
		return errors.New("E102").WithDetailf("Already mounted on #%s.", a.mountID)
	}

	root := a.doc.GetElementByID(mountID)
	if root == nil {
		a.mu.Unlock()
		a.logger.Error("mount point not found", "id", mountID)
		return errors.New("E101").
			WithDetailf("No element with id %q exists in the document.", mountID).
			WithSuggestion("Add <div id=\"" + mountID + "\"></div> to the page or change mountId")
	}
	a.mountID = mountID
	a.root = root
	a.view = view
	a.mu.Unlock()

	a.store.SetUpdateCallback(a.pass)
	return a.store.RequestUpdate()
}

// Render requests a render pass. Inside a running pass the request is
// collapsed into a follow-up pass.
func (a *App) Render() error {
	if !a.Mounted() {
		return errors.New("E103")
	}
	return a.store.RequestUpdate()
}

// Unmount detaches the app from the store. The host tree is left as is.
func (a *App) Unmount() {
	a.mu.Lock()
	mounted := a.root != nil
	a.root = nil
	a.view = nil
	a.mu.Unlock()

	if mounted {
		a.store.SetUpdateCallback(nil)
	}
}

// OnRender registers a hook that runs after every render pass, once
// deferred work has been flushed.
func (a *App) OnRender(h RenderHook) {
	if h == nil {
		return
	}
	a.mu.Lock()
	a.hooks = append(a.hooks, h)
	a.mu.Unlock()
}

// Mounted reports whether Mount succeeded.
func (a *App) Mounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.root != nil
}

// Root returns the mount point, or nil before Mount.
func (a *App) Root() dom.Element {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.root
}

// Store returns the app's store.
func (a *App) Store() *store.Store {
	return a.store
}

// Document returns the host document.
func (a *App) Document() dom.Document {
	return a.doc
}

// Reconciler returns the app's reconciler.
func (a *App) Reconciler() *reconcile.Reconciler {
	return a.rec
}

// pass is the store's update callback.
func (a *App) pass() error {
	a.mu.Lock()
	root, view, mountID := a.root, a.view, a.mountID
	if root == nil {
		a.mu.Unlock()
		return nil
	}
	a.seq++
	seq := a.seq
	hooks := make([]RenderHook, len(a.hooks))
	copy(hooks, a.hooks)
	a.mu.Unlock()

	start := time.Now()
	var forest []*vdom.VNode
	if view != nil {
		forest = view(a.store)
	}
	_, end := a.tracer.StartPass(a.ctx, mountID, len(forest))
	err := a.rec.Reconcile(root, forest)
	end(err)

	elapsed := time.Since(start)
	a.metrics.ObservePass(elapsed, err)
	if err != nil {
		a.logger.Error("render pass failed", "pass", seq, "error", err)
	} else {
		a.logger.Debug("render pass", "pass", seq, "forest", len(forest), "duration", elapsed)
	}

	a.queue.Flush()

	p := Pass{Seq: seq, ForestSize: len(forest), Duration: elapsed, Root: root, Err: err}
	for _, h := range hooks {
		h(p)
	}
	return err
}
