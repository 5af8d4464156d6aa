package preview

import (
	"log/slog"

	"github.com/vango-dev/vlite/internal/config"
	"github.com/vango-dev/vlite/internal/todo"
	"github.com/vango-dev/vlite/pkg/app"
	"github.com/vango-dev/vlite/pkg/dom/memdom"
	"github.com/vango-dev/vlite/pkg/reconcile"
	"github.com/vango-dev/vlite/pkg/router"
	"github.com/vango-dev/vlite/pkg/store"
	"github.com/vango-dev/vlite/pkg/telemetry"
)

// Session is a mounted todo app on an in-memory document.
type Session struct {
	Doc    *memdom.Document
	Store  *store.Store
	App    *app.App
	Model  *todo.Model
	Router *router.Router
}

// SessionOptions carries the ambient collaborators of a Session.
type SessionOptions struct {
	Logger  *slog.Logger
	Metrics *telemetry.Metrics
	Tracer  *telemetry.Tracer
}

// NewSession builds the document, store, app, todo model and router
// described by cfg, mounts the view and navigates to the default route.
func NewSession(cfg *config.Config, opts SessionOptions) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc := memdom.NewDocument()
	doc.NewMountPoint(cfg.MountID)

	s := store.New(
		store.WithInitialState(todo.Initial(cfg.Todos...)),
		store.WithMaxPasses(cfg.Render.MaxPasses),
		store.WithMetrics(opts.Metrics),
		store.WithLogger(logger),
	)
	a := app.New(doc, s,
		app.WithLogger(logger),
		app.WithMetrics(opts.Metrics),
		app.WithTracer(opts.Tracer),
		app.WithReconcileOptions(
			reconcile.WithKeyedContainer(cfg.Render.KeyedTag, cfg.Render.KeyedClass),
			reconcile.WithStateClass(cfg.Render.StateClass),
		),
	)
	m := todo.New(s,
		todo.WithKeyedList(cfg.Render.KeyedTag, cfg.Render.KeyedClass),
		todo.WithEditingClass(cfg.Render.StateClass),
		todo.WithLogger(logger),
	)

	if err := a.Mount(cfg.MountID, m.View); err != nil {
		return nil, err
	}

	r := router.New(router.WithLogger(logger))
	m.Routes(r)
	r.Bind(doc.Body())
	r.Init("#/")

	return &Session{Doc: doc, Store: s, App: a, Model: m, Router: r}, nil
}
