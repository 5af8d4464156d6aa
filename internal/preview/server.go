package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vlite/internal/errors"
	"github.com/vango-dev/vlite/internal/todo"
	"github.com/vango-dev/vlite/pkg/app"
	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/router"
)

// Config configures the preview server.
type Config struct {
	Addr        string
	Title       string
	MountID     string
	MetricsPath string
	Gatherer    prometheus.Gatherer
	Logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Config)

// WithAddr sets the listen address for Start.
func WithAddr(addr string) Option {
	return func(c *Config) {
		c.Addr = addr
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithMetrics serves g on path. An empty path disables the endpoint.
func WithMetrics(path string, g prometheus.Gatherer) Option {
	return func(c *Config) {
		c.MetricsPath = path
		c.Gatherer = g
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// State is the JSON shape of GET /state.
type State struct {
	Todos   []todo.Item `json:"todos"`
	NextID  int         `json:"nextId"`
	Editing int         `json:"editing"`
	Filter  todo.Filter `json:"filter"`
	Route   string      `json:"route"`
}

// Server is the preview HTTP server.
type Server struct {
	config   Config
	app      *app.App
	model    *todo.Model
	router   *router.Router
	renderer *render.Renderer
	hub      *Hub
	handler  http.Handler
	logger   *slog.Logger

	// mu serialises actions and snapshots; the host tree is not safe for
	// concurrent readers while a pass is running.
	mu  sync.Mutex
	seq int
}

// New creates a server for a mounted app. Render passes are pushed to
// websocket clients from now on.
func New(a *app.App, m *todo.Model, r *router.Router, opts ...Option) *Server {
	config := Config{
		Addr:        "localhost:4000",
		MetricsPath: "/metrics",
		Gatherer:    prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &Server{
		config:   config,
		app:      a,
		model:    m,
		router:   r,
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   config.Logger,
	}
	s.hub = NewHub(config.Logger, s.snapshot)
	s.handler = s.routes()

	a.OnRender(func(p app.Pass) {
		// Runs inside the pass, with mu already held by the action.
		s.seq = p.Seq
		if p.Err != nil {
			s.hub.Broadcast(Message{Type: MessageError, Seq: p.Seq, Error: p.Err.Error()})
			return
		}
		s.hub.Broadcast(s.renderMessage())
	})
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/state", s.handleState)
	r.Post("/navigate", s.handleNavigate)
	r.Get("/ws", s.hub.ServeHTTP)

	r.Route("/todos", func(r chi.Router) {
		r.Post("/", s.handleAdd)
		r.Post("/toggle-all", s.handleToggleAll)
		r.Post("/clear-completed", func(w http.ResponseWriter, _ *http.Request) {
			s.act(w, "clear-completed", s.model.ClearCompleted)
		})
		r.Post("/cancel", func(w http.ResponseWriter, _ *http.Request) {
			s.act(w, "cancel", s.model.CancelEdit)
		})
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/toggle", s.withID("toggle", s.model.Toggle))
			r.Post("/edit", s.withID("edit", s.model.StartEdit))
			r.Post("/commit", s.handleCommit)
			r.Delete("/", s.withID("destroy", s.model.Destroy))
		})
	})

	if s.config.MetricsPath != "" && s.config.Gatherer != nil {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("preview request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// act runs an action under the server lock and answers 204.
func (s *Server) act(w http.ResponseWriter, name string, fn func() error) {
	s.mu.Lock()
	err := fn()
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("preview action failed", "action", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) withID(name string, fn func(id int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		s.act(w, name, func() error { return fn(id) })
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid todo id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	s.act(w, "add", func() error { return s.model.Add(title) })
}

func (s *Server) handleToggleAll(w http.ResponseWriter, r *http.Request) {
	completed, err := strconv.ParseBool(r.FormValue("completed"))
	if err != nil {
		http.Error(w, "completed must be a boolean", http.StatusBadRequest)
		return
	}
	s.act(w, "toggle-all", func() error { return s.model.ToggleAll(completed) })
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	title := r.FormValue("title")
	s.act(w, "commit", func() error { return s.model.CommitEdit(id, title) })
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	hash := r.FormValue("hash")
	if !s.router.Match(hash) {
		err := errors.New("E301").WithDetailf("No route for %q.", hash)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.act(w, "navigate", func() error {
		s.router.Navigate(hash)
		return nil
	})
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	s.mu.Lock()
	err := s.renderer.RenderPage(&buf, render.PageData{
		Title:      s.config.Title,
		Body:       s.app.Root(),
		LiveReload: "/ws",
		MountID:    s.mountID(),
	})
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("preview page failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	msg := s.snapshot()
	if msg.Type == MessageError {
		http.Error(w, msg.Error, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(msg.HTML))
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	st := s.model.Store().GetState()
	route := s.router.Current()
	s.mu.Unlock()

	out := State{
		Todos:   todo.Items(st),
		NextID:  todo.NextID(st),
		Editing: todo.Editing(st),
		Filter:  todo.CurrentFilter(st),
		Route:   route,
	}
	if out.Todos == nil {
		out.Todos = []todo.Item{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// snapshot renders the mount point under the server lock.
func (s *Server) snapshot() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderMessage()
}

func (s *Server) renderMessage() Message {
	root := s.app.Root()
	if root == nil {
		return Message{Type: MessageError, Error: errors.New("E103").Error()}
	}
	html, err := s.renderer.RenderChildrenToString(root)
	if err != nil {
		return Message{Type: MessageError, Seq: s.seq, Error: err.Error()}
	}
	return Message{Type: MessageRender, Seq: s.seq, HTML: html}
}

func (s *Server) mountID() string {
	if root := s.app.Root(); root != nil {
		if id, ok := root.GetAttribute("id"); ok {
			return id
		}
	}
	return ""
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.New("E302").WithDetailf("Could not listen on %s.", s.config.Addr).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("preview server running", "url", "http://"+ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		s.hub.Close()
		if err != nil {
			return errors.New("E302").Wrap(err)
		}
		return nil
	}
}
