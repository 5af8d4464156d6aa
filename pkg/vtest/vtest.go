package vtest

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vlite/pkg/app"
	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/dom/memdom"
	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/store"
	"github.com/vango-dev/vlite/pkg/telemetry"
)

// DefaultMountID is the id of the mount point the harness creates.
const DefaultMountID = "app"

// Harness is a mounted app on an in-memory document.
type Harness struct {
	t       testing.TB
	mountID string

	Doc      *memdom.Document
	Store    *store.Store
	App      *app.App
	Metrics  *telemetry.Metrics
	Registry *prometheus.Registry
}

// Config configures a Harness.
type Config struct {
	MountID   string
	State     store.State
	StoreOpts []store.Option
	AppOpts   []app.Option
	SkipMount bool
}

// Option configures a Harness.
type Option func(*Config)

// WithState sets the initial state.
func WithState(s store.State) Option {
	return func(c *Config) {
		c.State = s
	}
}

// WithMountID changes the mount point id.
func WithMountID(id string) Option {
	return func(c *Config) {
		c.MountID = id
	}
}

// WithStoreOptions passes options through to store.New.
func WithStoreOptions(opts ...store.Option) Option {
	return func(c *Config) {
		c.StoreOpts = append(c.StoreOpts, opts...)
	}
}

// WithAppOptions passes options through to app.New.
func WithAppOptions(opts ...app.Option) Option {
	return func(c *Config) {
		c.AppOpts = append(c.AppOpts, opts...)
	}
}

// Unmounted leaves the app unmounted; call Mount explicitly.
func Unmounted() Option {
	return func(c *Config) {
		c.SkipMount = true
	}
}

// New builds a harness and mounts view. Mount failures fail the test.
func New(t testing.TB, view app.ViewFunc, opts ...Option) *Harness {
	t.Helper()

	config := Config{MountID: DefaultMountID}
	for _, opt := range opts {
		opt(&config)
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(telemetry.WithRegistry(reg))

	doc := memdom.NewDocument()
	doc.NewMountPoint(config.MountID)

	storeOpts := []store.Option{store.WithInitialState(config.State), store.WithMetrics(metrics)}
	s := store.New(append(storeOpts, config.StoreOpts...)...)

	appOpts := []app.Option{app.WithMetrics(metrics)}
	a := app.New(doc, s, append(appOpts, config.AppOpts...)...)

	h := &Harness{
		t:        t,
		mountID:  config.MountID,
		Doc:      doc,
		Store:    s,
		App:      a,
		Metrics:  metrics,
		Registry: reg,
	}
	if !config.SkipMount {
		if err := a.Mount(config.MountID, view); err != nil {
			t.Fatalf("vtest: mount: %v", err)
		}
	}
	return h
}

// Mount mounts view on the harness mount point. Use it with Unmounted.
func (h *Harness) Mount(view app.ViewFunc) error {
	return h.App.Mount(h.mountID, view)
}

// Root returns the mount point.
func (h *Harness) Root() *memdom.Element {
	h.t.Helper()
	root, ok := h.Doc.GetElementByID(h.mountID).(*memdom.Element)
	if !ok {
		h.t.Fatalf("vtest: no #%s in document", h.mountID)
	}
	return root
}

// SetState merges partial and fails the test on a render error.
func (h *Harness) SetState(partial store.State) store.State {
	h.t.Helper()
	s, err := h.Store.SetState(partial)
	if err != nil {
		h.t.Fatalf("vtest: SetState: %v", err)
	}
	return s
}

// HTML returns the inner HTML of the mount point.
func (h *Harness) HTML() string {
	h.t.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).RenderChildrenToString(h.Root())
	if err != nil {
		h.t.Fatalf("vtest: render: %v", err)
	}
	return html
}

// Find returns the first element under the mount point with the given tag
// and class. Either may be empty. Fails the test when nothing matches.
func (h *Harness) Find(tag, class string) *memdom.Element {
	h.t.Helper()
	el := h.Root().QuerySelector(tag, class)
	if el == nil {
		h.t.Fatalf("vtest: no <%s class=%q> under #%s", tag, class, h.mountID)
	}
	return el
}

// Query is Find without the failure; it returns nil when nothing matches.
func (h *Harness) Query(tag, class string) *memdom.Element {
	return h.Root().QuerySelector(tag, class)
}

// Mark returns the current mutation log position.
func (h *Harness) Mark() int {
	return h.Doc.MutationCount()
}

// Since returns the mutations recorded after mark.
func (h *Harness) Since(mark int) []memdom.Mutation {
	return h.Doc.MutationsSince(mark)
}

// Click dispatches a click on el.
func (h *Harness) Click(el *memdom.Element) {
	h.Doc.Dispatch(el, dom.Event{Type: "click"})
}

// DblClick dispatches a dblclick on el.
func (h *Harness) DblClick(el *memdom.Element) {
	h.Doc.Dispatch(el, dom.Event{Type: "dblclick"})
}

// Check dispatches a change event carrying checked.
func (h *Harness) Check(el *memdom.Element, checked bool) {
	h.Doc.Dispatch(el, dom.Event{Type: "change", Checked: checked})
}

// Type dispatches an input event carrying value.
func (h *Harness) Type(el *memdom.Element, value string) {
	h.Doc.Dispatch(el, dom.Event{Type: "input", Value: value})
}

// KeyDown dispatches a keydown carrying key and the current value.
func (h *Harness) KeyDown(el *memdom.Element, key, value string) {
	h.Doc.Dispatch(el, dom.Event{Type: "keydown", Key: key, Value: value})
}

// Blur dispatches a blur event carrying value.
func (h *Harness) Blur(el *memdom.Element, value string) {
	h.Doc.Dispatch(el, dom.Event{Type: "blur", Value: value})
}

// ExpectContains fails if the mount point's HTML does not contain want.
func (h *Harness) ExpectContains(want string) {
	h.t.Helper()
	if html := h.HTML(); !strings.Contains(html, want) {
		h.t.Errorf("expected HTML to contain %q, got:\n%s", want, html)
	}
}

// ExpectNotContains fails if the mount point's HTML contains unwanted.
func (h *Harness) ExpectNotContains(unwanted string) {
	h.t.Helper()
	if html := h.HTML(); strings.Contains(html, unwanted) {
		h.t.Errorf("expected HTML to not contain %q, got:\n%s", unwanted, html)
	}
}
