package reconcile

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/telemetry"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// ErrNilVNode is returned when Mount is handed a nil node.
var ErrNilVNode = errors.New("reconcile: nil vnode")

// ErrIncompatible is returned when PatchInPlace cannot patch a detached
// host node whose kind differs from the VNode's.
var ErrIncompatible = errors.New("reconcile: incompatible detached node")

// Reconciler brings host subtrees in line with VNode forests.
// It is not safe for concurrent use; callers serialize render passes.
type Reconciler struct {
	doc     dom.Document
	config  Config
	sched   dom.Scheduler
	local   *dom.TaskQueue
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New creates a Reconciler writing to doc.
func New(doc dom.Document, opts ...Option) *Reconciler {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	r := &Reconciler{
		doc:     doc,
		config:  config,
		sched:   config.Scheduler,
		metrics: config.Metrics,
		logger:  config.Logger,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.sched == nil {
		r.local = dom.NewTaskQueue()
		r.sched = r.local
	}
	return r
}

// Config returns the effective configuration.
func (r *Reconciler) Config() Config {
	return r.config
}

// Reconcile makes container's children match forest.
func (r *Reconciler) Reconcile(container dom.Element, forest []*vdom.VNode) error {
	if r.local != nil {
		defer r.local.Flush()
	}

	forest = compact(forest)
	existing := container.ChildNodes()

	if len(existing) != len(forest) {
		r.logger.Debug("forest rebuild",
			"reason", "count",
			"existing", len(existing),
			"next", len(forest))
		r.metrics.RecordRebuild(telemetry.ScopeForest)
		return r.rebuild(container, existing, forest)
	}
	for i, v := range forest {
		if !Compatible(existing[i], v) {
			r.logger.Debug("forest rebuild",
				"reason", "incompatible",
				"index", i,
				"tag", v.Tag)
			r.metrics.RecordRebuild(telemetry.ScopeForest)
			return r.rebuild(container, existing, forest)
		}
	}

	for i, v := range forest {
		if err := r.PatchInPlace(existing[i], v); err != nil {
			return err
		}
	}
	return nil
}

// rebuild replaces every child of parent with freshly mounted nodes. The
// new nodes are built before the old ones are removed, so a host failure
// leaves parent untouched.
func (r *Reconciler) rebuild(parent dom.Element, existing []dom.Node, forest []*vdom.VNode) error {
	nodes, err := r.mountAll(forest)
	if err != nil {
		return err
	}
	for _, n := range existing {
		parent.RemoveChild(n)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

// Compatible reports whether host can be patched in place to match v:
// both present, same tag ignoring case (text compares as "#text"), and
// identical class strings.
func Compatible(host dom.Node, v *vdom.VNode) bool {
	if host == nil || v == nil {
		return false
	}
	if v.IsText() {
		return host.NodeType() == dom.TextNode
	}
	el, ok := dom.AsElement(host)
	if !ok {
		return false
	}
	return strings.EqualFold(el.TagName(), v.Tag) && el.ClassName() == v.Class()
}
