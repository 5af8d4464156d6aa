package reconcile

import (
	"strings"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/telemetry"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// PatchInPlace updates host to match v without replacing host itself.
// Callers are expected to have checked Compatible first. If they have not
// and host is attached, host is swapped for a fresh mount of v.
func (r *Reconciler) PatchInPlace(host dom.Node, v *vdom.VNode) error {
	if v == nil {
		return ErrNilVNode
	}

	if v.IsText() {
		if host.NodeType() != dom.TextNode {
			return r.swap(host, v)
		}
		if host.TextContent() != v.Text {
			host.SetTextContent(v.Text)
		}
		return nil
	}

	el, ok := dom.AsElement(host)
	if !ok {
		return r.swap(host, v)
	}

	r.metrics.RecordPatch()
	if r.isKeyedContainer(el) {
		return r.patchKeyed(el, v)
	}

	patchAttrs(el, v.Attrs)

	if text, ok := v.TextOnly(); ok {
		if !hostTextOnly(el) || el.TextContent() != text {
			el.SetTextContent(text)
		}
		return nil
	}

	return r.patchChildren(el, compact(v.Children))
}

// patchAttrs writes attributes whose host value differs. Events are never
// rebound and attributes missing from attrs are left on the host.
func patchAttrs(el dom.Element, attrs vdom.Attrs) {
	for _, name := range attrs.Names() {
		a := attrs[name]
		switch a.Kind {
		case vdom.AttrEvent:
			continue
		case vdom.AttrClass:
			if el.ClassName() != a.Value {
				el.SetClassName(a.Value)
			}
		case vdom.AttrStyle:
			for _, p := range a.StyleProps() {
				if el.Style(p) != a.Style[p] {
					el.SetStyle(p, a.Style[p])
				}
			}
		case vdom.AttrFlag:
			if el.Property(a.Name) != a.On {
				el.SetProperty(a.Name, a.On)
			}
		default:
			cur, ok := el.GetAttribute(a.Name)
			if cur != a.Value || (!ok && a.Name != "style") {
				el.SetAttribute(a.Name, a.Value)
			}
		}
	}
}

// patchChildren patches el's children against next.
func (r *Reconciler) patchChildren(el dom.Element, next []*vdom.VNode) error {
	existing := el.ChildNodes()
	if len(existing) != len(next) {
		r.logger.Debug("children rebuild",
			"tag", strings.ToLower(el.TagName()),
			"existing", len(existing),
			"next", len(next))
		r.metrics.RecordRebuild(telemetry.ScopeChildren)
		return r.rebuild(el, existing, next)
	}

	for i, v := range next {
		if Compatible(existing[i], v) {
			if err := r.PatchInPlace(existing[i], v); err != nil {
				return err
			}
			continue
		}
		n, err := r.Mount(v)
		if err != nil {
			return err
		}
		r.metrics.RecordRebuild(telemetry.ScopeChild)
		el.ReplaceChild(n, existing[i])
	}
	return nil
}

// swap replaces host in its parent with a fresh mount of v.
func (r *Reconciler) swap(host dom.Node, v *vdom.VNode) error {
	parent := host.ParentNode()
	if parent == nil {
		return ErrIncompatible
	}
	n, err := r.Mount(v)
	if err != nil {
		return err
	}
	r.metrics.RecordRebuild(telemetry.ScopeChild)
	parent.ReplaceChild(n, host)
	return nil
}

func (r *Reconciler) isKeyedContainer(el dom.Element) bool {
	return strings.EqualFold(el.TagName(), r.config.KeyedTag) &&
		vdom.ClassListHas(el.ClassName(), r.config.KeyedClass)
}

// hostTextOnly reports whether el holds nothing but at most one text node.
func hostTextOnly(el dom.Element) bool {
	children := el.ChildNodes()
	switch len(children) {
	case 0:
		return true
	case 1:
		return children[0].NodeType() == dom.TextNode
	}
	return false
}
