package reconcile

import (
	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// Mount builds a fresh host subtree for v. It never reuses host nodes.
// Host failures, such as a tag the document rejects, are returned as-is.
func (r *Reconciler) Mount(v *vdom.VNode) (dom.Node, error) {
	if v == nil {
		return nil, ErrNilVNode
	}
	if v.IsText() {
		return r.doc.CreateTextNode(v.Text), nil
	}

	el, err := r.doc.CreateElement(v.Tag)
	if err != nil {
		return nil, err
	}
	for _, name := range v.Attrs.Names() {
		applyAttr(el, v.Attrs[name])
	}
	children := compact(v.Children)
	if r.isKeyedContainer(el) {
		children = r.firstByKey(children)
	}
	for _, c := range children {
		child, err := r.Mount(c)
		if err != nil {
			return nil, err
		}
		el.AppendChild(child)
	}
	return el, nil
}

// applyAttr writes one attribute to a freshly created element.
func applyAttr(el dom.Element, a vdom.Attr) {
	switch a.Kind {
	case vdom.AttrEvent:
		if a.Handler != nil {
			el.AddEventListener(a.EventType(), dom.Listener(a.Handler))
		}
	case vdom.AttrClass:
		if a.Value != "" {
			el.SetClassName(a.Value)
		}
	case vdom.AttrStyle:
		for _, p := range a.StyleProps() {
			el.SetStyle(p, a.Style[p])
		}
	case vdom.AttrFlag:
		if a.On {
			el.SetProperty(a.Name, true)
		}
	default:
		el.SetAttribute(a.Name, a.Value)
	}
}

// mountAll mounts every node of forest, failing on the first host error.
func (r *Reconciler) mountAll(forest []*vdom.VNode) ([]dom.Node, error) {
	nodes := make([]dom.Node, 0, len(forest))
	for _, v := range forest {
		n, err := r.Mount(v)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// compact drops nil entries without touching the caller's slice.
func compact(nodes []*vdom.VNode) []*vdom.VNode {
	for _, n := range nodes {
		if n == nil {
			out := make([]*vdom.VNode, 0, len(nodes))
			for _, m := range nodes {
				if m != nil {
					out = append(out, m)
				}
			}
			return out
		}
	}
	return nodes
}
