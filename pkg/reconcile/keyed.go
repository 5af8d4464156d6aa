package reconcile

import (
	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/telemetry"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// patchKeyed reconciles a keyed-list container's items by key.
func (r *Reconciler) patchKeyed(list dom.Element, v *vdom.VNode) error {
	existing := list.ChildNodes()
	existingByKey := make(map[string]dom.Element, len(existing))
	for _, c := range existing {
		key, el := hostKey(c)
		if key == "" {
			continue
		}
		if _, dup := existingByKey[key]; !dup {
			existingByKey[key] = el
		}
	}

	items := r.firstByKey(compact(v.Children))
	newByKey := make(map[string]*vdom.VNode, len(items))
	for _, item := range items {
		if key := item.Key(); key != "" {
			newByKey[key] = item
		}
	}

	// Removal. Host items repeating an earlier key go too.
	for _, c := range existing {
		key, el := hostKey(c)
		if key == "" {
			continue
		}
		if existingByKey[key] != el {
			list.RemoveChild(el)
			r.metrics.RecordKeyed(telemetry.KeyedRemove)
			continue
		}
		if _, keep := newByKey[key]; !keep {
			list.RemoveChild(el)
			delete(existingByKey, key)
			r.metrics.RecordKeyed(telemetry.KeyedRemove)
		}
	}

	// Upsert and reorder.
	pos := 0
	for _, item := range items {
		key := item.Key()
		if key == "" {
			continue
		}

		var node dom.Node
		if el, ok := existingByKey[key]; ok {
			n, err := r.updateItem(list, el, item)
			if err != nil {
				return err
			}
			node = n
		} else {
			n, err := r.Mount(item)
			if err != nil {
				return err
			}
			list.InsertBefore(n, dom.ChildAt(list, pos))
			r.metrics.RecordKeyed(telemetry.KeyedInsert)
			pos++
			continue
		}

		if ref := dom.ChildAt(list, pos); ref != node {
			list.InsertBefore(node, ref)
			r.metrics.RecordKeyed(telemetry.KeyedMove)
		}
		pos++
	}
	return nil
}

// firstByKey drops items whose key repeats an earlier item's key. Unkeyed
// items are kept.
func (r *Reconciler) firstByKey(items []*vdom.VNode) []*vdom.VNode {
	seen := make(map[string]struct{}, len(items))
	out := make([]*vdom.VNode, 0, len(items))
	for _, item := range items {
		if key := item.Key(); key != "" {
			if _, dup := seen[key]; dup {
				r.logger.Warn("duplicate key in keyed list, later item ignored", "key", key)
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}

// updateItem patches an existing item in place, or rebuilds it when its
// state class flips. It returns the host node now representing the item.
func (r *Reconciler) updateItem(list, el dom.Element, item *vdom.VNode) (dom.Node, error) {
	state := r.config.StateClass
	if state == "" || vdom.ClassListHas(el.ClassName(), state) == item.HasClass(state) {
		if err := r.PatchInPlace(el, item); err != nil {
			return nil, err
		}
		return el, nil
	}

	n, err := r.Mount(item)
	if err != nil {
		return nil, err
	}
	list.ReplaceChild(n, el)
	r.metrics.RecordRebuild(telemetry.ScopeItem)

	if item.HasClass(state) {
		if target := findFlagged(n, r.config.FocusFlag); target != nil {
			r.sched.Defer(target.Focus)
		}
	}
	return n, nil
}

// hostKey returns the key of a host list child, or "" when it has none.
func hostKey(n dom.Node) (string, dom.Element) {
	el, ok := dom.AsElement(n)
	if !ok {
		return "", nil
	}
	key, _ := el.GetAttribute(vdom.KeyAttr)
	return key, el
}

// findFlagged returns the first element in n's subtree, in document order,
// whose flag property is set.
func findFlagged(n dom.Node, flag string) dom.Element {
	el, ok := dom.AsElement(n)
	if !ok || flag == "" {
		return nil
	}
	if el.Property(flag) {
		return el
	}
	for _, c := range el.ChildNodes() {
		if found := findFlagged(c, flag); found != nil {
			return found
		}
	}
	return nil
}
