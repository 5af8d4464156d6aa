// Package vdom provides the virtual tree model for vlite.
//
// A VNode is an immutable description of one UI node: a tag, an attribute
// mapping and an ordered child list. Render functions build a brand-new
// forest on every pass; the reconciler compares it structurally against the
// host tree on demand.
//
// # Core Types
//
// VNode is either an element or a text leaf. Attr is a closed tagged
// variant whose kind (plain, class, style, event, flag) is resolved once
// when the attribute is built, never re-inspected by name at patch time.
//
// # Building Trees
//
// H is the primitive builder:
//
//	H("ul", Attrs{"class": ClassAttr("todo-list")},
//	    H("li", nil, "milk"),
//	    []*VNode{H("li", nil, "eggs")},
//	)
//
// Element factories accept attributes and children in any order:
//
//	Li(Class("completed"), Key(todo.ID),
//	    Label(OnDblClick(edit), todo.Title),
//	)
//
// # Keys
//
// Items of a keyed list carry the reserved KeyAttr attribute. The value is
// written to the host node so the keyed-list patcher can read it back from
// existing children.
package vdom
