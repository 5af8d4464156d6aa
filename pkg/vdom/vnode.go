package vdom

import (
	"sort"
	"strings"

	"github.com/vango-dev/vlite/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <li>, etc.
	KindText                 // Plain text leaf
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// KeyAttr is the reserved attribute carrying a keyed-list item's identity.
const KeyAttr = "data-key"

// EventPrefix marks attribute names that bind event handlers.
const EventPrefix = "on"

// VNode is the virtual tree node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "li")
	Attrs    Attrs    // Attributes keyed by name
	Children []*VNode // Child nodes
	Text     string   // For KindText
}

// IsText reports whether v is a text leaf.
func (v *VNode) IsText() bool {
	return v != nil && v.Kind == KindText
}

// Attr returns the attribute with the given name.
func (v *VNode) Attr(name string) (Attr, bool) {
	if v == nil || v.Attrs == nil {
		return Attr{}, false
	}
	a, ok := v.Attrs[name]
	return a, ok
}

// Class returns the class string, or "" when the node has none.
func (v *VNode) Class() string {
	if a, ok := v.Attr("class"); ok && a.Kind == AttrClass {
		return a.Value
	}
	return ""
}

// HasClass reports whether the class list contains class.
func (v *VNode) HasClass(class string) bool {
	return ClassListHas(v.Class(), class)
}

// Key returns the keyed-list identity, or "" when the node is unkeyed.
func (v *VNode) Key() string {
	if a, ok := v.Attr(KeyAttr); ok && a.Kind == AttrPlain {
		return a.Value
	}
	return ""
}

// Flag returns the value of a boolean flag attribute.
func (v *VNode) Flag(name string) bool {
	a, ok := v.Attr(name)
	return ok && a.Kind == AttrFlag && a.On
}

// TextOnly returns the text of the only child when that child is a text
// leaf.
func (v *VNode) TextOnly() (string, bool) {
	if v == nil || len(v.Children) != 1 || !v.Children[0].IsText() {
		return "", false
	}
	return v.Children[0].Text, true
}

// AttrKind is the attribute variant discriminator.
type AttrKind uint8

const (
	AttrPlain AttrKind = iota // generic host attribute
	AttrClass                 // CSS class list
	AttrStyle                 // per-property inline style
	AttrEvent                 // event binding
	AttrFlag                  // boolean host property (checked, hidden, ...)
)

// String returns the string representation of the AttrKind.
func (k AttrKind) String() string {
	switch k {
	case AttrPlain:
		return "Plain"
	case AttrClass:
		return "Class"
	case AttrStyle:
		return "Style"
	case AttrEvent:
		return "Event"
	case AttrFlag:
		return "Flag"
	default:
		return "Unknown"
	}
}

// EventHandler handles a host event bound through an AttrEvent attribute.
type EventHandler func(dom.Event)

// Attr is a single resolved attribute.
type Attr struct {
	Name    string
	Kind    AttrKind
	Value   string            // AttrPlain, AttrClass
	Style   map[string]string // AttrStyle
	Handler EventHandler      // AttrEvent
	On      bool              // AttrFlag
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Name == ""
}

// EventType returns the host event name for an AttrEvent ("onclick" → "click").
func (a Attr) EventType() string {
	if a.Kind != AttrEvent || len(a.Name) <= len(EventPrefix) {
		return ""
	}
	return strings.ToLower(a.Name[len(EventPrefix):])
}

// StyleProps returns the style property names in sorted order.
func (a Attr) StyleProps() []string {
	props := make([]string, 0, len(a.Style))
	for p := range a.Style {
		props = append(props, p)
	}
	sort.Strings(props)
	return props
}

// Attrs maps attribute names to resolved attributes.
type Attrs map[string]Attr

// Names returns the attribute names in sorted order so host writes are
// deterministic.
func (a Attrs) Names() []string {
	names := make([]string, 0, len(a))
	for n := range a {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ClassListHas reports whether a space-separated class list contains class.
func ClassListHas(list, class string) bool {
	for _, c := range strings.Fields(list) {
		if c == class {
			return true
		}
	}
	return false
}
