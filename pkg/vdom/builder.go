package vdom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/vlite/pkg/dom"
)

// H builds an element VNode. Nested child sequences are flattened, nil
// entries are dropped, strings and numbers become text leaves, and a nil
// attrs defaults to an empty mapping. Tag names are not validated; the host
// rejects bad ones at mount time.
func H(tag string, attrs Attrs, children ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    make(Attrs, len(attrs)),
		Children: make([]*VNode, 0, len(children)),
	}
	for name, a := range attrs {
		if a.IsEmpty() {
			a.Name = name
		}
		node.Attrs[a.Name] = a
	}
	for _, child := range children {
		node.Children = appendChild(node.Children, child)
	}
	return node
}

// createElement backs the element factories. Arguments can be: nil, Attr,
// Attrs, []Attr, *VNode, []*VNode, []any, string, numbers.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    make(Attrs),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue
		case Attr:
			if !v.IsEmpty() {
				node.Attrs[v.Name] = v
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Attrs[a.Name] = a
				}
			}
		case Attrs:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Attrs[a.Name] = a
				}
			}
		default:
			node.Children = appendChild(node.Children, arg)
		}
	}

	return node
}

// appendChild flattens one child argument into dst.
func appendChild(dst []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case nil:
		return dst
	case *VNode:
		if v != nil {
			dst = append(dst, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				dst = append(dst, c)
			}
		}
	case []any:
		for _, c := range v {
			dst = appendChild(dst, c)
		}
	case []string:
		for _, s := range v {
			dst = append(dst, Text(s))
		}
	case string:
		dst = append(dst, Text(v))
	case fmt.Stringer:
		dst = append(dst, Text(v.String()))
	default:
		if s, ok := numberString(v); ok {
			dst = append(dst, Text(s))
		}
	}
	return dst
}

func numberString(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

// Props resolves a loose name → value mapping into Attrs, classifying each
// entry once:
//   - "class" and "className" become AttrClass (string or []string)
//   - names with the "on" prefix become AttrEvent when the value is a
//     function; any other value is dropped
//   - "style" with a map value becomes AttrStyle; a string stays AttrPlain
//   - bool values become AttrFlag
//   - nil values are dropped; anything else is formatted as AttrPlain
func Props(props map[string]any) Attrs {
	out := make(Attrs, len(props))
	for name, value := range props {
		if a := Classify(name, value); !a.IsEmpty() {
			out[a.Name] = a
		}
	}
	return out
}

// Classify resolves a single attribute. It returns an empty Attr for
// values that cannot be bound.
func Classify(name string, value any) Attr {
	if name == "" || value == nil {
		return Attr{}
	}

	if name == "class" || name == "className" {
		switch v := value.(type) {
		case string:
			return ClassAttr(v)
		case []string:
			return ClassAttr(v...)
		default:
			return ClassAttr(fmt.Sprint(v))
		}
	}

	if isEventName(name) {
		switch h := value.(type) {
		case EventHandler:
			return On(name[len(EventPrefix):], h)
		case func(dom.Event):
			return On(name[len(EventPrefix):], h)
		case func():
			return On(name[len(EventPrefix):], func(dom.Event) { h() })
		default:
			return Attr{}
		}
	}

	switch v := value.(type) {
	case map[string]string:
		if name == "style" {
			return StyleMap(v)
		}
		return Attr{}
	case bool:
		return Flag(name, v)
	case string:
		return Attr{Name: name, Kind: AttrPlain, Value: v}
	}
	if s, ok := numberString(value); ok {
		return Attr{Name: name, Kind: AttrPlain, Value: s}
	}
	return Attr{Name: name, Kind: AttrPlain, Value: fmt.Sprint(value)}
}

// isEventName returns true if the key binds an event handler.
// Case-insensitive so onclick, onClick and ONCLICK all match.
func isEventName(key string) bool {
	return len(key) > len(EventPrefix) && strings.EqualFold(key[:len(EventPrefix)], EventPrefix)
}
