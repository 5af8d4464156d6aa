// Package memdom is an in-memory host document.
//
// It follows browser DOM semantics closely enough for the reconciler:
// inserting a node that already has a parent moves it, SetTextContent on an
// element replaces its children, and hierarchy violations panic the way a
// browser throws. Every mutation applied to a node that is connected to the
// document is appended to a mutation log so tests can assert exactly what a
// render pass touched.
package memdom

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/vango-dev/vlite/pkg/dom"
)

// ErrInvalidCharacter is returned by CreateElement for tag names a browser
// would reject.
var ErrInvalidCharacter = errors.New("memdom: invalid character in tag name")

var validTag = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// Document is an in-memory dom.Document rooted at a <body> element.
type Document struct {
	body *Element

	mu        sync.Mutex
	mutations []Mutation
	active    *Element
	focusLog  []*Element
}

var _ dom.Document = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.newElement("body")
	return d
}

// Body returns the document root.
func (d *Document) Body() *Element {
	return d.body
}

func (d *Document) newElement(tag string) *Element {
	return &Element{
		node:  node{doc: d},
		tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
	}
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (dom.Element, error) {
	if !validTag.MatchString(tag) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCharacter, tag)
	}
	return d.newElement(tag), nil
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(text string) dom.Node {
	return &Text{node: node{doc: d}, data: text}
}

// GetElementByID implements dom.Document.
func (d *Document) GetElementByID(id string) dom.Element {
	if el := d.body.findByID(id); el != nil {
		return el
	}
	return nil
}

// NewMountPoint appends an empty <div id="..."> to the body and returns it.
func (d *Document) NewMountPoint(id string) *Element {
	el := d.newElement("div")
	el.attrs["id"] = id
	d.body.AppendChild(el)
	return el
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// FocusCount returns how many times Focus succeeded on a connected element.
func (d *Document) FocusCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.focusLog)
}

// Dispatch delivers ev to target and bubbles it to every ancestor.
func (d *Document) Dispatch(target *Element, ev dom.Event) {
	ev.Target = target
	for el := target; el != nil; el = el.parent {
		for _, fn := range el.listenersFor(ev.Type) {
			fn(ev)
		}
	}
}

// isConnected reports whether n hangs off the document body.
func (d *Document) isConnected(n *node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == d.body {
			return true
		}
	}
	return false
}

func (d *Document) record(target dom.Node, n *node, m Mutation) {
	if n != &d.body.node && !d.isConnected(n) {
		return
	}
	m.Target = target
	d.mu.Lock()
	d.mutations = append(d.mutations, m)
	d.mu.Unlock()
}

// node is the shared part of elements and text nodes.
type node struct {
	doc    *Document
	parent *Element
}

// ParentNode implements dom.Node.
func (n *node) ParentNode() dom.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Text is an in-memory text node.
type Text struct {
	node
	data string
}

var _ dom.Node = (*Text)(nil)

// NodeType implements dom.Node.
func (t *Text) NodeType() dom.NodeType { return dom.TextNode }

// NodeName implements dom.Node.
func (t *Text) NodeName() string { return dom.TextNodeName }

// Data returns the text content.
func (t *Text) Data() string { return t.data }

// TextContent implements dom.Node.
func (t *Text) TextContent() string { return t.data }

// SetTextContent implements dom.Node.
func (t *Text) SetTextContent(text string) {
	t.data = text
	t.doc.record(t, &t.node, Mutation{Op: OpSetText, Value: text})
}

// Element is an in-memory element node.
type Element struct {
	node
	tag       string
	attrs     map[string]string
	class     string
	style     map[string]string
	styleRaw  string // last style attribute, verbatim, until SetStyle runs
	props     map[string]bool
	children  []dom.Node
	listeners map[string][]dom.Listener
}

var _ dom.Element = (*Element)(nil)

// NodeType implements dom.Node.
func (e *Element) NodeType() dom.NodeType { return dom.ElementNode }

// NodeName implements dom.Node.
func (e *Element) NodeName() string { return strings.ToUpper(e.tag) }

// TagName implements dom.Element.
func (e *Element) TagName() string { return strings.ToUpper(e.tag) }

// LocalName returns the lower-case tag.
func (e *Element) LocalName() string { return e.tag }

// TextContent implements dom.Node.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.collectText(&b)
	return b.String()
}

func (e *Element) collectText(b *strings.Builder) {
	for _, c := range e.children {
		switch v := c.(type) {
		case *Text:
			b.WriteString(v.data)
		case *Element:
			v.collectText(b)
		}
	}
}

// SetTextContent implements dom.Node. It replaces every child with a single
// text node, or with nothing when text is empty.
func (e *Element) SetTextContent(text string) {
	for _, c := range e.children {
		detach(c)
	}
	e.children = nil
	if text != "" {
		t := &Text{node: node{doc: e.doc, parent: e}, data: text}
		e.children = []dom.Node{t}
	}
	e.doc.record(e, &e.node, Mutation{Op: OpSetText, Value: text})
}

// GetAttribute implements dom.Element.
func (e *Element) GetAttribute(name string) (string, bool) {
	if name == "class" {
		return e.class, e.class != ""
	}
	if name == "style" {
		s := e.styleString()
		return s, s != ""
	}
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttribute implements dom.Element. The style attribute is parsed into
// individual properties and class is routed to the class name.
func (e *Element) SetAttribute(name, value string) {
	switch name {
	case "class":
		e.class = value
	case "style":
		e.style = parseStyle(value)
		e.styleRaw = value
	default:
		e.attrs[name] = value
	}
	e.doc.record(e, &e.node, Mutation{Op: OpSetAttribute, Name: name, Value: value})
}

// RemoveAttribute implements dom.Element.
func (e *Element) RemoveAttribute(name string) {
	switch name {
	case "class":
		e.class = ""
	case "style":
		e.style = nil
		e.styleRaw = ""
	default:
		delete(e.attrs, name)
	}
	e.doc.record(e, &e.node, Mutation{Op: OpRemoveAttribute, Name: name})
}

// ClassName implements dom.Element.
func (e *Element) ClassName() string { return e.class }

// SetClassName implements dom.Element.
func (e *Element) SetClassName(class string) {
	e.class = class
	e.doc.record(e, &e.node, Mutation{Op: OpSetClass, Value: class})
}

// Style implements dom.Element.
func (e *Element) Style(prop string) string { return e.style[prop] }

// SetStyle implements dom.Element. An empty value removes the property.
func (e *Element) SetStyle(prop, value string) {
	e.styleRaw = ""
	if value == "" {
		delete(e.style, prop)
	} else {
		if e.style == nil {
			e.style = make(map[string]string)
		}
		e.style[prop] = value
	}
	e.doc.record(e, &e.node, Mutation{Op: OpSetStyle, Name: prop, Value: value})
}

// Property implements dom.Element.
func (e *Element) Property(name string) bool { return e.props[name] }

// SetProperty implements dom.Element.
func (e *Element) SetProperty(name string, value bool) {
	if e.props == nil {
		e.props = make(map[string]bool)
	}
	e.props[name] = value
	v := "false"
	if value {
		v = "true"
	}
	e.doc.record(e, &e.node, Mutation{Op: OpSetProperty, Name: name, Value: v})
}

// ChildNodes implements dom.Element. The returned slice is a copy.
func (e *Element) ChildNodes() []dom.Node {
	out := make([]dom.Node, len(e.children))
	copy(out, e.children)
	return out
}

// AppendChild implements dom.Element.
func (e *Element) AppendChild(child dom.Node) {
	e.InsertBefore(child, nil)
}

// InsertBefore implements dom.Element.
func (e *Element) InsertBefore(child, ref dom.Node) {
	cn := e.adopt(child)
	if ref != nil && child == ref {
		return
	}
	refIdx := len(e.children)
	if ref != nil {
		refIdx = e.indexOf(ref)
		if refIdx < 0 {
			panic("memdom: NotFoundError: reference node is not a child of this element")
		}
	}

	if cn.parent != nil {
		old := cn.parent
		idx := old.indexOf(child)
		old.children = append(old.children[:idx], old.children[idx+1:]...)
		if old == e && idx < refIdx {
			refIdx--
		}
	}

	e.children = append(e.children, nil)
	copy(e.children[refIdx+1:], e.children[refIdx:])
	e.children[refIdx] = child
	cn.parent = e

	op := OpInsertBefore
	if ref == nil {
		op = OpAppendChild
	}
	e.doc.record(e, &e.node, Mutation{Op: op, Child: child})
}

// ReplaceChild implements dom.Element.
func (e *Element) ReplaceChild(child, old dom.Node) {
	if child == old {
		return
	}
	cn := e.adopt(child)
	idx := e.indexOf(old)
	if idx < 0 {
		panic("memdom: NotFoundError: node to replace is not a child of this element")
	}
	if cn.parent != nil {
		cn.parent.removeAt(cn.parent.indexOf(child))
		idx = e.indexOf(old)
	}
	e.children[idx] = child
	cn.parent = e
	detach(old)
	e.doc.record(e, &e.node, Mutation{Op: OpReplaceChild, Child: child, Old: old})
}

// RemoveChild implements dom.Element.
func (e *Element) RemoveChild(child dom.Node) {
	idx := e.indexOf(child)
	if idx < 0 {
		panic("memdom: NotFoundError: node is not a child of this element")
	}
	e.removeAt(idx)
	detach(child)
	e.doc.record(e, &e.node, Mutation{Op: OpRemoveChild, Child: child})
}

// AddEventListener implements dom.Element.
func (e *Element) AddEventListener(eventType string, fn dom.Listener) {
	if fn == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]dom.Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], fn)
}

// ListenerCount returns the number of listeners bound for eventType.
func (e *Element) ListenerCount(eventType string) int {
	return len(e.listeners[eventType])
}

func (e *Element) listenersFor(eventType string) []dom.Listener {
	ls := e.listeners[eventType]
	out := make([]dom.Listener, len(ls))
	copy(out, ls)
	return out
}

// Focus implements dom.Element. Detached elements cannot take focus.
func (e *Element) Focus() {
	if !e.doc.isConnected(&e.node) {
		return
	}
	e.doc.mu.Lock()
	e.doc.active = e
	e.doc.focusLog = append(e.doc.focusLog, e)
	e.doc.mu.Unlock()
}

// Attribute is a serialised attribute.
type Attribute struct {
	Name  string
	Value string
	Bool  bool // rendered without a value
}

// Attributes returns every attribute, class, style and true property,
// sorted by name.
func (e *Element) Attributes() []Attribute {
	out := make([]Attribute, 0, len(e.attrs)+3)
	for k, v := range e.attrs {
		out = append(out, Attribute{Name: k, Value: v})
	}
	if e.class != "" {
		out = append(out, Attribute{Name: "class", Value: e.class})
	}
	if s := e.styleString(); s != "" {
		out = append(out, Attribute{Name: "style", Value: s})
	}
	for k, v := range e.props {
		if !v {
			continue
		}
		if _, dup := e.attrs[k]; dup {
			continue
		}
		out = append(out, Attribute{Name: k, Bool: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// QuerySelector returns the first descendant with the given lower-case tag
// and, when class is non-empty, carrying that class.
func (e *Element) QuerySelector(tag, class string) *Element {
	for _, c := range e.children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if (tag == "" || el.tag == tag) && (class == "" || hasClass(el.class, class)) {
			return el
		}
		if found := el.QuerySelector(tag, class); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) findByID(id string) *Element {
	if e.attrs["id"] == id {
		return e
	}
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			if found := el.findByID(id); found != nil {
				return found
			}
		}
	}
	return nil
}

func (e *Element) indexOf(n dom.Node) int {
	for i, c := range e.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (e *Element) removeAt(idx int) {
	e.children = append(e.children[:idx], e.children[idx+1:]...)
}

// adopt validates that child belongs to this document and is not an
// ancestor of e.
func (e *Element) adopt(child dom.Node) *node {
	var cn *node
	switch v := child.(type) {
	case *Element:
		cn = &v.node
		for p := e; p != nil; p = p.parent {
			if p == v {
				panic("memdom: HierarchyRequestError: node is an ancestor of the parent")
			}
		}
	case *Text:
		cn = &v.node
	default:
		panic(fmt.Sprintf("memdom: HierarchyRequestError: foreign node %T", child))
	}
	if cn.doc != e.doc {
		panic("memdom: WrongDocumentError: node belongs to another document")
	}
	return cn
}

func (e *Element) styleString() string {
	if e.styleRaw != "" {
		return e.styleRaw
	}
	if len(e.style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.style))
	for k := range e.style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.style[k]
	}
	return strings.Join(parts, "; ")
}

func detach(n dom.Node) {
	switch v := n.(type) {
	case *Element:
		v.parent = nil
	case *Text:
		v.parent = nil
	}
}

func parseStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}

func hasClass(list, class string) bool {
	for _, c := range strings.Fields(list) {
		if c == class {
			return true
		}
	}
	return false
}
