package dom

// NodeType is the host node discriminator.
type NodeType uint8

const (
	ElementNode NodeType = 1
	TextNode    NodeType = 3
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// TextNodeName is the NodeName reported by text nodes.
const TextNodeName = "#text"

// Node is a host tree node. Implementations compare by identity.
type Node interface {
	NodeType() NodeType

	// NodeName is the upper-cased tag for elements and "#text" for text nodes.
	NodeName() string

	// ParentNode returns nil for detached nodes and the document root.
	ParentNode() Element

	TextContent() string
	SetTextContent(text string)
}

// Element is a host element node.
type Element interface {
	Node

	TagName() string

	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	ClassName() string
	SetClassName(class string)

	Style(prop string) string
	SetStyle(prop, value string)

	// Property reads a live boolean property such as checked or hidden.
	Property(name string) bool
	SetProperty(name string, value bool)

	ChildNodes() []Node
	AppendChild(child Node)

	// InsertBefore moves or inserts child before ref. A nil ref appends.
	InsertBefore(child, ref Node)
	ReplaceChild(child, old Node)
	RemoveChild(child Node)

	AddEventListener(eventType string, fn Listener)
	Focus()
}

// Document creates nodes and resolves mount points.
type Document interface {
	// CreateElement fails when the host rejects the tag name.
	CreateElement(tag string) (Element, error)
	CreateTextNode(text string) Node

	// GetElementByID returns nil when no element carries the id.
	GetElementByID(id string) Element
}

// Event is delivered to listeners registered with AddEventListener.
type Event struct {
	Type    string
	Target  Element
	Value   string // current value of the target input, if any
	Key     string // key name for keyboard events
	Checked bool
}

// Listener handles a host event.
type Listener func(Event)

// Scheduler runs callbacks once, after the current synchronous turn.
type Scheduler interface {
	Defer(fn func())
}

// ChildIndex returns the position of child within parent, or -1.
func ChildIndex(parent Element, child Node) int {
	for i, c := range parent.ChildNodes() {
		if c == child {
			return i
		}
	}
	return -1
}

// ChildAt returns the child at index i, or nil when i is out of range.
func ChildAt(parent Element, i int) Node {
	children := parent.ChildNodes()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// AsElement returns n as an Element when it is one.
func AsElement(n Node) (Element, bool) {
	if n == nil || n.NodeType() != ElementNode {
		return nil, false
	}
	el, ok := n.(Element)
	return el, ok
}
