package memdom

import (
	"fmt"

	"github.com/vango-dev/vlite/pkg/dom"
)

// Op identifies a recorded mutation.
type Op uint8

const (
	OpSetAttribute Op = iota + 1
	OpRemoveAttribute
	OpSetClass
	OpSetStyle
	OpSetProperty
	OpSetText
	OpAppendChild
	OpInsertBefore
	OpReplaceChild
	OpRemoveChild
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpSetAttribute:
		return "SetAttribute"
	case OpRemoveAttribute:
		return "RemoveAttribute"
	case OpSetClass:
		return "SetClass"
	case OpSetStyle:
		return "SetStyle"
	case OpSetProperty:
		return "SetProperty"
	case OpSetText:
		return "SetText"
	case OpAppendChild:
		return "AppendChild"
	case OpInsertBefore:
		return "InsertBefore"
	case OpReplaceChild:
		return "ReplaceChild"
	case OpRemoveChild:
		return "RemoveChild"
	default:
		return "Unknown"
	}
}

// IsStructural reports whether the op changes a child list.
func (op Op) IsStructural() bool {
	switch op {
	case OpAppendChild, OpInsertBefore, OpReplaceChild, OpRemoveChild:
		return true
	}
	return false
}

// Mutation is one recorded change to a connected node.
type Mutation struct {
	Op     Op
	Target dom.Node
	Child  dom.Node // inserted, appended, removed or replacing node
	Old    dom.Node // replaced node
	Name   string
	Value  string
}

// String renders the mutation for test failure messages.
func (m Mutation) String() string {
	name := ""
	if m.Target != nil {
		name = m.Target.NodeName()
	}
	switch {
	case m.Op.IsStructural():
		child := ""
		if m.Child != nil {
			child = m.Child.NodeName()
		}
		return fmt.Sprintf("%s(%s <- %s)", m.Op, name, child)
	case m.Name != "":
		return fmt.Sprintf("%s(%s %s=%q)", m.Op, name, m.Name, m.Value)
	default:
		return fmt.Sprintf("%s(%s %q)", m.Op, name, m.Value)
	}
}

// Mutations returns a copy of the mutation log.
func (d *Document) Mutations() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Mutation, len(d.mutations))
	copy(out, d.mutations)
	return out
}

// MutationCount returns the length of the mutation log.
func (d *Document) MutationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.mutations)
}

// MutationsSince returns the mutations recorded after mark, where mark is a
// previous MutationCount.
func (d *Document) MutationsSince(mark int) []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	if mark >= len(d.mutations) {
		return nil
	}
	out := make([]Mutation, len(d.mutations)-mark)
	copy(out, d.mutations[mark:])
	return out
}

// ResetMutations clears the mutation log.
func (d *Document) ResetMutations() {
	d.mu.Lock()
	d.mutations = nil
	d.mu.Unlock()
}

// Touches reports whether m targets n or one of n's descendants, or inserts,
// removes or replaces n itself.
func (m Mutation) Touches(n dom.Node) bool {
	if m.Child == n || m.Old == n {
		return true
	}
	for t := m.Target; t != nil; {
		if t == n {
			return true
		}
		p := t.ParentNode()
		if p == nil {
			return false
		}
		t = p
	}
	return false
}
