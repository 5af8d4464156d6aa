package memdom

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vlite/pkg/dom"
)

func mustElement(t *testing.T, d *Document, tag string) *Element {
	t.Helper()
	el, err := d.CreateElement(tag)
	if err != nil {
		t.Fatalf("CreateElement(%q): %v", tag, err)
	}
	return el.(*Element)
}

func names(e *Element) []string {
	var out []string
	for _, c := range e.ChildNodes() {
		if el, ok := c.(*Element); ok {
			id, _ := el.GetAttribute("id")
			out = append(out, id)
		} else {
			out = append(out, c.TextContent())
		}
	}
	return out
}

func TestCreateElementValidatesTag(t *testing.T) {
	d := NewDocument()
	for _, tag := range []string{"div", "my-widget", "H1"} {
		if _, err := d.CreateElement(tag); err != nil {
			t.Errorf("CreateElement(%q): %v", tag, err)
		}
	}
	for _, tag := range []string{"", "1div", "a b", "<p>"} {
		if _, err := d.CreateElement(tag); !errors.Is(err, ErrInvalidCharacter) {
			t.Errorf("CreateElement(%q) err = %v, want ErrInvalidCharacter", tag, err)
		}
	}
}

func TestTagNames(t *testing.T) {
	d := NewDocument()
	el := mustElement(t, d, "Li")
	if el.TagName() != "LI" || el.NodeName() != "LI" || el.LocalName() != "li" {
		t.Errorf("names = %s/%s/%s", el.TagName(), el.NodeName(), el.LocalName())
	}
	if d.CreateTextNode("x").NodeName() != dom.TextNodeName {
		t.Error("text node name mismatch")
	}
}

func TestInsertBeforeMoves(t *testing.T) {
	d := NewDocument()
	ul := mustElement(t, d, "ul")
	items := map[string]*Element{}
	for _, id := range []string{"a", "b", "c"} {
		li := mustElement(t, d, "li")
		li.SetAttribute("id", id)
		ul.AppendChild(li)
		items[id] = li
	}

	ul.InsertBefore(items["c"], items["a"])
	if diff := cmp.Diff([]string{"c", "a", "b"}, names(ul)); diff != "" {
		t.Errorf("after move (-want +got):\n%s", diff)
	}

	ul.InsertBefore(items["c"], nil)
	if diff := cmp.Diff([]string{"a", "b", "c"}, names(ul)); diff != "" {
		t.Errorf("after append (-want +got):\n%s", diff)
	}

	ul.InsertBefore(items["b"], items["b"])
	if diff := cmp.Diff([]string{"a", "b", "c"}, names(ul)); diff != "" {
		t.Errorf("self insert (-want +got):\n%s", diff)
	}

	other := mustElement(t, d, "ol")
	other.AppendChild(items["a"])
	if items["a"].ParentNode() != other || len(ul.ChildNodes()) != 2 {
		t.Error("append to another parent did not move the node")
	}
}

func TestHierarchyViolationsPanic(t *testing.T) {
	d := NewDocument()
	parent := mustElement(t, d, "div")
	kid := mustElement(t, d, "span")
	parent.AppendChild(kid)

	tests := []struct {
		name string
		fn   func()
	}{
		{"ancestor", func() { kid.AppendChild(parent) }},
		{"missing ref", func() { parent.InsertBefore(mustElement(t, d, "p"), mustElement(t, d, "p")) }},
		{"other document", func() { parent.AppendChild(mustElement(t, NewDocument(), "p")) }},
		{"remove stranger", func() { parent.RemoveChild(mustElement(t, d, "p")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestReplaceAndRemove(t *testing.T) {
	d := NewDocument()
	parent := mustElement(t, d, "div")
	old := mustElement(t, d, "span")
	parent.AppendChild(old)
	next := mustElement(t, d, "em")

	parent.ReplaceChild(next, old)
	if old.ParentNode() != nil || next.ParentNode() != parent {
		t.Error("ReplaceChild did not swap parents")
	}
	parent.RemoveChild(next)
	if len(parent.ChildNodes()) != 0 || next.ParentNode() != nil {
		t.Error("RemoveChild left the node attached")
	}
}

func TestAttributesClassStyle(t *testing.T) {
	d := NewDocument()
	el := mustElement(t, d, "div")
	el.SetAttribute("class", "a b")
	el.SetAttribute("style", "color:red;margin: 0")
	el.SetAttribute("title", "")

	if el.ClassName() != "a b" {
		t.Errorf("class = %q", el.ClassName())
	}
	if el.Style("color") != "red" || el.Style("margin") != "0" {
		t.Errorf("style = %q/%q", el.Style("color"), el.Style("margin"))
	}
	if s, _ := el.GetAttribute("style"); s != "color:red;margin: 0" {
		t.Errorf("style attribute = %q, want verbatim", s)
	}
	if v, ok := el.GetAttribute("title"); !ok || v != "" {
		t.Errorf("empty title = %q/%v, want present", v, ok)
	}

	el.SetStyle("color", "")
	if s, _ := el.GetAttribute("style"); s != "margin: 0" {
		t.Errorf("style after SetStyle = %q", s)
	}
	el.SetProperty("hidden", true)
	el.RemoveAttribute("title")

	want := []Attribute{
		{Name: "class", Value: "a b"},
		{Name: "hidden", Bool: true},
		{Name: "style", Value: "margin: 0"},
	}
	if diff := cmp.Diff(want, el.Attributes()); diff != "" {
		t.Errorf("Attributes (-want +got):\n%s", diff)
	}
}

func TestTextContent(t *testing.T) {
	d := NewDocument()
	p := mustElement(t, d, "p")
	p.AppendChild(d.CreateTextNode("a"))
	b := mustElement(t, d, "b")
	b.AppendChild(d.CreateTextNode("b"))
	p.AppendChild(b)

	if p.TextContent() != "ab" {
		t.Errorf("TextContent = %q", p.TextContent())
	}
	p.SetTextContent("z")
	if n := p.ChildNodes(); len(n) != 1 || n[0].NodeType() != dom.TextNode || b.ParentNode() != nil {
		t.Errorf("SetTextContent children = %v", n)
	}
	p.SetTextContent("")
	if len(p.ChildNodes()) != 0 {
		t.Error("empty SetTextContent kept a child")
	}
}

func TestMutationLogOnlyConnected(t *testing.T) {
	d := NewDocument()
	root := d.NewMountPoint("app")
	d.ResetMutations()

	detached := mustElement(t, d, "div")
	detached.SetAttribute("id", "x")
	detached.AppendChild(d.CreateTextNode("t"))
	if d.MutationCount() != 0 {
		t.Fatalf("detached writes logged: %v", d.Mutations())
	}

	root.AppendChild(detached)
	detached.SetClassName("on")
	got := d.Mutations()
	if len(got) != 2 || got[0].Op != OpAppendChild || got[1].Op != OpSetClass {
		t.Fatalf("mutations = %v", got)
	}
	if !got[1].Touches(detached) || !got[1].Touches(root) {
		t.Error("class write should touch the element and its ancestors")
	}
	if got[0].Touches(mustElement(t, d, "p")) {
		t.Error("unrelated node reported as touched")
	}
	if since := d.MutationsSince(1); len(since) != 1 || since[0].Op != OpSetClass {
		t.Errorf("MutationsSince(1) = %v", since)
	}
}

func TestGetElementByIDAndFocus(t *testing.T) {
	d := NewDocument()
	if d.GetElementByID("app") != nil {
		t.Fatal("found a mount point that does not exist")
	}
	root := d.NewMountPoint("app")
	if d.GetElementByID("app") != dom.Element(root) {
		t.Fatal("GetElementByID did not find the mount point")
	}

	input := mustElement(t, d, "input")
	input.Focus()
	if d.ActiveElement() != nil {
		t.Error("detached element took focus")
	}
	root.AppendChild(input)
	input.Focus()
	if d.ActiveElement() != input || d.FocusCount() != 1 {
		t.Errorf("active = %v, count = %d", d.ActiveElement(), d.FocusCount())
	}
}

func TestDispatchBubbles(t *testing.T) {
	d := NewDocument()
	root := d.NewMountPoint("app")
	btn := mustElement(t, d, "button")
	root.AppendChild(btn)

	var got []string
	btn.AddEventListener("click", func(ev dom.Event) {
		got = append(got, "button")
		if ev.Target != dom.Element(btn) {
			t.Error("target not set")
		}
	})
	root.AddEventListener("click", func(dom.Event) { got = append(got, "root") })
	root.AddEventListener("keydown", func(dom.Event) { got = append(got, "key") })

	d.Dispatch(btn, dom.Event{Type: "click"})
	if diff := cmp.Diff([]string{"button", "root"}, got); diff != "" {
		t.Errorf("dispatch order (-want +got):\n%s", diff)
	}
}
