package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/dom/memdom"
)

// ErrUnsupportedNode is returned for host nodes the renderer cannot
// inspect.
var ErrUnsupportedNode = errors.New("render: unsupported host node")

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty indents block elements. Use it for inspection only; it adds
	// whitespace text to the output.
	Pretty bool

	// Indent is one indentation level in pretty mode. Defaults to two
	// spaces.
	Indent string
}

// Renderer serializes host trees.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString serializes n and its subtree.
func (r *Renderer) RenderToString(n dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams n and its subtree to w.
func (r *Renderer) RenderToWriter(w io.Writer, n dom.Node) error {
	return r.renderNode(w, n, 0)
}

// RenderChildrenToString serializes the children of el, without el itself.
func (r *Renderer) RenderChildrenToString(el dom.Element) (string, error) {
	var buf bytes.Buffer
	for _, c := range el.ChildNodes() {
		if err := r.renderNode(&buf, c, 0); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (r *Renderer) renderNode(w io.Writer, n dom.Node, depth int) error {
	switch v := n.(type) {
	case nil:
		return nil
	case *memdom.Text:
		_, err := io.WriteString(w, escapeHTML(v.Data()))
		return err
	case *memdom.Element:
		return r.renderElement(w, v, depth)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedNode, n)
	}
}

func (r *Renderer) renderElement(w io.Writer, el *memdom.Element, depth int) error {
	tag := el.LocalName()

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	var open strings.Builder
	open.WriteByte('<')
	open.WriteString(tag)
	for _, a := range el.Attributes() {
		open.WriteByte(' ')
		open.WriteString(a.Name)
		if !a.Bool {
			open.WriteString(`="`)
			open.WriteString(escapeAttr(a.Value))
			open.WriteByte('"')
		}
	}
	open.WriteByte('>')
	if _, err := io.WriteString(w, open.String()); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if r.config.Pretty {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	}

	children := el.ChildNodes()
	block := r.config.Pretty && len(children) > 0 && !isInlineElement(tag) && !textOnly(children)
	if block {
		io.WriteString(w, "\n")
	}
	for _, c := range children {
		if err := r.renderNode(w, c, depth+1); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

func textOnly(children []dom.Node) bool {
	for _, c := range children {
		if c.NodeType() != dom.TextNode {
			return false
		}
	}
	return true
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}
