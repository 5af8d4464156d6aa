package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/dom/memdom"
	"github.com/vango-dev/vlite/pkg/reconcile"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// mount builds a detached host tree for v.
func mount(t *testing.T, v *vdom.VNode) dom.Node {
	t.Helper()
	n, err := reconcile.New(memdom.NewDocument()).Mount(v)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return n
}

func extractAttrValue(t *testing.T, s string, attr string) string {
	t.Helper()

	needle := attr + "="
	idx := strings.Index(s, needle)
	if idx == -1 {
		t.Fatalf("expected %q in %q", needle, s)
	}

	start := idx + len(needle)
	if start >= len(s) || s[start] != '"' {
		t.Fatalf("expected quote for %q in %q", attr, s)
	}
	start++

	endRel := strings.IndexByte(s[start:], '"')
	if endRel == -1 {
		t.Fatalf("unterminated attribute %q in %q", attr, s)
	}
	return s[start : start+endRel]
}
