package todo_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/vlite/internal/todo"
	"github.com/vango-dev/vlite/pkg/app"
	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/dom/memdom"
	"github.com/vango-dev/vlite/pkg/reconcile"
	"github.com/vango-dev/vlite/pkg/router"
	"github.com/vango-dev/vlite/pkg/telemetry"
	"github.com/vango-dev/vlite/pkg/vtest"
)

func mountTodos(t *testing.T, titles ...string) (*vtest.Harness, *todo.Model) {
	t.Helper()
	h := vtest.New(t, nil, vtest.WithState(todo.Initial(titles...)), vtest.Unmounted())
	m := todo.New(h.Store)
	if err := h.Mount(m.View); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return h, m
}

func keyOf(n dom.Node) string {
	el, ok := dom.AsElement(n)
	if !ok {
		return ""
	}
	k, _ := el.GetAttribute("data-key")
	return k
}

func listKeys(list *memdom.Element) []string {
	var keys []string
	for _, c := range list.ChildNodes() {
		keys = append(keys, keyOf(c))
	}
	return keys
}

func structuralOn(muts []memdom.Mutation, target dom.Node) []memdom.Mutation {
	var out []memdom.Mutation
	for _, m := range muts {
		if m.Op.IsStructural() && m.Target == target {
			out = append(out, m)
		}
	}
	return out
}

func TestEmptyStateHidesSections(t *testing.T) {
	h, _ := mountTodos(t)

	h.ExpectContains(`<section class="main" hidden>`)
	h.ExpectContains(`<footer class="footer" hidden>`)
	if n := len(h.Find("ul", "todo-list").ChildNodes()); n != 0 {
		t.Error("todo list should be empty")
	}
}

func TestAddTodoInsertsOneKeyedItem(t *testing.T) {
	h, m := mountTodos(t)
	list := h.Find("ul", "todo-list")

	mark := h.Mark()
	if err := m.Add("milk"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	inserts := structuralOn(h.Since(mark), list)
	if len(inserts) != 1 {
		t.Fatalf("structural mutations on list = %v, want exactly one", inserts)
	}
	if k := keyOf(inserts[0].Child); k != "1" {
		t.Errorf("inserted key = %q, want 1", k)
	}
	if got := testutil.ToFloat64(h.Metrics.KeyedOps(telemetry.KeyedInsert)); got != 1 {
		t.Errorf("keyed inserts = %v, want 1", got)
	}
	if h.Find("section", "main").Property("hidden") {
		t.Error("main section still hidden")
	}
	h.ExpectContains(`<span class="todo-count"><strong>1</strong> item left</span>`)
}

func TestEditingTogglesRebuildOnlyThatItem(t *testing.T) {
	h, m := mountTodos(t, "a", "b", "c", "d", "e")
	list := h.Find("ul", "todo-list")
	children := list.ChildNodes()
	siblings := children[:4]
	if keyOf(children[4]) != "5" {
		t.Fatalf("keys = %v", listKeys(list))
	}

	assertSiblingsUntouched := func(muts []memdom.Mutation) {
		t.Helper()
		for _, mu := range muts {
			for _, s := range siblings {
				if mu.Touches(s) {
					t.Errorf("sibling %s touched by %v", keyOf(s), mu)
				}
			}
		}
	}

	mark := h.Mark()
	if err := m.StartEdit(5); err != nil {
		t.Fatal(err)
	}
	assertSiblingsUntouched(h.Since(mark))
	if got := testutil.ToFloat64(h.Metrics.Rebuilds(telemetry.ScopeItem)); got != 1 {
		t.Errorf("item rebuilds after entering edit = %v, want 1", got)
	}
	edit := h.Find("input", "edit")
	if h.Doc.ActiveElement() != edit {
		t.Error("edit input not focused")
	}

	mark = h.Mark()
	if err := m.CancelEdit(); err != nil {
		t.Fatal(err)
	}
	assertSiblingsUntouched(h.Since(mark))
	if got := testutil.ToFloat64(h.Metrics.Rebuilds(telemetry.ScopeItem)); got != 2 {
		t.Errorf("item rebuilds after leaving edit = %v, want 2", got)
	}
	if h.Query("input", "edit") != nil {
		t.Error("edit input still present")
	}
	for i, s := range siblings {
		if list.ChildNodes()[i] != s {
			t.Errorf("sibling %d replaced", i)
		}
	}
}

func TestToggleViaCheckbox(t *testing.T) {
	h, _ := mountTodos(t, "a", "b")
	list := h.Find("ul", "todo-list")
	first := list.ChildNodes()[0].(*memdom.Element)

	h.Check(first.QuerySelector("input", "toggle"), true)

	if list.ChildNodes()[0] != first {
		t.Fatal("toggled item was replaced")
	}
	if first.ClassName() != "completed" {
		t.Errorf("class = %q, want completed", first.ClassName())
	}
	if !first.QuerySelector("input", "toggle").Property("checked") {
		t.Error("toggle not checked")
	}
	if h.Find("button", "clear-completed").Property("hidden") {
		t.Error("clear-completed still hidden")
	}
	if got := testutil.ToFloat64(h.Metrics.Rebuilds(telemetry.ScopeItem)); got != 0 {
		t.Errorf("item rebuilds = %v, want 0", got)
	}
}

func TestToggleAllViaCheckbox(t *testing.T) {
	h, m := mountTodos(t, "a", "b")

	h.Check(h.Find("input", "toggle-all"), true)
	if active, _ := todo.Counts(todo.Items(m.Store().GetState())); active != 0 {
		t.Errorf("active = %d, want 0", active)
	}
	if !h.Find("input", "toggle-all").Property("checked") {
		t.Error("toggle-all not checked")
	}
}

func TestAddViaEnter(t *testing.T) {
	h, _ := mountTodos(t)
	input := h.Find("input", "new-todo")

	h.KeyDown(input, "a", "brea")
	h.KeyDown(input, "Enter", "bread")

	list := h.Find("ul", "todo-list")
	if got := listKeys(list); len(got) != 1 || got[0] != "1" {
		t.Fatalf("keys = %v, want [1]", got)
	}
	h.ExpectContains("<label>bread</label>")
}

func TestEditViaEvents(t *testing.T) {
	h, m := mountTodos(t, "a", "b")
	list := h.Find("ul", "todo-list")

	h.DblClick(list.QuerySelector("label", ""))
	edit := h.Find("input", "edit")
	if v, _ := edit.GetAttribute("value"); v != "a" {
		t.Errorf("edit value = %q, want a", v)
	}

	h.KeyDown(edit, "Enter", "apple")
	h.Blur(edit, "ignored")

	items := todo.Items(m.Store().GetState())
	if items[0].Title != "apple" {
		t.Errorf("title = %q, want apple", items[0].Title)
	}
	if todo.Editing(m.Store().GetState()) != 0 {
		t.Error("still editing")
	}
	h.ExpectContains("<label>apple</label>")
}

func TestEditEscapeCancels(t *testing.T) {
	h, m := mountTodos(t, "a")

	h.DblClick(h.Find("ul", "todo-list").QuerySelector("label", ""))
	h.KeyDown(h.Find("input", "edit"), "Escape", "changed")

	if got := todo.Items(m.Store().GetState())[0].Title; got != "a" {
		t.Errorf("title = %q, want a", got)
	}
	if h.Query("input", "edit") != nil {
		t.Error("edit input still present")
	}
}

func TestDestroyViaButton(t *testing.T) {
	h, _ := mountTodos(t, "a", "b", "c")
	list := h.Find("ul", "todo-list")
	third := list.ChildNodes()[2]

	second := list.ChildNodes()[1].(*memdom.Element)
	h.Click(second.QuerySelector("button", "destroy"))

	if got := listKeys(list); len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("keys = %v, want [1 3]", got)
	}
	if list.ChildNodes()[1] != third {
		t.Error("surviving item lost identity")
	}
}

func TestClearCompletedViaButton(t *testing.T) {
	h, m := mountTodos(t, "a", "b", "c")
	m.Toggle(1)
	m.Toggle(2)

	h.Click(h.Find("button", "clear-completed"))

	if got := listKeys(h.Find("ul", "todo-list")); len(got) != 1 || got[0] != "3" {
		t.Errorf("keys = %v, want [3]", got)
	}
	if !h.Find("button", "clear-completed").Property("hidden") {
		t.Error("clear-completed visible with nothing completed")
	}
}

func TestFilterRoutes(t *testing.T) {
	h, m := mountTodos(t, "a", "b", "c")
	m.Toggle(2)

	r := router.New()
	m.Routes(r)
	r.Bind(h.Root())
	list := h.Find("ul", "todo-list")

	h.Doc.Dispatch(h.Root(), dom.Event{Type: "hashchange", Value: "#/active"})
	if got := listKeys(list); len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("active keys = %v, want [1 3]", got)
	}
	h.ExpectContains(`<a class="selected" href="#/active">Active</a>`)

	if !r.Navigate("#/completed") {
		t.Fatal("completed route not matched")
	}
	if got := listKeys(list); len(got) != 1 || got[0] != "2" {
		t.Errorf("completed keys = %v, want [2]", got)
	}

	r.Navigate("#/")
	if got := listKeys(list); len(got) != 3 {
		t.Errorf("all keys = %v, want 3 items", got)
	}
	h.ExpectContains(`<a class="selected" href="#/">All</a>`)
}

func TestRoutesRegistered(t *testing.T) {
	_, m := mountTodos(t)
	r := router.New()
	m.Routes(r)

	want := []string{"/", "/active", "/completed"}
	got := r.Paths()
	if len(got) != len(want) {
		t.Fatalf("paths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCustomKeyedSignature(t *testing.T) {
	h := vtest.New(t, nil,
		vtest.WithState(todo.Initial("a")),
		vtest.WithAppOptions(app.WithReconcileOptions(
			reconcile.WithKeyedContainer("ol", "rows"),
			reconcile.WithStateClass("busy"),
		)),
		vtest.Unmounted(),
	)
	m := todo.New(h.Store, todo.WithKeyedList("ol", "rows"), todo.WithEditingClass("busy"))
	if err := h.Mount(m.View); err != nil {
		t.Fatal(err)
	}

	list := h.Find("ol", "rows")
	first := list.ChildNodes()[0]
	m.Add("b")
	if got := testutil.ToFloat64(h.Metrics.KeyedOps(telemetry.KeyedInsert)); got != 1 {
		t.Errorf("keyed inserts = %v, want 1", got)
	}
	if list.ChildNodes()[0] != first {
		t.Error("existing item lost identity")
	}

	m.StartEdit(1)
	if h.Query("input", "edit") == nil {
		t.Fatal("edit input missing")
	}
	if got := testutil.ToFloat64(h.Metrics.Rebuilds(telemetry.ScopeItem)); got != 1 {
		t.Errorf("item rebuilds = %v, want 1", got)
	}
}
