package todo

import (
	"strconv"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/router"
	"github.com/vango-dev/vlite/pkg/store"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// View renders the whole application. It is an app.ViewFunc.
func (m *Model) View(s *store.Store) []*vdom.VNode {
	state := s.GetState()
	items := Items(state)
	active, completed := Counts(items)
	empty := len(items) == 0

	return vdom.Forest(
		vdom.Section(vdom.Class("todoapp"),
			m.header(),
			vdom.Section(vdom.Class("main"), vdom.Hidden(empty),
				vdom.Input(
					vdom.ID("toggle-all"),
					vdom.Class("toggle-all"),
					vdom.Type("checkbox"),
					vdom.Checked(!empty && active == 0),
					vdom.OnChange(func(ev dom.Event) {
						m.report("toggle-all", m.ToggleAll(ev.Checked))
					}),
				),
				vdom.Label(vdom.For("toggle-all"), "Mark all as complete"),
				vdom.CustomElement(m.config.ListTag, vdom.Class("todo-list", m.config.ListClass),
					vdom.Range(Visible(state), func(it Item, _ int) *vdom.VNode {
						return m.item(it, Editing(state) == it.ID)
					}),
				),
			),
			m.footer(CurrentFilter(state), active, completed, empty),
		),
		vdom.Footer(vdom.Class("info"),
			vdom.P("Double-click to edit a todo"),
		),
	)
}

func (m *Model) header() *vdom.VNode {
	return vdom.Header(vdom.Class("header"),
		vdom.H1("todos"),
		vdom.Input(
			vdom.Class("new-todo"),
			vdom.Placeholder("What needs to be done?"),
			vdom.Autofocus(),
			vdom.OnEnter(func(ev dom.Event) {
				m.report("add", m.Add(ev.Value))
			}),
		),
	)
}

func (m *Model) item(it Item, editing bool) *vdom.VNode {
	id := it.ID
	return vdom.Li(
		vdom.Key(id),
		vdom.Class(vdom.ClassIf(it.Completed, "completed"), vdom.ClassIf(editing, m.config.EditingClass)),
		vdom.Div(vdom.Class("view"),
			vdom.Input(
				vdom.Class("toggle"),
				vdom.Type("checkbox"),
				vdom.Checked(it.Completed),
				vdom.OnChange(func(dom.Event) {
					m.report("toggle", m.Toggle(id))
				}),
			),
			vdom.Label(
				vdom.OnDblClick(func(dom.Event) {
					m.report("edit", m.StartEdit(id))
				}),
				it.Title,
			),
			vdom.Button(vdom.Class("destroy"), vdom.OnClick(func(dom.Event) {
				m.report("destroy", m.Destroy(id))
			})),
		),
		vdom.If(editing, vdom.Input(
			vdom.Class("edit"),
			vdom.Value(it.Title),
			vdom.Autofocus(),
			vdom.OnKeyDown(func(ev dom.Event) {
				switch ev.Key {
				case "Enter":
					m.report("commit", m.CommitEdit(id, ev.Value))
				case "Escape":
					m.report("cancel", m.CancelEdit())
				}
			}),
			vdom.OnBlur(func(ev dom.Event) {
				m.report("commit", m.CommitEdit(id, ev.Value))
			}),
		)),
	)
}

func (m *Model) footer(current Filter, active, completed int, empty bool) *vdom.VNode {
	unit := " items left"
	if active == 1 {
		unit = " item left"
	}
	filters := make([]*vdom.VNode, 0, len(Filters))
	for _, f := range Filters {
		filters = append(filters, vdom.Li(
			vdom.A(
				vdom.Class(vdom.ClassIf(f == current, "selected")),
				vdom.Href(router.Href(f.Path())),
				filterLabel(f),
			),
		))
	}
	return vdom.Footer(vdom.Class("footer"), vdom.Hidden(empty),
		vdom.Span(vdom.Class("todo-count"),
			vdom.Strong(strconv.Itoa(active)),
			unit,
		),
		vdom.Ul(vdom.Class("filters"), filters),
		vdom.Button(vdom.Class("clear-completed"), vdom.Hidden(completed == 0),
			vdom.OnClick(func(dom.Event) {
				m.report("clear-completed", m.ClearCompleted())
			}),
			"Clear completed",
		),
	)
}

func filterLabel(f Filter) string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
