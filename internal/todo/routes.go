package todo

import "github.com/vango-dev/vlite/pkg/router"

// Routes registers one route per filter on r.
func (m *Model) Routes(r *router.Router) {
	for _, f := range Filters {
		r.Handle(f.Path(), func() {
			m.report("filter", m.SetFilter(f))
		})
	}
}
