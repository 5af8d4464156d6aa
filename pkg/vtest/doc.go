// Package vtest provides testing helpers for vlite applications.
//
// A Harness wires an in-memory document, a store and an app together and
// mounts a view, so a test can drive state changes and inspect the host
// tree and its mutation log.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t, view, vtest.WithState(store.State{"count": 0}))
//	    h.Click(h.Find("button", "inc"))
//	    h.ExpectContains("1")
//	}
//
// # Mutation Assertions
//
// Mark the mutation log before an action and inspect what changed:
//
//	mark := h.Mark()
//	h.SetState(store.State{"count": 2})
//	muts := h.Since(mark)
//
// # Metrics
//
// Every harness owns a fresh Prometheus registry, so counters start at zero:
//
//	testutil.ToFloat64(h.Metrics.KeyedOps("insert"))
package vtest
