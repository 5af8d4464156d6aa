// Package store holds application state and drives re-rendering.
//
// A Store owns a flat State map. SetState shallow-merges a partial map into
// it (last write wins per key), notifies observers in subscription order,
// and then runs the single update callback, which in an app is the render
// pass. Everything happens synchronously before SetState returns.
//
// Update requests that arrive while a pass is already running, typically a
// handler that calls SetState from inside the render, are not run
// recursively. They are collapsed into one follow-up pass that starts once
// the current one finishes. State set by an observer joins the pass of the
// SetState that notified it. A runaway loop stops after MaxPasses passes with
// ErrUpdateLoop.
//
// Batch groups several SetState calls into a single pass:
//
//	s.Batch(func() {
//	    s.SetState(store.State{"filter": "active"})
//	    s.SetState(store.State{"editing": ""})
//	})
//	// the update callback ran once
package store
