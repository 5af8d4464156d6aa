// Package dom defines the host environment contract the reconciler writes to.
//
// A host is anything that looks like a browser document: it creates element
// and text nodes, exposes attributes, class names, inline styles and live
// boolean properties, and supports the usual child-list mutations. The
// reconciler never keeps references to host nodes between calls; node
// identity is what carries focus, selection and listener state across
// renders.
//
// The in-memory implementation lives in package memdom.
//
// # Deferred Work
//
// Some operations (focusing an input that was just mounted) must run after
// the current synchronous patch completes. Scheduler models this as a FIFO
// run-once queue; TaskQueue is the default implementation.
package dom
