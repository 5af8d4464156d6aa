// Package reconcile patches a host tree to match a VNode forest.
//
// # Policy
//
// Reconcile compares the container's current children against the new
// forest position by position. When the counts differ, or any pair fails
// the structural-compatibility test (same tag, case-insensitive, and the
// same class string), the whole forest is rebuilt from scratch. Otherwise
// each pair is patched in place. The same rule applies recursively to the
// children of a patched element, except that a failing child is replaced
// on its own rather than rebuilding its siblings.
//
// Comparing class strings stands in for "is this conceptually the same
// element": it catches toggled state classes without a general tree diff.
//
// # Keyed Lists
//
// An element matching the keyed-container signature (by default <ul> with
// the class "keyed-list") is handed to the keyed-list patcher, which
// matches items by their vdom.KeyAttr attribute, preserves host node
// identity for surviving keys, and moves nodes with insert-before rather
// than rebuilding them. Items whose state class (default "editing") flips
// between renders are rebuilt individually.
//
// # Documented Limitations
//
// Event handlers are bound at mount time only; patching never rebinds them,
// so handlers that close over render-time values keep the values from the
// render that mounted the node. Attributes that disappear from a later
// render are not removed from the host node. Keyed-list items without a
// key are ignored on both sides.
package reconcile
