// Package todo is the TodoMVC domain: state shape, actions, view and
// routes.
//
// State lives in a store.State under these keys:
//
//	todos    []Item   items in insertion order
//	nextId   int      id handed to the next added item
//	editing  int      id of the item being edited, 0 for none
//	filter   Filter   visible subset, "all" when absent
//
// The view keeps its top-level structure and classes fixed across renders
// so the reconciler patches in place. Visibility is expressed with the
// hidden flag instead of conditional children, and the todo list carries
// the keyed-list marker class.
package todo
