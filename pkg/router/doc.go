// Package router maps URL fragments to handlers.
//
// Routes are plain paths ("/", "/active"). Navigate accepts the fragment
// in any of its usual spellings and runs the matching handler:
//
//	r := router.New()
//	r.Handle("/", func() { s.SetState(store.State{"filter": "all"}) })
//	r.Handle("/active", func() { s.SetState(store.State{"filter": "active"}) })
//	r.Navigate("#/active")
//
// Bind listens for "hashchange" events on a host element, taking the new
// fragment from the event's Value.
package router
