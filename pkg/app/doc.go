// Package app ties a view function, a store and a host document together.
//
// An App renders into exactly one mount point:
//
//	doc := memdom.NewDocument()
//	doc.NewMountPoint("app")
//
//	s := store.New(store.WithInitialState(store.State{"count": 0}))
//	a := app.New(doc, s)
//	err := a.Mount("app", func(s *store.Store) []*vdom.VNode {
//	    n := store.GetOr(s.GetState(), "count", 0)
//	    return vdom.Forest(vdom.Button(
//	        vdom.OnClick(func(dom.Event) { s.SetState(store.State{"count": n + 1}) }),
//	        vdom.Textf("clicked %d times", n),
//	    ))
//	})
//
// Mount installs the render pass as the store's update callback, so every
// SetState re-runs the view and reconciles the result synchronously. Work
// deferred by the reconciler (focusing a freshly mounted input) runs right
// after each pass.
//
// When the mount point is missing, Mount logs the failure and returns an
// E101 error. The app then stays inert: nothing renders and state changes
// do not trigger passes.
package app
