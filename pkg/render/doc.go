// Package render serializes a host tree to HTML.
//
// It works on the tree the reconciler has already built, not on VNodes, so
// the output reflects exactly what the host holds: attributes that a later
// render stopped mentioning are still there, and live boolean properties
// such as checked appear as boolean attributes.
//
// # Basic Usage
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(root)        // root included
//	inner, err := r.RenderChildrenToString(root) // children only
//
// # Full Page Rendering
//
//	err := r.RenderPage(w, render.PageData{
//	    Title: "vlite • TodoMVC",
//	    Body:  root,
//	    LiveReload: "/ws",
//	})
//
// # Security
//
// Text and attribute values are always escaped.
package render
