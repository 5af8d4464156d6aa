// Package preview serves a running todo app over HTTP.
//
// The app runs server-side against an in-memory document. Every render
// pass pushes the mount point's inner HTML to connected websocket clients,
// and small POST endpoints drive the todo actions, so a browser (or curl)
// can exercise the reconciler end to end.
//
// Routes:
//
//	GET    /                         full page with live updates
//	GET    /snapshot                 inner HTML of the mount point
//	GET    /state                    todos, filter and editing as JSON
//	POST   /todos                    add (form field "title")
//	POST   /todos/toggle-all         form field "completed"
//	POST   /todos/clear-completed
//	POST   /todos/cancel             leave editing mode
//	POST   /todos/{id}/toggle
//	POST   /todos/{id}/edit          enter editing mode
//	POST   /todos/{id}/commit        form field "title"
//	DELETE /todos/{id}
//	POST   /navigate                 form field "hash", e.g. "#/active"
//	GET    /ws                       render stream
//	GET    /metrics                  Prometheus metrics
package preview
