// Package errors provides coded, actionable errors for vlite.
//
// Every error carries a code from the registry ("E101"), a short message
// and a longer detail. Callers add a hint with WithSuggestion and, for
// config files, a source location whose surrounding lines are shown by
// Format:
//
//	err := errors.New("E201").
//	    Wrap(yamlErr).
//	    WithLocationFromError("vlite.yaml", yamlErr)
//
//	fmt.Print(err.Format())
//	// ERROR E201: Config file could not be parsed
//	//
//	//   vlite.yaml:3
//	//
//	//       2 │ mount: app
//	//   →   3 │ keyed: [ul
//	//       4 │ ...
//
// # Code Ranges
//
//   - E1xx: mounting and rendering
//   - E2xx: project configuration
//   - E3xx: command line and preview server
//
// Errors wrap their cause, so errors.Is and errors.As see through them.
package errors
