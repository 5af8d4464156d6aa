package router

import (
	"path"
	"strings"
)

// Normalize canonicalizes a fragment: the leading '#' and any query are
// dropped, dot segments and duplicate slashes are cleaned, and the result
// always starts with '/' and never ends with one (except the root).
//
//	Normalize("#/active/")   // "/active"
//	Normalize("completed")   // "/completed"
//	Normalize("#")           // "/"
func Normalize(hash string) string {
	hash = strings.TrimPrefix(strings.TrimSpace(hash), "#")
	if i := strings.IndexByte(hash, '?'); i >= 0 {
		hash = hash[:i]
	}
	return path.Clean("/" + hash)
}

// Href returns the fragment link for p ("/active" → "#/active").
func Href(p string) string {
	return "#" + Normalize(p)
}
