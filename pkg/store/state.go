package store

import "maps"

// State is the application state: a flat map merged one level deep.
type State map[string]any

// Clone returns a shallow copy. Values are shared.
func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	return maps.Clone(s)
}

// Get returns the value stored under key as a T. It reports false when the
// key is missing or holds a value of another type.
func Get[T any](s State, key string) (T, bool) {
	v, ok := s[key].(T)
	return v, ok
}

// GetOr is Get with a fallback for missing or mistyped values.
func GetOr[T any](s State, key string, fallback T) T {
	if v, ok := Get[T](s, key); ok {
		return v
	}
	return fallback
}
