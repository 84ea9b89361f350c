// Package fieldpath resolves dotted field paths against document field maps.
package fieldpath

import "strings"

// Resolve walks a dotted path ("location.city") through nested field maps.
// It returns the value and true when every segment resolves, or nil and
// false when any intermediate is missing or not a map. It never panics on
// malformed documents.
func Resolve(fields map[string]any, path string) (any, bool) {
	if fields == nil || path == "" {
		return nil, false
	}
	var current any = fields
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
