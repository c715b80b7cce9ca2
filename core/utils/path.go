package utils

import "strings"

// Lookup reads a dot-separated path ("Version.Index") from a document.
// ok is false when any segment is missing or not a mapping.
func Lookup(doc map[string]any, path string) (value any, ok bool) {
	var current any = doc
	for _, segment := range strings.Split(path, ".") {
		m := ToMap(current)
		if m == nil {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set writes value at a dot-separated path, creating intermediate mappings.
func Set(doc map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := doc
	for _, segment := range segments[:len(segments)-1] {
		next := ToMap(current[segment])
		if next == nil {
			next = make(map[string]any)
		}
		current[segment] = next
		current = next
	}
	current[segments[len(segments)-1]] = value
}
