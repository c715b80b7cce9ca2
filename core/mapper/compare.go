package mapper

import (
	"strings"

	"docker-up/core/resource"
	"docker-up/core/utils"
)

// WriteOnly is implemented by mappers whose payload carries fields the daemon
// never returns on inspect (secret data, network targets resolved to ids).
type WriteOnly interface {
	WriteOnlyFields() []string
}

// Compare reports the drift between the payload built for a declared entry and
// the remote state, ignoring the write-only fields of m.
func Compare(m Mapper, payload, state resource.Document) []string {
	want := payload
	if wo, ok := m.(WriteOnly); ok {
		for _, path := range wo.WriteOnlyFields() {
			want = without(want, strings.Split(path, "."))
		}
	}
	var got resource.Document
	if state != nil {
		got = m.FromInspect(state)
	}
	return Drift(want, got)
}

// without returns doc minus the value at path. Mappings along the path are
// copied so doc itself is left untouched.
func without(doc map[string]any, path []string) map[string]any {
	if doc == nil {
		return nil
	}
	if _, ok := doc[path[0]]; !ok {
		return doc
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	if len(path) == 1 {
		delete(out, path[0])
		return out
	}
	if child := utils.ToMap(doc[path[0]]); child != nil {
		out[path[0]] = without(child, path[1:])
	}
	return out
}
