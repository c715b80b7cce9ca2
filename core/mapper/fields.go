package mapper

import (
	"fmt"
	"sort"

	"docker-up/core/resource"
	"docker-up/core/utils"
)

// Field extracts one payload value from a declared entry.
// A nil value leaves the field out of the payload.
type Field func(d Declared) (any, error)

// PopulateFields returns a builder that evaluates every field and writes the
// non-nil results at their dotted paths.
func PopulateFields(fields map[string]Field) func(Declared) (resource.Document, error) {
	paths := make([]string, 0, len(fields))
	for path := range fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	return func(d Declared) (resource.Document, error) {
		doc := make(resource.Document, len(paths))
		for _, path := range paths {
			value, err := fields[path](d)
			if err != nil {
				return nil, fmt.Errorf("%s %q: %w", path, d.Name, err)
			}
			if value == nil {
				continue
			}
			utils.Set(doc, path, value)
		}
		return doc, nil
	}
}

// PickFields returns a projection copying source paths of a document to
// target paths. Keys are targets, values are sources; missing sources are skipped.
func PickFields(fields map[string]string) func(resource.Document) resource.Document {
	return func(state resource.Document) resource.Document {
		picked := make(resource.Document, len(fields))
		for target, source := range fields {
			if value, ok := utils.Lookup(state, source); ok && value != nil {
				utils.Set(picked, target, value)
			}
		}
		return picked
	}
}

// Same maps each path to itself for PickFields.
func Same(paths ...string) map[string]string {
	fields := make(map[string]string, len(paths))
	for _, path := range paths {
		fields[path] = path
	}
	return fields
}

// Prop reads a dotted path of the entry as is.
func Prop(path string) Field {
	return func(d Declared) (any, error) {
		return d.Get(path), nil
	}
}

// Const always yields value.
func Const(value any) Field {
	return func(Declared) (any, error) {
		return value, nil
	}
}

// NamespacedName yields the namespaced entry name.
func NamespacedName() Field {
	return func(d Declared) (any, error) {
		return Name(d.Namespace, d.Name), nil
	}
}

// NamespacedLabels yields the labels at path with the namespace label added.
// It never yields nil so the payload always carries a Labels mapping.
func NamespacedLabels(path string) Field {
	return func(d Declared) (any, error) {
		raw := d.Get(path)
		if raw != nil && utils.ToMap(raw) == nil {
			return nil, fmt.Errorf("labels must be a mapping, given: %T", raw)
		}
		return Labels(d.Namespace, utils.ToMap(raw)), nil
	}
}

// StringMap reads a mapping at path with every value stringified.
func StringMap(path string) Field {
	return func(d Declared) (any, error) {
		raw := d.Get(path)
		if raw == nil {
			return nil, nil
		}
		m := utils.ToStringMap(raw)
		if m == nil {
			return nil, fmt.Errorf("%s must be a mapping, given: %T", path, raw)
		}
		return m, nil
	}
}

// StringSlice reads a sequence (or a single scalar) at path as strings.
func StringSlice(path string) Field {
	return func(d Declared) (any, error) {
		if values := utils.ToStringSlice(d.Get(path)); values != nil {
			return values, nil
		}
		return nil, nil
	}
}
