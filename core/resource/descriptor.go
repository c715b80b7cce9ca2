package resource

import (
	"strings"
)

// Document is a loosely-typed wire document: a desired configuration
// payload or a remote state returned by inspect.
type Document = map[string]any

// Descriptor describes a resource kind.
type Descriptor struct {
	// Name is the kind, used to build endpoints ("network" -> /networks).
	Name string
	// HasUpdate reports whether the kind supports in-place update.
	HasUpdate bool
	// IDField is the wire field holding an instance identifier (e.g. "Id").
	IDField string
	// ListField is the field of the list response holding the array.
	// Empty means the list response is the array itself.
	ListField string
}

// Validate checks the descriptor fields.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" || strings.ContainsAny(d.Name, "/?# ") {
		return &ConfigError{Field: "name", Value: d.Name, Reason: "required path-safe string"}
	}
	if strings.TrimSpace(d.IDField) == "" {
		return &ConfigError{Field: "idField", Value: d.IDField, Reason: "required string"}
	}
	return nil
}

// DescriptorFromMap builds a Descriptor from loosely-typed configuration
// such as a decoded YAML mapping. name and idField must be strings, hasUpdate
// a boolean, listField absent, nil or a string.
func DescriptorFromMap(m map[string]any) (Descriptor, error) {
	var d Descriptor

	name, ok := m["name"].(string)
	if !ok {
		return d, &ConfigError{Field: "name", Value: m["name"], Reason: "required string"}
	}
	hasUpdate, ok := m["hasUpdate"].(bool)
	if !ok {
		return d, &ConfigError{Field: "hasUpdate", Value: m["hasUpdate"], Reason: "required boolean"}
	}
	idField, ok := m["idField"].(string)
	if !ok {
		return d, &ConfigError{Field: "idField", Value: m["idField"], Reason: "required string"}
	}

	var listField string
	if raw, present := m["listField"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return d, &ConfigError{Field: "listField", Value: raw, Reason: "optional string"}
		}
		listField = s
	}

	d = Descriptor{Name: name, HasUpdate: hasUpdate, IDField: idField, ListField: listField}
	return d, d.Validate()
}

func (d Descriptor) collectionPath() string {
	return "/" + d.Name + "s"
}
