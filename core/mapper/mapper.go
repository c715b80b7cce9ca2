package mapper

import (
	"docker-up/core/resource"
	"docker-up/core/utils"
)

// Declared is a resource entry of a stack file.
type Declared struct {
	// Namespace is the stack namespace, empty for unnamespaced stacks.
	Namespace string
	// Name is the entry key, before namespacing.
	Name string
	// Spec holds the entry fields as decoded from the stack file.
	Spec map[string]any
}

// Get returns the value of a dotted path of the entry fields.
func (d Declared) Get(path string) any {
	value, _ := utils.Lookup(d.Spec, path)
	return value
}

// Mapper converts between declared entries and wire documents of one kind.
type Mapper interface {
	// FromConfig builds the create/update payload for d.
	FromConfig(d Declared) (resource.Document, error)
	// FromInspect keeps the fields of a remote state the kind manages.
	FromInspect(state resource.Document) resource.Document
}

// Funcs adapts a pair of functions to a Mapper.
type Funcs struct {
	Config  func(Declared) (resource.Document, error)
	Inspect func(resource.Document) resource.Document
}

// FromConfig implements Mapper.
func (f Funcs) FromConfig(d Declared) (resource.Document, error) {
	return f.Config(d)
}

// FromInspect implements Mapper.
func (f Funcs) FromInspect(state resource.Document) resource.Document {
	if f.Inspect == nil {
		return state
	}
	return f.Inspect(state)
}
