package stack

import (
	"errors"
	"fmt"
	"sort"

	"docker-up/core/mapper"
	"docker-up/core/resource"
	"docker-up/feature/network"
	"docker-up/feature/secret"
	"docker-up/feature/service"
	"docker-up/feature/volume"
)

// ErrUnknownKind is returned when a kind is not registered.
var ErrUnknownKind = errors.New("unknown resource kind")

// Kind is a registered resource kind.
type Kind struct {
	// Section is the stack file section of builtin kinds, empty for custom ones.
	Section    string
	Descriptor resource.Descriptor
	Mapper     mapper.Mapper
	factory    resource.Factory
}

// Name returns the kind name.
func (k *Kind) Name() string {
	return k.Descriptor.Name
}

// Bind returns the resource operations of the kind for ctx.
func (k *Kind) Bind(ctx resource.Context) *resource.Resource {
	return k.factory(ctx)
}

// Registry holds kinds in up order.
type Registry struct {
	kinds  []*Kind
	byName map[string]*Kind
}

// NewRegistry returns a registry with the builtin kinds followed by the
// custom kinds described by custom, in order. Custom kinds use
// mapper.Passthrough. Descriptor errors are *resource.ConfigError.
func NewRegistry(custom ...map[string]any) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Kind)}

	builtins := []struct {
		section string
		desc    resource.Descriptor
		mapper  mapper.Mapper
	}{
		{"networks", network.Descriptor, network.Mapper{}},
		{"volumes", volume.Descriptor, volume.Mapper{}},
		{"secrets", secret.Descriptor, secret.Mapper{}},
		{"services", service.Descriptor, service.Mapper{}},
	}
	for _, b := range builtins {
		if err := r.register(b.section, b.desc, b.mapper); err != nil {
			return nil, err
		}
	}

	for i, raw := range custom {
		desc, err := resource.DescriptorFromMap(raw)
		if err != nil {
			return nil, fmt.Errorf("kinds[%d]: %w", i, err)
		}
		if err := r.register("", desc, mapper.Passthrough{}); err != nil {
			return nil, fmt.Errorf("kinds[%d]: %w", i, err)
		}
	}
	return r, nil
}

func (r *Registry) register(section string, desc resource.Descriptor, m mapper.Mapper) error {
	if _, exists := r.byName[desc.Name]; exists {
		return &resource.ConfigError{Field: "name", Value: desc.Name, Reason: "unique kind"}
	}
	factory, err := resource.NewFactory(desc)
	if err != nil {
		return err
	}
	kind := &Kind{Section: section, Descriptor: desc, Mapper: m, factory: factory}
	r.kinds = append(r.kinds, kind)
	r.byName[desc.Name] = kind
	return nil
}

// Kinds returns the kinds in up order.
func (r *Registry) Kinds() []*Kind {
	return r.kinds
}

// Lookup returns the kind called name.
func (r *Registry) Lookup(name string) (*Kind, error) {
	kind, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return kind, nil
}

// Entry is one declared resource of a stack file bound to its kind.
type Entry struct {
	Kind     *Kind
	Declared mapper.Declared
}

// Name returns the remote name of the entry.
func (e Entry) Name() string {
	if name, ok := e.Declared.Spec["Name"].(string); ok && name != "" && e.Kind.Section == "" {
		return name
	}
	return mapper.Name(e.Declared.Namespace, e.Declared.Name)
}

// Plan lists the entries of f in up order.
func (r *Registry) Plan(f *File) ([]Entry, error) {
	for kind := range f.Resources {
		k, err := r.Lookup(kind)
		if err != nil {
			return nil, fmt.Errorf("resources: %w", err)
		}
		if k.Section != "" {
			return nil, fmt.Errorf("resources: %s entries belong in the %s section", kind, k.Section)
		}
	}

	var entries []Entry
	for _, kind := range r.kinds {
		for _, name := range sortedNames(r.section(f, kind)) {
			entries = append(entries, Entry{
				Kind: kind,
				Declared: mapper.Declared{
					Namespace: f.Namespace,
					Name:      name,
					Spec:      r.section(f, kind)[name],
				},
			})
		}
	}
	return entries, nil
}

func (r *Registry) section(f *File, kind *Kind) Entries {
	switch kind.Section {
	case "networks":
		return f.Networks
	case "volumes":
		return f.Volumes
	case "secrets":
		return f.Secrets
	case "services":
		return f.Services
	}
	return f.Resources[kind.Name()]
}

func sortedNames(entries Entries) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
