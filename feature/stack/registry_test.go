package stack_test

import (
	"testing"

	"docker-up/core/mapper"
	"docker-up/core/resource"
	"docker-up/feature/stack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindNames(r *stack.Registry) []string {
	var names []string
	for _, k := range r.Kinds() {
		names = append(names, k.Name())
	}
	return names
}

func TestNewRegistry_Builtins(t *testing.T) {
	r, err := stack.NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"network", "volume", "secret", "service"}, kindNames(r))

	k, err := r.Lookup("volume")
	require.NoError(t, err)
	assert.Equal(t, "volumes", k.Section)
	assert.Equal(t, "Volumes", k.Descriptor.ListField)

	_, err = r.Lookup("container")
	assert.ErrorIs(t, err, stack.ErrUnknownKind)
}

func TestNewRegistry_Custom(t *testing.T) {
	r, err := stack.NewRegistry(
		map[string]any{"name": "config", "hasUpdate": true, "idField": "ID"},
		map[string]any{"name": "plugin", "hasUpdate": false, "idField": "Id", "listField": nil},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"network", "volume", "secret", "service", "config", "plugin"}, kindNames(r))

	k, err := r.Lookup("config")
	require.NoError(t, err)
	assert.Empty(t, k.Section)
	assert.IsType(t, mapper.Passthrough{}, k.Mapper)
}

func TestNewRegistry_InvalidCustom(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{"Duplicate", map[string]any{"name": "network", "hasUpdate": false, "idField": "Id"}, "name"},
		{"NonStringIDField", map[string]any{"name": "config", "hasUpdate": false, "idField": 1}, "idField"},
		{"BadListField", map[string]any{"name": "config", "hasUpdate": false, "idField": "ID", "listField": []any{}}, "listField"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stack.NewRegistry(tt.raw)
			var cfgErr *resource.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), "kinds[0]")
		})
	}
}

func TestPlan(t *testing.T) {
	f := parse(t, stackYAML)
	r, err := stack.NewRegistry(f.Kinds...)
	require.NoError(t, err)

	entries, err := r.Plan(f)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Kind.Name()+"/"+e.Name())
	}
	assert.Equal(t, []string{
		"network/app_front",
		"volume/app_data",
		"secret/app_token",
		"service/app_web",
		"config/app_nginx",
	}, names)
	assert.Equal(t, "app", entries[0].Declared.Namespace)
	assert.Equal(t, "front", entries[0].Declared.Name)
}

func TestPlan_SortsEntriesOfAKind(t *testing.T) {
	f := parse(t, "networks:\n  zeta: {}\n  alpha: {}\n  mid: {}\n")
	r, err := stack.NewRegistry()
	require.NoError(t, err)

	entries, err := r.Plan(f)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].Name())
	assert.Equal(t, "mid", entries[1].Name())
	assert.Equal(t, "zeta", entries[2].Name())
}

func TestPlan_Errors(t *testing.T) {
	r, err := stack.NewRegistry()
	require.NoError(t, err)

	_, err = r.Plan(parse(t, "resources:\n  config:\n    nginx: {}\n"))
	assert.ErrorIs(t, err, stack.ErrUnknownKind)

	_, err = r.Plan(parse(t, "resources:\n  network:\n    front: {}\n"))
	assert.ErrorContains(t, err, "belong in the networks section")
}

func TestEntry_ExplicitNameOfCustomKind(t *testing.T) {
	f := parse(t, "namespace: app\nkinds:\n  - {name: config, hasUpdate: true, idField: ID}\nresources:\n  config:\n    nginx: {Name: shared_nginx}\n")
	r, err := stack.NewRegistry(f.Kinds...)
	require.NoError(t, err)

	entries, err := r.Plan(f)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shared_nginx", entries[0].Name())
}
