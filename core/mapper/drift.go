package mapper

import (
	"fmt"
	"reflect"
	"sort"

	"docker-up/core/resource"
	"docker-up/core/utils"
)

// Drift lists the fields of want that got does not match, one
// "path: want=x got=y" entry per mismatch, sorted by path.
// Fields present only in got are ignored: the daemon fills in defaults.
func Drift(want, got resource.Document) []string {
	var out []string
	drift("", normalize(want), normalize(got), &out)
	sort.Strings(out)
	return out
}

func drift(path string, want, got any, out *[]string) {
	wantMap, wantIsMap := want.(map[string]any)
	gotMap, gotIsMap := got.(map[string]any)
	if wantIsMap && (gotIsMap || got == nil) {
		for key, value := range wantMap {
			drift(join(path, key), value, gotMap[key], out)
		}
		return
	}
	if !reflect.DeepEqual(want, got) {
		*out = append(*out, fmt.Sprintf("%s: want=%v got=%v", path, render(want), render(got)))
	}
}

// normalize converts decoded documents to a comparable shape: mappings to
// map[string]any and every number to float64.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any, map[any]any, map[string]string:
		m := utils.ToMap(v)
		out := make(map[string]any, len(m))
		for k, item := range m {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	}
	return value
}

func render(value any) string {
	if value == nil {
		return "<none>"
	}
	return fmt.Sprintf("%v", value)
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
