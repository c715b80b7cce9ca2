package stack_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"docker-up/core/docker"
	"docker-up/core/utils"
)

// fakeDaemon is an in-memory Engine API keyed by collection and name.
type fakeDaemon struct {
	mu      sync.Mutex
	objects map[string]map[string]map[string]any
	calls   []string
	fail    map[string]error
	seq     int
}

func newFakeDaemon() *fakeDaemon {
	return &fakeDaemon{
		objects: make(map[string]map[string]map[string]any),
		fail:    make(map[string]error),
	}
}

func (d *fakeDaemon) mutations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, call := range d.calls {
		if !strings.HasPrefix(call, "GET ") {
			out = append(out, call)
		}
	}
	return out
}

func (d *fakeDaemon) state(collection, name string) map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.objects[collection][name]
}

func (d *fakeDaemon) begin(method, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, method+" "+path)
	return d.fail[method+" "+path]
}

func notFound(method, path string) error {
	return &docker.StatusError{Status: http.StatusNotFound, Method: method, Path: path, Message: "no such object"}
}

func split(path string) []string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, part := range parts {
		parts[i], _ = url.PathUnescape(part)
	}
	return parts
}

func (d *fakeDaemon) Get(ctx context.Context, path string, query url.Values) (any, error) {
	if err := d.begin(http.MethodGet, path); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	parts := split(path)
	if len(parts) == 1 {
		items := make([]any, 0)
		for _, state := range d.objects[parts[0]] {
			items = append(items, state)
		}
		if parts[0] == "volumes" {
			return map[string]any{"Volumes": items, "Warnings": nil}, nil
		}
		return items, nil
	}

	state, ok := d.objects[parts[0]][parts[1]]
	if !ok {
		return nil, notFound(http.MethodGet, path)
	}
	return state, nil
}

func (d *fakeDaemon) Post(ctx context.Context, path string, query url.Values, body any) (any, error) {
	if err := d.begin(http.MethodPost, path); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	parts := split(path)
	doc := utils.ToMap(body)
	collection := parts[0]
	if d.objects[collection] == nil {
		d.objects[collection] = make(map[string]map[string]any)
	}

	if len(parts) == 3 && parts[2] == "update" {
		state, ok := d.objects[collection][parts[1]]
		if !ok {
			return nil, notFound(http.MethodPost, path)
		}
		index := utils.ToInt(utils.ToMap(state["Version"])["Index"])
		if query.Get("version") != fmt.Sprint(index) {
			return nil, &docker.StatusError{Status: http.StatusInternalServerError, Method: http.MethodPost, Path: path, Message: "update out of sequence"}
		}
		state["Spec"] = doc
		state["Version"] = map[string]any{"Index": float64(index + 1)}
		return map[string]any{"Warnings": nil}, nil
	}

	d.seq++
	id := fmt.Sprintf("%s-%d", collection, d.seq)
	name := utils.ToString(doc["Name"])

	switch collection {
	case "networks":
		state := clone(doc)
		state["Id"] = id
		d.objects[collection][name] = state
		return map[string]any{"Id": id, "Warning": ""}, nil
	case "volumes":
		state := clone(doc)
		if opts, ok := state["DriverOpts"]; ok {
			state["Options"] = opts
			delete(state, "DriverOpts")
		}
		d.objects[collection][name] = state
		return state, nil
	default:
		d.objects[collection][name] = map[string]any{
			"ID":      id,
			"Version": map[string]any{"Index": float64(1)},
			"Spec":    doc,
		}
		return map[string]any{"ID": id}, nil
	}
}

func (d *fakeDaemon) Delete(ctx context.Context, path string) (any, error) {
	if err := d.begin(http.MethodDelete, path); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	parts := split(path)
	if _, ok := d.objects[parts[0]][parts[1]]; !ok {
		return nil, notFound(http.MethodDelete, path)
	}
	delete(d.objects[parts[0]], parts[1])
	return nil, nil
}

func clone(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
