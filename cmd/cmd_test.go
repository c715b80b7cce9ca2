package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"docker-up/feature/stack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeEngine serves the network endpoints of the Engine API from memory.
type fakeEngine struct {
	mu       sync.Mutex
	networks map[string]map[string]any
}

func (e *fakeEngine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.mu.Lock()
	defer e.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	name := strings.TrimPrefix(r.URL.Path, "/networks/")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/networks/create":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["Id"] = "id-" + body["Name"].(string)
		e.networks[body["Name"].(string)] = body
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"Id": body["Id"], "Warning": ""})
	case r.Method == http.MethodGet && e.networks[name] != nil:
		_ = json.NewEncoder(w).Encode(e.networks[name])
	case r.Method == http.MethodDelete && e.networks[name] != nil:
		delete(e.networks, name)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "network " + name + " not found"})
	}
}

func setup(t *testing.T) (*fakeEngine, string) {
	t.Helper()
	engine := &fakeEngine{networks: map[string]map[string]any{}}
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	for _, key := range []string{"DATABASE_ENABLED", "STORAGE_ENABLED", "DOCKER_API_VERSION"} {
		t.Setenv(key, "")
	}
	t.Setenv("DOCKER_HOST", srv.URL)
	t.Setenv("LOG_LEVEL", "error")

	file := filepath.Join(dir, "stack.yml")
	require.NoError(t, os.WriteFile(file, []byte("namespace: app\nnetworks:\n  front:\n    driver: overlay\n    attachable: true\n"), 0o600))
	return engine, dir
}

func execute(t *testing.T, dir string, args ...string) (*stack.Report, error) {
	t.Helper()
	diffExitCode = false

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(append(args, "--config", dir, "-o", "json", "-f", filepath.Join(dir, "stack.yml")))
	err := RootCmd.ExecuteContext(context.Background())

	if out.Len() == 0 {
		return nil, err
	}
	var report stack.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	return &report, err
}

func TestStackCommands(t *testing.T) {
	engine, dir := setup(t)

	report, err := execute(t, dir, "up")
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "app_front", report.Results[0].Name)
	assert.Equal(t, stack.StatusOK, report.Results[0].Status)
	assert.Contains(t, engine.networks, "app_front")

	report, err = execute(t, dir, "diff", "--exit-code")
	require.NoError(t, err)
	assert.Equal(t, stack.StatusInSync, report.Results[0].Status)

	report, err = execute(t, dir, "down")
	require.NoError(t, err)
	assert.Equal(t, stack.StatusOK, report.Results[0].Status)
	assert.Empty(t, engine.networks)

	report, err = execute(t, dir, "diff", "--exit-code")
	assert.ErrorIs(t, err, errDrift)
	require.NotNil(t, report)
	assert.Equal(t, stack.StatusMissing, report.Results[0].Status)
}

func TestStackCommands_MissingFile(t *testing.T) {
	_, dir := setup(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "stack.yml")))

	report, err := execute(t, dir, "up")
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestPrintReport_Log(t *testing.T) {
	outputFormat = "log"
	t.Cleanup(func() { outputFormat = "log" })

	var out bytes.Buffer
	report := &stack.Report{Action: stack.ActionUp, Results: []stack.Result{{Kind: "network", Name: "app_front", Status: stack.StatusOK}}}
	require.NoError(t, printReport(zap.NewNop(), &out, report))
	assert.Empty(t, out.String(), "log format writes through the logger only")
	assert.NoError(t, printReport(zap.NewNop(), &out, nil))
}
