package stack_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"docker-up/core/storage/mocks"
	"docker-up/feature/stack"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *fakeDaemon, *mocks.Client) {
	t.Helper()
	daemon := newFakeDaemon()
	store := new(mocks.Client)
	svc := stack.NewService(daemon, store, nil, zap.NewNop())

	app := fiber.New()
	stack.NewHandler(svc).RegisterRoutes(app)
	return app, daemon, store
}

func post(t *testing.T, app *fiber.App, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/yaml")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleUp(t *testing.T) {
	app, daemon, _ := setupTestApp(t)

	status, body := post(t, app, "/stack/up", stackYAML)
	assert.Equal(t, 200, status)
	assert.Equal(t, "up", body["action"])
	assert.Len(t, body["results"], 5)
	assert.Len(t, daemon.mutations(), 5)
}

func TestHandleUp_Failure(t *testing.T) {
	app, daemon, _ := setupTestApp(t)
	daemon.fail["POST /networks/create"] = io.ErrUnexpectedEOF

	status, body := post(t, app, "/stack/up", "namespace: app\nnetworks:\n  front: {}\n")
	assert.Equal(t, 500, status)
	assert.Contains(t, body["error"], "unexpected EOF")
	assert.NotNil(t, body["report"])
}

func TestHandleDiff(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status, body := post(t, app, "/stack/diff", "namespace: app\nnetworks:\n  front: {}\n")
	assert.Equal(t, 200, status)
	results := body["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "missing", results[0].(map[string]any)["status"])
}

func TestHandleDown_FromObjectStorage(t *testing.T) {
	app, daemon, store := setupTestApp(t)
	store.On("GetObject", mock.Anything, "stacks", "app.yaml", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("namespace: app\nnetworks:\n  front: {}\n"))), nil)

	status, body := post(t, app, "/stack/down?location=s3://stacks/app.yaml", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "down", body["action"])
	assert.Empty(t, daemon.mutations())
	store.AssertExpectations(t)
}

func TestHandleStack_BadRequests(t *testing.T) {
	app, daemon, _ := setupTestApp(t)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"EmptyBody", "/stack/up", ""},
		{"UnknownKey", "/stack/up", "containers: {}\n"},
		{"LocalLocation", "/stack/up?location=/etc/stack.yaml", ""},
		{"InvalidKind", "/stack/up", "kinds:\n  - {name: config}\n"},
		{"InvalidEntry", "/stack/up", "services:\n  web: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, app, tt.target, tt.body)
			assert.Equal(t, 400, status)
			assert.NotEmpty(t, body["error"])
		})
	}
	assert.Empty(t, daemon.calls)
}

func TestHandleList(t *testing.T) {
	app, _, _ := setupTestApp(t)
	post(t, app, "/stack/up", "namespace: app\nnetworks:\n  front: {}\n")

	resp, err := app.Test(httptest.NewRequest("GET", "/resources/network?namespace=app", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var states []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&states))
	require.Len(t, states, 1)
	assert.Equal(t, "app_front", states[0]["Name"])

	resp, err = app.Test(httptest.NewRequest("GET", "/resources/container", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleInspect(t *testing.T) {
	app, _, _ := setupTestApp(t)
	post(t, app, "/stack/up", "namespace: app\nnetworks:\n  front: {}\n")

	resp, err := app.Test(httptest.NewRequest("GET", "/resources/network/app_front", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/resources/network/ghost", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleHistory(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/history?limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var records []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	assert.Empty(t, records)
}
