package docker_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"docker-up/core/docker"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, version string) docker.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := docker.NewClient(docker.Config{Host: srv.URL, APIVersion: version, TimeoutSeconds: 5})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("UnixSocket", func(t *testing.T) {
		client, err := docker.NewClient(docker.Config{Host: "unix:///var/run/docker.sock"})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("TCP", func(t *testing.T) {
		client, err := docker.NewClient(docker.Config{Host: "tcp://127.0.0.1:2375"})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EmptyHost", func(t *testing.T) {
		_, err := docker.NewClient(docker.Config{})
		assert.Error(t, err)
	})

	t.Run("UnsupportedProtocol", func(t *testing.T) {
		_, err := docker.NewClient(docker.Config{Host: "ftp://example.com"})
		assert.Error(t, err)
	})
}

func TestClient_Get(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1.43/networks/n1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"Name":"n1","Id":"abc","Version":{"Index":12}}`)
	}, "v1.43")

	doc, err := client.Get(context.Background(), "/networks/n1", nil)
	require.NoError(t, err)

	m, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "n1", m["Name"])
	assert.Equal(t, "abc", m["Id"])
}

func TestClient_GetArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/networks", r.URL.Path)
		_, _ = io.WriteString(w, `[{"Name":"n1"},{"Name":"n2"}]`)
	}, "")

	doc, err := client.Get(context.Background(), "/networks", nil)
	require.NoError(t, err)
	list, ok := doc.([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestClient_PostWithQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/services/web/update", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "web", body["Name"])

		_, _ = io.WriteString(w, `{"Warnings":null}`)
	}, "")

	doc, err := client.Post(context.Background(), "/services/web/update", url.Values{"version": {"7"}}, map[string]any{"Name": "web"})
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestClient_DeleteNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}, "")

	doc, err := client.Delete(context.Background(), "/networks/n1")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		json    bool
		message string
		is      func(error) bool
	}{
		{"NotFoundJSON", http.StatusNotFound, `{"message":"network n1 not found"}`, true, "network n1 not found", cerrdefs.IsNotFound},
		{"ConflictPlain", http.StatusConflict, "name already in use\n", false, "name already in use", cerrdefs.IsConflict},
		{"InternalEmpty", http.StatusInternalServerError, "", false, "Internal Server Error", cerrdefs.IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.json {
					w.Header().Set("Content-Type", "application/json")
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, "")

			_, err := client.Get(context.Background(), "/networks/n1", nil)
			require.Error(t, err)
			assert.Equal(t, tt.status, docker.StatusCode(err))
			assert.True(t, tt.is(err))

			var statusErr *docker.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.message, statusErr.Message)
		})
	}
}

func TestClient_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client, err := docker.NewClient(docker.Config{Host: addr, TimeoutSeconds: 1})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/networks", nil)
	require.Error(t, err)
	assert.Equal(t, 0, docker.StatusCode(err))
	assert.False(t, docker.IsNotFound(err))
}
