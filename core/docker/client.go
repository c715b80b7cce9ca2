package docker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/docker/go-connections/sockets"
	"github.com/goccy/go-json"
)

// DummyHost is the Host header sent over non-TCP connections.
const DummyHost = "api.moby.localhost"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

// Client defines the transport used by the reconciliation engine.
// Responses are decoded JSON documents: map[string]any, []any or nil.
type Client interface {
	// Get fetches path.
	Get(ctx context.Context, path string, query url.Values) (any, error)
	// Post sends body as JSON to path.
	Post(ctx context.Context, path string, query url.Values, body any) (any, error)
	// Delete removes the resource at path.
	Delete(ctx context.Context, path string) (any, error)
}

type httpClient struct {
	client  *http.Client
	scheme  string
	host    string
	proto   string
	version string
}

// NewClient creates a Docker Engine client for cfg.Host.
func NewClient(cfg Config) (Client, error) {
	proto, addr, err := parseHost(cfg.Host)
	if err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if err := sockets.ConfigureTransport(transport, proto, addr); err != nil {
		return nil, fmt.Errorf("failed to configure transport for %s: %w", cfg.Host, err)
	}
	if proto == "tcp" {
		transport.DialContext = (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext
	}

	c := &httpClient{
		client:  &http.Client{Transport: transport},
		scheme:  "http",
		host:    addr,
		proto:   proto,
		version: strings.TrimPrefix(cfg.APIVersion, "v"),
	}
	if strings.HasPrefix(cfg.Host, "https://") {
		c.scheme = "https"
	}
	if proto == "unix" || proto == "npipe" {
		c.host = DummyHost
	}
	return c, nil
}

// parseHost splits a daemon address into protocol and address.
// http:// and https:// addresses are treated as tcp.
func parseHost(host string) (string, string, error) {
	if host == "" {
		return "", "", fmt.Errorf("docker host is empty")
	}
	proto, addr, ok := strings.Cut(host, "://")
	if !ok || addr == "" {
		return "", "", fmt.Errorf("unable to parse docker host %q", host)
	}
	switch proto {
	case "unix", "npipe":
		return proto, addr, nil
	case "tcp", "http", "https":
		if u, err := url.Parse("tcp://" + addr); err == nil && u.Host != "" {
			addr = u.Host
		}
		return "tcp", addr, nil
	}
	return "", "", fmt.Errorf("protocol not supported in docker host %q", host)
}

func (c *httpClient) Get(ctx context.Context, path string, query url.Values) (any, error) {
	return c.send(ctx, http.MethodGet, path, query, nil)
}

func (c *httpClient) Post(ctx context.Context, path string, query url.Values, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.send(ctx, http.MethodPost, path, query, reader)
}

func (c *httpClient) Delete(ctx context.Context, path string) (any, error) {
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}

func (c *httpClient) apiPath(path string, query url.Values) string {
	if c.version != "" {
		path = "/v" + c.version + path
	}
	u := url.URL{Path: path}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *httpClient) send(ctx context.Context, method, path string, query url.Values, body io.Reader) (any, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiPath(path, query), body)
	if err != nil {
		return nil, &StatusError{Method: method, Path: path, Message: err.Error(), cause: err}
	}
	req.URL.Scheme = c.scheme
	req.URL.Host = c.host
	req.Host = c.host
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &StatusError{Method: method, Path: path, Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusBadRequest {
		return nil, responseError(method, path, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &StatusError{Method: method, Path: path, Message: err.Error(), cause: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return doc, nil
}

// responseError builds a StatusError from a failed response, preferring the
// daemon's {"message": ...} body.
func responseError(method, path string, resp *http.Response) error {
	statusErr := &StatusError{Status: resp.StatusCode, Method: method, Path: path}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		statusErr.Message = http.StatusText(resp.StatusCode)
		return statusErr
	}

	var errorResponse struct {
		Message string `json:"message"`
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(body, &errorResponse); err == nil && errorResponse.Message != "" {
			statusErr.Message = strings.TrimSpace(errorResponse.Message)
			return statusErr
		}
	}
	statusErr.Message = strings.TrimSpace(string(body))
	return statusErr
}
