package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of docker.Client
type Client struct {
	mock.Mock
}

func (m *Client) Get(ctx context.Context, path string, query url.Values) (any, error) {
	args := m.Called(ctx, path, query)
	return args.Get(0), args.Error(1)
}

func (m *Client) Post(ctx context.Context, path string, query url.Values, body any) (any, error) {
	args := m.Called(ctx, path, query, body)
	return args.Get(0), args.Error(1)
}

func (m *Client) Delete(ctx context.Context, path string) (any, error) {
	args := m.Called(ctx, path)
	return args.Get(0), args.Error(1)
}
