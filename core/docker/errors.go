package docker

import (
	"errors"
	"fmt"
	"net/http"

	cerrdefs "github.com/containerd/errdefs"
)

// StatusError is returned for every failed remote call.
type StatusError struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Method and Path identify the request.
	Method string
	Path   string
	// Message is the daemon's error message, or the transport error.
	Message string

	cause error
}

func (e *StatusError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: error during connect: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: Error response from daemon (%d): %s", e.Method, e.Path, e.Status, e.Message)
}

// Unwrap returns the errdefs class matching the status code.
func (e *StatusError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return classify(e.Status)
}

// StatusCode returns the remote status carried by err, or 0 if err did not
// come from a remote call.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the daemon.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func classify(status int) error {
	switch status {
	case http.StatusBadRequest:
		return cerrdefs.ErrInvalidArgument
	case http.StatusUnauthorized:
		return cerrdefs.ErrUnauthenticated
	case http.StatusForbidden:
		return cerrdefs.ErrPermissionDenied
	case http.StatusNotFound:
		return cerrdefs.ErrNotFound
	case http.StatusConflict:
		return cerrdefs.ErrConflict
	case http.StatusNotImplemented:
		return cerrdefs.ErrNotImplemented
	case http.StatusServiceUnavailable:
		return cerrdefs.ErrUnavailable
	case 0:
		return cerrdefs.ErrUnavailable
	}
	if status >= http.StatusInternalServerError {
		return cerrdefs.ErrInternal
	}
	return cerrdefs.ErrUnknown
}
