package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken means no access token is configured. The caller must route
	// to login instead of issuing the request; the client itself refuses to
	// send unauthenticated calls.
	ErrNoToken = errors.New("no access token configured")

	// ErrUnauthorized wraps any 401/403 from the backend. Views treat it as
	// an expired session and route to login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound wraps a 404.
	ErrNotFound = errors.New("not found")
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Path, e.StatusCode)
}

// Unwrap maps auth failures and 404s onto the package sentinels so callers
// can errors.Is against them.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case 401, 403:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	}
	return nil
}
