package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrMalformed    = errors.New("malformed response")
)

// APIError is a non-2xx response. Message carries the server-provided
// errorMessage (or message) verbatim when the body had one.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Unwrap exposes the sentinel kind so errors.Is(err, ErrUnauthorized) works.
func (e *APIError) Unwrap() error { return e.kind }

// UserMessage returns the text to show next to a form: the server's message
// if present, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsAuthError reports whether err means the stored token was rejected.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
