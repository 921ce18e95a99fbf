package model

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError wraps a non-2xx API response so callers can inspect the status.
// Message is the server-provided "message" field when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsUnauthorized reports whether err is an APIError with status 401. Every
// protected call treats 401 as "session expired, force re-login".
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusUnauthorized
}

// ErrorMessage returns the server-provided message for err, falling back to
// the given generic text when the server supplied none.
func ErrorMessage(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
