package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a failed backend call: either a non-2xx HTTP response or
// an envelope with isSuccess=false. Code and Message carry the backend's
// resCode/resMessage when present.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("HTTP %d [%s]: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an Error with the
// given HTTP status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}

// IsAuthExpired reports whether err is the backend's session-expired signal.
// Call sites treat it uniformly: clear the local session and route to login.
func IsAuthExpired(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports a permission-denied response. The session stays intact.
func IsForbidden(err error) bool {
	return IsStatus(err, http.StatusForbidden)
}

// IsNotFound reports a not-found response.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// Message returns the backend's structured message verbatim when err carries
// one, else the given fallback. Validation and transport errors without a
// server message fall through to the fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
