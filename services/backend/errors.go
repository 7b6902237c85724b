package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthenticated is returned when no bearer token is available for a call that
// needs one.
var ErrUnauthenticated = &AuthError{}

// AuthError maps to 401 with a login prompt message.
type AuthError struct{}

func (e *AuthError) Error() string         { return "authentication required" }
func (e *AuthError) HTTPStatus() int       { return http.StatusUnauthorized }
func (e *AuthError) PublicMessage() string { return "Authentication required" }

// ErrResponseTooLarge replaces a reply that would not fit in memory. Relaying a
// truncated body would look like success.
var ErrResponseTooLarge = &UpstreamError{Status: http.StatusBadGateway, Message: "Backend response too large"}

// UpstreamError is a non-2xx answer from the backend.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// HTTPStatus passes client errors through; server-side failures become 502.
func (e *UpstreamError) HTTPStatus() int {
	if e.Status >= 400 && e.Status < 500 {
		return e.Status
	}
	return http.StatusBadGateway
}

func (e *UpstreamError) PublicMessage() string { return e.Message }

// NetworkError wraps a transport failure talking to the backend.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string         { return "backend unreachable: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error         { return e.Err }
func (e *NetworkError) HTTPStatus() int       { return http.StatusBadGateway }
func (e *NetworkError) PublicMessage() string { return "Backend service unavailable" }

// IsStatus reports whether err is an UpstreamError carrying the given status.
func IsStatus(err error, status int) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Status == status
}

// NewUpstreamError pulls a message out of an error body, tolerating empty and
// non-JSON bodies.
func NewUpstreamError(status int, body []byte) *UpstreamError {
	return &UpstreamError{Status: status, Message: errorMessage(status, body)}
}

func errorMessage(status int, body []byte) string {
	var parsed map[string]any
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		for _, key := range []string{"message", "error", "msg"} {
			switch v := parsed[key].(type) {
			case string:
				if strings.TrimSpace(v) != "" {
					return v
				}
			case map[string]any:
				if m, ok := v["message"].(string); ok && m != "" {
					return m
				}
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("Request failed: %s", text)
	}
	return "Request failed"
}
