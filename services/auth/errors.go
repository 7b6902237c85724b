package auth

import (
	"fmt"
	"net/http"
)

// FieldError is a request rejected before reaching the backend.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string         { return fmt.Sprintf("auth: %s: %s", e.Field, e.Message) }
func (e *FieldError) HTTPStatus() int       { return http.StatusBadRequest }
func (e *FieldError) PublicMessage() string { return e.Message }

// UnknownActionError is returned for auth paths that are not relayed.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string         { return "auth: unknown action " + e.Action }
func (e *UnknownActionError) HTTPStatus() int       { return http.StatusNotFound }
func (e *UnknownActionError) PublicMessage() string { return "Not found" }
