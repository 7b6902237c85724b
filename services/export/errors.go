package export

import (
	"fmt"
	"net/http"
)

// ValidationError rejects an export request before any upstream call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid export request: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) HTTPStatus() int       { return http.StatusBadRequest }
func (e *ValidationError) PublicMessage() string { return e.Message }
