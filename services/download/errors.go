package download

import (
	"errors"
	"net/http"
)

// RelayError is a download failure with the status the gateway answers with.
type RelayError struct {
	Status  int
	Message string
}

func (e *RelayError) Error() string         { return "download: " + e.Message }
func (e *RelayError) HTTPStatus() int       { return e.Status }
func (e *RelayError) PublicMessage() string { return e.Message }

var (
	ErrMissingURL     = &RelayError{Status: http.StatusBadRequest, Message: "fileUrl is required"}
	ErrBadURL         = &RelayError{Status: http.StatusBadRequest, Message: "fileUrl must be an absolute http(s) URL"}
	ErrHostNotAllowed = &RelayError{Status: http.StatusForbidden, Message: "File host is not allowed"}
	ErrTooLarge       = &RelayError{Status: http.StatusBadGateway, Message: "File too large to relay"}
)

// IsTooLarge reports whether err stems from the size limit.
func IsTooLarge(err error) bool {
	return errors.Is(err, ErrTooLarge)
}
