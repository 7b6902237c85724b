package utils

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StatusClientClosedRequest is the non-standard status written when the request
// context was cancelled before the upstream answered.
const StatusClientClosedRequest = 499

// StatusError is implemented by service errors that know which HTTP status and
// browser-safe message they map to.
type StatusError interface {
	error
	HTTPStatus() int
	PublicMessage() string
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.Int("status", status), zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Details: details})
}

// RespondError maps a service error onto the gateway's error taxonomy. Unknown
// errors become a generic 500 and are only logged server-side.
func RespondError(c *gin.Context, err error) {
	var se StatusError
	switch {
	case errors.As(err, &se):
		status := se.HTTPStatus()
		if status >= http.StatusInternalServerError {
			GetLogger().Error("upstream failure", zap.Error(err), zap.String("path", c.Request.URL.Path))
		} else {
			GetLogger().Debug("request rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
		}
		c.AbortWithStatusJSON(status, ErrorResponse{Error: se.PublicMessage()})
	case errors.Is(err, context.Canceled):
		// The browser went away or a newer request superseded this one.
		c.AbortWithStatusJSON(StatusClientClosedRequest, ErrorResponse{Error: "Request cancelled"})
	case errors.Is(err, context.DeadlineExceeded):
		GetLogger().Warn("upstream timeout", zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, ErrorResponse{Error: "Upstream service timed out"})
	default:
		GetLogger().Error("internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal Server Error",
			Details: "An unexpected error occurred. Please try again later.",
		})
	}
}
