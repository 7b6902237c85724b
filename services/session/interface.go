package session

import (
	"context"
	"time"

	"musicminds/models"
	"musicminds/services/backend"
)

// Store remembers tokens revoked by logout until they would have expired anyway.
type Store interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// SessionService resolves who the current admin is.
type SessionService interface {
	CurrentUser(ctx context.Context, token string) (*models.SessionUser, error)
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Backend backend.Requester
	// Path of the backend "current user" endpoint.
	Path string
}

// NewSessionService creates a session service.
func NewSessionService(b backend.Requester, path string) *DefaultSessionService {
	if path == "" {
		path = "/api/auth/me"
	}
	return &DefaultSessionService{Backend: b, Path: path}
}
