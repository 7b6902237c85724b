package auth

import (
	"context"
	"time"

	"musicminds/services/backend"
	"musicminds/services/session"
)

// Auth actions relayed to the backend.
const (
	ActionLogin         = "login"
	ActionVerify        = "verify"
	ActionResend        = "resend"
	ActionForgot        = "forgot"
	ActionResetPassword = "reset-password"
)

// CookieName is the httpOnly cookie holding the backend JWT.
const CookieName = "accessToken"

// CookieTTL matches the backend token lifetime.
const CookieTTL = time.Hour

// AuthService relays the email + password → OTP → JWT flow.
type AuthService interface {
	Relay(ctx context.Context, action string, body []byte) (*Result, error)
	Logout(ctx context.Context, token string) error
}

// Result is the backend reply with any token lifted out of the body.
type Result struct {
	Status int
	Token  string
	Body   map[string]any
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Backend backend.Requester
	Store   session.Store
}

// NewAuthService creates an auth relay.
func NewAuthService(b backend.Requester, store session.Store) *DefaultAuthService {
	return &DefaultAuthService{Backend: b, Store: store}
}
