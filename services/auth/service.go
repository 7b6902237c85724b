package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"musicminds/services/backend"
	"musicminds/services/session"

	"go.uber.org/zap"
)

// requiredFields lists what each action must carry; the backend path is
// /api/auth/<action>.
var requiredFields = map[string][]string{
	ActionLogin:         {"email", "password"},
	ActionVerify:        {"email", "otp"},
	ActionResend:        {"email"},
	ActionForgot:        {"email"},
	ActionResetPassword: {"password"},
}

var tokenKeys = []string{"token", "accessToken", "access_token"}

// Relay validates body and forwards it to the backend auth endpoint.
func (s *DefaultAuthService) Relay(ctx context.Context, action string, body []byte) (*Result, error) {
	required, ok := requiredFields[action]
	if !ok {
		return nil, &UnknownActionError{Action: action}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return nil, &FieldError{Field: "body", Message: "Request body must be a JSON object"}
	}
	for _, field := range required {
		if v, _ := payload[field].(string); strings.TrimSpace(v) == "" {
			return nil, &FieldError{Field: field, Message: field + " is required"}
		}
	}

	resp, err := s.Backend.Do(ctx, backend.Request{
		Method:  http.MethodPost,
		Path:    "/api/auth/" + action,
		RawBody: body,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, backend.NewUpstreamError(resp.Status, resp.Body)
	}

	res := &Result{Status: resp.Status, Body: map[string]any{}}
	if len(bytes.TrimSpace(resp.Body)) > 0 {
		if err := json.Unmarshal(resp.Body, &res.Body); err != nil {
			res.Body = map[string]any{"message": strings.TrimSpace(string(resp.Body))}
		}
	}
	res.Token = liftToken(res.Body)
	return res, nil
}

// liftToken removes the JWT from the body so browser scripts never see it.
func liftToken(body map[string]any) string {
	scopes := []map[string]any{body}
	if inner, ok := body["data"].(map[string]any); ok {
		scopes = append(scopes, inner)
	}
	var token string
	for _, scope := range scopes {
		for _, key := range tokenKeys {
			if v, ok := scope[key].(string); ok && v != "" {
				if token == "" {
					token = v
				}
				delete(scope, key)
			}
		}
	}
	return token
}

// Logout revokes token locally and tells the backend. A backend failure does not
// stop the logout.
func (s *DefaultAuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Store.Revoke(ctx, token, session.RemainingLifetime(token, CookieTTL)); err != nil {
		return err
	}
	err := s.Backend.JSON(ctx, backend.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/logout",
		Token:  token,
	}, nil)
	if err != nil {
		zap.L().Warn("auth: backend logout failed", zap.Error(err))
	}
	return nil
}
