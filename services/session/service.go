package session

import (
	"context"
	"net/http"

	"musicminds/models"
	"musicminds/services/backend"

	"go.uber.org/zap"
)

// CurrentUser asks the backend who owns token. Backends without a session
// endpoint answer 404; only then is the user id read from the token payload.
func (s *DefaultSessionService) CurrentUser(ctx context.Context, token string) (*models.SessionUser, error) {
	if token == "" {
		return nil, backend.ErrUnauthenticated
	}

	var body map[string]any
	err := s.Backend.JSON(ctx, backend.Request{Path: s.Path, Token: token}, &body)
	switch {
	case err == nil:
		if user := userFromBody(body); user != nil {
			return user, nil
		}
	case backend.IsStatus(err, http.StatusNotFound), backend.IsStatus(err, http.StatusMethodNotAllowed), backend.IsStatus(err, http.StatusNotImplemented):
	default:
		return nil, err
	}

	id, err := SubjectFromToken(token)
	if err != nil {
		zap.L().Warn("session: no user id from backend or token", zap.Error(err))
		return nil, backend.ErrUnauthenticated
	}
	return &models.SessionUser{ID: id}, nil
}

// userFromBody unwraps {data: {user: {...}}} and its shallower variants.
func userFromBody(body map[string]any) *models.SessionUser {
	obj := body
	for _, key := range []string{"data", "user"} {
		if inner, ok := obj[key].(map[string]any); ok {
			obj = inner
		}
	}
	id := claimString(obj, []string{"id", "_id", "userId"})
	if id == "" {
		return nil
	}
	str := func(key string) string {
		s, _ := obj[key].(string)
		return s
	}
	name := str("name")
	if name == "" {
		name = str("fullName")
	}
	return &models.SessionUser{ID: id, Email: str("email"), Name: name, Role: str("role")}
}
