package middleware

import (
	"net/http"
	"strings"

	"musicminds/models"
	"musicminds/services/session"
	"musicminds/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	credentialKey = "credential"
	// AccessTokenCookie is the httpOnly cookie set by the verify step.
	AccessTokenCookie = "accessToken"
)

// CookieAuth reads the bearer token once per request, from the accessToken cookie
// or an Authorization header, and stores a typed credential in the context.
// Requests without a live token stop here with 401.
func CookieAuth(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Authentication required"})
			return
		}

		if store != nil {
			revoked, err := store.IsRevoked(c.Request.Context(), token)
			if err != nil {
				// Treat a store outage as a miss; the backend still validates the token.
				zap.L().Warn("session store lookup failed", zap.Error(err))
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Session has ended, please log in again"})
				return
			}
		}

		cred := models.Credential{Token: token}
		if sub, err := session.SubjectFromToken(token); err == nil {
			cred.Subject = sub
		}
		c.Set(credentialKey, cred)
		c.Next()
	}
}

// CredentialFrom returns the credential CookieAuth stored.
func CredentialFrom(c *gin.Context) (models.Credential, bool) {
	v, ok := c.Get(credentialKey)
	if !ok {
		return models.Credential{}, false
	}
	cred, ok := v.(models.Credential)
	return cred, ok && cred.Token != ""
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie)
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
