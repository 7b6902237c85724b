package handlers

import (
	"net/http"
	"strings"

	"musicminds/middleware"
	"musicminds/services/auth"
	"musicminds/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler relays the login flow and owns the accessToken cookie.
type AuthHandler struct {
	Svc          auth.AuthService
	CookieSecure bool
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc auth.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, CookieSecure: cookieSecure}
}

// Relay forwards one auth step. When the backend hands out a token it is set as
// an httpOnly cookie and removed from the JSON body.
func (h *AuthHandler) Relay(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		res, err := h.Svc.Relay(c.Request.Context(), action, body)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if res.Token != "" {
			h.setTokenCookie(c, res.Token, int(auth.CookieTTL.Seconds()))
			getLogger(c).Info("admin session started", zap.String("action", action))
		}
		c.JSON(res.Status, res.Body)
	}
}

// LogoutHandler revokes the session and clears the cookie. It succeeds even
// without a session so the browser can always reach a clean state.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	token, _ := c.Cookie(middleware.AccessTokenCookie)
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}
	if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
		getLogger(c).Error("logout failed", zap.Error(err))
	}
	h.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
