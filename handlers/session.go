package handlers

import (
	"net/http"

	"musicminds/services/session"
	"musicminds/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the current admin to the dashboard.
type SessionHandler struct {
	Svc session.SessionService
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc session.SessionService) *SessionHandler {
	return &SessionHandler{Svc: svc}
}

// CurrentUserHandler serves GET /api/session.
func (h *SessionHandler) CurrentUserHandler(c *gin.Context) {
	token, ok := requireToken(c)
	if !ok {
		return
	}
	user, err := h.Svc.CurrentUser(c.Request.Context(), token)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
