package handlers

import (
	"net/http"

	"musicminds/models"
	"musicminds/services/listing"
	"musicminds/services/notification"
	"musicminds/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the notification bell.
type NotificationHandler struct {
	Svc notification.NotificationService
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Svc: svc}
}

// ListNotificationsHandler returns one page of notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	token, ok := requireToken(c)
	if !ok {
		return
	}
	var q models.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}
	q.Extra = listing.ExtraParams(c.Request.URL.Query())

	page, err := h.Svc.List(c.Request.Context(), token, q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UnreadCountHandler powers the badge poll.
func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	token, ok := requireToken(c)
	if !ok {
		return
	}
	n, err := h.Svc.UnreadCount(c.Request.Context(), token)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// MarkAllReadHandler acknowledges every notification of the current admin.
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	token, ok := requireToken(c)
	if !ok {
		return
	}
	userID, err := h.Svc.MarkAllRead(c.Request.Context(), token)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "userId": userID})
}
