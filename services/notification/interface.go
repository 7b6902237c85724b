package notification

import (
	"context"

	"musicminds/models"
	"musicminds/services/backend"
	"musicminds/services/listing"
	"musicminds/services/session"
)

const resourceName = "notifications"

// NotificationService polls and acknowledges the admin's notifications.
type NotificationService interface {
	List(ctx context.Context, token string, q models.ListQuery) (*models.Page, error)
	UnreadCount(ctx context.Context, token string) (int, error)
	MarkAllRead(ctx context.Context, token string) (string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Backend backend.Requester
	Listing listing.ListingService
	Session session.SessionService
}

// NewNotificationService wires the notification service.
func NewNotificationService(b backend.Requester, l listing.ListingService, s session.SessionService) *DefaultNotificationService {
	return &DefaultNotificationService{Backend: b, Listing: l, Session: s}
}
