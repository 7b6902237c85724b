package notification

import (
	"context"
	"net/http"
	"net/url"

	"musicminds/models"
	"musicminds/services/backend"
)

// List returns one page of notifications, newest first as the backend sorts them.
func (s *DefaultNotificationService) List(ctx context.Context, token string, q models.ListQuery) (*models.Page, error) {
	return s.Listing.FetchPage(ctx, token, resourceName, q)
}

// UnreadCount asks for a single unread row and reads the total from the envelope.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, token string) (int, error) {
	page, err := s.Listing.FetchPage(ctx, token, resourceName, models.ListQuery{
		Page:  1,
		Limit: 1,
		Extra: map[string]string{"read": "false"},
	})
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

// MarkAllRead marks every notification of the current admin as read and returns
// that admin's id. The id comes from the session endpoint, not the token.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, token string) (string, error) {
	user, err := s.Session.CurrentUser(ctx, token)
	if err != nil {
		return "", err
	}
	err = s.Backend.JSON(ctx, backend.Request{
		Method: http.MethodPatch,
		Path:   "/api/notifications/user/" + url.PathEscape(user.ID) + "/read-all",
		Token:  token,
	}, nil)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
