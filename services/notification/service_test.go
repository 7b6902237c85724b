package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"musicminds/models"
	"musicminds/services/backend"
	"musicminds/services/listing"
	"musicminds/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationService(t *testing.T, h http.HandlerFunc) *DefaultNotificationService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := backend.NewClient(srv.URL, time.Second, nil, nil)
	return NewNotificationService(
		client,
		listing.NewListingService(client, listing.DefaultResources),
		session.NewSessionService(client, "/api/auth/me"),
	)
}

func TestMarkAllReadUsesSessionUser(t *testing.T) {
	var patched string
	svc := newNotificationService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/auth/me":
			_, _ = w.Write([]byte(`{"user":{"id":"admin-1"}}`))
		case r.Method == http.MethodPatch:
			patched = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})

	id, err := svc.MarkAllRead(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", id)
	assert.Equal(t, "/api/notifications/user/admin-1/read-all", patched)
}

func TestMarkAllReadUpstreamFailure(t *testing.T) {
	svc := newNotificationService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"data":{"id":"admin-1"}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.MarkAllRead(context.Background(), "tok")
	var ue *backend.UpstreamError
	assert.ErrorAs(t, err, &ue)
}

func TestListAndUnreadCount(t *testing.T) {
	svc := newNotificationService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications", r.URL.Path)
		if r.URL.Query().Get("read") == "false" {
			_, _ = w.Write([]byte(`{"notifications":[{"id":"n1"}],"total":4}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"n1"},{"id":"n2"}],"pagination":{"total":12}}`))
	})

	page, err := svc.List(context.Background(), "tok", models.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Pages)

	n, err := svc.UnreadCount(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
