package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"musicminds/models"
	"musicminds/services/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, h http.HandlerFunc) *DefaultListingService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewListingService(backend.NewClient(srv.URL, time.Second, nil, nil), DefaultResources)
}

func TestFetchPageBookingsScenario(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery, gotAuth = r.URL.Path, r.URL.RawQuery, r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":{"data":[{"id":"1"},{"id":"2"}]},"meta":{"total":2}}`))
	})

	page, err := svc.FetchPage(context.Background(), "tok", "bookings", models.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "/api/bookings", gotPath)
	assert.Equal(t, "limit=10&page=1", gotQuery)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
	assert.True(t, page.HasTotal)
	assert.Equal(t, 1, page.Pages)

	v := NewView(10)
	_, err = v.Load(context.Background(), models.ListQuery{Page: 1}, func(ctx context.Context, q models.ListQuery) (*models.Page, error) {
		return svc.FetchPage(ctx, "tok", "bookings", q)
	})
	require.NoError(t, err)
	assert.Len(t, v.Page().Items, 2)
	assert.Equal(t, "1–2 of 2", v.Summary())
	assert.Equal(t, []int{1}, v.Window().Numbers)
}

func TestFetchPageEncodesFilters(t *testing.T) {
	var got map[string][]string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := svc.FetchPage(context.Background(), "tok", "audit-logs", models.ListQuery{
		Search: " jazz ",
		Status: "all",
		From:   "2024-01-01",
		Extra:  map[string]string{"action": "DELETE", "empty": ""},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"jazz"}, got["search"])
	assert.Equal(t, []string{"2024-01-01"}, got["startDate"])
	assert.Equal(t, []string{"DELETE"}, got["action"])
	assert.Equal(t, []string{"1"}, got["page"])
	assert.Equal(t, []string{"10"}, got["limit"])
	assert.NotContains(t, got, "status")
	assert.NotContains(t, got, "empty")
}

func TestFetchPageComputesPages(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reviews":[{"id":"r1"}],"total":11}`))
	})

	page, err := svc.FetchPage(context.Background(), "tok", "reviews", models.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, 3, page.Pages)
}

func TestFetchPageWithoutTotal(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"u1"},{"id":"u2"}]`))
	})

	page, err := svc.FetchPage(context.Background(), "tok", "users", models.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasTotal)
}

func TestFetchPageErrors(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"admins only"}`))
	})

	_, err := svc.FetchPage(context.Background(), "tok", "users", models.ListQuery{})
	var ue *backend.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "admins only", ue.Message)

	_, err = svc.FetchPage(context.Background(), "tok", "secrets", models.ListQuery{})
	var unknown *UnknownResourceError
	assert.ErrorAs(t, err, &unknown)

	_, err = svc.FetchPage(context.Background(), "", "users", models.ListQuery{})
	assert.ErrorIs(t, err, backend.ErrUnauthenticated)
}
