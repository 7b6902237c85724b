package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"musicminds/models"
	"musicminds/services/backend"
	"musicminds/services/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls   atomic.Int32
	lastJob models.ExportJob
	handler http.HandlerFunc
}

func newService(t *testing.T, fb *fakeBackend) *DefaultExportService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.calls.Add(1)
		fb.handler(w, r)
	}))
	t.Cleanup(srv.Close)
	client := backend.NewClient(srv.URL, time.Second, nil, nil)
	return NewExportService(client, listing.NewListingService(client, listing.DefaultResources), "/api/exports", 3)
}

func TestCreateRejectsBeforeUpstream(t *testing.T) {
	fb := &fakeBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call %s", r.URL.Path)
	}}
	svc := newService(t, fb)

	tests := []struct {
		name  string
		req   models.ExportRequest
		field string
	}{
		{"unknown format", models.ExportRequest{Data: []models.Record{{"a": 1}}, Format: "docx"}, "format"},
		{"upper-case format", models.ExportRequest{Data: []models.Record{{"a": 1}}, Format: "PDF"}, "format"},
		{"empty data", models.ExportRequest{Data: []models.Record{}, Format: "csv"}, "data"},
		{"missing data", models.ExportRequest{Format: "excel"}, "data"},
		{"filtered to nothing", models.ExportRequest{
			Data:   []models.Record{{"status": "active"}},
			Format: "csv",
			Filter: &models.ExportFilter{Status: "banned"},
		}, "data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "tok", tt.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, http.StatusBadRequest, ve.HTTPStatus())
		})
	}
	assert.Zero(t, fb.calls.Load())
}

func TestCreateUnwrapsNestedResult(t *testing.T) {
	fb := &fakeBackend{}
	fb.handler = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/exports", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&fb.lastJob))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"url":"http://x/y.pdf","filename":"y.pdf"}}`))
	}
	svc := newService(t, fb)

	res, err := svc.Create(context.Background(), "tok", models.ExportRequest{
		Data:    []models.Record{{"a": 1}},
		Format:  models.FormatPDF,
		Options: models.ExportOptions{Filename: "x", Orientation: "landscape"},
	})
	require.NoError(t, err)

	assert.Equal(t, "http://x/y.pdf", res.URL)
	assert.Equal(t, "y.pdf", res.Filename)
	assert.Equal(t, "pdf", res.Format)
	assert.Equal(t, "x", fb.lastJob.Options.Filename)
	assert.Equal(t, "landscape", fb.lastJob.Options.Orientation)
	require.Len(t, fb.lastJob.Data, 1)
}

func TestCreateFlatResultAndFilenameFallback(t *testing.T) {
	fb := &fakeBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"url":"https://files/abc","size":"2048"}`))
	}}
	svc := newService(t, fb)

	res, err := svc.Create(context.Background(), "tok", models.ExportRequest{
		Data:    []models.Record{{"a": 1}},
		Format:  models.FormatExcel,
		Options: models.ExportOptions{Filename: "users-report"},
	})
	require.NoError(t, err)
	assert.Equal(t, "users-report.xlsx", res.Filename)
	assert.Equal(t, int64(2048), res.Size)
	assert.Equal(t, "excel", res.Format)
}

func TestCreateMissingURL(t *testing.T) {
	fb := &fakeBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"filename":"y.pdf"}}`))
	}}
	svc := newService(t, fb)

	_, err := svc.Create(context.Background(), "tok", models.ExportRequest{Data: []models.Record{{"a": 1}}, Format: "pdf"})
	var ue *backend.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadGateway, ue.HTTPStatus())
}

func TestCreateAppliesClientFilter(t *testing.T) {
	fb := &fakeBackend{}
	fb.handler = func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&fb.lastJob))
		_, _ = w.Write([]byte(`{"url":"http://x/u.csv"}`))
	}
	svc := newService(t, fb)

	_, err := svc.Create(context.Background(), "tok", models.ExportRequest{
		Data: []models.Record{
			{"id": "1", "status": "Active", "createdAt": "2024-03-01T10:00:00Z"},
			{"id": "2", "status": "banned", "createdAt": "2024-03-02T10:00:00Z"},
			{"id": "3", "status": "active", "createdAt": "2024-05-01T10:00:00Z"},
		},
		Format: "csv",
		Filter: &models.ExportFilter{Status: "active", From: "2024-03-01", To: "2024-03-31"},
	})
	require.NoError(t, err)
	require.Len(t, fb.lastJob.Data, 1)
	assert.Equal(t, "1", fb.lastJob.Data[0]["id"])
}

func TestCreateDelegatesFilterToBackend(t *testing.T) {
	const total = 250
	var listCalls atomic.Int32
	fb := &fakeBackend{}
	fb.handler = func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users":
			listCalls.Add(1)
			q := r.URL.Query()
			assert.Equal(t, "banned", q.Get("status"))
			assert.Equal(t, "2024-01-01", q.Get("startDate"))
			page, _ := strconv.Atoi(q.Get("page"))
			limit, _ := strconv.Atoi(q.Get("limit"))
			var rows []map[string]any
			for i := (page - 1) * limit; i < page*limit && i < total; i++ {
				// The backend already filtered; the status values would fail a
				// second client-side pass.
				rows = append(rows, map[string]any{"id": strconv.Itoa(i), "status": "BANNED-by-admin"})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": rows, "meta": map[string]any{"total": total}})
		case "/api/exports":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&fb.lastJob))
			_, _ = w.Write([]byte(`{"data":{"url":"http://x/all.csv","filename":"all.csv"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}
	svc := newService(t, fb)

	res, err := svc.Create(context.Background(), "tok", models.ExportRequest{
		Format: "csv",
		Source: &models.ExportSource{Resource: "users"},
		Filter: &models.ExportFilter{Status: "banned", From: "2024-01-01"},
	})
	require.NoError(t, err)

	assert.Equal(t, "all.csv", res.Filename)
	assert.Equal(t, int32(3), listCalls.Load())
	require.Len(t, fb.lastJob.Data, total)
	for i, rec := range fb.lastJob.Data {
		assert.Equal(t, strconv.Itoa(i), rec["id"], "rows keep page order")
	}
}

func TestFetchAllPropagatesPageError(t *testing.T) {
	fb := &fakeBackend{}
	fb.handler = cappedPages(t, 300, 100, true, func(w http.ResponseWriter, r *http.Request) bool {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return true
		}
		return false
	})
	svc := newService(t, fb)

	_, err := svc.FetchAll(context.Background(), "tok", models.ExportSource{Resource: "bookings"})
	var ue *backend.UpstreamError
	assert.ErrorAs(t, err, &ue)
}

// cappedPages serves total rows with ids 0..total-1, never more than maxLimit
// per page whatever limit was asked for. pre may answer the request itself.
func cappedPages(t *testing.T, total, maxLimit int, withTotal bool, pre func(http.ResponseWriter, *http.Request) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pre != nil && pre(w, r) {
			return
		}
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		if limit <= 0 || limit > maxLimit {
			limit = maxLimit
		}
		rows := []map[string]any{}
		for i := (page - 1) * limit; i < page*limit && i < total; i++ {
			rows = append(rows, map[string]any{"id": strconv.Itoa(i)})
		}
		body := map[string]any{"data": rows}
		if withTotal {
			body["total"] = total
		}
		assert.NoError(t, json.NewEncoder(w).Encode(body))
	}
}

func TestFetchAllFollowsBackendPageCap(t *testing.T) {
	cases := map[string]struct {
		withTotal bool
		total     int
		calls     int32
	}{
		"announced total":       {withTotal: true, total: 250, calls: 5},
		"announced exact total": {withTotal: true, total: 200, calls: 4},
		"no total, short last":  {withTotal: false, total: 120, calls: 3},
		"no total, exact pages": {withTotal: false, total: 100, calls: 3},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fb := &fakeBackend{}
			fb.handler = cappedPages(t, tc.total, 50, tc.withTotal, nil)
			svc := newService(t, fb)

			rows, err := svc.FetchAll(context.Background(), "tok", models.ExportSource{Resource: "bookings"})
			require.NoError(t, err)
			require.Len(t, rows, tc.total)
			for i, rec := range rows {
				assert.Equal(t, strconv.Itoa(i), rec["id"])
			}
			assert.Equal(t, tc.calls, fb.calls.Load())
		})
	}
}

func TestCreateRefusesOversizedExport(t *testing.T) {
	fb := &fakeBackend{handler: func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/exports" {
			t.Error("oversized export must not be forwarded")
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"1"}],"total":20000}`))
	}}
	svc := newService(t, fb)

	_, err := svc.Create(context.Background(), "tok", models.ExportRequest{
		Format: "csv",
		Source: &models.ExportSource{Resource: "bookings"},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ErrTooManyRows, ve)
	assert.Equal(t, int32(1), fb.calls.Load())
}
