package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"musicminds/models"
	"musicminds/services/download"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDownloads struct {
	dl  *download.Download
	err error
}

func (f *fakeDownloads) Open(ctx context.Context, fileURL, name string) (*download.Download, error) {
	return f.dl, f.err
}

type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

func withCredential(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("credential", models.Credential{Token: token})
		c.Next()
	}
}

func TestDownloadFileHandlerHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := &trackedBody{Reader: strings.NewReader("a,b\n1,2\n")}
	h := NewDownloadHandler(&fakeDownloads{dl: &download.Download{
		Body:        body,
		ContentType: "text/csv",
		Filename:    "report.csv",
		Length:      8,
	}})

	r := gin.New()
	r.GET("/api/download", withCredential("tok"), h.DownloadFileHandler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/download?fileUrl=https://files.example/report.csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a,b\n1,2\n", w.Body.String())
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="report.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.True(t, body.closed)
}

func TestDownloadFileHandlerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]struct {
		err  error
		want int
	}{
		"missing url":      {download.ErrMissingURL, http.StatusBadRequest},
		"host not allowed": {download.ErrHostNotAllowed, http.StatusForbidden},
		"too large":        {download.ErrTooLarge, http.StatusBadGateway},
		"cancelled":        {context.Canceled, 499},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := NewDownloadHandler(&fakeDownloads{err: tc.err})
			r := gin.New()
			r.GET("/api/download", withCredential("tok"), h.DownloadFileHandler)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/download", nil))
			assert.Equal(t, tc.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestRequireTokenWithoutCredential(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDownloadHandler(&fakeDownloads{})
	r := gin.New()
	r.GET("/api/download", h.DownloadFileHandler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/download?fileUrl=x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidAction(t *testing.T) {
	for _, a := range []string{"approve", "reject", "mark-read", "publish"} {
		assert.True(t, validAction(a), a)
	}
	for _, a := range []string{"", "-x", "x-", "Approve", "../etc", "a b", "a1"} {
		assert.False(t, validAction(a), a)
	}
}
