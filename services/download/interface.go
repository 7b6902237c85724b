package download

import (
	"context"
	"io"
	"net/http"
	"time"
)

// DownloadService opens a generated file for relaying to the browser.
type DownloadService interface {
	Open(ctx context.Context, fileURL, name string) (*Download, error)
}

// Download is an open upstream file. The caller must close Body.
type Download struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
	// Length is -1 when the upstream did not announce it.
	Length int64
}

// DefaultDownloadService is the production implementation.
type DefaultDownloadService struct {
	HTTP *http.Client
	// AllowedHosts restricts which hosts may be fetched; empty allows any.
	AllowedHosts []string
	MaxBytes     int64
}

// NewDownloadService creates a download relay.
func NewDownloadService(timeout time.Duration, allowedHosts []string, maxBytes int64) *DefaultDownloadService {
	return &DefaultDownloadService{
		HTTP:         &http.Client{Timeout: timeout},
		AllowedHosts: allowedHosts,
		MaxBytes:     maxBytes,
	}
}
