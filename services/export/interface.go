package export

import (
	"context"

	"musicminds/models"
	"musicminds/services/backend"
	"musicminds/services/listing"
)

// ExportService turns a filtered dataset into a generated file on the backend.
type ExportService interface {
	Create(ctx context.Context, token string, req models.ExportRequest) (*models.ExportResult, error)
}

// DefaultExportService is the production implementation.
type DefaultExportService struct {
	Backend backend.Requester
	Listing listing.ListingService
	// Path of the backend export job endpoint.
	Path string
	// Concurrency bounds parallel page fetches when exporting a whole resource.
	Concurrency int
}

// NewExportService creates an export service.
func NewExportService(b backend.Requester, l listing.ListingService, path string, concurrency int) *DefaultExportService {
	if path == "" {
		path = "/api/exports"
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &DefaultExportService{Backend: b, Listing: l, Path: path, Concurrency: concurrency}
}
