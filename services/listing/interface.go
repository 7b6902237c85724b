package listing

import (
	"context"
	"fmt"
	"net/http"

	"musicminds/models"
	"musicminds/services/backend"
)

// ListingService fetches one normalized page of a resource.
type ListingService interface {
	FetchPage(ctx context.Context, token, resource string, q models.ListQuery) (*models.Page, error)
	Resource(name string) (Resource, bool)
}

// DefaultListingService is the production implementation.
type DefaultListingService struct {
	Backend   backend.Requester
	Resources Registry
}

// NewListingService creates a listing service over the given resources.
func NewListingService(b backend.Requester, resources []Resource) *DefaultListingService {
	return &DefaultListingService{Backend: b, Resources: NewRegistry(resources)}
}

// UnknownResourceError is returned for resources the gateway does not proxy.
type UnknownResourceError struct {
	Name string
}

func (e *UnknownResourceError) Error() string         { return fmt.Sprintf("unknown resource %q", e.Name) }
func (e *UnknownResourceError) HTTPStatus() int       { return http.StatusNotFound }
func (e *UnknownResourceError) PublicMessage() string { return "Resource not found" }
