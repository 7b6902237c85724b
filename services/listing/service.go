package listing

import (
	"context"

	"musicminds/models"
	"musicminds/services/backend"
)

func (s *DefaultListingService) Resource(name string) (Resource, bool) {
	return s.Resources.Lookup(name)
}

// FetchPage issues a single GET for one page and normalizes whatever envelope the
// backend answers with.
func (s *DefaultListingService) FetchPage(ctx context.Context, token, resource string, q models.ListQuery) (*models.Page, error) {
	res, ok := s.Resources.Lookup(resource)
	if !ok {
		return nil, &UnknownResourceError{Name: resource}
	}
	if token == "" {
		return nil, backend.ErrUnauthenticated
	}
	q = WithDefaults(q, res.DefaultLimit)

	resp, err := s.Backend.Do(ctx, backend.Request{
		Path:  res.Path,
		Query: Encode(q),
		Token: token,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, backend.NewUpstreamError(resp.Status, resp.Body)
	}

	env := Decode(resp.Body, res.Keys)
	pages := env.Pages
	if pages <= 0 {
		pages = Pages(env.Total, q.Limit)
	}
	return &models.Page{
		Items: env.Items,
		Total: env.Total,
		Pages: pages,
		Page:  q.Page,
		Limit: q.Limit,

		HasTotal: env.HasTotal,
	}, nil
}
