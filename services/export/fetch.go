package export

import (
	"context"
	"strconv"

	"musicminds/models"

	"golang.org/x/sync/errgroup"
)

const (
	exportPageSize = 100
	maxExportRows  = 10000

	defaultConcurrency = 4
)

// ErrTooManyRows is returned instead of exporting a partial result set.
var ErrTooManyRows = &ValidationError{
	Field:   "source",
	Message: "Export exceeds " + strconv.Itoa(maxExportRows) + " rows, narrow the filters",
}

// FetchAll loads every row of src from the backend. Pages are sized by what the
// backend actually served on page one, since it may cap or ignore the requested
// limit. With a known total the remaining pages are fetched in parallel and
// reassembled in order; without one, pages are walked until a short page.
func (s *DefaultExportService) FetchAll(ctx context.Context, token string, src models.ExportSource) ([]models.Record, error) {
	q := src.Query
	q.Page = 1
	q.Limit = exportPageSize

	first, err := s.Listing.FetchPage(ctx, token, src.Resource, q)
	if err != nil {
		return nil, err
	}
	total := 0
	if first.HasTotal {
		total = first.Total
	}
	if total > maxExportRows {
		return nil, ErrTooManyRows
	}
	size := len(first.Items)
	if size == 0 || (total > 0 && total <= size) {
		return first.Items, nil
	}

	q.Limit = size
	rows := first.Items
	next := 2
	lastLen := size

	if total > size {
		pages := (total + size - 1) / size
		rest, err := s.fetchPages(ctx, token, src.Resource, q, next, pages)
		if err != nil {
			return nil, err
		}
		for _, items := range rest {
			rows = append(rows, items...)
		}
		lastLen = len(rest[len(rest)-1])
		next = pages + 1
		if len(rows) >= total {
			return rows, nil
		}
	}

	// Unknown total, or the backend holds more than it announced.
	for lastLen == size {
		if len(rows) > maxExportRows {
			return nil, ErrTooManyRows
		}
		q.Page = next
		page, err := s.Listing.FetchPage(ctx, token, src.Resource, q)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Items...)
		lastLen = len(page.Items)
		next++
	}
	if len(rows) > maxExportRows {
		return nil, ErrTooManyRows
	}
	return rows, nil
}

// fetchPages fetches pages from..to concurrently; result i holds page from+i.
func (s *DefaultExportService) fetchPages(ctx context.Context, token, resource string, q models.ListQuery, from, to int) ([][]models.Record, error) {
	results := make([][]models.Record, to-from+1)

	g, gctx := errgroup.WithContext(ctx)
	limit := s.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g.SetLimit(limit)
	for p := from; p <= to; p++ {
		g.Go(func() error {
			pq := q
			pq.Page = p
			page, err := s.Listing.FetchPage(gctx, token, resource, pq)
			if err != nil {
				return err
			}
			results[p-from] = page.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
