package listing

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"musicminds/models"
)

// FetchFunc loads one page for a query.
type FetchFunc func(ctx context.Context, q models.ListQuery) (*models.Page, error)

// View is the state behind one list table: the last good page, filter state,
// selection and pager. Every fetch is tagged with a generation and only the most
// recently requested one is applied. A failed fetch keeps the last good rows.
type View struct {
	mu       sync.Mutex
	limit    int
	query    models.ListQuery
	gen      uint64
	page     models.Page
	err      error
	selected map[string]struct{}
}

// NewView creates a View with a fixed page size.
func NewView(limit int) *View {
	if limit < 1 {
		limit = 10
	}
	return &View{
		limit:    limit,
		query:    models.ListQuery{Page: 1, Limit: limit},
		page:     models.Page{Items: []models.Record{}, Limit: limit},
		selected: make(map[string]struct{}),
	}
}

// Request records q as the current filter state and returns the generation the
// caller must pass back to Resolve.
func (v *View) Request(q models.ListQuery) (uint64, models.ListQuery) {
	v.mu.Lock()
	defer v.mu.Unlock()
	q.Limit = v.limit
	if q.Page < 1 {
		q.Page = 1
	}
	v.gen++
	v.query = q
	return v.gen, q
}

// Resolve applies the outcome of fetch gen. Stale generations are dropped and
// Resolve returns false.
func (v *View) Resolve(gen uint64, page *models.Page, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return false
	}
	if err != nil {
		v.err = err
		return true
	}
	v.err = nil
	if page != nil {
		v.page = *page
		if v.page.Items == nil {
			v.page.Items = []models.Record{}
		}
	}
	return true
}

// Load requests q, runs fetch and resolves it. The returned bool is false when a
// newer request superseded this one.
func (v *View) Load(ctx context.Context, q models.ListQuery, fetch FetchFunc) (bool, error) {
	gen, q := v.Request(q)
	page, err := fetch(ctx, q)
	return v.Resolve(gen, page, err), err
}

// GoToPage clamps n into the known page range and returns the request for it.
func (v *View) GoToPage(n int) (uint64, models.ListQuery) {
	v.mu.Lock()
	q := v.query
	q.Page = ClampPage(n, v.page.Pages)
	v.mu.Unlock()
	return v.Request(q)
}

// Page returns the rows currently displayed.
func (v *View) Page() models.Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Err returns the error of the latest fetch, nil after a success.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Query returns the current filter state.
func (v *View) Query() models.ListQuery {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Window returns the pager buttons for the displayed page.
func (v *View) Window() PageWindow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Window(v.page.Page, v.page.Pages)
}

// Summary renders the "x–y of n" caption.
func (v *View) Summary() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Summary(v.page.Page, v.page.Limit, len(v.page.Items), v.page.Total)
}

// Toggle flips selection of one row id.
func (v *View) Toggle(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.selected[id]; ok {
		delete(v.selected, id)
		return
	}
	v.selected[id] = struct{}{}
}

// SelectAllOnPage selects every row of the loaded page, or clears them when they
// are all selected already. Rows on other pages are untouched.
func (v *View) SelectAllOnPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	ids := make([]string, 0, len(v.page.Items))
	all := true
	for _, rec := range v.page.Items {
		id, ok := RecordID(rec)
		if !ok {
			continue
		}
		ids = append(ids, id)
		if _, sel := v.selected[id]; !sel {
			all = false
		}
	}
	for _, id := range ids {
		if all {
			delete(v.selected, id)
		} else {
			v.selected[id] = struct{}{}
		}
	}
}

// ClearSelection deselects everything.
func (v *View) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = make(map[string]struct{})
}

// Selected returns the selected ids, sorted.
func (v *View) Selected() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	ids := make([]string, 0, len(v.selected))
	for id := range v.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RecordID returns the id of a backend record, trying "id" then "_id".
func RecordID(rec models.Record) (string, bool) {
	for _, key := range []string{"id", "_id"} {
		switch id := rec[key].(type) {
		case string:
			if id != "" {
				return id, true
			}
		case nil:
		default:
			return fmt.Sprint(id), true
		}
	}
	return "", false
}
