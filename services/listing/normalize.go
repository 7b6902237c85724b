package listing

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"musicminds/models"
)

// extractor pulls the record list out of one known envelope shape.
type extractor func(body any, keys []string) ([]any, bool)

// extractors are tried in order; the first match wins.
var extractors = []extractor{
	bareArray,
	dataArray,
	nestedDataArray,
	namedKey,
}

func bareArray(body any, _ []string) ([]any, bool) {
	arr, ok := body.([]any)
	return arr, ok
}

func dataArray(body any, _ []string) ([]any, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, false
	}
	arr, ok := obj["data"].([]any)
	return arr, ok
}

func nestedDataArray(body any, _ []string) ([]any, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, false
	}
	inner, ok := obj["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	arr, ok := inner["data"].([]any)
	return arr, ok
}

// namedKey looks for {<resource>: [...]} at the top level and inside data.
func namedKey(body any, keys []string) ([]any, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, false
	}
	scopes := []map[string]any{obj}
	if inner, ok := obj["data"].(map[string]any); ok {
		scopes = append(scopes, inner)
	}
	for _, scope := range scopes {
		for _, key := range keys {
			if arr, ok := scope[key].([]any); ok {
				return arr, true
			}
		}
	}
	return nil, false
}

// Envelope is a normalized list reply. Pages is 0 when the backend omitted it.
type Envelope struct {
	Items []models.Record
	Total int
	Pages int
	// HasTotal is false when no total was found and Total is the item count.
	HasTotal bool
}

// Decode parses raw JSON and normalizes it. Invalid JSON yields an empty envelope.
func Decode(raw []byte, keys []string) Envelope {
	var body any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return Envelope{Items: []models.Record{}}
	}
	return Normalize(body, keys)
}

// Normalize extracts records and pagination metadata from any of the backend's
// envelope shapes. It never fails; an unknown shape is an empty list.
func Normalize(body any, keys []string) Envelope {
	var raw []any
	for _, extract := range extractors {
		if arr, ok := extract(body, keys); ok {
			raw = arr
			break
		}
	}

	items := make([]models.Record, 0, len(raw))
	for _, el := range raw {
		if rec, ok := el.(map[string]any); ok {
			items = append(items, rec)
		}
	}

	env := Envelope{Items: items}
	metas := metaScopes(body)
	if total, ok := firstInt(metas, "total", "totalCount", "totalItems", "count"); ok {
		env.Total, env.HasTotal = total, true
	} else {
		env.Total = len(items)
	}
	if pages, ok := firstInt(metas, "pages", "totalPages", "pageCount", "lastPage"); ok {
		env.Pages = pages
	}
	return env
}

// metaScopes lists the objects that may carry total/pages, in lookup order.
func metaScopes(body any) []map[string]any {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil
	}
	scopes := []map[string]any{}
	for _, key := range []string{"meta", "pagination"} {
		if m, ok := obj[key].(map[string]any); ok {
			scopes = append(scopes, m)
		}
	}
	scopes = append(scopes, obj)
	if inner, ok := obj["data"].(map[string]any); ok {
		for _, key := range []string{"meta", "pagination"} {
			if m, ok := inner[key].(map[string]any); ok {
				scopes = append(scopes, m)
			}
		}
		scopes = append(scopes, inner)
	}
	return scopes
}

func firstInt(scopes []map[string]any, keys ...string) (int, bool) {
	for _, scope := range scopes {
		for _, key := range keys {
			if n, ok := toInt(scope[key]); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// Pages is ceil(total/limit); a limit below 1 counts as 1.
func Pages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	if limit < 1 {
		limit = 1
	}
	return (total + limit - 1) / limit
}
