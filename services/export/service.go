package export

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"musicminds/models"
	"musicminds/services/backend"
)

// Create resolves the rows to export, forwards the job to the backend and returns
// where the generated file lives.
//
// Filtering happens in exactly one place: with a Source the filter is delegated
// to the backend query, otherwise it is applied to the rows the browser sent.
func (s *DefaultExportService) Create(ctx context.Context, token string, req models.ExportRequest) (*models.ExportResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, backend.ErrUnauthenticated
	}

	rows := req.Data
	switch {
	case req.Source != nil:
		src := *req.Source
		if req.Filter != nil {
			src.Query = ToQuery(*req.Filter, src.Query)
		}
		fetched, err := s.FetchAll(ctx, token, src)
		if err != nil {
			return nil, err
		}
		rows = fetched
	case req.Filter != nil && !IsEmpty(*req.Filter):
		rows = Apply(*req.Filter, rows)
	}
	if err := ValidateData(rows); err != nil {
		return nil, &ValidationError{Field: "data", Message: "No records match the selected filters"}
	}

	resp, err := s.Backend.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Path:   s.Path,
		Token:  token,
		Body:   models.ExportJob{Data: rows, Format: req.Format, Options: req.Options},
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, backend.NewUpstreamError(resp.Status, resp.Body)
	}
	return parseResult(resp.Body, req)
}

// parseResult unwraps an optional {data: {...}} level and fills gaps from the
// request.
func parseResult(body []byte, req models.ExportRequest) (*models.ExportResult, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, &backend.UpstreamError{Status: http.StatusBadGateway, Message: "Export service returned an invalid response"}
	}
	if inner, ok := raw["data"].(map[string]any); ok {
		raw = inner
	}

	res := &models.ExportResult{
		URL:      firstString(raw, "url", "fileUrl", "downloadUrl"),
		Filename: firstString(raw, "filename", "fileName", "name"),
		Format:   firstString(raw, "format"),
		Size:     toInt64(raw["size"]),
	}
	if res.URL == "" {
		return nil, &backend.UpstreamError{Status: http.StatusBadGateway, Message: "Export service returned no file URL"}
	}
	if res.Format == "" {
		res.Format = req.Format
	}
	if res.Filename == "" {
		res.Filename = DefaultFilename(req.Options.Filename, res.Format)
	}
	return res, nil
}

// DefaultFilename builds "<base>.<ext>" for a format, keeping an existing
// extension.
func DefaultFilename(base, format string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "export"
	}
	ext := "." + Extension(format)
	if strings.HasSuffix(strings.ToLower(base), ext) {
		return base
	}
	return base + ext
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i
		}
	case float64:
		return int64(n)
	}
	return 0
}
