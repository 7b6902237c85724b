package export

import (
	"strings"
	"time"

	"musicminds/models"
)

const defaultDateField = "createdAt"

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Apply keeps the rows matching f. Status and role compare case-insensitively;
// the date range is inclusive on both ends, whole days for date-only bounds.
func Apply(f models.ExportFilter, rows []models.Record) []models.Record {
	from, hasFrom := parseBound(f.From, false)
	to, hasTo := parseBound(f.To, true)
	field := f.DateField
	if field == "" {
		field = defaultDateField
	}

	out := make([]models.Record, 0, len(rows))
	for _, rec := range rows {
		if !matches(rec, "status", f.Status) || !matches(rec, "role", f.Role) {
			continue
		}
		if hasFrom || hasTo {
			at, ok := recordTime(rec, field)
			if !ok {
				continue
			}
			if hasFrom && at.Before(from) {
				continue
			}
			if hasTo && !at.Before(to) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// IsEmpty reports whether f filters nothing.
func IsEmpty(f models.ExportFilter) bool {
	return blank(f.Status) && blank(f.Role) && strings.TrimSpace(f.From) == "" && strings.TrimSpace(f.To) == ""
}

// ToQuery delegates f to a backend list query.
func ToQuery(f models.ExportFilter, q models.ListQuery) models.ListQuery {
	if !blank(f.Status) {
		q.Status = f.Status
	}
	if !blank(f.Role) {
		q.Role = f.Role
	}
	if f.From != "" {
		q.From = f.From
	}
	if f.To != "" {
		q.To = f.To
	}
	return q
}

func blank(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}

func matches(rec models.Record, key, want string) bool {
	if blank(want) {
		return true
	}
	got, _ := rec[key].(string)
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
}

// parseBound parses a range bound. An upper date-only bound is moved to the start
// of the following day so the whole day is included.
func parseBound(v string, upper bool) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		if upper {
			if layout == "2006-01-02" {
				return t.AddDate(0, 0, 1), true
			}
			return t.Add(time.Nanosecond), true
		}
		return t, true
	}
	return time.Time{}, false
}

func recordTime(rec models.Record, field string) (time.Time, bool) {
	s, ok := rec[field].(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
