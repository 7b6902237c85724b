package export

import (
	"testing"

	"musicminds/models"

	"github.com/stretchr/testify/assert"
)

func ids(rows []models.Record) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		id, _ := r["id"].(string)
		out = append(out, id)
	}
	return out
}

func TestApply(t *testing.T) {
	rows := []models.Record{
		{"id": "1", "status": "active", "role": "admin", "createdAt": "2024-01-31T23:59:59Z"},
		{"id": "2", "status": "pending", "role": "artist", "createdAt": "2024-02-01T00:00:00Z"},
		{"id": "3", "status": "ACTIVE", "role": "artist", "createdAt": "2024-02-15"},
		{"id": "4", "status": "active", "role": "artist"},
		{"id": "5", "status": "active", "role": "artist", "date": "2024-02-10T08:00:00Z"},
	}

	tests := []struct {
		name   string
		filter models.ExportFilter
		want   []string
	}{
		{"no filter", models.ExportFilter{}, []string{"1", "2", "3", "4", "5"}},
		{"all is no filter", models.ExportFilter{Status: "all", Role: "All"}, []string{"1", "2", "3", "4", "5"}},
		{"status case-insensitive", models.ExportFilter{Status: "Active"}, []string{"1", "3", "4", "5"}},
		{"role", models.ExportFilter{Role: "admin"}, []string{"1"}},
		{"inclusive day range", models.ExportFilter{From: "2024-02-01", To: "2024-02-15"}, []string{"2", "3"}},
		{"to is whole day", models.ExportFilter{To: "2024-01-31"}, []string{"1"}},
		{"custom date field", models.ExportFilter{From: "2024-02-01", DateField: "date"}, []string{"5"}},
		{"combined", models.ExportFilter{Status: "active", Role: "artist", From: "2024-02-01"}, []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(tt.filter, rows)))
		})
	}
}

func TestToQuery(t *testing.T) {
	q := ToQuery(models.ExportFilter{Status: "all", Role: "artist", To: "2024-02-01"}, models.ListQuery{Search: "x", Status: "keep"})
	assert.Equal(t, "keep", q.Status)
	assert.Equal(t, "artist", q.Role)
	assert.Equal(t, "2024-02-01", q.To)
	assert.Equal(t, "x", q.Search)
}

func TestDefaultFilename(t *testing.T) {
	assert.Equal(t, "export.csv", DefaultFilename("", "csv"))
	assert.Equal(t, "report.xlsx", DefaultFilename("report", "excel"))
	assert.Equal(t, "report.PDF", DefaultFilename("report.PDF", "pdf"))
}
