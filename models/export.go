package models

// Export formats accepted by the backend export job.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ExportOptions is forwarded to the backend untouched.
type ExportOptions struct {
	Filename      string            `json:"filename,omitempty"`
	Columns       []string          `json:"columns,omitempty"`
	ColumnHeaders map[string]string `json:"columnHeaders,omitempty"`
	Orientation   string            `json:"orientation,omitempty"` // "portrait" or "landscape"
	Branding      map[string]any    `json:"branding,omitempty"`
	TemplateName  string            `json:"templateName,omitempty"`
}

// ExportFilter narrows already-loaded rows before export.
type ExportFilter struct {
	Status    string `json:"status,omitempty"`
	Role      string `json:"role,omitempty"`
	From      string `json:"startDate,omitempty"`
	To        string `json:"endDate,omitempty"`
	DateField string `json:"dateField,omitempty"`
}

// ExportSource asks the gateway to fetch every matching row from the backend instead
// of exporting the rows the browser sent.
type ExportSource struct {
	Resource string    `json:"resource"`
	Query    ListQuery `json:"query"`
}

// ExportRequest is the body of POST /api/exports.
type ExportRequest struct {
	Data    []Record      `json:"data"`
	Format  string        `json:"format"`
	Options ExportOptions `json:"options"`
	Filter  *ExportFilter `json:"filter,omitempty"`
	Source  *ExportSource `json:"source,omitempty"`
}

// ExportJob is the payload the backend export endpoint receives.
type ExportJob struct {
	Data    []Record      `json:"data"`
	Format  string        `json:"format"`
	Options ExportOptions `json:"options"`
}

// ExportResult describes the generated file.
type ExportResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
}
