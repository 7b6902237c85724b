package export

import (
	"musicminds/models"
)

var validFormats = map[string]string{
	models.FormatCSV:   "csv",
	models.FormatExcel: "xlsx",
	models.FormatPDF:   "pdf",
}

// Extension returns the file extension for an export format.
func Extension(format string) string {
	if ext, ok := validFormats[format]; ok {
		return ext
	}
	return "bin"
}

// ValidateFormat accepts exactly csv, excel and pdf.
func ValidateFormat(format string) error {
	if _, ok := validFormats[format]; !ok {
		return &ValidationError{Field: "format", Message: "Invalid format. Must be csv, excel, or pdf"}
	}
	return nil
}

// ValidateData requires at least one row.
func ValidateData(rows []models.Record) error {
	if len(rows) == 0 {
		return &ValidationError{Field: "data", Message: "Data must be a non-empty array"}
	}
	return nil
}

// Validate checks a request whose rows were supplied by the browser.
func Validate(req models.ExportRequest) error {
	if err := ValidateFormat(req.Format); err != nil {
		return err
	}
	if req.Source == nil {
		return ValidateData(req.Data)
	}
	if req.Source.Resource == "" {
		return &ValidationError{Field: "source.resource", Message: "Source resource is required"}
	}
	return nil
}
