package domain

import (
	"fmt"
	"strings"
	"time"
)

// Dialect selects the delimiter and escaping rules of a tabular file.
type Dialect string

const (
	DialectCSV Dialect = "csv"
	// DialectTSV is tab-separated text. It is offered to users as the
	// spreadsheet export and keeps the .xls name and MIME type they expect.
	DialectTSV Dialect = "tsv"
)

// ParseDialect resolves a user-supplied dialect name. "excel" and "tab" are
// accepted as aliases for tsv.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return DialectCSV, nil
	case "tsv", "tab", "excel", "xls":
		return DialectTSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, s)
	}
}

// DialectForFile guesses the dialect from a file name extension. Only .csv
// files are comma-separated; spreadsheet saves (.xls, .xlsx) and everything
// else are read as tab-separated text.
func DialectForFile(name string) Dialect {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return DialectCSV
	}
	return DialectTSV
}

// Delimiter returns the field separator.
func (d Dialect) Delimiter() string {
	if d == DialectTSV {
		return "\t"
	}
	return ","
}

// Extension returns the file extension used for exports.
func (d Dialect) Extension() string {
	if d == DialectTSV {
		return ".xls"
	}
	return ".csv"
}

// MIMEType returns the content type used for exports.
func (d Dialect) MIMEType() string {
	if d == DialectTSV {
		return "application/vnd.ms-excel;charset=utf-8;"
	}
	return "text/csv;charset=utf-8;"
}

// ExportFileName returns crm_export_<YYYY-MM-DD><ext>.
func (d Dialect) ExportFileName(now time.Time) string {
	return "crm_export_" + now.Format("2006-01-02") + d.Extension()
}
