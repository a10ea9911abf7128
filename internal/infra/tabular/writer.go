package tabular

import (
	"bufio"
	"io"
	"strings"

	"github.com/clientive/clientive/internal/domain"
)

// Writer emits delimited text. Header rows are written as-is; data rows are
// quoted in the CSV dialect (every field, embedded quotes doubled) and
// written raw in the TSV dialect. Lines end with "\n".
//
// Errors are sticky: after the first failed write every call is a no-op and
// Flush returns the error.
type Writer struct {
	w       *bufio.Writer
	err     error
	dialect domain.Dialect
}

// NewWriter returns a Writer for the given dialect.
func NewWriter(w io.Writer, dialect domain.Dialect) *Writer {
	return &Writer{w: bufio.NewWriter(w), dialect: dialect}
}

// Header writes a header row.
func (w *Writer) Header(names ...string) {
	w.line(strings.Join(names, w.dialect.Delimiter()))
}

// Row writes a data row.
func (w *Writer) Row(fields ...string) {
	if w.dialect == domain.DialectCSV {
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = Quote(f)
		}
		fields = quoted
	}
	w.line(strings.Join(fields, w.dialect.Delimiter()))
}

// Blank writes an empty separator line.
func (w *Writer) Blank() {
	w.line("")
}

// Flush writes any buffered data and reports the first error.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

func (w *Writer) line(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(s + "\n"); err != nil {
		w.err = err
	}
}

// Quote wraps a field in double quotes, doubling any embedded quote.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
