// Package tabular reads and writes the delimited text used for client
// import and data export.
//
// Reading is deliberately simple: quoted fields may not contain the
// delimiter or newlines. Files that need either are out of scope.
package tabular

import (
	"regexp"
	"strings"

	"github.com/clientive/clientive/internal/domain"
)

var surroundingQuotes = regexp.MustCompile(`^"(.*)"$`)

// Tokenize splits text into records. Blank lines are dropped; each surviving
// record keeps its 1-based line number in text. Fields are trimmed and, for
// the CSV dialect, one layer of surrounding double quotes is removed.
func Tokenize(text string, dialect domain.Dialect) []domain.Record {
	delim := dialect.Delimiter()
	var records []domain.Record
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, delim)
		fields := make([]string, len(parts))
		for j, p := range parts {
			f := strings.TrimSpace(p)
			if dialect == domain.DialectCSV {
				f = surroundingQuotes.ReplaceAllString(f, "$1")
			}
			fields[j] = f
		}
		records = append(records, domain.Record{Line: i + 1, Fields: fields})
	}
	return records
}
