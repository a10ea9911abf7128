package domain

import (
	"regexp"
	"strings"
)

// Record is one tokenized line of a tabular file.
type Record struct {
	Fields []string
	Line   int // 1-based physical line in the source text
}

// ColumnKind identifies the client field a column maps to.
type ColumnKind int

const (
	ColumnName ColumnKind = iota
	ColumnEmail
	ColumnPhone
	ColumnCompany
	ColumnStatus
	ColumnTags
	ColumnNotes
	columnCount
)

// String returns the header name of the column kind.
func (k ColumnKind) String() string {
	for name, kind := range headerKinds {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// requiredKinds are the columns a header row must name for any row to validate.
var requiredKinds = []ColumnKind{ColumnName, ColumnEmail}

// headerKinds maps recognized header names (lowercased, trimmed) to columns.
var headerKinds = map[string]ColumnKind{
	"name":    ColumnName,
	"email":   ColumnEmail,
	"phone":   ColumnPhone,
	"company": ColumnCompany,
	"status":  ColumnStatus,
	"tags":    ColumnTags,
	"notes":   ColumnNotes,
}

// ColumnMapper resolves each column kind to a field index. Built once per
// file; unmapped kinds have index -1.
type ColumnMapper struct {
	index      [columnCount]int
	positional bool
}

// NewHeaderMapper builds a mapper from a header row. Unknown headers are
// ignored; when a header repeats, the last occurrence wins.
func NewHeaderMapper(header []string) ColumnMapper {
	var m ColumnMapper
	for i := range m.index {
		m.index[i] = -1
	}
	for i, h := range header {
		if kind, ok := headerKinds[strings.ToLower(strings.TrimSpace(h))]; ok {
			m.index[kind] = i
		}
	}
	return m
}

// PositionalMapper maps columns in the fixed order
// name, email, phone, company, status, tags, notes.
func PositionalMapper() ColumnMapper {
	m := ColumnMapper{positional: true}
	for i := range m.index {
		m.index[i] = i
	}
	return m
}

// MissingRequired returns the required column kinds the mapper could not
// resolve. Always empty for positional mapping.
func (m ColumnMapper) MissingRequired() []ColumnKind {
	var missing []ColumnKind
	for _, k := range requiredKinds {
		if m.index[k] < 0 {
			missing = append(missing, k)
		}
	}
	return missing
}

// Index returns the field index for kind, or -1.
func (m ColumnMapper) Index(kind ColumnKind) int {
	return m.index[kind]
}

func (m ColumnMapper) field(fields []string, kind ColumnKind) string {
	i := m.index[kind]
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// Draft maps one record's fields onto a client draft. Positional mapping
// defaults an empty status to prospect.
func (m ColumnMapper) Draft(fields []string) ClientDraft {
	d := ClientDraft{
		Name:    m.field(fields, ColumnName),
		Email:   m.field(fields, ColumnEmail),
		Phone:   m.field(fields, ColumnPhone),
		Company: m.field(fields, ColumnCompany),
		Status:  ClientStatus(m.field(fields, ColumnStatus)),
		Tags:    SplitTags(m.field(fields, ColumnTags)),
		Notes:   m.field(fields, ColumnNotes),
	}
	if m.positional && d.Status == "" {
		d.Status = ClientProspect
	}
	return d
}

// SplitTags splits a ";"-separated tag list, trimming each tag and dropping
// empty and duplicate entries.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tags []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ";") {
		t := strings.TrimSpace(part)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// Validation messages, in the order they are checked.
var (
	MsgNameRequired  = "Name is required"
	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Invalid email format"
	MsgStatusInvalid = "Invalid status (must be: " + clientStatusList() + ")"
)

var looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidateDraft returns every problem with a draft, in a fixed order.
// An empty result means the draft is valid.
func ValidateDraft(d ClientDraft) []string {
	var errs []string
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, MsgNameRequired)
	}
	switch {
	case strings.TrimSpace(d.Email) == "":
		errs = append(errs, MsgEmailRequired)
	case !looseEmail.MatchString(d.Email):
		errs = append(errs, MsgEmailInvalid)
	}
	if d.Status != "" && !d.Status.IsValid() {
		errs = append(errs, MsgStatusInvalid)
	}
	return errs
}

// ImportRow is the preview of one data record.
type ImportRow struct {
	Draft  ClientDraft `yaml:"draft"`
	Errors []string    `yaml:"errors,omitempty"`
	Row    int         `yaml:"row"` // 1-based physical line in the source file
}

// Valid reports whether the row has no validation errors.
func (r ImportRow) Valid() bool {
	return len(r.Errors) == 0
}

// BuildImportRows maps and validates records. When hasHeaders is set, the
// first record is the header row and is not previewed.
func BuildImportRows(records []Record, hasHeaders bool) []ImportRow {
	if len(records) == 0 {
		return nil
	}
	mapper := PositionalMapper()
	data := records
	if hasHeaders {
		mapper = NewHeaderMapper(records[0].Fields)
		data = records[1:]
	}
	rows := make([]ImportRow, 0, len(data))
	for _, rec := range data {
		draft := mapper.Draft(rec.Fields)
		rows = append(rows, ImportRow{
			Row:    rec.Line,
			Draft:  draft,
			Errors: ValidateDraft(draft),
		})
	}
	return rows
}

// CountValid returns the number of rows without errors.
func CountValid(rows []ImportRow) int {
	n := 0
	for _, r := range rows {
		if r.Valid() {
			n++
		}
	}
	return n
}
