package usecase

import (
	"context"
	"fmt"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/tabular"
)

// PreviewImportInput contains the uploaded file.
type PreviewImportInput struct {
	FileName   string
	Content    string
	Dialect    domain.Dialect // Empty selects the dialect from the file extension
	HasHeaders bool           // First row names the columns
}

// PreviewImportOutput contains the per-row preview.
type PreviewImportOutput struct {
	Rows           []domain.ImportRow
	MissingColumns []string // Required columns the header row does not name
	Dialect        domain.Dialect
	Valid          int
	Invalid        int
}

// PreviewImport tokenizes, maps and validates a file without writing anything.
type PreviewImport struct{}

// NewPreviewImport creates a new PreviewImport use case.
func NewPreviewImport() *PreviewImport {
	return &PreviewImport{}
}

// Execute builds the preview. An all-invalid file still yields a preview;
// only a file without any records fails with domain.ErrEmptyFile.
func (uc *PreviewImport) Execute(_ context.Context, in PreviewImportInput) (*PreviewImportOutput, error) {
	dialect := in.Dialect
	if dialect == "" {
		dialect = domain.DialectForFile(in.FileName)
	}

	records := tabular.Tokenize(in.Content, dialect)
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", in.FileName, domain.ErrEmptyFile)
	}

	out := &PreviewImportOutput{Dialect: dialect}
	if in.HasHeaders {
		for _, kind := range domain.NewHeaderMapper(records[0].Fields).MissingRequired() {
			out.MissingColumns = append(out.MissingColumns, kind.String())
		}
	}

	out.Rows = domain.BuildImportRows(records, in.HasHeaders)
	out.Valid = domain.CountValid(out.Rows)
	out.Invalid = len(out.Rows) - out.Valid
	return out, nil
}
