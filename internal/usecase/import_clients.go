package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/clientive/clientive/internal/domain"
)

// ImportClientsInput contains the session to drive.
type ImportClientsInput struct {
	Session *domain.ImportSession // Must be at the preview step
	// OnProgress, if set, is called after every attempted row.
	OnProgress func(s *domain.ImportSession)
}

// ImportFailure describes one row the creation contract rejected.
type ImportFailure struct {
	Err error
	Row int
}

// ImportClientsOutput contains the final counts.
type ImportClientsOutput struct {
	Failures  []ImportFailure
	Attempted int
	Succeeded int
	Failed    int
	Cancelled bool // ctx was cancelled before every row was attempted
}

// ImportClients submits the valid rows of a previewed import one at a time,
// in file order.
type ImportClients struct {
	creator domain.ClientCreator
	logger  domain.Logger
}

// NewImportClients creates a new ImportClients use case.
func NewImportClients(creator domain.ClientCreator, logger domain.Logger) *ImportClients {
	return &ImportClients{creator: creator, logger: logger}
}

// Execute moves the session to importing and submits each valid row.
// A failed row is counted and the loop continues. Cancellation is checked
// before each row: the row in flight finishes, the rest are not attempted,
// and the session is left at the importing step for the caller to reset.
func (uc *ImportClients) Execute(ctx context.Context, in ImportClientsInput) (*ImportClientsOutput, error) {
	s := in.Session
	rows, err := s.Begin()
	if err != nil {
		return nil, err
	}

	out := &ImportClientsOutput{}
	for _, row := range rows {
		if ctx.Err() != nil {
			out.Cancelled = true
			break
		}

		err := uc.Submit(ctx, row)
		if recErr := s.Record(err == nil); recErr != nil {
			return nil, recErr
		}
		var rowErr RowError
		if errors.As(err, &rowErr) {
			out.Failures = append(out.Failures, ImportFailure{Row: row.Row, Err: rowErr.Err})
		}
		if in.OnProgress != nil {
			in.OnProgress(s)
		}
	}

	out.Attempted, out.Succeeded, out.Failed = s.Attempted, s.Succeeded, s.Failed
	if uc.logger != nil {
		uc.logger.Info("import", fmt.Sprintf("%s: %d imported, %d failed, cancelled=%t",
			s.FileName, out.Succeeded, out.Failed, out.Cancelled))
	}
	return out, nil
}

// RowError is a row the creation contract rejected.
type RowError struct {
	Err error
	Row int
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Row, e.Err) }
func (e RowError) Unwrap() error { return e.Err }

// Submit sends one row through the creation contract. A rejection is
// returned as a RowError; the caller records it on the session.
func (uc *ImportClients) Submit(ctx context.Context, row domain.ImportRow) error {
	if _, err := uc.creator.CreateClient(ctx, row.Draft); err != nil {
		if uc.logger != nil {
			uc.logger.Warn("import", fmt.Sprintf("row %d (%s): %v", row.Row, row.Draft.Email, err))
		}
		return RowError{Row: row.Row, Err: err}
	}
	return nil
}
