package domain

import "fmt"

// ImportStep is a stage of the client import flow.
type ImportStep string

const (
	StepUpload    ImportStep = "upload"    // Waiting for a file
	StepPreview   ImportStep = "preview"   // Rows parsed and validated, awaiting confirmation
	StepImporting ImportStep = "importing" // Valid rows being submitted one at a time
	StepComplete  ImportStep = "complete"  // Every valid row attempted
)

// stepTransitions defines the allowed step transitions.
// Flow: upload → preview → importing → complete
//
//	↑         │
//	└─────────┘ (back)
var stepTransitions = map[ImportStep][]ImportStep{
	StepUpload:    {StepPreview},
	StepPreview:   {StepUpload, StepImporting},
	StepImporting: {StepComplete},
	StepComplete:  {},
}

// CanTransitionTo returns true if the step can move to target.
func (s ImportStep) CanTransitionTo(target ImportStep) bool {
	for _, t := range stepTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Display returns a human-readable representation of the step.
func (s ImportStep) Display() string {
	switch s {
	case StepUpload:
		return "Upload"
	case StepPreview:
		return "Preview"
	case StepImporting:
		return "Importing"
	case StepComplete:
		return "Complete"
	default:
		return string(s)
	}
}

// ImportSession holds the transient state of one import. Closing the flow
// calls Reset so the session can be reused without residual state.
// Fields are ordered to minimize memory padding.
type ImportSession struct {
	FileName  string
	Step      ImportStep
	Rows      []ImportRow
	Total     int // valid rows queued when importing began
	Attempted int
	Succeeded int
	Failed    int
}

// NewImportSession returns a session at the upload step.
func NewImportSession() *ImportSession {
	return &ImportSession{Step: StepUpload}
}

func (s *ImportSession) moveTo(target ImportStep) error {
	if !s.Step.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, s.Step, target)
	}
	s.Step = target
	return nil
}

// Load records a parsed file and moves to preview. An all-invalid file
// still reaches preview so its errors can be shown.
func (s *ImportSession) Load(fileName string, rows []ImportRow) error {
	if err := s.moveTo(StepPreview); err != nil {
		return err
	}
	s.FileName = fileName
	s.Rows = rows
	return nil
}

// Back returns from preview to upload, discarding the parsed file.
func (s *ImportSession) Back() error {
	if err := s.moveTo(StepUpload); err != nil {
		return err
	}
	s.FileName = ""
	s.Rows = nil
	return nil
}

// ValidRows returns the rows without errors, in file order.
func (s *ImportSession) ValidRows() []ImportRow {
	valid := make([]ImportRow, 0, len(s.Rows))
	for _, r := range s.Rows {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	return valid
}

// Begin moves from preview to importing and returns the rows to submit.
// With zero valid rows the session stays in preview and ErrNothingToImport
// is returned.
func (s *ImportSession) Begin() ([]ImportRow, error) {
	valid := s.ValidRows()
	if s.Step == StepPreview && len(valid) == 0 {
		return nil, ErrNothingToImport
	}
	if err := s.moveTo(StepImporting); err != nil {
		return nil, err
	}
	s.Total = len(valid)
	s.Attempted, s.Succeeded, s.Failed = 0, 0, 0
	return valid, nil
}

// Record counts the outcome of one submission. The session completes
// automatically once every queued row has been attempted.
func (s *ImportSession) Record(ok bool) error {
	if s.Step != StepImporting {
		return fmt.Errorf("%w: record result in %s", ErrInvalidTransition, s.Step)
	}
	s.Attempted++
	if ok {
		s.Succeeded++
	} else {
		s.Failed++
	}
	if s.Attempted >= s.Total {
		return s.moveTo(StepComplete)
	}
	return nil
}

// Progress returns the fraction of queued rows attempted, in [0, 1].
func (s *ImportSession) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Attempted) / float64(s.Total)
}

// Reset clears every transient field and returns to upload. Allowed from
// any step.
func (s *ImportSession) Reset() {
	*s = ImportSession{Step: StepUpload}
}
