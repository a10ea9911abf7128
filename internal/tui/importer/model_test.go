package importer

import (
	"context"
	"errors"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/testutil"
	"github.com/clientive/clientive/internal/usecase"
)

const sampleCSV = "Name,Email\n" +
	"Ana,ana@x.com\n" +
	",nobody@x.com\n" +
	"Bo,bo@x.com\n"

func newTestModel(creator *testutil.MockClientCreator, files map[string]string) *Model {
	return New(context.Background(), Options{
		Importer:   usecase.NewImportClients(creator, nil),
		HasHeaders: true,
		ReadFile: func(path string) ([]byte, error) {
			content, ok := files[path]
			if !ok {
				return nil, os.ErrNotExist
			}
			return []byte(content), nil
		},
	})
}

// run executes cmd and feeds its message back into the model until no
// command is left or tea.Quit is returned.
func run(t *testing.T, m *Model, cmd tea.Cmd) bool {
	t.Helper()
	for i := 0; cmd != nil && i < 100; i++ {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
		_, cmd = m.Update(msg)
	}
	return false
}

func typePath(m *Model, path string) tea.Cmd {
	for _, r := range path {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestModel_FullFlow(t *testing.T) {
	// Setup
	creator := &testutil.MockClientCreator{}
	m := newTestModel(creator, map[string]string{"clients.csv": sampleCSV})

	// Execute: upload -> preview
	cmd := typePath(m, "clients.csv")
	require.NotNil(t, cmd)
	run(t, m, cmd)

	// Assert preview
	require.Equal(t, domain.StepPreview, m.Session().Step)
	assert.Equal(t, "clients.csv", m.Session().FileName)
	assert.Contains(t, m.View(), "2 valid, 1 with errors")
	assert.Contains(t, m.View(), domain.MsgNameRequired)

	// Execute: preview -> importing -> complete
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	quit := run(t, m, cmd)

	// Assert complete
	assert.False(t, quit)
	assert.Equal(t, domain.StepComplete, m.Session().Step)
	assert.Equal(t, 2, m.Summary().Succeeded)
	assert.False(t, m.Summary().Cancelled)
	require.Len(t, creator.Drafts, 2)
	assert.Equal(t, "Ana", creator.Drafts[0].Name)
	assert.Equal(t, "Bo", creator.Drafts[1].Name)
	assert.Contains(t, m.View(), "Imported 2 of 2 clients")

	// Execute: close
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Assert the session is reset on close
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.Equal(t, domain.StepUpload, m.Session().Step)
	assert.Empty(t, m.Session().Rows)
	assert.Equal(t, 2, m.Summary().Succeeded, "summary survives the reset")
}

func TestModel_RowFailuresAreCounted(t *testing.T) {
	// Setup
	creator := &testutil.MockClientCreator{FailOn: map[string]error{"Ana": errors.New("duplicate email")}}
	m := newTestModel(creator, map[string]string{"clients.csv": sampleCSV})
	run(t, m, typePath(m, "clients.csv"))

	// Execute
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)

	// Assert
	summary := m.Summary()
	assert.Equal(t, 2, summary.Attempted)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, 2, summary.Failures[0].Row)
	assert.Contains(t, m.View(), "row 2: duplicate email")
}

func TestModel_CancelStopsAfterInFlightRow(t *testing.T) {
	// Setup
	creator := &testutil.MockClientCreator{}
	m := newTestModel(creator, map[string]string{"clients.csv": sampleCSV})
	run(t, m, typePath(m, "clients.csv"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, domain.StepImporting, m.Session().Step)

	// Execute
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	quit := run(t, m, cmd)

	// Assert
	assert.True(t, quit)
	assert.Len(t, creator.Drafts, 1, "only the in-flight row is sent")
	assert.True(t, m.Summary().Cancelled)
	assert.Equal(t, 1, m.Summary().Attempted)
	assert.Equal(t, domain.StepUpload, m.Session().Step)
}

func TestModel_BackReturnsToUpload(t *testing.T) {
	// Setup
	m := newTestModel(&testutil.MockClientCreator{}, map[string]string{"clients.csv": sampleCSV})
	run(t, m, typePath(m, "clients.csv"))
	require.Equal(t, domain.StepPreview, m.Session().Step)

	// Execute
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	// Assert
	assert.Equal(t, domain.StepUpload, m.Session().Step)
	assert.Empty(t, m.Session().FileName)
	assert.Contains(t, m.View(), "File to import")
}

func TestModel_ErrorsStayOnCurrentStep(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		path    string
		wantErr string
	}{
		{
			name:    "missing file",
			files:   map[string]string{},
			path:    "nope.csv",
			wantErr: "file does not exist",
		},
		{
			name:    "empty file",
			files:   map[string]string{"empty.csv": ""},
			path:    "empty.csv",
			wantErr: domain.ErrEmptyFile.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			m := newTestModel(&testutil.MockClientCreator{}, tt.files)

			// Execute
			run(t, m, typePath(m, tt.path))

			// Assert
			assert.Equal(t, domain.StepUpload, m.Session().Step)
			assert.Contains(t, m.View(), tt.wantErr)
		})
	}
}

func TestModel_NothingToImport(t *testing.T) {
	// Setup
	creator := &testutil.MockClientCreator{}
	m := newTestModel(creator, map[string]string{"bad.csv": "Name,Email\n,\n"})
	run(t, m, typePath(m, "bad.csv"))

	// Execute
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Assert
	assert.Nil(t, cmd)
	assert.Equal(t, domain.StepPreview, m.Session().Step)
	assert.Contains(t, m.View(), domain.ErrNothingToImport.Error())
	assert.Empty(t, creator.Drafts)
}

func TestModel_FilePathSkipsPrompt(t *testing.T) {
	// Setup
	m := New(context.Background(), Options{
		Importer:   usecase.NewImportClients(&testutil.MockClientCreator{}, nil),
		FilePath:   "/tmp/import/clients.csv",
		HasHeaders: true,
		ReadFile:   func(string) ([]byte, error) { return []byte(sampleCSV), nil },
	})

	// Execute
	run(t, m, m.Init())

	// Assert
	assert.Equal(t, domain.StepPreview, m.Session().Step)
	assert.Equal(t, "clients.csv", m.Session().FileName)
}
