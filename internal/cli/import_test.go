package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/tui/importer"
	"github.com/clientive/clientive/internal/usecase"
)

const importFixture = "Name,Email,Status,Tags\n" +
	"Ana,ana@example.com,vip,a; b\n" +
	",missing@example.com,,\n" +
	"Bo,bo@example.com,,\n"

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// stubInteractive replaces the terminal check for one test.
func stubInteractive(t *testing.T, interactive bool) {
	t.Helper()
	orig := isInteractive
	isInteractive = func() bool { return interactive }
	t.Cleanup(func() { isInteractive = orig })
}

func TestImport_NonInteractive(t *testing.T) {
	// Setup
	c, st := newTestContainer(t)
	path := writeImportFile(t, "clients.csv", importFixture)

	// Execute
	out, err := execute(t, newImportCommand(c), path, "--yes")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "clients.csv (csv): 2 valid, 1 with errors")
	assert.Contains(t, out, "skip row 3")
	assert.Contains(t, out, "Imported 2 of 2 clients from clients.csv")
	require.Len(t, st.Clients.Clients, 2)
	assert.Equal(t, "Ana", st.Clients.Clients[0].Name)
	assert.Equal(t, domain.ClientVIP, st.Clients.Clients[0].Status)
	assert.Equal(t, []string{"a", "b"}, st.Clients.Clients[0].Tags)
	assert.Equal(t, "Bo", st.Clients.Clients[1].Name)
}

func TestImport_NoTerminalSkipsWizard(t *testing.T) {
	// Setup
	stubInteractive(t, false)
	orig := runImportWizard
	t.Cleanup(func() { runImportWizard = orig })
	runImportWizard = func(context.Context, importer.Options) (importer.Summary, error) {
		t.Fatal("wizard must not run without a terminal")
		return importer.Summary{}, nil
	}
	c, st := newTestContainer(t)
	path := writeImportFile(t, "people.tsv", "Bo\tbo@example.com\n")

	// Execute
	out, err := execute(t, newImportCommand(c), path, "--no-headers")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "people.tsv (tsv): 1 valid, 0 with errors")
	require.Len(t, st.Clients.Clients, 1)
	assert.Equal(t, "bo@example.com", st.Clients.Clients[0].Email)
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		content string
		args    []string
	}{
		{name: "no file without terminal", args: []string{"--yes"}, wantErr: domain.ErrInvalidInput},
		{name: "empty file", content: "\n\n", args: []string{"--yes"}, wantErr: domain.ErrEmptyFile},
		{name: "nothing valid", content: "Name,Email\n,nobody\n", args: []string{"--yes"}, wantErr: domain.ErrNothingToImport},
		{name: "unknown dialect", content: importFixture, args: []string{"--yes", "--dialect", "json"}, wantErr: domain.ErrUnknownDialect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, st := newTestContainer(t)
			args := tt.args
			if tt.content != "" {
				args = append([]string{writeImportFile(t, "in.csv", tt.content)}, args...)
			}

			_, err := execute(t, newImportCommand(c), args...)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, st.Clients.Clients)
		})
	}
}

func TestImport_Wizard(t *testing.T) {
	// Setup
	stubInteractive(t, true)
	orig := runImportWizard
	t.Cleanup(func() { runImportWizard = orig })

	var got importer.Options
	runImportWizard = func(_ context.Context, opts importer.Options) (importer.Summary, error) {
		got = opts
		return importer.Summary{
			FileName:  "clients.csv",
			Attempted: 2,
			Succeeded: 1,
			Failed:    1,
			Failures:  []usecase.ImportFailure{{Row: 4, Err: errors.New("duplicate email")}},
		}, nil
	}
	c, _ := newTestContainer(t)

	// Execute
	out, err := execute(t, newImportCommand(c), "clients.csv", "--dialect", "tsv")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "clients.csv", got.FilePath)
	assert.Equal(t, domain.DialectTSV, got.Dialect)
	assert.True(t, got.HasHeaders)
	assert.NotNil(t, got.Importer)
	assert.NotNil(t, got.Preview)
	assert.Contains(t, out, "Imported 1 of 2 clients from clients.csv")
	assert.Contains(t, out, "✗ row 4: duplicate email")
}

func TestImport_WizardQuitBeforeLoading(t *testing.T) {
	stubInteractive(t, true)
	orig := runImportWizard
	t.Cleanup(func() { runImportWizard = orig })
	runImportWizard = func(context.Context, importer.Options) (importer.Summary, error) {
		return importer.Summary{}, nil
	}
	c, _ := newTestContainer(t)

	out, err := execute(t, newImportCommand(c))

	require.NoError(t, err)
	assert.Empty(t, out)
}
