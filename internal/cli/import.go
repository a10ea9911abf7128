package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/tui/importer"
	"github.com/clientive/clientive/internal/usecase"
)

// runImportWizard launches the interactive importer (can be replaced in tests).
var runImportWizard = importer.Run

// isInteractive reports whether stdin and stdout are terminals (can be replaced in tests).
var isInteractive = func() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Dialect   string
		NoHeaders bool
		Yes       bool
	}

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import clients from a CSV or TSV file",
		Long: `Import clients from a spreadsheet export.

On a terminal this opens a wizard: choose the file, review the preview
(rows with problems are listed and skipped), then import. Rows are sent
one at a time through the same path as 'client add'; a failed row does
not stop the rest.

With --yes, or when not on a terminal, the file is previewed and imported
without prompting.

The first row is read as headers unless --no-headers is given. Known
columns: name, email, phone, company, notes, status, tags (separated
by ';'). Without headers the columns are read in the order name, email,
phone, company, status, tags, notes. Unless --dialect is set, .csv files
are read as comma-separated and every other file (.xls, .xlsx, .tsv, ...)
as tab-separated.

Examples:
  # Guided import
  clientive import

  # Import straight away
  clientive import customers.csv --yes

  # Headerless export from a spreadsheet
  clientive import export.xls --no-headers --dialect tsv --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dialect domain.Dialect
			if opts.Dialect != "" {
				d, err := domain.ParseDialect(opts.Dialect)
				if err != nil {
					return err
				}
				dialect = d
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			uc, err := c.ImportClientsUseCase(cmd.Context())
			if err != nil {
				return err
			}

			if opts.Yes || !isInteractive() {
				if path == "" {
					return domain.NewValidationError("a file is required when not importing interactively")
				}
				return importFile(cmd, c.PreviewImportUseCase(), uc, path, dialect, !opts.NoHeaders)
			}

			summary, err := runImportWizard(cmd.Context(), importer.Options{
				Importer:   uc,
				Preview:    c.PreviewImportUseCase(),
				FilePath:   path,
				Dialect:    dialect,
				HasHeaders: !opts.NoHeaders,
			})
			if err != nil {
				return err
			}
			if summary.FileName == "" {
				return nil
			}
			printImportSummary(cmd.OutOrStdout(), summary.FileName, &usecase.ImportClientsOutput{
				Failures:  summary.Failures,
				Attempted: summary.Attempted,
				Succeeded: summary.Succeeded,
				Failed:    summary.Failed,
				Cancelled: summary.Cancelled,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "File dialect: csv or tsv (default from extension)")
	cmd.Flags().BoolVar(&opts.NoHeaders, "no-headers", false, "First row is data, not column names")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Import without the interactive wizard")

	return cmd
}

// importFile runs preview and import without a terminal UI.
func importFile(cmd *cobra.Command, preview *usecase.PreviewImport, uc *usecase.ImportClients,
	path string, dialect domain.Dialect, hasHeaders bool,
) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)

	p, err := preview.Execute(cmd.Context(), usecase.PreviewImportInput{
		FileName:   name,
		Content:    string(data),
		Dialect:    dialect,
		HasHeaders: hasHeaders,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s (%s): %d valid, %d with errors\n", name, p.Dialect, p.Valid, p.Invalid)
	if len(p.MissingColumns) > 0 {
		_, _ = fmt.Fprintf(w, "Warning: missing columns %v\n", p.MissingColumns)
	}
	for _, row := range p.Rows {
		if !row.Valid() {
			_, _ = fmt.Fprintf(w, "  skip row %d: %v\n", row.Row, row.Errors)
		}
	}

	session := domain.NewImportSession()
	if err := session.Load(name, p.Rows); err != nil {
		return err
	}
	out, err := uc.Execute(cmd.Context(), usecase.ImportClientsInput{Session: session})
	if err != nil {
		return err
	}
	printImportSummary(w, name, out)
	if out.Cancelled && errors.Is(cmd.Context().Err(), context.Canceled) {
		return cmd.Context().Err()
	}
	return nil
}

func printImportSummary(w io.Writer, fileName string, out *usecase.ImportClientsOutput) {
	if out.Cancelled {
		_, _ = fmt.Fprintf(w, "Import of %s cancelled.\n", fileName)
	}
	_, _ = fmt.Fprintf(w, "Imported %d of %d clients from %s\n", out.Succeeded, out.Attempted, fileName)
	for _, f := range out.Failures {
		_, _ = fmt.Fprintf(w, "  ✗ row %d: %v\n", f.Row, f.Err)
	}
}
