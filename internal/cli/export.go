package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Dialect string
		Out     string
		Orders  bool
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export clients (and orders) to a spreadsheet file",
		Long: `Write every client to a CSV or tab-separated file that opens in
spreadsheet software. With --orders an orders table follows the clients
after a blank line.

The file is named crm_export_<date>.csv (or .xls for tsv) in the current
directory unless --out is given. Use --out - to write to stdout.

Examples:
  clientive export
  clientive export --dialect tsv --orders
  clientive export --out - | less`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dialect, err := domain.ParseDialect(opts.Dialect)
			if err != nil {
				return err
			}
			uc, err := c.ExportDataUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.ExportDataInput{
				Dialect:       dialect,
				IncludeOrders: opts.Orders,
			})
			if err != nil {
				return err
			}

			if opts.Out == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), out.Content)
				return err
			}
			path := opts.Out
			if path == "" {
				path = filepath.Join(c.Config.WorkDir, out.FileName)
			}
			if err := atomic.WriteFile(path, strings.NewReader(out.Content)); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d clients", out.Clients)
			if opts.Orders {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " and %d orders", out.Orders)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), " to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", string(domain.DialectCSV), "Output dialect: csv or tsv")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output path, or - for stdout")
	cmd.Flags().BoolVar(&opts.Orders, "orders", false, "Append the orders table")

	return cmd
}
