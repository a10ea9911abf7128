package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the JSON API, the calendar feed, the support form endpoint and
Prometheus metrics on /metrics.

The server always uses the database from [database], even when [remote]
url is set. Requests authenticate with tokens from 'clientive token issue'.
SIGINT or SIGTERM shuts the server down gracefully.

Examples:
  clientive serve
  clientive serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !cmd.Flags().Changed("addr") {
				addr = c.AppConfig.Server.Addr
			}

			srv, err := c.Server(ctx, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default [server] addr)")

	return cmd
}
