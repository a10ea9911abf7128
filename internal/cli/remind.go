package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/usecase"
)

// newRemindCommand creates the remind command.
func newRemindCommand(c *app.Container) *cobra.Command {
	var opts struct {
		To     string
		Window time.Duration
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Email a summary of tasks that are due",
		Long: `Send one email listing open tasks marked --notify that are overdue
or due within the window. Nothing is sent when no task qualifies.

The recipient defaults to [account] email and the window to
[reminders] window. Run it from cron for daily reminders.

Examples:
  clientive remind
  clientive remind --window 72h --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.SendRemindersInput{
				To:     c.AppConfig.Account.Email,
				Window: c.AppConfig.Reminders.Window.Std(),
				DryRun: opts.DryRun,
			}
			if cmd.Flags().Changed("to") {
				in.To = opts.To
			}
			if cmd.Flags().Changed("window") {
				in.Window = opts.Window
			}

			uc, err := c.SendRemindersUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(w, "No tasks need a reminder.")
				return nil
			}
			loc := c.Location()
			for _, lt := range out.Tasks {
				_, _ = fmt.Fprintf(w, "  %-8s %s  %s (%s)\n", lt.Bucket, formatDate(lt.Due, loc), lt.Task.Title, lt.ClientName)
			}
			if out.Sent {
				_, _ = fmt.Fprintf(w, "Sent %d reminder(s) to %s\n", len(out.Tasks), in.To)
			} else {
				_, _ = fmt.Fprintf(w, "%d task(s) due (dry run, nothing sent)\n", len(out.Tasks))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "", "Recipient (default [account] email)")
	cmd.Flags().DurationVar(&opts.Window, "window", 0, "How far ahead to look (default [reminders] window)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "List the tasks without sending")

	return cmd
}
