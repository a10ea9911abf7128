package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/usecase"
)

// newCalendarCommand creates the calendar command group.
func newCalendarCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Put tasks on a calendar",
		Long: `Export tasks as iCalendar files, build quick-add links for calendar
apps, or print the subscription URL of the live task feed.`,
	}
	cmd.AddCommand(
		newCalendarDownloadCommand(c),
		newCalendarQuickAddCommand(c),
		newCalendarFeedURLCommand(c),
	)
	return cmd
}

func newCalendarDownloadCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Out string
	}

	cmd := &cobra.Command{
		Use:   "download [task-id]",
		Short: "Write tasks to an .ics file",
		Long: `Write every dated task, or a single task, to an iCalendar file.

Tasks without a parseable due date are skipped in the bulk file.

Examples:
  # All tasks
  clientive calendar download

  # One task, printed to stdout
  clientive calendar download t1 --out -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content, fileName, summary string
			if len(args) == 1 {
				uc, err := c.ExportTaskCalendarUseCase(cmd.Context())
				if err != nil {
					return err
				}
				out, err := uc.Execute(cmd.Context(), usecase.ExportTaskCalendarInput{TaskID: args[0]})
				if err != nil {
					return err
				}
				content, fileName, summary = out.Content, out.FileName, "Exported task "+args[0]
			} else {
				uc, err := c.BuildCalendarUseCase(cmd.Context())
				if err != nil {
					return err
				}
				out, err := uc.Execute(cmd.Context(), usecase.BuildCalendarInput{})
				if err != nil {
					return err
				}
				content, fileName = out.Content, out.FileName
				summary = fmt.Sprintf("Exported %d tasks", out.Events)
				if out.Skipped > 0 {
					summary += fmt.Sprintf(" (%d without a due date skipped)", out.Skipped)
				}
			}

			if opts.Out == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			path := opts.Out
			if path == "" {
				path = filepath.Join(c.Config.WorkDir, fileName)
			}
			if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s to %s\n", summary, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Output path, or - for stdout")
	return cmd
}

func newCalendarQuickAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "quick-add <task-id>",
		Short: "Print a link that adds a task to Google Calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.QuickAddURLUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.QuickAddURLInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.URL)
			return nil
		},
	}
}

func newCalendarFeedURLCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "feed-url",
		Short: "Print the calendar subscription URL",
		Long: `Print the URL calendar apps subscribe to for a live view of your tasks.

In remote mode the URL uses [remote] url and token. Otherwise a token is
issued for [account] owner and combined with [server] public_url.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			remote := c.AppConfig.Remote
			if remote.URL != "" && remote.Token != "" {
				_, _ = fmt.Fprintln(w, usecase.FeedURL(remote.URL, remote.Token))
				return nil
			}

			out, err := c.IssueTokenUseCase().Execute(usecase.IssueTokenInput{
				Owner: c.AppConfig.Account.Owner,
				TTL:   c.AppConfig.Auth.TokenTTL.Std(),
			})
			if err != nil {
				return err
			}
			if out.FeedURL == "" {
				_, _ = fmt.Fprintln(w, "No [server] public_url configured. Append this to your server URL:")
				_, _ = fmt.Fprintf(w, "/api/calendar?token=%s\n", out.Token)
				return nil
			}
			_, _ = fmt.Fprintln(w, out.FeedURL)
			return nil
		},
	}
}
