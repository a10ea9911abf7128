package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/usecase"
)

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage follow-up tasks",
	}
	cmd.AddCommand(
		newTaskAddCommand(c),
		newTaskListCommand(c),
		newTaskUpdateCommand(c),
		newTaskDoneCommand(c),
		newTaskDeleteCommand(c),
	)
	return cmd
}

func newTaskAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		ClientID    string
		Due         string
		Type        string
		Priority    string
		Notify      bool
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Long: `Add a follow-up task.

The due date is kept as entered. A date-time without an offset is read
in the [calendar] timezone; a bare date is an all-day task.

Examples:
  # Call a client tomorrow morning
  clientive task add --title "Call about renewal" --client c1 --due 2026-03-02T09:30 --type call

  # High-priority task with an email reminder
  clientive task add --title "Send quote" --client c1 --due 2026-03-05 --priority high --notify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := c.CreateTaskUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.CreateTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				ClientID:    opts.ClientID,
				DueDate:     opts.Due,
				Type:        domain.TaskType(opts.Type),
				Priority:    domain.Priority(opts.Priority),
				EmailNotify: opts.Notify,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "Details")
	cmd.Flags().StringVar(&opts.ClientID, "client", "", "Client ID (required)")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date, YYYY-MM-DD or YYYY-MM-DDTHH:MM (required)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Type: call, email, meeting or follow-up")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority: low, medium or high")
	cmd.Flags().BoolVar(&opts.Notify, "notify", false, "Include in email reminders")

	return cmd
}

func newTaskListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ClientID string
		Output   string
		Pending  bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks grouped by when they are due: overdue, today, upcoming,
no date, done.

Examples:
  clientive task list
  clientive task list --pending --client c1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(opts.Output); err != nil {
				return err
			}
			uc, err := c.ListTasksUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.ListTasksInput{
				ClientID:    opts.ClientID,
				PendingOnly: opts.Pending,
			})
			if err != nil {
				return err
			}

			tasks := make([]*domain.Task, len(out.Tasks))
			for i, lt := range out.Tasks {
				tasks[i] = lt.Task
			}
			if done, err := printStructured(cmd.OutOrStdout(), opts.Output, tasks); done {
				return err
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks, c.Location())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ClientID, "client", "", "Only tasks for this client")
	cmd.Flags().BoolVar(&opts.Pending, "pending", false, "Hide completed tasks")
	addOutputFlag(cmd, &opts.Output)

	return cmd
}

func printTaskList(w io.Writer, tasks []usecase.ListedTask, loc *time.Location) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tWHEN\tDUE\tTYPE\tPRIORITY\tCLIENT\tTITLE")
	for _, lt := range tasks {
		due := "-"
		if !lt.Due.IsZero() {
			due = formatDate(lt.Due, loc)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			lt.Task.ID,
			lt.Bucket,
			due,
			lt.Task.Type,
			lt.Task.Priority,
			orDash(lt.ClientName),
			truncate(lt.Task.Title, 50),
		)
	}
	_ = tw.Flush()
}

func newTaskUpdateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		ClientID    string
		Due         string
		Type        string
		Priority    string
		Completed   bool
		Notify      bool
	}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long: `Update fields of a task. Only the flags given are changed.

Examples:
  clientive task update t1 --due 2026-03-09
  clientive task update t1 --completed=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := usecase.UpdateTaskInput{ID: args[0]}
			if flags.Changed("title") {
				in.Title = &opts.Title
			}
			if flags.Changed("description") {
				in.Description = &opts.Description
			}
			if flags.Changed("client") {
				in.ClientID = &opts.ClientID
			}
			if flags.Changed("due") {
				in.DueDate = &opts.Due
			}
			if flags.Changed("type") {
				t := domain.TaskType(opts.Type)
				in.Type = &t
			}
			if flags.Changed("priority") {
				p := domain.Priority(opts.Priority)
				in.Priority = &p
			}
			if flags.Changed("completed") {
				in.Completed = &opts.Completed
			}
			if flags.Changed("notify") {
				in.EmailNotify = &opts.Notify
			}
			return updateTask(cmd, c, in)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "description", "", "New description")
	cmd.Flags().StringVar(&opts.ClientID, "client", "", "New client ID")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date")
	cmd.Flags().StringVar(&opts.Type, "type", "", "New type")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority")
	cmd.Flags().BoolVar(&opts.Completed, "completed", false, "Mark completed")
	cmd.Flags().BoolVar(&opts.Notify, "notify", false, "Include in email reminders")

	return cmd
}

func newTaskDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completed := true
			return updateTask(cmd, c, usecase.UpdateTaskInput{ID: args[0], Completed: &completed})
		},
	}
}

func updateTask(cmd *cobra.Command, c *app.Container, in usecase.UpdateTaskInput) error {
	uc, err := c.UpdateTaskUseCase(cmd.Context())
	if err != nil {
		return err
	}
	out, err := uc.Execute(cmd.Context(), in)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", out.Task.ID)
	return nil
}

func newTaskDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.DeleteTaskUseCase(cmd.Context())
			if err != nil {
				return err
			}
			if err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{ID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}
