package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/usecase"
)

// newClientCommand creates the client command group.
func newClientCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
		Long: `Create, list, update and delete clients and record interactions.

When a remote server is configured and cannot be reached, new clients
are kept in a local outbox. Run 'clientive client sync' to send them
once the server is back.`,
	}

	cmd.AddCommand(
		newClientAddCommand(c),
		newClientListCommand(c),
		newClientShowCommand(c),
		newClientUpdateCommand(c),
		newClientDeleteCommand(c),
		newClientInteractCommand(c),
		newClientSyncCommand(c),
	)
	return cmd
}

func newClientAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name    string
		Email   string
		Phone   string
		Company string
		Notes   string
		Status  string
		Tags    []string
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		Long: `Add a new client.

Name and email are required. Status defaults to prospect.

Examples:
  # Add a prospect
  clientive client add --name "Ana Lima" --email ana@example.com

  # Add a tagged VIP
  clientive client add --name Bo --email bo@example.com --status vip --tag wholesale`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := c.AddClientUseCase(cmd.Context())
			if err != nil {
				return err
			}

			res, err := uc.Execute(cmd.Context(), usecase.AddClientInput{
				Draft: domain.ClientDraft{
					Name:    opts.Name,
					Email:   opts.Email,
					Phone:   opts.Phone,
					Company: opts.Company,
					Notes:   opts.Notes,
					Status:  domain.ClientStatus(opts.Status),
					Tags:    opts.Tags,
				},
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if res.IsSynced() {
				_, _ = fmt.Fprintf(w, "Added client %s (%s)\n", res.Client.ID, res.Client.Name)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Saved %s locally (%s): %s\n", res.Pending.Draft.Name, res.Tier, domain.FriendlyError(domain.ErrUnavailable))
			_, _ = fmt.Fprintln(w, "Run 'clientive client sync' when the server is reachable.")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Client name (required)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&opts.Company, "company", "", "Company")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Status: active, inactive, prospect, lead or vip")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Tag (repeatable)")

	return cmd
}

func newClientListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Query  string
		Tag    string
		Status string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Long: `List clients, oldest first.

Output columns:
  ID, NAME, EMAIL, COMPANY, STATUS, TAGS, LAST CONTACT

Examples:
  # Every client
  clientive client list

  # Search by name, email or company
  clientive client list --query acme

  # VIP clients as JSON
  clientive client list --status vip -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(opts.Output); err != nil {
				return err
			}
			uc, err := c.ListClientsUseCase(cmd.Context())
			if err != nil {
				return err
			}

			out, err := uc.Execute(cmd.Context(), usecase.ListClientsInput{
				Query:  opts.Query,
				Tag:    opts.Tag,
				Status: domain.ClientStatus(opts.Status),
			})
			if err != nil {
				return err
			}

			if done, err := printStructured(cmd.OutOrStdout(), opts.Output, out.Clients); done {
				return err
			}
			printClientList(cmd.OutOrStdout(), out.Clients, c.Location())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Match name, email or company")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "Only clients with this tag")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Only clients with this status")
	addOutputFlag(cmd, &opts.Output)

	return cmd
}

func printClientList(w io.Writer, clients []*domain.Client, loc *time.Location) {
	if len(clients) == 0 {
		_, _ = fmt.Fprintln(w, "No clients found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCOMPANY\tSTATUS\tTAGS\tLAST CONTACT")
	for _, cl := range clients {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			cl.ID,
			truncate(cl.Name, 30),
			cl.Email,
			orDash(cl.Company),
			cl.Status.Display(),
			orDash(strings.Join(cl.Tags, ", ")),
			formatDate(cl.LastContact, loc),
		)
	}
	_ = tw.Flush()
}

func newClientShowCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Output string
	}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a client and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.Output); err != nil {
				return err
			}
			st, err := c.Store(cmd.Context())
			if err != nil {
				return err
			}
			cl, err := st.Clients.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get client: %w", err)
			}
			if cl == nil {
				return domain.ErrClientNotFound
			}

			if done, err := printStructured(cmd.OutOrStdout(), opts.Output, cl); done {
				return err
			}
			printClient(cmd.OutOrStdout(), cl, c.Location())
			return nil
		},
	}
	addOutputFlag(cmd, &opts.Output)
	return cmd
}

func printClient(w io.Writer, cl *domain.Client, loc *time.Location) {
	_, _ = fmt.Fprintf(w, "%s  %s\n", cl.ID, cl.Name)
	_, _ = fmt.Fprintf(w, "  Email:        %s\n", cl.Email)
	_, _ = fmt.Fprintf(w, "  Phone:        %s\n", orDash(cl.Phone))
	_, _ = fmt.Fprintf(w, "  Company:      %s\n", orDash(cl.Company))
	_, _ = fmt.Fprintf(w, "  Status:       %s\n", cl.Status.Display())
	_, _ = fmt.Fprintf(w, "  Tags:         %s\n", orDash(strings.Join(cl.Tags, ", ")))
	_, _ = fmt.Fprintf(w, "  Last contact: %s\n", formatDate(cl.LastContact, loc))
	if cl.Notes != "" {
		_, _ = fmt.Fprintf(w, "  Notes:        %s\n", cl.Notes)
	}

	if len(cl.Interactions) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "\nInteractions:")
	for _, it := range cl.Interactions {
		_, _ = fmt.Fprintf(w, "  %s  %-8s %s\n", formatDate(it.Date, loc), it.Kind, it.Content)
	}
}

func newClientUpdateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name        string
		Email       string
		Phone       string
		Company     string
		Notes       string
		Status      string
		LastContact string
		Tags        []string
		AddTags     []string
	}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a client",
		Long: `Update fields of an existing client. Only the flags given are changed.

--tag replaces the whole tag list; --add-tag appends.

Examples:
  clientive client update c1 --status active
  clientive client update c1 --add-tag reorder`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := usecase.UpdateClientInput{ID: args[0], AddTags: opts.AddTags}
			if flags.Changed("name") {
				in.Name = &opts.Name
			}
			if flags.Changed("email") {
				in.Email = &opts.Email
			}
			if flags.Changed("phone") {
				in.Phone = &opts.Phone
			}
			if flags.Changed("company") {
				in.Company = &opts.Company
			}
			if flags.Changed("notes") {
				in.Notes = &opts.Notes
			}
			if flags.Changed("status") {
				status := domain.ClientStatus(opts.Status)
				in.Status = &status
			}
			if flags.Changed("last-contact") {
				t, err := parseDateFlag("last-contact", opts.LastContact, c.Location())
				if err != nil {
					return err
				}
				in.LastContact = &t
			}
			if flags.Changed("tag") {
				in.Tags = &opts.Tags
			}

			uc, err := c.UpdateClientUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated client %s\n", out.Client.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "New name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "New email")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "New phone")
	cmd.Flags().StringVar(&opts.Company, "company", "", "New company")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "New notes")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status")
	cmd.Flags().StringVar(&opts.LastContact, "last-contact", "", "Last contact date")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Replace tags (repeatable)")
	cmd.Flags().StringArrayVar(&opts.AddTags, "add-tag", nil, "Append a tag (repeatable)")

	return cmd
}

func newClientDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a client",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.DeleteClientUseCase(cmd.Context())
			if err != nil {
				return err
			}
			if err := uc.Execute(cmd.Context(), usecase.DeleteClientInput{ID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted client %s\n", args[0])
			return nil
		},
	}
}

func newClientInteractCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Kind    string
		Content string
		Date    string
	}

	cmd := &cobra.Command{
		Use:   "interact <id>",
		Short: "Record an interaction with a client",
		Long: `Add a call, email, meeting or note to the client's history.
The client's last contact date moves forward to the interaction date.

Examples:
  clientive client interact c1 --kind call --content "Asked for a quote"
  clientive client interact c1 --kind meeting --content Demo --date 2026-03-02T10:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.AddInteractionInput{
				ClientID: args[0],
				Kind:     domain.InteractionKind(opts.Kind),
				Content:  opts.Content,
			}
			if opts.Date != "" {
				t, err := parseDateFlag("date", opts.Date, c.Location())
				if err != nil {
					return err
				}
				in.Date = t
			}

			uc, err := c.AddInteractionUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s for %s\n", out.Interaction.Kind, out.Client.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", string(domain.InteractionNote), "Kind: call, email, meeting or note")
	cmd.Flags().StringVar(&opts.Content, "content", "", "What happened (required)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "When it happened (default now)")

	return cmd
}

func newClientSyncCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Send locally saved clients to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := c.SyncOutboxUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.SyncOutboxInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, cl := range out.Synced {
				_, _ = fmt.Fprintf(w, "✓ %s (%s)\n", cl.Name, cl.ID)
			}
			for _, f := range out.Failures {
				_, _ = fmt.Fprintf(w, "✗ %s: %v\n", f.Pending.Draft.Name, f.Err)
			}
			if out.Offline {
				_, _ = fmt.Fprintln(w, domain.FriendlyError(domain.ErrUnavailable))
			}
			_, _ = fmt.Fprintf(w, "Synced %d, %d still pending\n", len(out.Synced), out.Remaining)
			return nil
		},
	}
}
