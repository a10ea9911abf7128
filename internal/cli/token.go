package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/usecase"
)

// newTokenCommand creates the token command group.
func newTokenCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API access tokens",
	}
	cmd.AddCommand(newTokenIssueCommand(c))
	return cmd
}

func newTokenIssueCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Owner string
		TTL   time.Duration
	}

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token for the HTTP API",
		Long: `Sign a token for an owner with [auth] secret. The token authorizes API
calls (Authorization: Bearer <token>) and calendar feed subscriptions.

Examples:
  clientive token issue --owner alice
  clientive token issue --owner alice --ttl 720h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.IssueTokenInput{
				Owner: c.AppConfig.Account.Owner,
				TTL:   c.AppConfig.Auth.TokenTTL.Std(),
			}
			if cmd.Flags().Changed("owner") {
				in.Owner = opts.Owner
			}
			if cmd.Flags().Changed("ttl") {
				in.TTL = opts.TTL
			}

			out, err := c.IssueTokenUseCase().Execute(in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, out.Token)
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Expires: %s\n", out.ExpiresAt.Format(time.RFC3339))
			if out.FeedURL != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Calendar feed: %s\n", out.FeedURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Owner, "owner", "", "Owner ID (default [account] owner)")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", 0, "Token lifetime (default [auth] token_ttl)")

	return cmd
}
