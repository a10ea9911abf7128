package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
)

// newAccountCommand creates the account command group.
func newAccountCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your account data",
	}
	cmd.AddCommand(newAccountDeleteCommand(c))
	return cmd
}

func newAccountDeleteCommand(c *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every client, task and order you own",
		Long: `Permanently delete all of your clients, tasks and orders.
This cannot be undone. You are asked to confirm unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if !yes {
				_, _ = fmt.Fprint(w, "Delete ALL clients, tasks and orders? Type 'delete' to confirm: ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.TrimSpace(line) != "delete" {
					_, _ = fmt.Fprintln(w, "Aborted.")
					return nil
				}
			}

			uc, err := c.DeleteAccountUseCase(cmd.Context())
			if err != nil {
				return err
			}
			if err := uc.Execute(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w, "Account data deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
