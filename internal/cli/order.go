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

// newOrderCommand creates the order command group.
func newOrderCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "order",
		Aliases: []string{"orders"},
		Short:   "Manage orders",
	}
	cmd.AddCommand(
		newOrderAddCommand(c),
		newOrderListCommand(c),
		newOrderUpdateCommand(c),
		newOrderDeleteCommand(c),
	)
	return cmd
}

func newOrderAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ClientID    string
		Product     string
		Description string
		Status      string
		Date        string
		Amount      float64
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an order",
		Long: `Record an order for a client.

Examples:
  clientive order add --client c1 --product "Espresso beans" --amount 42.50
  clientive order add --client c1 --product Grinder --amount 180 --date 2026-02-14 --status completed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.CreateOrderInput{
				ClientID:    opts.ClientID,
				Product:     opts.Product,
				Description: opts.Description,
				Status:      domain.OrderStatus(opts.Status),
				Date:        c.Clock.Now(),
			}
			if cmd.Flags().Changed("amount") {
				in.Amount = &opts.Amount
			}
			if opts.Date != "" {
				t, err := parseDateFlag("date", opts.Date, c.Location())
				if err != nil {
					return err
				}
				in.Date = t
			}

			uc, err := c.CreateOrderUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created order %s (%.2f)\n", out.Order.ID, out.Order.Amount)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ClientID, "client", "", "Client ID (required)")
	cmd.Flags().StringVar(&opts.Product, "product", "", "Product (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "Details")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Status: pending, processing, completed or cancelled")
	cmd.Flags().StringVar(&opts.Date, "date", "", "Order date (default now)")
	cmd.Flags().Float64Var(&opts.Amount, "amount", 0, "Amount (required)")

	return cmd
}

func newOrderListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ClientID string
		Status   string
		Output   string
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Long: `List orders. The total excludes cancelled orders.

Examples:
  clientive order list --client c1
  clientive order list --status pending -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(opts.Output); err != nil {
				return err
			}
			uc, err := c.ListOrdersUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.ListOrdersInput{
				ClientID: opts.ClientID,
				Status:   domain.OrderStatus(opts.Status),
			})
			if err != nil {
				return err
			}

			if done, err := printStructured(cmd.OutOrStdout(), opts.Output, out.Orders); done {
				return err
			}
			printOrderList(cmd.OutOrStdout(), out, c.Location())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ClientID, "client", "", "Only orders for this client")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Only orders with this status")
	addOutputFlag(cmd, &opts.Output)

	return cmd
}

func printOrderList(w io.Writer, out *usecase.ListOrdersOutput, loc *time.Location) {
	if len(out.Orders) == 0 {
		_, _ = fmt.Fprintln(w, "No orders found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tDATE\tCLIENT\tPRODUCT\tSTATUS\tAMOUNT")
	for _, o := range out.Orders {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
			o.ID,
			formatDate(o.Date, loc),
			o.ClientID,
			truncate(o.Product, 40),
			o.Status,
			o.Amount,
		)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(w, "\nTotal: %.2f\n", out.Total)
}

func newOrderUpdateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ClientID    string
		Product     string
		Description string
		Status      string
		Date        string
		Amount      float64
	}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an order",
		Long: `Update fields of an order. Only the flags given are changed.

Examples:
  clientive order update o1 --status completed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := usecase.UpdateOrderInput{ID: args[0]}
			if flags.Changed("client") {
				in.ClientID = &opts.ClientID
			}
			if flags.Changed("product") {
				in.Product = &opts.Product
			}
			if flags.Changed("description") {
				in.Description = &opts.Description
			}
			if flags.Changed("status") {
				s := domain.OrderStatus(opts.Status)
				in.Status = &s
			}
			if flags.Changed("amount") {
				in.Amount = &opts.Amount
			}
			if flags.Changed("date") {
				t, err := parseDateFlag("date", opts.Date, c.Location())
				if err != nil {
					return err
				}
				in.Date = &t
			}

			uc, err := c.UpdateOrderUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated order %s\n", out.Order.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ClientID, "client", "", "New client ID")
	cmd.Flags().StringVar(&opts.Product, "product", "", "New product")
	cmd.Flags().StringVar(&opts.Description, "description", "", "New description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status")
	cmd.Flags().StringVar(&opts.Date, "date", "", "New order date")
	cmd.Flags().Float64Var(&opts.Amount, "amount", 0, "New amount")

	return cmd
}

func newOrderDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an order",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.DeleteOrderUseCase(cmd.Context())
			if err != nil {
				return err
			}
			if err := uc.Execute(cmd.Context(), usecase.DeleteOrderInput{ID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted order %s\n", args[0])
			return nil
		},
	}
}
