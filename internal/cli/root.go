// Package cli provides the command-line interface for clientive.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupRecords = "records"
	groupData    = "data"
	groupServer  = "server"
)

// NewRootCommand creates the root command for clientive.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "clientive",
		Short: "Small-business CRM: clients, tasks, orders",
		Long: `clientive keeps track of clients, follow-up tasks and orders.

It works directly against a local database, or against a running
clientive server when [remote] url is configured. Tasks are published
as an iCalendar feed that calendar apps can subscribe to.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.ConfigLoader == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Reported by the command that needs the config
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupRecords, Title: "Records:"},
		&cobra.Group{ID: groupData, Title: "Import, Export & Calendar:"},
		&cobra.Group{ID: groupServer, Title: "Server:"},
	)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	tokenCmd := newTokenCommand(c)
	tokenCmd.GroupID = groupSetup

	accountCmd := newAccountCommand(c)
	accountCmd.GroupID = groupSetup

	// Records
	clientCmd := newClientCommand(c)
	clientCmd.GroupID = groupRecords

	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupRecords

	orderCmd := newOrderCommand(c)
	orderCmd.GroupID = groupRecords

	remindCmd := newRemindCommand(c)
	remindCmd.GroupID = groupRecords

	// Data
	importCmd := newImportCommand(c)
	importCmd.GroupID = groupData

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupData

	calendarCmd := newCalendarCommand(c)
	calendarCmd.GroupID = groupData

	// Server
	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupServer

	root.AddCommand(
		configCmd,
		tokenCmd,
		accountCmd,
		clientCmd,
		taskCmd,
		orderCmd,
		remindCmd,
		importCmd,
		exportCmd,
		calendarCmd,
		serveCmd,
	)

	return root
}
