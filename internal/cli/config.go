package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage clientive configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.
Secrets (auth secret, API keys, remote token, database DSN) are masked
unless --show-secrets is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{ShowSecrets: showSecrets})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			for _, info := range []domain.ConfigInfo{out.GlobalConfig, out.LocalConfig} {
				if info.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
				}
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			_, _ = fmt.Fprint(w, out.EffectiveTOML)
			if !strings.HasSuffix(out.EffectiveTOML, "\n") {
				_, _ = fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print secrets in clear text")

	return cmd
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Owner  string
		Email  string
		Global bool
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates clientive.toml in the current directory.
With --global, creates the global configuration file at
~/.config/clientive/config.toml.

Error conditions:
- Target file already exists: error

Examples:
  clientive config init --owner me --email me@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := domain.NewDefaultConfig()
			if c.ConfigLoader != nil {
				loaded, err := c.ConfigLoader.Load()
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if opts.Owner != "" {
				cfg.Account.Owner = opts.Owner
			}
			if opts.Email != "" {
				cfg.Account.Email = opts.Email
			}

			uc := c.InitConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{
				Global: opts.Global,
				Config: cfg,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Global, "global", false, "Generate global configuration")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "Account owner ID to write")
	cmd.Flags().StringVar(&opts.Email, "email", "", "Reminder email address to write")

	return cmd
}
