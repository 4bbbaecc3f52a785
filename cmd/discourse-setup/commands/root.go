// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing
// and flag binding. Settings are resolved with config.LoadSettings and
// execution is delegated to handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/discourse-setup/cmd/discourse-setup/handlers"
	"github.com/imamik/discourse-setup/internal/config"
)

// Root returns the root command for the discourse-setup CLI.
//
// Running it without a subcommand starts the interactive setup wizard.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discourse-setup",
		Short: "Interactive setup for a standalone Discourse container",
		Long: `Interactive setup for a standalone Discourse container.

Run from the root of a discourse_docker checkout. The wizard:
  - Refuses to run when containers/app.yml already exists
  - Checks memory, swap, free disk and that ports 80 and 443 are free
  - Copies samples/standalone.yml and scales database and web workers to this host
  - Asks for the hostname, admin email and SMTP settings
  - Validates the result and runs ./launcher rebuild app

Settings can also come from DISCOURSE_SETUP_* environment variables or a
discourse-setup.yaml file in the working directory.

Examples:
  # Run the wizard
  discourse-setup

  # Write the configuration but do not bootstrap
  discourse-setup --skip-bootstrap

  # Bootstrap and wait up to 10 minutes for the site to answer
  discourse-setup --wait-ready 10m`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			return handlers.Setup(cmd.Context(), s)
		},
	}

	addSettingsFlags(cmd)

	cmd.AddCommand(Check())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
