package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/discourse-setup/cmd/discourse-setup/handlers"
	"github.com/imamik/discourse-setup/internal/config"
)

// Check returns the command that runs the host checks only.
//
// Optional flags:
//
//	--json: Output in JSON format
func Check() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether this host can run Discourse",
		Long: `Check memory, swap, free disk and ports without writing anything.

Also prints the database and web worker tuning setup would apply.
Exits non-zero when setup would refuse to continue.

Examples:
  # Human-readable report
  discourse-setup check

  # Machine-readable report
  discourse-setup check --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			return handlers.Check(cmd.Context(), s, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
