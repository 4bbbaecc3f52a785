package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/discourse-setup/internal/config"
)

// addSettingsFlags registers the persistent flags that override settings.
// Flag names are the settings keys with dashes.
func addSettingsFlags(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()

	fs.String("template", config.DefaultTemplatePath, "Template copied to the configuration path")
	fs.StringP("config", "c", config.DefaultConfigPath, "Configuration file to create")
	fs.String("app", config.DefaultApp, "Deployment name passed to the launcher")
	fs.String("launcher", config.DefaultLauncher, "Launcher executable")
	fs.String("bootstrap-command", config.DefaultBootstrapCommand, "Launcher sub-command used to bootstrap")
	fs.String("disk-path", config.DefaultDiskPath, "Filesystem whose free space is checked")
	fs.IntSlice("ports", config.DefaultPorts, "Ports that must be free")
	fs.Bool("skip-bootstrap", false, "Stop after writing and validating the configuration")
	fs.Bool("skip-prereqs", false, "Skip the docker and launcher check")
	fs.Duration("wait-ready", 0, "After bootstrap, wait this long for port 80 to answer")
	fs.String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	fs.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
}
