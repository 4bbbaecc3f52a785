// Package main is the entry point for the discourse-setup CLI.
//
// discourse-setup checks a host, writes containers/app.yml from the
// standalone template and bootstraps a Discourse container with the launcher.
//
// For detailed usage information, run:
//
//	discourse-setup --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/discourse-setup/cmd/discourse-setup/commands"
	"github.com/imamik/discourse-setup/cmd/discourse-setup/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(handlers.ExitCode(err))
	}
}
