package handlers

import (
	"fmt"

	"github.com/imamik/discourse-setup/internal/bootstrap"
	"github.com/imamik/discourse-setup/internal/config"
	"github.com/imamik/discourse-setup/internal/ui"
	"github.com/imamik/discourse-setup/internal/util/prerequisites"
)

func printWelcome() {
	fmt.Println(ui.Title("Discourse setup"))
	fmt.Println(ui.Dim("Checks this host, asks a few questions and bootstraps your forum."))
	fmt.Println()
}

func printToolResults(results *prerequisites.CheckResults) {
	fmt.Println(ui.Section("Prerequisites"))
	for _, r := range results.Results {
		switch {
		case r.Found && r.Version != "":
			fmt.Println(ui.OK(fmt.Sprintf("%s (%s)", r.Tool.Name, r.Version)))
		case r.Found:
			fmt.Println(ui.OK(r.Tool.Name))
		case r.Tool.Required:
			fmt.Println(ui.Fail(fmt.Sprintf("%s not found: %s", r.Tool.Name, r.Tool.Description)))
			fmt.Printf("     Install: %s\n", r.Tool.InstallURL)
		default:
			fmt.Println(ui.Skip(fmt.Sprintf("%s not found (optional)", r.Tool.Name)))
		}
	}
	fmt.Println()
}

func printNextSteps(cmd bootstrap.Command) {
	fmt.Println()
	fmt.Println(ui.Section("Next steps"))
	fmt.Println("Bootstrap was skipped. When you are ready, run:")
	fmt.Printf("  %s\n", cmd.String())
}

func printSuccess(d config.Deployment) {
	scheme := "http"
	if d.LetsEncryptEnabled() {
		scheme = "https"
	}

	fmt.Println()
	fmt.Println(ui.OK("Bootstrap finished."))
	fmt.Printf("Visit %s://%s to register the admin account (%s).\n", scheme, d.Hostname, d.DeveloperEmails)
	fmt.Println(ui.Dim("If the page does not load, check DNS for the hostname and the launcher logs."))
}
