package wizard

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/imamik/discourse-setup/internal/config"
)

// Collect asks the six deployment questions in order and returns the answers.
// previous supplies the defaults; an empty answer keeps the default. Tuning
// fields are carried over from previous untouched.
func Collect(ctx context.Context, p Prompter, previous config.Deployment) (config.Deployment, error) {
	d := previous

	steps := []struct {
		q   Question
		dst *string
	}{
		{Question{Title: "Hostname for your Discourse?", Description: "e.g. discourse.example.com", Default: previous.Hostname}, &d.Hostname},
		{Question{Title: "Email address for admin account(s)?", Description: "Comma-separated list of admin emails", Default: previous.DeveloperEmails}, &d.DeveloperEmails},
		{Question{Title: "SMTP server address?", Default: previous.SMTPAddress}, &d.SMTPAddress},
	}
	for _, s := range steps {
		if err := ask(ctx, p, s.q, s.dst); err != nil {
			return config.Deployment{}, err
		}
	}

	// A known provider's user name replaces the default when the address
	// changed; an operator's name for the same address is kept.
	userDefault := previous.SMTPUserName
	if name, ok := ProviderUserName(d.SMTPAddress); ok {
		changed := !strings.EqualFold(d.SMTPAddress, previous.SMTPAddress)
		if changed || userDefault == "" || userDefault == DefaultSMTPUserName {
			userDefault = name
		}
	}
	d.SMTPUserName = userDefault

	steps = []struct {
		q   Question
		dst *string
	}{
		{Question{Title: "SMTP user name?", Default: userDefault}, &d.SMTPUserName},
		{Question{Title: "SMTP password?", Default: previous.SMTPPassword}, &d.SMTPPassword},
		{Question{Title: "Optional email address for Let's Encrypt warnings?", Description: "Leave empty or enter OFF to skip HTTPS setup", Default: previous.LetsEncryptEmail}, &d.LetsEncryptEmail},
	}
	for _, s := range steps {
		if err := ask(ctx, p, s.q, s.dst); err != nil {
			return config.Deployment{}, err
		}
	}

	return d, nil
}

// ask stores the trimmed answer in dst, or the default when the answer is empty.
func ask(ctx context.Context, p Prompter, q Question, dst *string) error {
	answer, err := p.Input(ctx, q)
	if err != nil {
		return err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		answer = q.Default
	}
	*dst = answer
	return nil
}

// Summary prints the collected answers. The password is shown as entered so
// the operator can spot typos before confirming.
func Summary(w io.Writer, d config.Deployment) {
	letsEncrypt := d.LetsEncryptEmail
	if !d.LetsEncryptEnabled() {
		letsEncrypt = "(disabled)"
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-20s %s\n", "Hostname", d.Hostname)
	fmt.Fprintf(w, "  %-20s %s\n", "Email", d.DeveloperEmails)
	fmt.Fprintf(w, "  %-20s %s\n", "SMTP address", d.SMTPAddress)
	fmt.Fprintf(w, "  %-20s %s\n", "SMTP username", d.SMTPUserName)
	fmt.Fprintf(w, "  %-20s %s\n", "SMTP password", d.SMTPPassword)
	fmt.Fprintf(w, "  %-20s %s\n", "Let's Encrypt", letsEncrypt)
	if d.SharedBuffersMB > 0 {
		fmt.Fprintf(w, "  %-20s %dMB\n", "db_shared_buffers", d.SharedBuffersMB)
	}
	if d.UnicornWorkers > 0 {
		fmt.Fprintf(w, "  %-20s %d\n", "UNICORN_WORKERS", d.UnicornWorkers)
	}
	fmt.Fprintln(w)
}

// Confirm asks whether the summary is correct. An empty answer or anything
// other than n/no accepts.
func Confirm(ctx context.Context, p Prompter) (bool, error) {
	answer, err := p.Input(ctx, Question{
		Title:       "ENTER to continue, 'n' to try again",
		Description: "Does this look right?",
	})
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "n", "no":
		return false, nil
	default:
		return true, nil
	}
}

// Run collects answers until the operator confirms them. Each rejected round
// becomes the defaults of the next.
func Run(ctx context.Context, p Prompter, w io.Writer, initial config.Deployment) (config.Deployment, error) {
	current := initial
	for {
		if err := ctx.Err(); err != nil {
			return config.Deployment{}, ErrAborted
		}

		d, err := Collect(ctx, p, current)
		if err != nil {
			return config.Deployment{}, err
		}

		Summary(w, d)

		ok, err := Confirm(ctx, p)
		if err != nil {
			return config.Deployment{}, err
		}
		if ok {
			return d, nil
		}
		current = d
	}
}
