// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/imamik/discourse-setup/internal/bootstrap"
	"github.com/imamik/discourse-setup/internal/config"
	"github.com/imamik/discourse-setup/internal/config/document"
	"github.com/imamik/discourse-setup/internal/config/wizard"
	"github.com/imamik/discourse-setup/internal/metrics"
	"github.com/imamik/discourse-setup/internal/platform/host"
	"github.com/imamik/discourse-setup/internal/preflight"
	"github.com/imamik/discourse-setup/internal/tuning"
	"github.com/imamik/discourse-setup/internal/ui"
	"github.com/imamik/discourse-setup/internal/util/logging"
	"github.com/imamik/discourse-setup/internal/util/netutil"
	"github.com/imamik/discourse-setup/internal/util/prerequisites"
)

// Setup step names, used in logs and metrics.
const (
	stepExistingConfig = "existing_config"
	stepPrereqs        = "prerequisites"
	stepResources      = "resources"
	stepPorts          = "ports"
	stepCopyTemplate   = "copy_template"
	stepScale          = "scale"
	stepPrompt         = "prompt"
	stepSubstitute     = "substitute"
	stepValidate       = "validate"
	stepBootstrap      = "bootstrap"
	stepWaitReady      = "wait_ready"
)

// errSkipped marks a step that did not run.
var errSkipped = errors.New("step skipped")

// Factory function variables for setup - can be replaced in tests.
var (
	// newHost returns the host capacity and port queries.
	newHost = host.New

	// newPrompter returns the interactive prompter.
	newPrompter = func(accessible bool) wizard.Prompter {
		return wizard.NewHuhPrompter(os.Stdin, os.Stdout, accessible)
	}

	// stdinIsTerminal reports whether an operator is attached to stdin.
	stdinIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// waitForAck blocks until the operator acknowledges resource warnings.
	waitForAck = func(ctx context.Context) error {
		return preflight.WaitForAck(ctx, os.Stdin, os.Stdout)
	}

	// checkTools looks up the required client tools.
	checkTools = prerequisites.Check

	// runBootstrap runs the launcher.
	runBootstrap = bootstrap.Run

	// waitForPort polls the published web port.
	waitForPort = netutil.WaitForPort

	// logOutput receives diagnostic logs.
	logOutput io.Writer = os.Stderr
)

// setupRun carries the state of one wizard run between steps.
type setupRun struct {
	settings *config.Settings
	log      *charmlog.Logger
	rec      *metrics.Recorder
	host     host.Host

	resources  host.Resources
	doc        *document.Document
	deployment config.Deployment
}

// Setup runs the whole installation wizard:
// existing config check, prerequisites, resource and port checks, template
// copy, tuning, prompts, substitution, validation and bootstrap.
func Setup(ctx context.Context, s *config.Settings) (err error) {
	logger, err := logging.New(logOutput, s.LogLevel)
	if err != nil {
		return err
	}

	run := &setupRun{
		settings: s,
		log:      logger,
		rec:      metrics.NewRecorder(),
	}
	defer func() {
		run.finish(err)
	}()

	setupLog := logging.Component(logger, logging.Setup)
	printWelcome()

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{stepExistingConfig, run.checkExistingConfig},
		{stepPrereqs, run.checkPrerequisites},
		{stepResources, run.checkResources},
		{stepPorts, run.checkPorts},
		{stepCopyTemplate, run.copyTemplate},
		{stepScale, run.scale},
		{stepPrompt, run.prompt},
		{stepSubstitute, run.substitute},
		{stepValidate, run.validate},
		{stepBootstrap, run.bootstrap},
		{stepWaitReady, run.waitReady},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return wizard.ErrAborted
		}

		start := time.Now()
		done := run.rec.Step(step.name)
		err := step.fn(ctx)
		if errors.Is(err, errSkipped) {
			setupLog.Debug("step skipped", "step", step.name)
			run.rec.ObserveStep(step.name, metrics.ResultSkipped, 0)
			continue
		}
		done(err)

		if err != nil {
			setupLog.Debug("step failed", "step", step.name, "err", err)
			return err
		}
		setupLog.Debug("step finished", "step", step.name, "took", time.Since(start))
	}

	return nil
}

// finish records the outcome and writes the metrics textfile when configured.
func (r *setupRun) finish(err error) {
	r.rec.Finish(err)
	if r.settings.MetricsFile == "" {
		return
	}
	if werr := r.rec.WriteTextfile(r.settings.MetricsFile); werr != nil {
		logging.Component(r.log, logging.Metrics).Warn("failed to write metrics", "err", werr)
	}
}

func (r *setupRun) checkExistingConfig(_ context.Context) error {
	if err := config.CheckTarget(r.settings.ConfigPath); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			fmt.Println(ui.Fail(fmt.Sprintf("%s already exists.", r.settings.ConfigPath)))
			fmt.Println("     Edit it and run the launcher directly, or delete it to start over.")
		}
		return err
	}
	if err := config.CheckTemplate(r.settings.TemplatePath); err != nil {
		if errors.Is(err, config.ErrTemplateMissing) {
			fmt.Println(ui.Fail(fmt.Sprintf("Template %s not found.", r.settings.TemplatePath)))
			fmt.Println("     Run this from the root of your discourse_docker checkout.")
		}
		return err
	}
	return nil
}

func (r *setupRun) checkPrerequisites(ctx context.Context) error {
	if r.settings.SkipPrereqs || r.settings.SkipBootstrap {
		return errSkipped
	}

	results := checkTools(ctx, prerequisites.DefaultTools(r.settings.Launcher))
	printToolResults(results)
	return results.Error()
}

func (r *setupRun) checkResources(ctx context.Context) error {
	r.host = newHost()

	res, err := host.Snapshot(ctx, r.host, r.settings.DiskPath)
	if err != nil {
		return err
	}
	r.resources = res
	r.rec.SetResources(res)
	logging.Component(r.log, logging.Preflight).Debug("host snapshot",
		"memoryMB", res.MemoryMB, "swapMB", res.SwapMB, "freeDiskMB", res.FreeDiskMB, "cores", res.Cores)

	report, err := preflight.CheckResources(res, preflight.DefaultThresholds)
	preflight.WriteResources(os.Stdout, report)
	if err != nil {
		return err
	}

	if !report.HasWarnings() || !stdinIsTerminal() {
		return nil
	}
	if err := waitForAck(ctx); err != nil {
		if ctx.Err() != nil {
			return wizard.ErrAborted
		}
		return err
	}
	return nil
}

func (r *setupRun) checkPorts(ctx context.Context) error {
	statuses, err := preflight.CheckPorts(ctx, r.host, r.settings.Ports)
	preflight.WritePorts(os.Stdout, statuses)
	return err
}

func (r *setupRun) copyTemplate(_ context.Context) error {
	if err := config.CopyTemplate(r.settings.TemplatePath, r.settings.ConfigPath); err != nil {
		return err
	}

	doc, err := document.Load(r.settings.ConfigPath)
	if err != nil {
		return err
	}
	r.doc = doc
	r.deployment = wizard.DefaultsFrom(doc)
	return nil
}

func (r *setupRun) scale(_ context.Context) error {
	log := logging.Component(r.log, logging.Tuning)

	t := tuning.Calculate(r.resources)
	applied, err := tuning.Apply(r.doc, t)
	if err != nil {
		return err
	}
	r.rec.SetTuning(t, applied)

	if applied.SharedBuffers {
		r.deployment.SharedBuffersMB = t.SharedBuffersMB
	} else {
		log.Info("db_shared_buffers left at the template default", "derived", t.SharedBuffersMB)
	}
	if applied.Workers {
		r.deployment.UnicornWorkers = t.Workers
	} else {
		log.Info("UNICORN_WORKERS left at the template default", "derived", t.Workers)
	}

	if !applied.SharedBuffers && !applied.Workers {
		return nil
	}
	return r.doc.Save(r.settings.ConfigPath)
}

func (r *setupRun) prompt(ctx context.Context) error {
	fmt.Println(ui.Section("Configuration"))

	d, err := wizard.Run(ctx, newPrompter(!stdinIsTerminal()), os.Stdout, r.deployment)
	if err != nil {
		if errors.Is(err, wizard.ErrAborted) {
			fmt.Println(ui.Warn("Setup aborted. " + r.settings.ConfigPath + " holds the template defaults; delete it before running again."))
		}
		return err
	}
	logging.Component(r.log, logging.Wizard).Debug("answers confirmed",
		"hostname", d.Hostname, "smtp", d.SMTPAddress, "letsencrypt", d.LetsEncryptEnabled())
	r.deployment = d
	return nil
}

func (r *setupRun) substitute(_ context.Context) error {
	applyErr := wizard.Apply(r.doc, r.deployment)
	saveErr := r.doc.Save(r.settings.ConfigPath)

	if applyErr != nil {
		for _, field := range wizard.FailedFields(applyErr) {
			fmt.Println(ui.Fail(fmt.Sprintf("Could not update %s in %s", field, r.settings.ConfigPath)))
		}
		fmt.Println("     The configuration was only partially written. Delete it and run setup again.")
		return errors.Join(applyErr, saveErr)
	}
	if saveErr != nil {
		return saveErr
	}

	fmt.Println(ui.OK(fmt.Sprintf("Configuration written to %s", r.settings.ConfigPath)))
	return nil
}

func (r *setupRun) validate(_ context.Context) error {
	err := config.ValidateFile(r.settings.ConfigPath)
	if err == nil {
		return nil
	}

	var verr *config.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			fmt.Println(ui.Fail(f.Error()))
		}
		fmt.Printf("     Fix %s by hand, or delete it and run setup again.\n", r.settings.ConfigPath)
	}
	return err
}

func (r *setupRun) bootstrap(ctx context.Context) error {
	cmd := bootstrap.Command{
		Launcher:   r.settings.Launcher,
		Subcommand: r.settings.BootstrapCommand,
		App:        r.settings.App,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}

	if r.settings.SkipBootstrap {
		printNextSteps(cmd)
		return errSkipped
	}

	fmt.Println(ui.Section("Bootstrap"))
	fmt.Println(ui.Dim("Running " + cmd.String()))
	logging.Component(r.log, logging.Bootstrap).Info("starting launcher", "command", cmd.String())

	if err := runBootstrap(ctx, cmd); err != nil {
		return err
	}
	printSuccess(r.deployment)
	return nil
}

func (r *setupRun) waitReady(ctx context.Context) error {
	if r.settings.WaitReady <= 0 || r.settings.SkipBootstrap {
		return errSkipped
	}

	fmt.Printf("Waiting up to %s for port %d...\n", r.settings.WaitReady, config.HTTPPort)
	if err := waitForPort(ctx, netutil.LocalHost, config.HTTPPort, r.settings.WaitReady); err != nil {
		fmt.Println(ui.Fail(fmt.Sprintf("Discourse did not answer on port %d", config.HTTPPort)))
		return err
	}

	fmt.Println(ui.OK(fmt.Sprintf("Discourse is answering on port %d", config.HTTPPort)))
	return nil
}
