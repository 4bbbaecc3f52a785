package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/imamik/discourse-setup/internal/bootstrap"
	"github.com/imamik/discourse-setup/internal/config"
	"github.com/imamik/discourse-setup/internal/config/wizard"
	"github.com/imamik/discourse-setup/internal/platform/host"
	"github.com/imamik/discourse-setup/internal/preflight"
	tu "github.com/imamik/discourse-setup/internal/testing"
	"github.com/imamik/discourse-setup/internal/util/prerequisites"
)

// fakeEnv replaces every setup collaborator with a recording fake.
type fakeEnv struct {
	dir      string
	settings *config.Settings
	host     *tu.MockHost
	prompter *tu.ScriptedPrompter

	interactive bool
	acks        int
	ackReader   io.Reader

	missingTools []prerequisites.Tool
	toolChecks   int

	bootstraps   []bootstrap.Command
	bootstrapErr error

	waits   []string
	waitErr error
}

// newFakeEnv creates a workspace in dir holding the stock template, and a
// host that passes every check: 4 GB memory, 2 GB swap, 20 GB disk, 4 cores.
func newFakeEnv(dir string) (*fakeEnv, error) {
	template := filepath.Join(dir, "samples", "standalone.yml")
	if err := os.MkdirAll(filepath.Dir(template), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(template, []byte(tu.StandaloneTemplate), 0o600); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(dir, "containers"), 0o755); err != nil {
		return nil, err
	}

	return &fakeEnv{
		dir: dir,
		settings: &config.Settings{
			TemplatePath:     template,
			ConfigPath:       filepath.Join(dir, "containers", "app.yml"),
			App:              config.DefaultApp,
			Launcher:         config.DefaultLauncher,
			BootstrapCommand: config.DefaultBootstrapCommand,
			DiskPath:         config.DefaultDiskPath,
			Ports:            config.DefaultPorts,
			LogLevel:         "error",
		},
		host:     tu.NewMockHost().WithResources(4096, 2048, 20000, 4).WithBoundPorts(),
		prompter: tu.NewScriptedPrompter(answersFor(tu.NewDeploymentBuilder())...),
	}, nil
}

// answersFor returns the prompt answers for b followed by an accepting confirmation.
func answersFor(b *tu.DeploymentBuilder) []string {
	return append(b.Answers(), "")
}

// install swaps the package collaborators for the fakes and returns a func
// that restores them.
func (e *fakeEnv) install() func() {
	origHost := newHost
	origPrompter := newPrompter
	origTerminal := stdinIsTerminal
	origAck := waitForAck
	origTools := checkTools
	origBootstrap := runBootstrap
	origWait := waitForPort
	origLog := logOutput

	newHost = func() host.Host { return e.host }
	newPrompter = func(bool) wizard.Prompter { return e.prompter }
	stdinIsTerminal = func() bool { return e.interactive }
	waitForAck = func(ctx context.Context) error {
		e.acks++
		if e.ackReader != nil {
			return preflight.WaitForAck(ctx, e.ackReader, io.Discard)
		}
		return nil
	}
	checkTools = func(_ context.Context, tools []prerequisites.Tool) *prerequisites.CheckResults {
		e.toolChecks++
		results := &prerequisites.CheckResults{Missing: e.missingTools}
		for _, tool := range tools {
			found := true
			for _, m := range e.missingTools {
				if m.Name == tool.Name {
					found = false
				}
			}
			results.Results = append(results.Results, prerequisites.CheckResult{Tool: tool, Found: found})
		}
		return results
	}
	runBootstrap = func(_ context.Context, c bootstrap.Command) error {
		e.bootstraps = append(e.bootstraps, c)
		return e.bootstrapErr
	}
	waitForPort = func(_ context.Context, h string, port int, timeout time.Duration) error {
		e.waits = append(e.waits, fmt.Sprintf("%s:%d/%s", h, port, timeout))
		return e.waitErr
	}
	logOutput = io.Discard

	return func() {
		newHost = origHost
		newPrompter = origPrompter
		stdinIsTerminal = origTerminal
		waitForAck = origAck
		checkTools = origTools
		runBootstrap = origBootstrap
		waitForPort = origWait
		logOutput = origLog
	}
}

// configText returns the written configuration document.
func (e *fakeEnv) configText() string {
	data, err := os.ReadFile(e.settings.ConfigPath)
	if err != nil {
		return ""
	}
	return string(data)
}

// captureOutput runs f with os.Stdout redirected and returns what it printed.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = old
	return <-done
}
