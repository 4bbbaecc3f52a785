package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/imamik/discourse-setup/internal/config"
	"github.com/imamik/discourse-setup/internal/platform/host"
	"github.com/imamik/discourse-setup/internal/preflight"
	"github.com/imamik/discourse-setup/internal/tuning"
	"github.com/imamik/discourse-setup/internal/ui"
)

// CheckReport is the result of a preflight-only run.
type CheckReport struct {
	Resources host.Resources          `json:"resources"`
	Warnings  []preflight.WarningKind `json:"warnings"`
	DiskOK    bool                    `json:"diskOK"`
	Ports     []preflight.PortStatus  `json:"ports"`
	Tuning    tuning.Tuning           `json:"tuning"`
	OK        bool                    `json:"ok"`
}

// Check runs the resource and port checks without touching any file.
// It returns an error when the host would fail a setup run.
func Check(ctx context.Context, s *config.Settings, jsonOutput bool) error {
	h := newHost()

	res, err := host.Snapshot(ctx, h, s.DiskPath)
	if err != nil {
		return err
	}

	report, diskErr := preflight.CheckResources(res, preflight.DefaultThresholds)
	statuses, portErr := preflight.CheckPorts(ctx, h, s.Ports)
	if portErr != nil && !errors.Is(portErr, preflight.ErrPortInUse) {
		return portErr
	}

	status := &CheckReport{
		Resources: res,
		Warnings:  report.Warnings,
		DiskOK:    report.DiskOK,
		Ports:     statuses,
		Tuning:    tuning.Calculate(res),
		OK:        diskErr == nil && portErr == nil,
	}
	if status.Warnings == nil {
		status.Warnings = []preflight.WarningKind{}
	}

	if jsonOutput {
		if err := printCheckJSON(status); err != nil {
			return err
		}
	} else {
		preflight.WriteResources(os.Stdout, report)
		preflight.WritePorts(os.Stdout, statuses)
		printTuning(status.Tuning)
	}

	return errors.Join(diskErr, portErr)
}

func printCheckJSON(status *CheckReport) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printTuning(t tuning.Tuning) {
	fmt.Println(ui.Section("Tuning"))
	if t.SharedBuffersMB == 0 && t.Workers == 0 {
		fmt.Println(ui.Skip("Too little memory to scale; the launcher defaults apply"))
		return
	}
	fmt.Printf("  db_shared_buffers: %dMB\n", t.SharedBuffersMB)
	fmt.Printf("  UNICORN_WORKERS:   %d\n", t.Workers)
}
