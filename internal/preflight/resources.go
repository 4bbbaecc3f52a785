package preflight

import (
	"errors"
	"fmt"

	"github.com/imamik/discourse-setup/internal/platform/host"
)

// ErrInsufficientDisk is returned when the disk holds less than the required free space.
var ErrInsufficientDisk = errors.New("insufficient free disk space")

// Thresholds configures the resource checks. Sizes are in MiB.
type Thresholds struct {
	// MinMemoryMB warns below this much memory.
	MinMemoryMB uint64
	// LowMemoryMB is the memory size below which MinSwapMB of swap is expected.
	LowMemoryMB uint64
	// MinSwapMB warns on low-memory hosts with less swap.
	MinSwapMB uint64
	// MinFreeDiskMB fails the run below this much free disk.
	MinFreeDiskMB uint64
}

// DefaultThresholds are the documented minimums for a single-container install.
var DefaultThresholds = Thresholds{
	MinMemoryMB:   900,
	LowMemoryMB:   1800,
	MinSwapMB:     1000,
	MinFreeDiskMB: 5000,
}

// WarningKind classifies a resource warning.
type WarningKind string

// Warning kinds.
const (
	WarningLowMemory WarningKind = "memory"
	WarningLowSwap   WarningKind = "swap"
)

// ResourceReport is the outcome of CheckResources.
type ResourceReport struct {
	Resources  host.Resources
	Thresholds Thresholds
	Warnings   []WarningKind
	DiskOK     bool
}

// HasWarnings reports whether any non-fatal warning fired.
func (r *ResourceReport) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// CheckResources evaluates res against th. The report is always returned; the
// error wraps ErrInsufficientDisk when free disk is below the minimum.
func CheckResources(res host.Resources, th Thresholds) (*ResourceReport, error) {
	report := &ResourceReport{Resources: res, Thresholds: th, DiskOK: true}

	switch {
	case res.MemoryMB < th.MinMemoryMB:
		report.Warnings = append(report.Warnings, WarningLowMemory)
	case res.MemoryMB < th.LowMemoryMB && res.SwapMB < th.MinSwapMB:
		report.Warnings = append(report.Warnings, WarningLowSwap)
	}

	if res.FreeDiskMB < th.MinFreeDiskMB {
		report.DiskOK = false
		return report, fmt.Errorf("%w: %dMB free on %s, %dMB required",
			ErrInsufficientDisk, res.FreeDiskMB, res.DiskPath, th.MinFreeDiskMB)
	}

	return report, nil
}
