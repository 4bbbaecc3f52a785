package host

import (
	"context"
	"fmt"
)

// Host exposes the capacity and port queries used by the preflight checks and the scaler.
type Host interface {
	// TotalMemory returns total physical memory in bytes.
	TotalMemory(ctx context.Context) (uint64, error)

	// TotalSwap returns total swap space in bytes.
	TotalSwap(ctx context.Context) (uint64, error)

	// FreeDisk returns the bytes available to unprivileged users on the filesystem holding path.
	FreeDisk(ctx context.Context, path string) (uint64, error)

	// PhysicalCores returns the number of physical CPU cores.
	PhysicalCores(ctx context.Context) (int, error)

	// IsPortBound reports whether a TCP socket is listening on port.
	IsPortBound(ctx context.Context, port int) (bool, error)
}

// Resources is a snapshot of host capacity, sizes in MiB.
type Resources struct {
	MemoryMB   uint64 `json:"memoryMB"`
	SwapMB     uint64 `json:"swapMB"`
	FreeDiskMB uint64 `json:"freeDiskMB"`
	DiskPath   string `json:"diskPath"`
	Cores      int    `json:"cores"`
}

const bytesPerMB = 1 << 20

// Snapshot queries h once for every capacity figure.
func Snapshot(ctx context.Context, h Host, diskPath string) (Resources, error) {
	res := Resources{DiskPath: diskPath}

	memory, err := h.TotalMemory(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to read total memory: %w", err)
	}
	res.MemoryMB = memory / bytesPerMB

	swap, err := h.TotalSwap(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to read swap size: %w", err)
	}
	res.SwapMB = swap / bytesPerMB

	free, err := h.FreeDisk(ctx, diskPath)
	if err != nil {
		return res, fmt.Errorf("failed to read free disk space on %s: %w", diskPath, err)
	}
	res.FreeDiskMB = free / bytesPerMB

	cores, err := h.PhysicalCores(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to count CPU cores: %w", err)
	}
	res.Cores = cores

	return res, nil
}
