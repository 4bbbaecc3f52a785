package host

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
)

// statusListen is the gopsutil connection status of a listening socket.
const statusListen = "LISTEN"

// System implements Host for the machine the wizard runs on.
type System struct{}

// New creates a Host backed by the running system.
func New() Host {
	return &System{}
}

// TotalMemory implements Host.
func (s *System) TotalMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.Total, nil
}

// TotalSwap implements Host.
func (s *System) TotalSwap(ctx context.Context) (uint64, error) {
	sm, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return sm.Total, nil
}

// FreeDisk implements Host.
func (s *System) FreeDisk(ctx context.Context, path string) (uint64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

// PhysicalCores implements Host. Some hypervisors hide the core topology;
// the logical CPU count is used when no physical count is reported.
func (s *System) PhysicalCores(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, false)
	if err == nil && n > 0 {
		return n, nil
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	return runtime.NumCPU(), nil
}

// IsPortBound implements Host.
func (s *System) IsPortBound(ctx context.Context, port int) (bool, error) {
	if port < 1 || port > 65535 {
		return false, fmt.Errorf("invalid port %d", port)
	}

	conns, err := gnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return false, fmt.Errorf("failed to list tcp sockets: %w", err)
	}

	for _, c := range conns {
		if c.Status == statusListen && c.Laddr.Port == uint32(port) {
			return true, nil
		}
	}
	return false, nil
}
