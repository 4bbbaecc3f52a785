package host

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHost is a test implementation of Host with fixed answers.
type stubHost struct {
	memory, swap, disk uint64
	cores              int
	bound              map[int]bool
	err                error
	failOn             string
	diskPath           string
}

func (s *stubHost) fail(op string) error {
	if s.failOn == op {
		return s.err
	}
	return nil
}

func (s *stubHost) TotalMemory(context.Context) (uint64, error) {
	return s.memory, s.fail("memory")
}

func (s *stubHost) TotalSwap(context.Context) (uint64, error) {
	return s.swap, s.fail("swap")
}

func (s *stubHost) FreeDisk(_ context.Context, path string) (uint64, error) {
	s.diskPath = path
	return s.disk, s.fail("disk")
}

func (s *stubHost) PhysicalCores(context.Context) (int, error) {
	return s.cores, s.fail("cores")
}

func (s *stubHost) IsPortBound(_ context.Context, port int) (bool, error) {
	return s.bound[port], s.fail("port")
}

func TestSnapshot(t *testing.T) {
	h := &stubHost{
		memory: 2048 * bytesPerMB,
		swap:   1024*bytesPerMB + 512, // partial MiB is floored
		disk:   20000 * bytesPerMB,
		cores:  4,
	}

	res, err := Snapshot(context.Background(), h, "/var")
	require.NoError(t, err)

	assert.Equal(t, Resources{
		MemoryMB:   2048,
		SwapMB:     1024,
		FreeDiskMB: 20000,
		DiskPath:   "/var",
		Cores:      4,
	}, res)
	assert.Equal(t, "/var", h.diskPath)
}

func TestSnapshot_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		failOn  string
		message string
	}{
		{failOn: "memory", message: "failed to read total memory"},
		{failOn: "swap", message: "failed to read swap size"},
		{failOn: "disk", message: "failed to read free disk space on /var"},
		{failOn: "cores", message: "failed to count CPU cores"},
	}

	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			h := &stubHost{err: boom, failOn: tt.failOn}
			_, err := Snapshot(context.Background(), h, "/var")
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestSystem_Capacity(t *testing.T) {
	ctx := context.Background()
	sys := New()

	memory, err := sys.TotalMemory(ctx)
	require.NoError(t, err)
	assert.Greater(t, memory, uint64(0))

	_, err = sys.TotalSwap(ctx)
	require.NoError(t, err)

	free, err := sys.FreeDisk(ctx, t.TempDir())
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))

	cores, err := sys.PhysicalCores(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cores, 1)
}

func TestSystem_IsPortBound(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	sys := New()

	bound, err := sys.IsPortBound(context.Background(), port)
	if err != nil {
		t.Skipf("socket table not readable here: %v", err)
	}
	assert.True(t, bound, "port %d has a listener", port)
}

func TestSystem_IsPortBoundInvalidPort(t *testing.T) {
	sys := New()

	_, err := sys.IsPortBound(context.Background(), 0)
	assert.Error(t, err)

	_, err = sys.IsPortBound(context.Background(), 70000)
	assert.Error(t, err)
}
