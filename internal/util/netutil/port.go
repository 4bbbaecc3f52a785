// Package netutil provides network helpers for the post-bootstrap readiness wait.
package netutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	// LocalHost is where the web container publishes its ports.
	LocalHost = "127.0.0.1"

	// PollInterval is the delay between connection attempts.
	PollInterval = 1 * time.Second

	// dialTimeout bounds a single connection attempt.
	dialTimeout = 2 * time.Second
)

// ErrTimeout is returned when the port did not accept a connection in time.
var ErrTimeout = errors.New("timeout waiting for port")

// WaitForPort waits for a TCP port to accept connections on host.
// It tries immediately, then every PollInterval until timeout.
func WaitForPort(ctx context.Context, host string, port int, timeout time.Duration) error {
	return waitForPort(ctx, host, port, timeout, PollInterval)
}

func waitForPort(ctx context.Context, host string, port int, timeout, interval time.Duration) error {
	address := net.JoinHostPort(host, strconv.Itoa(port))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if dial(ctx, address) {
			return nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: %s after %s", ErrTimeout, address, timeout)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// dial reports whether address accepts a TCP connection.
func dial(ctx context.Context, address string) bool {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
