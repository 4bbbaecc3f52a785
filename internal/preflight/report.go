package preflight

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/imamik/discourse-setup/internal/ui"
)

const bytesPerMB = 1 << 20

// size formats a MiB figure for display, e.g. "1.9 GiB".
func size(mb uint64) string {
	return humanize.IBytes(mb * bytesPerMB)
}

// WriteResources prints the snapshot and the guidance for every finding.
func WriteResources(w io.Writer, r *ResourceReport) {
	res := r.Resources

	fmt.Fprintln(w, ui.Section("Host resources"))
	fmt.Fprintf(w, "  Memory:    %s\n", size(res.MemoryMB))
	fmt.Fprintf(w, "  Swap:      %s\n", size(res.SwapMB))
	fmt.Fprintf(w, "  Free disk: %s on %s\n", size(res.FreeDiskMB), res.DiskPath)
	fmt.Fprintf(w, "  CPU cores: %d\n", res.Cores)
	fmt.Fprintln(w)

	for _, kind := range r.Warnings {
		switch kind {
		case WarningLowMemory:
			fmt.Fprintln(w, ui.Warn(fmt.Sprintf("Discourse requires 1GB RAM to run; this system has %s.", size(res.MemoryMB))))
			fmt.Fprintln(w, "     Your site may not work properly, or future upgrades may not complete successfully.")
		case WarningLowSwap:
			fmt.Fprintln(w, ui.Warn(fmt.Sprintf("Discourse requires at least %s of swap with %s of RAM or less; this system has %s.",
				size(r.Thresholds.MinSwapMB), size(r.Thresholds.LowMemoryMB), size(res.SwapMB))))
			fmt.Fprintln(w, "     Without sufficient swap your site may not work properly, and upgrades may fail.")
			fmt.Fprintln(w, "     See https://meta.discourse.org/t/13880 for how to add swap.")
		}
	}

	if !r.DiskOK {
		fmt.Fprintln(w, ui.Fail(fmt.Sprintf("Discourse requires at least %s free disk space; %s has %s.",
			size(r.Thresholds.MinFreeDiskMB), res.DiskPath, size(res.FreeDiskMB))))
		fmt.Fprintln(w, "     Free up some space, or expand your disk, before continuing.")
		fmt.Fprintln(w, "     Run `apt-get autoremove && apt-get autoclean` to remove unused packages")
		fmt.Fprintln(w, "     and `./launcher cleanup` to remove stale Docker containers.")
		return
	}

	if !r.HasWarnings() {
		fmt.Fprintln(w, ui.OK("Memory, swap and disk meet the minimums"))
	}
}

// WritePorts prints one line per checked port and guidance for bound ports.
func WritePorts(w io.Writer, statuses []PortStatus) {
	fmt.Fprintln(w, ui.Section("Ports"))
	for _, s := range statuses {
		if !s.Bound {
			fmt.Fprintln(w, ui.OK(fmt.Sprintf("Port %d is free", s.Port)))
			continue
		}
		fmt.Fprintln(w, ui.Fail(fmt.Sprintf("Port %d appears to already be in use.", s.Port)))
		fmt.Fprintf(w, "     This shows which command is using it: sudo ss -tlnp 'sport = :%d'\n", s.Port)
	}
	for _, s := range statuses {
		if s.Bound {
			fmt.Fprintln(w, "     To run Discourse next to another web server such as Apache or nginx,")
			fmt.Fprintln(w, "     bind it to a different port. See https://meta.discourse.org/t/17247")
			break
		}
	}
}

// WaitForAck blocks until the operator presses ENTER or ctx is done. End of
// input counts as acknowledgment. On cancellation it returns ctx.Err() without
// waiting for the pending read.
func WaitForAck(ctx context.Context, r io.Reader, w io.Writer) error {
	fmt.Fprint(w, "Press ENTER to continue, or Ctrl+C to exit...")

	read := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(r).ReadString('\n')
		read <- err
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(w)
		return ctx.Err()
	case err := <-read:
		fmt.Fprintln(w)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read acknowledgment: %w", err)
		}
		return nil
	}
}
