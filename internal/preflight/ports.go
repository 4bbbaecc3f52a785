package preflight

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/imamik/discourse-setup/internal/platform/host"
)

// ErrPortInUse is returned when a required port already has a listener.
var ErrPortInUse = errors.New("port already in use")

// PortStatus is the check result for one port.
type PortStatus struct {
	Port  int  `json:"port"`
	Bound bool `json:"bound"`
}

// CheckPorts checks every port once. All ports are checked even after a bound
// one is found so the operator sees every conflict. A lookup error aborts.
func CheckPorts(ctx context.Context, h host.Host, ports []int) ([]PortStatus, error) {
	statuses := make([]PortStatus, 0, len(ports))
	var bound []string

	for _, port := range ports {
		inUse, err := h.IsPortBound(ctx, port)
		if err != nil {
			return statuses, fmt.Errorf("failed to check port %d: %w", port, err)
		}
		statuses = append(statuses, PortStatus{Port: port, Bound: inUse})
		if inUse {
			bound = append(bound, strconv.Itoa(port))
		}
	}

	if len(bound) > 0 {
		return statuses, fmt.Errorf("%w: %s", ErrPortInUse, strings.Join(bound, ", "))
	}
	return statuses, nil
}
