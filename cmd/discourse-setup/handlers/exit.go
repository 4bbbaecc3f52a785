package handlers

import (
	"errors"

	"github.com/imamik/discourse-setup/internal/bootstrap"
)

// ExitCode maps a command error to the process exit status: 0 on success,
// the launcher's own status when bootstrap failed, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *bootstrap.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
