package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrAborted is returned when the operator interrupts the wizard.
	ErrAborted = errors.New("setup aborted by user")

	// ErrSubstitutionFailed is returned when at least one field could not be
	// written into the configuration document.
	ErrSubstitutionFailed = errors.New("failed to update configuration")
)

// SubstitutionError reports one field that could not be written.
type SubstitutionError struct {
	Field string
	Err   error
}

func (e *SubstitutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *SubstitutionError) Unwrap() error {
	return e.Err
}
