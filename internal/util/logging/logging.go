// Package logging builds the charmbracelet/log loggers used across the wizard.
//
// Operator-facing output (prompts, summaries, guidance) is written with fmt;
// these loggers carry diagnostics to stderr, one prefix per component:
//
//	logger, err := logging.New(os.Stderr, "debug")
//	if err != nil {
//	    return err
//	}
//	logging.Component(logger, logging.Preflight).Debug("host snapshot", "memoryMB", 2048)
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Component names used as log prefixes.
const (
	Setup     = "setup"
	Preflight = "preflight"
	Tuning    = "tuning"
	Wizard    = "wizard"
	Bootstrap = "bootstrap"
	Metrics   = "metrics"
)

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses debug, info, warn (or warning) and error, case-insensitively.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// New returns a logger writing to w at level. Debug level adds caller info.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
		ReportCaller:    lvl == log.DebugLevel,
	}), nil
}

// Component returns a child logger prefixed with name.
func Component(l *log.Logger, name string) *log.Logger {
	return l.WithPrefix(name)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
