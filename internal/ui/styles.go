// Package ui holds the lipgloss palette and status marks for terminal output.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			MarginTop(1)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failedStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Status marks.
const (
	CheckMark = "[OK]"
	CrossMark = "[!!]"
	WarnMark  = "[??]"
	SkipMark  = "[--]"
)

// Title renders a bold heading.
func Title(s string) string { return titleStyle.Render(s) }

// Section renders a section heading with a blank line above it.
func Section(s string) string { return sectionStyle.Render(s) }

// Dim renders secondary text.
func Dim(s string) string { return dimStyle.Render(s) }

// OK renders a passed check line.
func OK(msg string) string { return okStyle.Render(CheckMark) + " " + msg }

// Fail renders a failed check line.
func Fail(msg string) string { return failedStyle.Render(CrossMark) + " " + msg }

// Warn renders a warning line.
func Warn(msg string) string { return warningStyle.Render(WarnMark) + " " + msg }

// Skip renders a skipped step line.
func Skip(msg string) string { return dimStyle.Render(SkipMark) + " " + msg }

// Printf writes a formatted line followed by a newline.
func Printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
