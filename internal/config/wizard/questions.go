package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
)

// Question is a single free-text prompt.
type Question struct {
	Title       string
	Description string
	Default     string
}

// Prompter asks the operator one question at a time. An empty answer means
// "keep the default"; the prompter returns it unchanged.
type Prompter interface {
	Input(ctx context.Context, q Question) (string, error)
}

// HuhPrompter asks questions with charmbracelet/huh forms.
type HuhPrompter struct {
	// Accessible switches huh to line-based prompts, used when stdin is not a terminal.
	Accessible bool
	In         io.Reader
	Out        io.Writer
}

// NewHuhPrompter creates a prompter reading from in and writing to out.
func NewHuhPrompter(in io.Reader, out io.Writer, accessible bool) *HuhPrompter {
	return &HuhPrompter{Accessible: accessible, In: in, Out: out}
}

// Input shows q and returns the raw answer.
func (p *HuhPrompter) Input(ctx context.Context, q Question) (string, error) {
	var answer string

	title := q.Title
	if q.Default != "" {
		title = fmt.Sprintf("%s [%s]", q.Title, q.Default)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(q.Description).
				Placeholder(q.Default).
				Value(&answer),
		),
	).WithAccessible(p.Accessible).WithShowHelp(false)

	if p.In != nil {
		form = form.WithInput(p.In)
	}
	if p.Out != nil {
		form = form.WithOutput(p.Out)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("prompt %q: %w", q.Title, err)
	}

	return answer, nil
}
