package targetdir

import (
	"context"
	"fmt"

	"github.com/simonhull/hatch/pkg/input"
)

// Question is shown to the operator when the target is occupied.
const Question = "Choose: [o]verwrite / [r]ename / [s]kip ?"

// ConfirmationProvider supplies the operator's answer for an occupied path.
//
// Implementations return the raw answer line. Any error (EOF, ctx
// cancellation) is treated as a cancelled operation.
type ConfirmationProvider interface {
	Confirm(ctx context.Context, path string) (string, error)
}

// LinePrompter asks on a terminal-like stream, one line per answer.
type LinePrompter struct {
	prompter *input.Prompter
}

// NewLinePrompter wraps p.
func NewLinePrompter(p *input.Prompter) *LinePrompter {
	return &LinePrompter{prompter: p}
}

func (l *LinePrompter) Confirm(ctx context.Context, path string) (string, error) {
	return l.prompter.Ask(ctx, fmt.Sprintf("%s is not empty. %s", path, Question))
}

// FixedAnswer returns the same answer every time. Used for non-interactive
// runs and tests.
type FixedAnswer string

func (f FixedAnswer) Confirm(context.Context, string) (string, error) {
	return string(f), nil
}
