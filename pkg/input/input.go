package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter reads line-buffered answers from in and writes questions to out.
//
// A Prompter owns its buffered reader, so create one per input stream and
// reuse it; two Prompters over the same stream would steal each other's
// buffered bytes.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	mu      sync.Mutex
	pending chan lineResult // read left running by a cancelled Ask
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

var stdinPrompter = NewPrompter(os.Stdin, os.Stdout)

// Stdin returns the process-wide prompter bound to stdin/stdout.
func Stdin() *Prompter {
	return stdinPrompter
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type lineResult struct {
	line string
	err  error
}

// readLine returns the channel of the next line. A read abandoned by a
// cancelled Ask is handed out first, so only one goroutine ever reads p.in.
func (p *Prompter) readLine() chan lineResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ch := p.pending; ch != nil {
		p.pending = nil
		return ch
	}

	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()
	return ch
}

// Ask prints question and returns one line of input with the trailing
// newline removed. It returns io.EOF when the stream ends before any input,
// and ctx.Err() if ctx is cancelled while waiting.
//
// When cancelled, the read in flight is kept and its line answers the next
// question asked on p.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(p.out, promptStyle.Render(question)+" ")

	ch := p.readLine()

	select {
	case <-ctx.Done():
		p.mu.Lock()
		p.pending = ch
		p.mu.Unlock()
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case res := <-ch:
		line := strings.TrimRight(res.line, "\r\n")
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && line != "" {
				// Final line without a trailing newline still counts.
				return line, nil
			}
			return "", res.err
		}
		return line, nil
	}
}

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
//
// Example:
//
//	name := p.Prompt("Project name", "my-app")
//	// Displays: Project name (my-app): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	question := promptStyle.Render(message)
	if defaultValue != "" {
		question += " " + hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))
	}
	fmt.Fprint(p.out, question+": ")

	res := <-p.readLine()
	line, err := res.line, res.err
	if err != nil && line == "" {
		return defaultValue
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}
	return line
}

// Confirm asks the user a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true.
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	res := <-p.readLine()
	line, err := res.line, res.err
	if err != nil && line == "" {
		return defaultYes
	}

	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return defaultYes
	}

	return line == "y" || line == "yes"
}
