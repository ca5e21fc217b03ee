package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	writer      io.Writer
	verboseMode bool

	// Destinations used when no writer is set. Error and Warning go to stderr.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose output.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetWriter redirects all output, errors included. Passing nil restores
// stdout for regular messages and stderr for errors and warnings.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	writer = w
}

func writeLine(line string) {
	write(line, false)
}

func writeErrLine(line string) {
	write(line, true)
}

func write(line string, isErr bool) {
	mu.Lock()
	defer mu.Unlock()

	w := writer
	switch {
	case w != nil:
	case isErr:
		w = stderr
	default:
		w = stdout
	}
	fmt.Fprintln(w, line)
}

// Success prints a success message in green.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Created project: my-app")
func Success(msg string) {
	writeLine(successStyle.Render("🐣 " + msg))
}

// Warning prints a yellow warning. Reserve it for actions that destroy
// or replace user data so they stand out from routine progress.
func Warning(msg string) {
	writeErrLine(warningStyle.Render("⚠️  " + msg))
}

// Error prints an error message in red on stderr.
//
// Example:
//
//	output.Error("Target already exists: /work/my-app")
func Error(msg string) {
	writeErrLine(errorStyle.Render("❌ " + msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	writeLine(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("cd my-app")
//	output.Step("npm run dev")
func Step(msg string) {
	writeLine(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	mu.Lock()
	enabled := verboseMode
	mu.Unlock()

	if enabled {
		writeLine(stepStyle.Render("🔍 " + msg))
	}
}
