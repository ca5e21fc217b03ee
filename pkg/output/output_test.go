package output

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// capture redirects output into a buffer for the duration of f.
func capture(t *testing.T, f func()) string {
	t.Helper()

	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)

	f()
	return buf.String()
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name   string
		print  func(string)
		marker string
	}{
		{"success", Success, "🐣"},
		{"warning", Warning, "⚠️"},
		{"error", Error, "❌"},
		{"info", Info, "ℹ️"},
		{"step", Step, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capture(t, func() { tt.print("hello there") })

			assert.Contains(t, got, tt.marker)
			assert.Contains(t, got, "hello there")
			assert.True(t, bytes.HasSuffix([]byte(got), []byte("\n")))
		})
	}
}

func TestVerbose(t *testing.T) {
	got := capture(t, func() { Verbose("debug detail") })
	assert.Empty(t, got, "verbose output should be empty when verbose mode is off")

	SetVerbose(true)
	defer SetVerbose(false)

	got = capture(t, func() { Verbose("debug detail") })
	assert.Contains(t, got, "🔍")
	assert.Contains(t, got, "debug detail")
}

func TestSetVerbose(t *testing.T) {
	SetVerbose(true)
	assert.True(t, verboseMode)

	SetVerbose(false)
	assert.False(t, verboseMode)
}

func TestMessagesAreColored(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	tests := []struct {
		name  string
		print func(string)
		sgr   string // bright ANSI foreground code
	}{
		{"error", Error, "91"},
		{"success", Success, "92"},
		{"warning", Warning, "93"},
		{"info", Info, "96"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capture(t, func() { tt.print("Target already exists: /w/app") })

			fg := regexp.MustCompile(`\x1b\[(?:[0-9]+;)*` + tt.sgr + `m`)
			assert.Regexp(t, fg, got)
			assert.Contains(t, got, "Target already exists: /w/app")
		})
	}
}

func TestDefaultDestinations(t *testing.T) {
	var out, errOut bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = prevOut, prevErr })

	Success("done")
	Info("note")
	Step("cd app")
	Error("failed")
	Warning("replacing app")

	assert.Contains(t, out.String(), "done")
	assert.Contains(t, out.String(), "note")
	assert.Contains(t, out.String(), "cd app")
	assert.NotContains(t, out.String(), "failed")
	assert.NotContains(t, out.String(), "replacing app")

	assert.Contains(t, errOut.String(), "failed")
	assert.Contains(t, errOut.String(), "replacing app")
	assert.NotContains(t, errOut.String(), "done")
}
