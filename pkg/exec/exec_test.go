package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommand re-executes the test binary as a fake external tool.
func mockCommand(name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := exec.Command(os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess is the fake tool behind mockCommand.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "no command specified\n")
		os.Exit(1)
	}

	switch args[0] {
	case "echo":
		fmt.Println(strings.Join(args[1:], " "))
		os.Exit(0)
	case "pwd":
		wd, _ := os.Getwd()
		fmt.Println(wd)
		os.Exit(0)
	case "env":
		fmt.Println(os.Getenv(args[1]))
		os.Exit(0)
	case "sleep":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	case "error":
		fmt.Println("resolving packages")
		fmt.Fprintf(os.Stderr, "npm ERR! code E404\n")
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		os.Exit(1)
	}
}

func newMockExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}
	opts.Command = mockCommand
	return NewExecutor(opts)
}

func TestNewExecutor(t *testing.T) {
	executor := NewExecutor(nil)
	assert.Equal(t, os.Stdout, executor.stdout)
	assert.Equal(t, os.Stderr, executor.stderr)
	assert.NotNil(t, executor.commandFunc)

	var stdout, stderr bytes.Buffer
	executor = NewExecutor(&Options{
		Stdout: &stdout,
		Stderr: &stderr,
		Env:    []string{"TEST=1"},
		Dir:    "/tmp",
	})
	assert.Equal(t, &stdout, executor.stdout)
	assert.Equal(t, &stderr, executor.stderr)
	assert.Equal(t, []string{"TEST=1"}, executor.env)
	assert.Equal(t, "/tmp", executor.dir)
}

func TestExecutor_Run(t *testing.T) {
	var stdout bytes.Buffer
	executor := newMockExecutor(&Options{Stdout: &stdout})

	err := executor.Run(context.Background(), "echo", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "hello world")
}

func TestExecutor_RunWithError(t *testing.T) {
	var stderr bytes.Buffer
	executor := newMockExecutor(&Options{Stderr: &stderr})

	err := executor.Run(context.Background(), "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error failed")
	assert.Contains(t, stderr.String(), "E404")
}

func TestExecutor_Cancelled(t *testing.T) {
	executor := newMockExecutor(&Options{Stdout: &bytes.Buffer{}})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := executor.Run(ctx, "sleep")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestExecutor_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	executor := newMockExecutor(&Options{Dir: dir})

	out, err := executor.Output(context.Background(), "pwd")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(out)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecutor_Environment(t *testing.T) {
	executor := newMockExecutor(&Options{Env: []string{"HATCH_TEST=on"}})

	out, err := executor.Output(context.Background(), "env", "HATCH_TEST")
	require.NoError(t, err)
	assert.Equal(t, "on", out)
}

func TestExecutor_OutputIncludesStderrOnFailure(t *testing.T) {
	executor := newMockExecutor(nil)

	_, err := executor.Output(context.Background(), "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E404")
}

func TestExecutor_NotFound(t *testing.T) {
	executor := NewExecutor(nil)

	err := executor.Run(context.Background(), "hatch-definitely-not-installed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please install it")

	_, err = executor.LookPath("hatch-definitely-not-installed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hatch-definitely-not-installed")
}

func TestExecutor_LookPathOverride(t *testing.T) {
	executor := NewExecutor(&Options{LookPath: func(file string) (string, error) {
		if file == "pnpm" {
			return "/opt/bin/pnpm", nil
		}
		return "", exec.ErrNotFound
	}})

	path, err := executor.LookPath("pnpm")
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/pnpm", path)

	_, err = executor.LookPath("yarn")
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestExecutor_RunWithSpinnerWithoutTerminal(t *testing.T) {
	var stderr bytes.Buffer
	executor := newMockExecutor(&Options{Stderr: &stderr})

	err := executor.RunWithSpinner(context.Background(), "Installing dependencies", "echo", "quiet")
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Installing dependencies")
	assert.NotContains(t, stderr.String(), "quiet", "command output is captured")

	err = executor.RunWithSpinner(context.Background(), "Installing dependencies", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E404", "captured output is attached on failure")
}

func TestWithTail(t *testing.T) {
	base := errors.New("npm failed")
	assert.Same(t, base, withTail(base, "  \n"))

	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	err := withTail(base, strings.Join(lines, "\n"))
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "line 39")
	assert.NotContains(t, err.Error(), "line 10\n")
}

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel("Scaffolding")
	assert.Contains(t, m.View(), "Scaffolding...")

	_, cmd := m.Update(spinnerDoneMsg{})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "✅")

	m = newSpinnerModel("Scaffolding")
	m.Update(spinnerDoneMsg{err: errors.New("boom")})
	assert.Contains(t, m.View(), "❌")
}

func TestGenericCommand(t *testing.T) {
	var stdout bytes.Buffer
	executor := newMockExecutor(&Options{Stdout: &stdout, Stderr: &bytes.Buffer{}})

	t.Run("basic command", func(t *testing.T) {
		err := NewGenericCommand(executor, "echo").
			WithArgs("hello", "world").
			Run(context.Background())
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "hello world")
	})

	t.Run("directory overrides executor", func(t *testing.T) {
		stdout.Reset()
		dir := t.TempDir()

		cmd := NewGenericCommand(executor, "pwd").WithDir(dir)
		assert.Equal(t, dir, cmd.Dir())
		require.NoError(t, cmd.Run(context.Background()))

		want, _ := filepath.EvalSymlinks(dir)
		got, _ := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
		assert.Equal(t, want, got)
	})

	t.Run("env does not leak into executor", func(t *testing.T) {
		stdout.Reset()
		err := NewGenericCommand(executor, "env").
			WithArgs("ONLY_HERE").
			WithEnv("ONLY_HERE=yes").
			Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "yes\n", stdout.String())
		assert.Empty(t, executor.env)
	})

	t.Run("with spinner", func(t *testing.T) {
		err := NewGenericCommand(executor, "echo").
			WithSpinner("Processing").
			Run(context.Background())
		require.NoError(t, err)
	})

	t.Run("string representation", func(t *testing.T) {
		cmd := NewGenericCommand(executor, "npm").
			WithArgs("create", "vite@latest", "shop", "--", "--template", "react-ts")

		assert.Equal(t, "npm create vite@latest shop -- --template react-ts", cmd.String())
		assert.Equal(t, []string{"create", "vite@latest", "shop", "--", "--template", "react-ts"}, cmd.Args())
	})
}

// testCommandWrapper is a test implementation of CommandWrapper
type testCommandWrapper struct {
	name        string
	description string
	executeFunc func(context.Context, *Executor) error
}

func (t *testCommandWrapper) Name() string        { return t.name }
func (t *testCommandWrapper) Description() string { return t.description }
func (t *testCommandWrapper) Execute(ctx context.Context, exec *Executor) error {
	if t.executeFunc != nil {
		return t.executeFunc(ctx, exec)
	}
	return nil
}

func TestCommandRegistry(t *testing.T) {
	var _ CommandWrapper = (*testCommandWrapper)(nil)

	t.Run("register and get command", func(t *testing.T) {
		registry := NewCommandRegistry()

		err := registry.Register(&testCommandWrapper{name: "react-vite", description: "create-vite"})
		require.NoError(t, err)

		retrieved, ok := registry.Get("react-vite")
		assert.True(t, ok)
		assert.Equal(t, "create-vite", retrieved.Description())
		assert.True(t, registry.Has("react-vite"))
		assert.False(t, registry.Has("angular"))
	})

	t.Run("register duplicate command", func(t *testing.T) {
		registry := NewCommandRegistry()

		require.NoError(t, registry.Register(&testCommandWrapper{name: "duplicate"}))
		err := registry.Register(&testCommandWrapper{name: "duplicate"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("register invalid commands", func(t *testing.T) {
		registry := NewCommandRegistry()

		err := registry.Register(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot register nil")

		err = registry.Register(&testCommandWrapper{name: ""})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty name")
	})

	t.Run("must register panics on duplicates", func(t *testing.T) {
		registry := NewCommandRegistry()
		assert.Panics(t, func() {
			registry.MustRegister(&testCommandWrapper{name: "a"}, &testCommandWrapper{name: "a"})
		})
	})

	t.Run("list commands sorted", func(t *testing.T) {
		registry := NewCommandRegistry()
		registry.MustRegister(
			&testCommandWrapper{name: "react-webpack", description: "webpack-cli"},
			&testCommandWrapper{name: "angular", description: "ng new"},
			&testCommandWrapper{name: "react-vite", description: "create-vite"},
		)

		assert.Equal(t, []string{"angular", "react-vite", "react-webpack"}, registry.List())
		assert.Equal(t, "ng new", registry.ListWithDescriptions()["angular"])
	})

	t.Run("execute command", func(t *testing.T) {
		registry := NewCommandRegistry()
		var got *Executor

		registry.MustRegister(&testCommandWrapper{
			name: "exec-test",
			executeFunc: func(ctx context.Context, exec *Executor) error {
				got = exec
				return nil
			},
		})

		executor := NewExecutor(nil)
		require.NoError(t, registry.Execute(context.Background(), "exec-test", executor))
		assert.Same(t, executor, got, "executor is injected at execution time")
	})

	t.Run("execute non-existent command", func(t *testing.T) {
		err := NewCommandRegistry().Execute(context.Background(), "non-existent", NewExecutor(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestEnhanceError(t *testing.T) {
	enhanced := enhanceError(errors.New("command not found"), "pnpm")
	assert.Contains(t, enhanced.Error(), "Command 'pnpm' not found")
	assert.Contains(t, enhanced.Error(), "Please install it")
}

func TestIsCommandNotFound(t *testing.T) {
	assert.False(t, isCommandNotFound(nil))
	assert.True(t, isCommandNotFound(exec.ErrNotFound))
	assert.True(t, isCommandNotFound(errors.New(`exec: "ng": executable file not found in $PATH`)))
	assert.False(t, isCommandNotFound(errors.New("exit status 1")))
}

func TestStreamingWriter(t *testing.T) {
	var output bytes.Buffer
	writer := NewStreamingWriter(&output, "[vite] ", "205")

	n, err := writer.Write([]byte("Scaffolding"))
	assert.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Empty(t, output.String())

	n, err = writer.Write([]byte(" project\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Contains(t, output.String(), "[vite] Scaffolding project")
	assert.NotContains(t, output.String(), "\r")

	output.Reset()
	_, err = writer.Write([]byte("Line1\nLine2\nPartial"))
	assert.NoError(t, err)
	assert.Contains(t, output.String(), "[vite] Line1")
	assert.Contains(t, output.String(), "[vite] Line2")
	assert.NotContains(t, output.String(), "Partial")

	require.NoError(t, writer.Flush())
	assert.Contains(t, output.String(), "[vite] Partial")
	require.NoError(t, writer.Flush())
}

func ExampleGenericCommand() {
	executor := NewExecutor(nil)

	err := NewGenericCommand(executor, "npm").
		WithArgs("install").
		WithDir("/tmp/my-app").
		WithSpinner("Installing dependencies").
		Run(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}
