package exec

import (
	"context"
	"strings"
)

// GenericCommand provides a fluent API for building and executing commands
type GenericCommand struct {
	executor    *Executor
	command     string
	args        []string
	env         []string
	dir         string
	showSpinner bool
	spinnerMsg  string
}

// NewGenericCommand creates a new generic command builder
func NewGenericCommand(executor *Executor, command string) *GenericCommand {
	return &GenericCommand{
		executor: executor,
		command:  command,
	}
}

// WithArgs adds arguments to the command
func (g *GenericCommand) WithArgs(args ...string) *GenericCommand {
	g.args = append(g.args, args...)
	return g
}

// WithEnv adds environment variables
func (g *GenericCommand) WithEnv(env ...string) *GenericCommand {
	g.env = append(g.env, env...)
	return g
}

// WithDir sets the working directory, overriding the executor's.
func (g *GenericCommand) WithDir(dir string) *GenericCommand {
	g.dir = dir
	return g
}

// WithSpinner enables spinner with the given message
func (g *GenericCommand) WithSpinner(message string) *GenericCommand {
	g.showSpinner = true
	g.spinnerMsg = message
	return g
}

// Run executes the command
func (g *GenericCommand) Run(ctx context.Context) error {
	e := *g.executor
	e.env = append(append([]string{}, g.executor.env...), g.env...)
	if g.dir != "" {
		e.dir = g.dir
	}

	if g.showSpinner {
		return e.RunWithSpinner(ctx, g.spinnerMsg, g.command, g.args...)
	}
	return e.Run(ctx, g.command, g.args...)
}

// Args returns a copy of the accumulated arguments.
func (g *GenericCommand) Args() []string {
	return append([]string{}, g.args...)
}

// Dir returns the working directory the command will run in.
func (g *GenericCommand) Dir() string {
	if g.dir != "" {
		return g.dir
	}
	return g.executor.dir
}

// String returns the command line, for dry runs and debugging
func (g *GenericCommand) String() string {
	parts := []string{g.command}
	parts = append(parts, g.args...)
	return strings.Join(parts, " ")
}
