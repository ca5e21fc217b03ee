package framework

import (
	"context"
	"fmt"

	"github.com/simonhull/hatch/internal/pkgmanager"
	"github.com/simonhull/hatch/pkg/exec"
)

// Generator runs a framework's upstream project generator in the parent
// directory, producing parentDir/name.
type Generator struct {
	framework Framework
	name      string
	dir       string
	cmd       pkgmanager.Command
}

// NewGenerator builds the generator invocation for f.
func NewGenerator(f Framework, pm pkgmanager.Manager, parentDir, name string) (*Generator, error) {
	var cmd pkgmanager.Command
	switch f {
	case ReactVite:
		cmd = pm.Create("vite", name, "--template", "react-ts")
	case ReactWebpack:
		cmd = pm.Exec("webpack-cli", "init", name, "--template=react", "--force")
	case Angular:
		cmd = pm.Exec("@angular/cli", "new", name,
			"--directory", name,
			"--routing",
			"--style=scss",
			"--skip-git",
			"--skip-install",
			"--defaults",
			"--package-manager="+string(pm),
		)
	default:
		return nil, fmt.Errorf("no generator for framework %q", f)
	}

	return &Generator{framework: f, name: name, dir: parentDir, cmd: cmd}, nil
}

func (g *Generator) Name() string {
	return string(g.framework)
}

func (g *Generator) Description() string {
	return fmt.Sprintf("Create %s with %s", g.name, g.framework.Label())
}

// Command returns the invocation, for dry runs.
func (g *Generator) Command() pkgmanager.Command {
	return g.cmd
}

// Dir is where the generator runs (the parent of the new project).
func (g *Generator) Dir() string {
	return g.dir
}

func (g *Generator) Execute(ctx context.Context, e *exec.Executor) error {
	err := exec.NewGenericCommand(e, g.cmd.Name).
		WithArgs(g.cmd.Args...).
		WithDir(g.dir).
		WithSpinner(fmt.Sprintf("Running %s generator", g.framework.Label())).
		Run(ctx)
	if err != nil {
		return fmt.Errorf("running %s generator: %w", g.framework, err)
	}
	return nil
}

// Generators registers one generator per framework for the given project.
func Generators(pm pkgmanager.Manager, parentDir, name string) (*exec.CommandRegistry, error) {
	reg := exec.NewCommandRegistry()
	for _, f := range Frameworks {
		g, err := NewGenerator(f, pm, parentDir, name)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(g); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
