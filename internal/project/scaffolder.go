package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simonhull/hatch/internal/framework"
	"github.com/simonhull/hatch/internal/pkgmanager"
	"github.com/simonhull/hatch/internal/targetdir"
	"github.com/simonhull/hatch/internal/templates"
	"github.com/simonhull/hatch/pkg/exec"
	"github.com/simonhull/hatch/pkg/generator"
	"github.com/simonhull/hatch/pkg/logger"
	"github.com/simonhull/hatch/pkg/output"
)

// Options describes one scaffold run.
type Options struct {
	ParentDir      string // made absolute; created if missing
	Name           string
	Stack          framework.Stack
	PackageManager pkgmanager.Manager
	Policy         targetdir.Policy
	SkipInstall    bool
	DryRun         bool
}

// Result describes the project that was created.
type Result struct {
	targetdir.Result

	Package   *PackageJSON
	Files     []string // written template files, relative to TargetPath
	Installed bool
}

// Scaffolder scaffolds new frontend projects
type Scaffolder struct {
	resolver *targetdir.Resolver
	executor *exec.Executor
	log      logger.Logger
	out      io.Writer
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithResolver sets the target directory resolver.
func WithResolver(r *targetdir.Resolver) Option {
	return func(s *Scaffolder) { s.resolver = r }
}

// WithExecutor sets the executor used for generators and installs.
func WithExecutor(e *exec.Executor) Option {
	return func(s *Scaffolder) { s.executor = e }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scaffolder) { s.log = l }
}

// WithOutput sets where file progress and dry-run plans are printed.
func WithOutput(w io.Writer) Option {
	return func(s *Scaffolder) { s.out = w }
}

// NewScaffolder creates a new project scaffolder
func NewScaffolder(opts ...Option) *Scaffolder {
	s := &Scaffolder{}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.resolver == nil {
		s.resolver = targetdir.New(targetdir.WithLogger(s.log))
	}
	if s.executor == nil {
		s.executor = exec.NewExecutor(nil)
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	return s
}

// Scaffold creates a new project as described by opts.
func (s *Scaffolder) Scaffold(ctx context.Context, opts Options) (*Result, error) {
	parent, err := filepath.Abs(opts.ParentDir)
	if err != nil {
		return nil, fmt.Errorf("resolving parent directory: %w", err)
	}
	if opts.PackageManager == "" {
		opts.PackageManager = pkgmanager.NPM
	}

	log := s.log.WithFields(
		logger.F("framework", opts.Stack.Framework),
		logger.F("ui", opts.Stack.UI),
		logger.F("package_manager", opts.PackageManager),
	)

	if opts.DryRun {
		return s.plan(ctx, parent, opts)
	}

	// 1. Parent directory
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("creating parent directory %s: %w", parent, err)
	}

	// 2. Target directory
	resolved, err := s.resolver.Resolve(ctx, targetdir.Request{
		ParentDir:   parent,
		DesiredName: opts.Name,
		Policy:      opts.Policy,
	})
	if err != nil {
		return nil, err
	}
	switch resolved.Decision {
	case targetdir.DecisionOverwritten:
		output.Warning(fmt.Sprintf("Removed the previous contents of %s", resolved.TargetPath))
	case targetdir.DecisionRenamed:
		output.Info(fmt.Sprintf("%s is taken, creating %s instead", opts.Name, resolved.FinalName))
	}
	log = log.WithFields(logger.F("target", resolved.TargetPath))

	result := &Result{Result: resolved}

	// 3. Upstream generator
	generators, err := framework.Generators(opts.PackageManager, parent, resolved.FinalName)
	if err != nil {
		return nil, err
	}
	log.Debug("running generator")
	if err := generators.Execute(ctx, string(opts.Stack.Framework), s.executor); err != nil {
		return nil, err
	}

	found, pkg, err := DetectProject(resolved.TargetPath)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s generator did not create package.json in %s", opts.Stack.Framework, resolved.TargetPath)
	}
	result.Package = pkg

	// 4. Templates
	ops, err := s.templateOps(resolved, opts)
	if err != nil {
		return nil, err
	}
	// Upstream files such as App.tsx are replaced on purpose.
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true, Writer: s.out}); err != nil {
		return nil, fmt.Errorf("writing templates: %w", err)
	}
	for _, op := range ops {
		if t, ok := op.(generator.Targeted); ok {
			rel, _ := filepath.Rel(resolved.TargetPath, t.Target())
			result.Files = append(result.Files, filepath.ToSlash(rel))
		}
	}
	log.Debug("templates written", logger.F("files", len(result.Files)))

	// 5. Dependencies
	if opts.SkipInstall {
		log.Debug("skipping dependency install")
		return result, nil
	}
	for _, c := range InstallCommands(opts.Stack, opts.PackageManager) {
		log.Debug("running", logger.F("command", c.String()))
		err := exec.NewGenericCommand(s.executor, c.Name).
			WithArgs(c.Args...).
			WithDir(resolved.TargetPath).
			WithSpinner("Installing dependencies (" + c.String() + ")").
			Run(ctx)
		if err != nil {
			return result, fmt.Errorf("installing dependencies: %w", err)
		}
	}
	result.Installed = true

	return result, nil
}

func (s *Scaffolder) templateOps(resolved targetdir.Result, opts Options) ([]generator.Operation, error) {
	return templates.New(resolved.TargetPath, opts.Stack, templates.Data{
		Name:           resolved.FinalName,
		Framework:      string(opts.Stack.Framework),
		UI:             string(opts.Stack.UI),
		EnvPrefix:      opts.Stack.EnvPrefix,
		PackageManager: string(opts.PackageManager),
	}).Generate()
}

// plan prints what Scaffold would do. It only reads the file system.
func (s *Scaffolder) plan(ctx context.Context, parent string, opts Options) (*Result, error) {
	candidate := filepath.Join(parent, opts.Name)
	policy := opts.Policy
	if policy == "" {
		policy = targetdir.PolicyPrompt
	}

	state, err := describeTarget(candidate)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Target:    %s (%s; on conflict: %s)\n", candidate, state, policy)

	gen, err := framework.NewGenerator(opts.Stack.Framework, opts.PackageManager, parent, opts.Name)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Generator: %s (in %s)\n", gen.Command(), gen.Dir())

	planned := targetdir.Result{FinalName: opts.Name, TargetPath: candidate}
	ops, err := s.templateOps(planned, opts)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(s.out, "Templates:")
	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: true, Force: true, Writer: s.out}); err != nil {
		return nil, err
	}

	if opts.SkipInstall {
		fmt.Fprintln(s.out, "Install:   skipped")
	} else {
		for _, c := range InstallCommands(opts.Stack, opts.PackageManager) {
			fmt.Fprintf(s.out, "Install:   %s (in %s)\n", c, candidate)
		}
	}

	return &Result{Result: planned}, nil
}

func describeTarget(path string) (string, error) {
	entries, err := os.ReadDir(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "will be created", nil
	case err == nil && len(entries) == 0:
		return "exists, empty", nil
	case err == nil:
		return "exists, not empty", nil
	}

	// ReadDir fails on files; they occupy the name like a populated directory.
	if info, statErr := os.Lstat(path); statErr == nil && !info.IsDir() {
		return "exists, not a directory", nil
	}
	return "", fmt.Errorf("inspecting %s: %w", path, err)
}

// InstallCommands lists the commands that add the stack's packages and
// install everything.
func InstallCommands(stack framework.Stack, pm pkgmanager.Manager) []pkgmanager.Command {
	var cmds []pkgmanager.Command
	if len(stack.Dependencies) > 0 {
		cmds = append(cmds, pm.Add(false, stack.Dependencies...))
	}
	if len(stack.DevDependencies) > 0 {
		cmds = append(cmds, pm.Add(true, stack.DevDependencies...))
	}
	return append(cmds, pm.Install())
}

// NextSteps lists what to run after a successful scaffold.
func NextSteps(res *Result, stack framework.Stack, pm pkgmanager.Manager) []string {
	steps := []string{"cd " + res.FinalName}
	if !res.Installed {
		steps = append(steps, pm.Install().String())
	}

	script := stack.DevScript
	if res.Package != nil && !res.Package.HasScript(script) && res.Package.HasScript("start") {
		script = "start"
	}
	return append(steps, pm.Run(script).String())
}
