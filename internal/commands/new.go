package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/simonhull/hatch/internal/config"
	"github.com/simonhull/hatch/internal/framework"
	"github.com/simonhull/hatch/internal/pkgmanager"
	"github.com/simonhull/hatch/internal/preflight"
	"github.com/simonhull/hatch/internal/project"
	"github.com/simonhull/hatch/internal/targetdir"
	"github.com/simonhull/hatch/pkg/exec"
	"github.com/simonhull/hatch/pkg/input"
	"github.com/simonhull/hatch/pkg/output"
	"github.com/spf13/cobra"
)

type newOptions struct {
	dir         string
	skipInstall bool
	skipChecks  bool
	dryRun      bool
}

// NewCmd creates and returns the 'new' command for scaffolding projects
func NewCmd() *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new frontend project",
		Long: `Creates a new project with the upstream generator, then adds:
• Routes, a layout and home/about/not-found pages
• A store (zustand, or a signal service on Angular)
• i18n with English and Chinese translations
• .env / environment files

If the target directory already exists and is not empty, --on-conflict
decides what happens: prompt (default), overwrite, rename or skip.

Example:
  hatch new my-app
  hatch new my-app -f angular --ui antd -p pnpm
  hatch new my-app --on-conflict rename --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args, opts)
		},
	}

	cmd.Flags().StringP("framework", "f", "", "Framework: react-vite, react-webpack, angular")
	cmd.Flags().String("ui", "", "UI library: none, antd, mui")
	cmd.Flags().StringP("package-manager", "p", "", "Package manager: npm, yarn, pnpm")
	cmd.Flags().String("on-conflict", "", "When the target exists: prompt, overwrite, rename, skip")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "Parent directory for the project (default: current directory)")
	cmd.Flags().BoolVar(&opts.skipInstall, "skip-install", false, "Do not install dependencies")
	cmd.Flags().BoolVar(&opts.skipChecks, "skip-checks", false, "Skip Node.js and package manager checks")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print what would happen without changing anything")

	return cmd
}

func runNew(cmd *cobra.Command, args []string, opts newOptions) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	tty := interactive()

	name, err := projectName(args, tty)
	if err != nil {
		return err
	}

	stack, err := chooseStack(cfg, tty)
	if err != nil {
		return err
	}
	pm, err := pkgmanager.Parse(cfg.PackageManager)
	if err != nil {
		return err
	}
	policy, err := targetdir.ParsePolicy(cfg.OnConflict)
	if err != nil {
		return err
	}

	parent := opts.dir
	if parent == "" {
		if parent, err = os.Getwd(); err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	executor := exec.NewExecutor(nil)

	if !opts.skipChecks && !opts.dryRun {
		report := preflight.New(executor).Check(ctx, stack, pm)
		for _, res := range report {
			if res.OK() {
				output.Verbose(fmt.Sprintf("%s %s", res.Name, res.Detail))
			} else {
				output.Error(fmt.Sprintf("%s: %v", res.Name, res.Err))
			}
		}
		if !report.OK() {
			return errors.New("preflight checks failed (run 'hatch doctor' for details, or pass --skip-checks)")
		}
	}

	var confirmer targetdir.ConfirmationProvider = targetdir.NewLinePrompter(input.Stdin())
	if !tty {
		// Nobody can answer; an occupied target cancels unless a policy was given.
		confirmer = targetdir.FixedAnswer("")
	}

	scaffolder := project.NewScaffolder(
		project.WithResolver(targetdir.New(targetdir.WithConfirmer(confirmer), targetdir.WithLogger(log))),
		project.WithExecutor(executor),
		project.WithLogger(log),
		project.WithOutput(cmd.OutOrStdout()),
	)

	output.Verbose(fmt.Sprintf("Creating %s project %s with %s", stack.Framework.Label(), name, pm))

	res, err := scaffolder.Scaffold(ctx, project.Options{
		ParentDir:      parent,
		Name:           name,
		Stack:          stack,
		PackageManager: pm,
		Policy:         policy,
		SkipInstall:    opts.skipInstall || !cfg.Install,
		DryRun:         opts.dryRun,
	})
	if err != nil {
		var cancelled *targetdir.OperationCancelledError
		if errors.As(err, &cancelled) && !tty && policy == targetdir.PolicyPrompt {
			output.Info("No terminal to ask on; pass --on-conflict overwrite, rename or skip")
		}
		if res != nil {
			output.Warning(fmt.Sprintf("Project was created at %s but is incomplete", res.TargetPath))
		}
		return err
	}

	if opts.dryRun {
		output.Info("Dry run: nothing was changed")
		return nil
	}

	output.Success(fmt.Sprintf("Created %s project: %s", stack.Framework.Label(), res.TargetPath))
	output.Info("Next steps:")
	for _, step := range project.NextSteps(res, stack, pm) {
		output.Step(step)
	}
	return nil
}

func projectName(args []string, tty bool) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !tty {
		return "", errors.New("project name is required")
	}
	return input.Stdin().Prompt("Project name", "my-app"), nil
}

// chooseStack uses configured values, or menus for whatever was left at
// its default on an interactive terminal.
func chooseStack(cfg *config.Config, tty bool) (framework.Stack, error) {
	fw, ui := cfg.Framework, cfg.UI

	if tty && !cfg.IsExplicit(config.KeyFramework) {
		choices := make([]input.Choice, len(framework.Frameworks))
		for i, f := range framework.Frameworks {
			choices[i] = input.Choice{Value: string(f), Label: f.Label()}
		}
		v, err := input.Select("Which framework?", choices)
		if err != nil {
			return framework.Stack{}, err
		}
		fw = v
	}

	if tty && !cfg.IsExplicit(config.KeyUI) {
		choices := make([]input.Choice, len(framework.UIs))
		for i, u := range framework.UIs {
			choices[i] = input.Choice{Value: string(u), Label: u.Label()}
		}
		v, err := input.Select("Which UI library?", choices)
		if err != nil {
			return framework.Stack{}, err
		}
		ui = v
	}

	return framework.Lookup(fw, ui)
}
