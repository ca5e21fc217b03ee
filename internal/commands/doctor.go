package commands

import (
	"errors"
	"fmt"

	"github.com/simonhull/hatch/internal/framework"
	"github.com/simonhull/hatch/internal/pkgmanager"
	"github.com/simonhull/hatch/internal/preflight"
	"github.com/simonhull/hatch/pkg/exec"
	"github.com/simonhull/hatch/pkg/output"
	"github.com/spf13/cobra"
)

// DoctorCmd checks the tools hatch depends on
func DoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check Node.js and package manager versions",
		Long: `Runs the same checks 'hatch new' runs before creating anything:
• Node.js is installed and new enough for the framework
• The package manager (and npx for npm) is on PATH

Example:
  hatch doctor -f angular -p pnpm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			stack, err := framework.Lookup(cfg.Framework, cfg.UI)
			if err != nil {
				return err
			}
			pm, err := pkgmanager.Parse(cfg.PackageManager)
			if err != nil {
				return err
			}

			if cfg.File != "" {
				output.Info(fmt.Sprintf("Config: %s", cfg.File))
			} else {
				output.Info("Config: built-in defaults")
			}

			report := preflight.New(exec.NewExecutor(nil)).Check(cmd.Context(), stack, pm)
			for _, res := range report {
				if res.OK() {
					output.Success(fmt.Sprintf("%s %s", res.Name, res.Detail))
				} else {
					output.Error(fmt.Sprintf("%s: %v", res.Name, res.Err))
				}
			}
			if !report.OK() {
				return errors.New("some checks failed")
			}
			return nil
		},
	}

	cmd.Flags().StringP("framework", "f", "", "Framework to check for: react-vite, react-webpack, angular")
	cmd.Flags().StringP("package-manager", "p", "", "Package manager to check: npm, yarn, pnpm")

	return cmd
}
