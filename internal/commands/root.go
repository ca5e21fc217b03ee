package commands

import (
	"github.com/simonhull/hatch"
	"github.com/simonhull/hatch/pkg/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the hatch CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "hatch",
		Short: "Scaffold frontend projects with routing, state and i18n ready to go",
		Long: `hatch runs the upstream generator for your framework, then adds what
every new project ends up needing:
• Routing with a layout and home/about/not-found pages
• A store, a localStorage hook and i18n (English and Chinese)
• .env files and an optional UI library (Ant Design or Material UI)

Supported frameworks: React + Vite, React + Webpack, Angular.

Learn more: https://github.com/simonhull/hatch`,
		Version:       hatch.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config", "", "Config file (default: ./hatch.yml, then ~/.config/hatch/hatch.yml)")

	return cmd
}
