package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/hatch/internal/config"
	"github.com/simonhull/hatch/pkg/input"
	"github.com/simonhull/hatch/pkg/logger"
	"github.com/simonhull/hatch/pkg/output"
	"github.com/spf13/cobra"
)

// loadSettings reads hatch.yml, HATCH_* variables and cmd's flags, and
// builds the logger they configure. --verbose forces debug logging.
func loadSettings(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	file, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return nil, nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = logger.LevelDebug
	}

	if cfg.File != "" {
		output.Verbose(fmt.Sprintf("Using config file %s", cfg.File))
	}
	return cfg, logger.NewLogger(level, cmd.ErrOrStderr()), nil
}

// interactive reports whether both ends of the session are a terminal.
func interactive() bool {
	return input.IsInteractive(os.Stdin) && input.IsInteractive(os.Stdout)
}
