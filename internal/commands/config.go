package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/simonhull/hatch/internal/config"
	"github.com/simonhull/hatch/pkg/input"
	"github.com/simonhull/hatch/pkg/output"
	"github.com/spf13/cobra"
)

// ConfigCmd returns the config command with init/show subcommands
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage hatch settings",
		Long:  "Create a hatch.yml with the defaults, or show the settings in effect",
	}

	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configShowCmd())

	return cmd
}

func configInitCmd() *cobra.Command {
	var force, global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a hatch.yml with the default settings",
		Long: `Writes hatch.yml in the current directory, or in ~/.config/hatch with --global.

Example:
  hatch config init --global`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "hatch.yml"
			if global {
				path = filepath.Join(config.Dir(), "hatch.yml")
			}

			err := config.Save(path, config.Default(), force)
			if errors.Is(err, config.ErrConfigExists) && interactive() &&
				input.Stdin().Confirm(fmt.Sprintf("%s exists. Overwrite?", path), false) {
				err = config.Save(path, config.Default(), true)
			}
			if err != nil {
				return err
			}

			output.Success(fmt.Sprintf("Wrote %s", path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&global, "global", false, "Write to ~/.config/hatch instead of the current directory")

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}

			source := "built-in defaults"
			if cfg.File != "" {
				source = cfg.File
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n%s", source, data)
			return nil
		},
	}
}
