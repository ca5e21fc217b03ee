package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	fileName  = "hatch"
	fileType  = "yaml"
	envPrefix = "HATCH"
)

// Setting keys, shared by the config file, HATCH_* variables and flag bindings.
const (
	KeyFramework      = "framework"
	KeyUI             = "ui"
	KeyPackageManager = "package_manager"
	KeyOnConflict     = "on_conflict"
	KeyInstall        = "install"
	KeyLogLevel       = "log_level"
)

// flagNames maps setting keys to the flag that overrides them.
var flagNames = map[string]string{
	KeyFramework:      "framework",
	KeyUI:             "ui",
	KeyPackageManager: "package-manager",
	KeyOnConflict:     "on-conflict",
}

// ErrConfigExists is returned by Save when the file is already there and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// Config holds the effective hatch settings.
type Config struct {
	Framework      string `yaml:"framework"`
	UI             string `yaml:"ui"`
	PackageManager string `yaml:"package_manager"`
	OnConflict     string `yaml:"on_conflict"`
	Install        bool   `yaml:"install"`
	LogLevel       string `yaml:"log_level"`

	// File is the config file that was read, empty when none was found.
	File string `yaml:"-"`

	explicit map[string]bool
}

// IsExplicit reports whether key came from a flag, HATCH_* variable or the
// config file rather than the built-in default.
func (c *Config) IsExplicit(key string) bool {
	return c.explicit[key]
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Framework:      "react-vite",
		UI:             "none",
		PackageManager: "npm",
		OnConflict:     "prompt",
		Install:        true,
		LogLevel:       "info",
	}
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string

	// Flags, when set, are bound so that explicitly passed flags win.
	Flags *pflag.FlagSet

	// SearchPaths replaces the default lookup directories (tests).
	SearchPaths []string
}

// Dir returns the per-user config directory (~/.config/hatch).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "hatch")
	}
	return filepath.Join(home, ".config", "hatch")
}

// Load reads the effective settings and validates them.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyFramework, def.Framework)
	v.SetDefault(KeyUI, def.UI)
	v.SetDefault(KeyPackageManager, def.PackageManager)
	v.SetDefault(KeyOnConflict, def.OnConflict)
	v.SetDefault(KeyInstall, def.Install)
	v.SetDefault(KeyLogLevel, def.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range flagNames {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding --%s: %w", name, err)
				}
			}
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType(fileType)
		paths := opts.SearchPaths
		if paths == nil {
			paths = []string{".", Dir()}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}

		// A missing file is fine: defaults and env still apply.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{
		Framework:      strings.ToLower(v.GetString(KeyFramework)),
		UI:             strings.ToLower(v.GetString(KeyUI)),
		PackageManager: strings.ToLower(v.GetString(KeyPackageManager)),
		OnConflict:     strings.ToLower(v.GetString(KeyOnConflict)),
		Install:        v.GetBool(KeyInstall),
		LogLevel:       strings.ToLower(v.GetString(KeyLogLevel)),
		File:           v.ConfigFileUsed(),
	}

	cfg.explicit = make(map[string]bool)
	for _, key := range []string{KeyFramework, KeyUI, KeyPackageManager, KeyOnConflict, KeyInstall, KeyLogLevel} {
		_, inEnv := os.LookupEnv(envPrefix + "_" + strings.ToUpper(key))
		cfg.explicit[key] = inEnv || v.InConfig(key) || flagChanged(opts.Flags, flagNames[key])
	}

	// Unknown keys from the file are kept so the schema can report them.
	settings := v.AllSettings()
	settings[KeyFramework] = cfg.Framework
	settings[KeyUI] = cfg.UI
	settings[KeyPackageManager] = cfg.PackageManager
	settings[KeyOnConflict] = cfg.OnConflict
	settings[KeyInstall] = cfg.Install
	settings[KeyLogLevel] = cfg.LogLevel

	if err := Validate(settings); err != nil {
		if cfg.File != "" {
			return nil, fmt.Errorf("invalid settings (config file %s): %w", cfg.File, err)
		}
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return cfg, nil
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	if flags == nil || name == "" {
		return false
	}
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// Marshal encodes cfg as hatch.yml content.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Save writes cfg to path. An existing file is only replaced with force.
func Save(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}

	header := []byte("# hatch configuration. Flags and HATCH_* variables override these values.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
