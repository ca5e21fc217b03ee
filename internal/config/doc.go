// Package config loads hatch settings.
//
// Settings come from, highest precedence first: command-line flags,
// HATCH_* environment variables, a hatch.yml file, and built-in defaults.
// The file is looked up in the path given with --config, then the working
// directory, then ~/.config/hatch/.
//
// The effective settings are checked against an embedded JSON schema so a
// typo such as "on-conflict: rename" is reported instead of silently ignored.
package config
