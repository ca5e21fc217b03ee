// Package output prints styled, user-facing terminal messages for hatch.
//
// # Usage
//
//	output.Success("Created my-app")
//	output.Warning("Removing existing directory: /work/my-app")
//	output.Info("Next steps:")
//	output.Step("cd my-app")
//	output.Error("target already exists: /work/my-app")
//
// # Destination
//
// Error and Warning go to stderr, everything else to stdout. Tests can
// redirect all of it to one writer:
//
//	output.SetWriter(&buf)
//	defer output.SetWriter(nil)
//
// # Styling
//
// Styling uses lipgloss and is hidden from callers:
//
//   - Success: 🐣 green bold
//   - Warning: ⚠️ yellow bold (destructive actions)
//   - Error: ❌ red bold
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
package output
