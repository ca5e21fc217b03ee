// Package input provides interactive terminal input for hatch.
//
// # Usage
//
//	p := input.NewPrompter(os.Stdin, os.Stdout)
//
//	// Ask for text input with a default
//	name := p.Prompt("Project name", "my-app")
//
//	// Ask a yes/no question
//	if p.Confirm("Overwrite hatch.yml?", false) {
//	    // User said yes
//	}
//
//	// Read one raw answer line; honors ctx cancellation and EOF
//	answer, err := p.Ask(ctx, "Choose: [o]verwrite / [r]ename / [s]kip ?")
//
// Select shows a keyboard-driven menu (bubbletea) and returns the chosen value:
//
//	fw, err := input.Select("Framework", []input.Choice{
//	    {Value: "react-vite", Label: "React + Vite"},
//	    {Value: "angular", Label: "Angular"},
//	})
//
// # Styling
//
//   - Prompts are displayed in cyan and bold
//   - Hints (defaults, [Y/n]) are displayed in gray
//
// # Non-Interactive Mode
//
// Menus need a terminal. Check IsInteractive before prompting and fall back
// to flag or config values otherwise:
//
//	if input.IsInteractive(os.Stdin) {
//	    fw, err = input.Select("Framework", choices)
//	} else {
//	    fw = cfg.Framework
//	}
package input
