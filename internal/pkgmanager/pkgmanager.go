// Package pkgmanager knows how to phrase common operations for npm, yarn and pnpm.
package pkgmanager

import (
	"fmt"
	"strings"
)

// Manager is a JavaScript package manager.
type Manager string

const (
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
	PNPM Manager = "pnpm"
)

// Managers lists every supported package manager.
var Managers = []Manager{NPM, Yarn, PNPM}

// Parse accepts a package manager name, case-insensitively. Empty means npm.
func Parse(s string) (Manager, error) {
	switch m := Manager(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return NPM, nil
	case NPM, Yarn, PNPM:
		return m, nil
	default:
		return "", fmt.Errorf("unknown package manager %q (valid: npm, yarn, pnpm)", s)
	}
}

// Command is a program and its arguments.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Binary is the executable that must be on PATH.
func (m Manager) Binary() string {
	return string(m)
}

// ExecBinary is the executable that runs one-off packages (npx for npm).
func (m Manager) ExecBinary() string {
	if m == NPM {
		return "npx"
	}
	return string(m)
}

// Create runs a create-<tool> initializer.
//
//	npm create vite@latest -- my-app --template react-ts
//	yarn create vite my-app --template react-ts
//	pnpm create vite my-app --template react-ts
func (m Manager) Create(tool string, args ...string) Command {
	if m == NPM {
		return Command{Name: "npm", Args: append([]string{"create", tool + "@latest", "--"}, args...)}
	}
	return Command{Name: string(m), Args: append([]string{"create", tool}, args...)}
}

// Exec downloads pkg if needed and runs its binary.
//
//	npx --yes webpack-cli init my-app
//	yarn dlx webpack-cli init my-app
//	pnpm dlx webpack-cli init my-app
func (m Manager) Exec(pkg string, args ...string) Command {
	if m == NPM {
		return Command{Name: "npx", Args: append([]string{"--yes", pkg}, args...)}
	}
	return Command{Name: string(m), Args: append([]string{"dlx", pkg}, args...)}
}

// Install installs everything listed in package.json.
func (m Manager) Install() Command {
	return Command{Name: string(m), Args: []string{"install"}}
}

// Add installs pkgs and records them in package.json.
func (m Manager) Add(dev bool, pkgs ...string) Command {
	var args []string
	switch m {
	case NPM:
		args = []string{"install"}
		if dev {
			args = append(args, "--save-dev")
		}
	case Yarn:
		args = []string{"add"}
		if dev {
			args = append(args, "--dev")
		}
	default:
		args = []string{"add"}
		if dev {
			args = append(args, "--save-dev")
		}
	}
	return Command{Name: string(m), Args: append(args, pkgs...)}
}

// Run runs a package.json script.
func (m Manager) Run(script string) Command {
	if m == NPM {
		return Command{Name: "npm", Args: []string{"run", script}}
	}
	return Command{Name: string(m), Args: []string{script}}
}
