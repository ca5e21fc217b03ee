// Package framework describes the frontend stacks hatch can scaffold: which
// upstream generator creates the project, which templates go on top and
// which packages those templates need.
package framework

import (
	"fmt"
	"strings"
)

// Framework identifies an upstream project generator.
type Framework string

const (
	ReactVite    Framework = "react-vite"
	ReactWebpack Framework = "react-webpack"
	Angular      Framework = "angular"
)

// Frameworks lists every supported framework, in menu order.
var Frameworks = []Framework{ReactVite, ReactWebpack, Angular}

// UI is a component library choice.
type UI string

const (
	UINone UI = "none"
	UIAntd UI = "antd"
	UIMUI  UI = "mui"
)

// UIs lists every supported UI library choice, in menu order.
var UIs = []UI{UINone, UIAntd, UIMUI}

// Label returns the menu label.
func (f Framework) Label() string {
	switch f {
	case ReactVite:
		return "React + Vite"
	case ReactWebpack:
		return "React + Webpack"
	case Angular:
		return "Angular"
	}
	return string(f)
}

// Label returns the menu label.
func (u UI) Label() string {
	switch u {
	case UIAntd:
		return "Ant Design"
	case UIMUI:
		return "Material UI"
	}
	return "None"
}

// ParseFramework accepts a framework name, case-insensitively.
func ParseFramework(s string) (Framework, error) {
	f := Framework(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Frameworks {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown framework %q (valid: %s)", s, join(Frameworks))
}

// ParseUI accepts a UI library name, case-insensitively. Empty means none.
func ParseUI(s string) (UI, error) {
	u := UI(strings.ToLower(strings.TrimSpace(s)))
	if u == "" {
		return UINone, nil
	}
	for _, known := range UIs {
		if u == known {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown UI library %q (valid: %s)", s, join(UIs))
}

// Stack is everything hatch needs to know about one framework/UI pairing.
type Stack struct {
	Framework Framework
	UI        UI

	// TemplateDir is the directory under the embedded templates.
	TemplateDir string

	Dependencies    []string
	DevDependencies []string

	// EnvPrefix is prepended to variables in generated .env files.
	EnvPrefix string

	// DevScript is the package.json script that starts a dev server.
	DevScript string

	// NodeConstraint is the Node.js version range the upstream generator needs.
	NodeConstraint string
}

// Lookup resolves a framework and UI library to a Stack.
func Lookup(framework, ui string) (Stack, error) {
	f, err := ParseFramework(framework)
	if err != nil {
		return Stack{}, err
	}
	u, err := ParseUI(ui)
	if err != nil {
		return Stack{}, err
	}

	var s Stack
	switch f {
	case ReactVite:
		s = Stack{
			TemplateDir:    "react",
			Dependencies:   reactDeps(),
			EnvPrefix:      "VITE_",
			DevScript:      "dev",
			NodeConstraint: ">= 18.0.0",
		}
	case ReactWebpack:
		s = Stack{
			TemplateDir:     "react",
			Dependencies:    reactDeps(),
			DevDependencies: []string{"dotenv-webpack"},
			DevScript:       "serve",
			NodeConstraint:  ">= 18.0.0",
		}
	case Angular:
		s = Stack{
			TemplateDir:    "angular",
			Dependencies:   []string{"@ngx-translate/core", "@ngx-translate/http-loader"},
			DevScript:      "start",
			NodeConstraint: ">= 20.19.0",
		}
	}
	s.Framework = f
	s.UI = u
	s.Dependencies = append(s.Dependencies, uiDeps(f, u)...)
	return s, nil
}

func reactDeps() []string {
	return []string{"react-router-dom", "zustand", "i18next", "react-i18next"}
}

// uiDeps maps a UI choice to packages. Angular gets the native ports.
func uiDeps(f Framework, u UI) []string {
	switch {
	case u == UIAntd && f == Angular:
		return []string{"ng-zorro-antd"}
	case u == UIAntd:
		return []string{"antd"}
	case u == UIMUI && f == Angular:
		return []string{"@angular/material", "@angular/cdk"}
	case u == UIMUI:
		return []string{"@mui/material", "@emotion/react", "@emotion/styled"}
	}
	return nil
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
