package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PackageJSON holds the parts of package.json hatch looks at.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// HasScript reports whether package.json defines script.
func (p *PackageJSON) HasScript(script string) bool {
	_, ok := p.Scripts[script]
	return ok
}

// IsProject checks if a directory contains package.json
func IsProject(root string) bool {
	_, err := os.Stat(filepath.Join(root, "package.json"))
	return err == nil
}

// DetectProject reads package.json from root.
// Returns (found bool, pkg *PackageJSON, error); a missing file is not an error.
func DetectProject(root string) (bool, *PackageJSON, error) {
	path := filepath.Join(root, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return false, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, &pkg, nil
}
