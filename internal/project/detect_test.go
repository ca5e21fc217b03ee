package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectProject(t *testing.T) {
	t.Run("missing package.json", func(t *testing.T) {
		dir := t.TempDir()

		found, pkg, err := DetectProject(dir)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, pkg)
		assert.False(t, IsProject(dir))
	})

	t.Run("valid package.json", func(t *testing.T) {
		dir := t.TempDir()
		content := `{
  "name": "shop",
  "version": "0.0.0",
  "scripts": {"dev": "vite", "build": "tsc -b && vite build"},
  "dependencies": {"react": "^19.0.0"},
  "devDependencies": {"vite": "^6.0.0"}
}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644))

		found, pkg, err := DetectProject(dir)
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, IsProject(dir))
		assert.Equal(t, "shop", pkg.Name)
		assert.True(t, pkg.HasScript("dev"))
		assert.False(t, pkg.HasScript("start"))
		assert.Equal(t, "^19.0.0", pkg.Dependencies["react"])
		assert.Equal(t, "^6.0.0", pkg.DevDependencies["vite"])
	})

	t.Run("malformed package.json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{not json"), 0o644))

		found, _, err := DetectProject(dir)
		assert.False(t, found)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}
