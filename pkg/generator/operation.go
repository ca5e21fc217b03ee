package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without changing anything.
// force=true allows replacing files that already exist.
//
// Execute performs the actual operation. Only call it after Validate succeeds.
//
// Description returns a human-readable description for output
// (e.g., "Write src/routes/index.tsx (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// Targeted is implemented by operations that change a single path, so a
// Transaction can snapshot it before Execute and restore it on rollback.
type Targeted interface {
	Target() string
}

// WriteFileOp writes a file, creating parent directories as needed.
//
// Validation behavior:
//   - Fails if the path exists and force is false
//   - Fails if the path (or a parent) is an existing non-directory/directory mismatch
//   - Allows empty content (zero bytes) but rejects nil content
type WriteFileOp struct {
	Path    string      // Absolute file path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
	Root    string      // Optional; Description shows Path relative to Root

	replaces bool
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	info, err := os.Stat(op.Path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("path is a directory: %s", op.Path)
	case err == nil && !force:
		return fmt.Errorf("file already exists: %s", op.Path)
	case err == nil:
		op.replaces = true
	case !os.IsNotExist(err):
		return fmt.Errorf("cannot stat %s: %w", op.Path, err)
	}

	// The nearest existing ancestor must be a directory.
	for dir := filepath.Dir(op.Path); ; dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("cannot create %s: %s is not a directory", op.Path, dir)
			}
			break
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(op.Path, op.Content, op.Mode); err != nil {
		return fmt.Errorf("failed to write file %s: %w", op.Path, err)
	}
	return nil
}

func (op *WriteFileOp) Target() string {
	return op.Path
}

func (op *WriteFileOp) Description() string {
	path := op.Path
	if op.Root != "" {
		if rel, err := filepath.Rel(op.Root, op.Path); err == nil {
			path = rel
		}
	}

	verb := "Create"
	if op.replaces {
		verb = "Overwrite"
	}
	return fmt.Sprintf("%s %s (%d bytes)", verb, filepath.ToSlash(path), len(op.Content))
}
