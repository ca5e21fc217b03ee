package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Transaction runs a set of operations that are committed or rolled back together
type Transaction struct {
	operations []Operation
	undo       []snapshot
	committed  bool
}

// snapshot is the state of a target path before an operation touched it.
type snapshot struct {
	path       string
	existed    bool
	content    []byte
	mode       os.FileMode
	createdDir string // topmost directory the operation had to create, if any
}

// NewTransaction creates a new file operation transaction
func NewTransaction() *Transaction {
	return &Transaction{}
}

// Add stages operations (doesn't execute yet)
func (t *Transaction) Add(ops ...Operation) {
	t.operations = append(t.operations, ops...)
}

// Commit executes all staged operations in order. If any fails, everything
// already done is undone and the original error is returned.
func (t *Transaction) Commit(ctx context.Context) error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		if target, ok := op.(Targeted); ok {
			snap, err := take(target.Target())
			if err != nil {
				t.rollback()
				return err
			}
			t.undo = append(t.undo, snap)
		}

		if err := op.Execute(ctx); err != nil {
			err = fmt.Errorf("%s: %w", op.Description(), err)
			if rbErr := t.rollback(); rbErr != nil {
				return errors.Join(err, fmt.Errorf("rollback incomplete: %w", rbErr))
			}
			return err
		}
	}

	t.committed = true
	t.undo = nil
	return nil
}

// rollback restores snapshots newest first. Best effort: errors are
// collected but do not stop the remaining restores.
func (t *Transaction) rollback() error {
	var errs []error
	for i := len(t.undo) - 1; i >= 0; i-- {
		if err := t.undo[i].restore(); err != nil {
			errs = append(errs, err)
		}
	}
	t.undo = nil
	return errors.Join(errs...)
}

func take(path string) (snapshot, error) {
	snap := snapshot{path: path}

	info, err := os.Stat(path)
	switch {
	case err == nil:
		content, err := os.ReadFile(path)
		if err != nil {
			return snap, fmt.Errorf("failed to back up %s: %w", path, err)
		}
		snap.existed = true
		snap.content = content
		snap.mode = info.Mode().Perm()
	case !os.IsNotExist(err):
		return snap, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	// Remember the highest missing ancestor so rollback can prune it.
	for dir := filepath.Dir(path); ; {
		if _, err := os.Stat(dir); err == nil {
			break
		}
		snap.createdDir = dir
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return snap, nil
}

func (s snapshot) restore() error {
	if s.existed {
		return os.WriteFile(s.path, s.content, s.mode)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if s.createdDir != "" {
		return os.RemoveAll(s.createdDir)
	}
	return nil
}
