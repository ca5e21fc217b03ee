package targetdir

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/simonhull/hatch/pkg/input"
	"github.com/simonhull/hatch/pkg/logger"
)

const dirMode = 0o755

// Request describes the directory a scaffold run wants to write into.
type Request struct {
	ParentDir   string // absolute
	DesiredName string
	Policy      Policy
}

// Result is a safe, empty directory ready for a generator.
type Result struct {
	FinalName  string
	TargetPath string
	Decision   Decision
}

// Resolver turns a Request into a Result following the request's Policy.
type Resolver struct {
	confirmer ConfirmationProvider
	log       logger.Logger

	// File-system calls that destroy or claim a path; swapped in tests.
	removeAll func(path string) error
	mkdir     func(path string, perm os.FileMode) error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConfirmer sets the provider consulted by PolicyPrompt.
func WithConfirmer(c ConfirmationProvider) Option {
	return func(r *Resolver) {
		r.confirmer = c
	}
}

// WithLogger sets the decision logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// New creates a resolver. Without options it prompts on stdin and logs nothing.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		removeAll: os.RemoveAll,
		mkdir:     os.Mkdir,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.confirmer == nil {
		r.confirmer = NewLinePrompter(input.Stdin())
	}
	if r.log == nil {
		r.log = logger.NewNop()
	}
	return r
}

type entryState int

const (
	stateAbsent entryState = iota
	stateEmptyDir
	stateOccupied
)

// Resolve picks the directory to scaffold into. See the package
// documentation for the per-policy behavior.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}
	if req.Policy == "" {
		req.Policy = PolicyPrompt
	}

	candidate := filepath.Join(req.ParentDir, req.DesiredName)
	log := r.log.WithFields(logger.F("path", candidate), logger.F("policy", req.Policy))

	state, err := inspect(candidate)
	if err != nil {
		return Result{}, err
	}

	if state == stateAbsent {
		err := r.mkdir(candidate, dirMode)
		switch {
		case err == nil:
			log.Debug("created target directory")
			return result(req.ParentDir, req.DesiredName, DecisionCreated), nil
		case errors.Is(err, fs.ErrExist):
			// Someone created it between the stat and the mkdir; look again.
			if state, err = inspect(candidate); err != nil {
				return Result{}, err
			}
			if state == stateAbsent {
				return Result{}, &IOError{Op: "mkdir", Path: candidate, Err: fs.ErrExist}
			}
		default:
			return Result{}, &IOError{Op: "mkdir", Path: candidate, Err: err}
		}
	}

	if state == stateEmptyDir {
		log.Debug("target directory exists and is empty")
		return result(req.ParentDir, req.DesiredName, DecisionUnchangedEmpty), nil
	}

	policy := req.Policy
	if policy == PolicyPrompt {
		if policy, err = r.ask(ctx, candidate); err != nil {
			log.Error("resolution cancelled", logger.F("reason", err))
			return Result{}, err
		}
	}

	switch policy {
	case PolicyOverwrite:
		return r.overwrite(log, req, candidate)
	case PolicyRename:
		return r.rename(log, req)
	case PolicySkip:
		log.Error("target directory is not empty, skipping")
		return Result{}, &TargetExistsError{Path: candidate}
	default:
		return Result{}, fmt.Errorf("unknown conflict policy %q", policy)
	}
}

// ask consults the confirmer. Only answers starting with o or r proceed;
// everything else, including s, is a cancellation. There is no re-prompt.
func (r *Resolver) ask(ctx context.Context, candidate string) (Policy, error) {
	answer, err := r.confirmer.Confirm(ctx, candidate)
	if err != nil {
		return "", &OperationCancelledError{Path: candidate}
	}

	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return "", &OperationCancelledError{Path: candidate}
	}

	switch unicode.ToLower([]rune(trimmed)[0]) {
	case 'o':
		return PolicyOverwrite, nil
	case 'r':
		return PolicyRename, nil
	default:
		return "", &OperationCancelledError{Path: candidate, Answer: trimmed}
	}
}

func (r *Resolver) overwrite(log logger.Logger, req Request, candidate string) (Result, error) {
	log.Warn("removing existing directory and all of its contents")

	if err := r.removeAll(candidate); err != nil {
		log.Error("removing existing directory failed", logger.F("error", err))
		return Result{}, &IOError{Op: "remove", Path: candidate, Err: err}
	}
	if err := r.mkdir(candidate, dirMode); err != nil {
		return Result{}, &IOError{Op: "mkdir", Path: candidate, Err: err}
	}

	return result(req.ParentDir, req.DesiredName, DecisionOverwritten), nil
}

// rename claims the first free name-N, N counting up from 1. os.Mkdir is
// both the existence check and the reservation, so the loop never hands out
// a name it has not just created.
func (r *Resolver) rename(log logger.Logger, req Request) (Result, error) {
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s-%d", req.DesiredName, n)
		path := filepath.Join(req.ParentDir, name)

		err := r.mkdir(path, dirMode)
		if err == nil {
			log.Info("target directory is not empty, using a new name", logger.F("renamed_to", name))
			return result(req.ParentDir, name, DecisionRenamed), nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return Result{}, &IOError{Op: "mkdir", Path: path, Err: err}
		}
	}
}

func inspect(path string) (entryState, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stateAbsent, nil
		}
		return 0, &IOError{Op: "stat", Path: path, Err: err}
	}

	// Files and symlinks occupy the name just like a populated directory.
	if !info.IsDir() {
		return stateOccupied, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return stateEmptyDir, nil
		}
		return 0, &IOError{Op: "read", Path: path, Err: err}
	}
	return stateOccupied, nil
}

func validate(req Request) error {
	if !filepath.IsAbs(req.ParentDir) {
		return fmt.Errorf("parent directory must be absolute: %q", req.ParentDir)
	}
	name := req.DesiredName
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid project directory name %q", name)
	}
	return nil
}

func result(parent, name string, d Decision) Result {
	return Result{
		FinalName:  name,
		TargetPath: filepath.Join(parent, name),
		Decision:   d,
	}
}
