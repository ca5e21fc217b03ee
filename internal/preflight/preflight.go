// Package preflight verifies the tools a scaffold run shells out to before
// anything is created on disk.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/simonhull/hatch/internal/framework"
	"github.com/simonhull/hatch/internal/pkgmanager"
	"github.com/simonhull/hatch/pkg/exec"
)

// Result is the outcome of one check.
type Result struct {
	Name   string
	Detail string // version found, or what is missing
	Err    error
}

// OK reports whether the check passed.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report is the outcome of every check, in the order they ran.
type Report []Result

// OK reports whether every check passed.
func (r Report) OK() bool {
	for _, res := range r {
		if !res.OK() {
			return false
		}
	}
	return true
}

// Err joins the failed checks, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, res := range r {
		if !res.OK() {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Checker runs preflight checks through an executor.
type Checker struct {
	exec *exec.Executor
}

// New creates a checker.
func New(e *exec.Executor) *Checker {
	return &Checker{exec: e}
}

// Check verifies Node.js against the stack's constraint and that the
// package manager binaries are on PATH.
func (c *Checker) Check(ctx context.Context, stack framework.Stack, pm pkgmanager.Manager) Report {
	report := Report{c.checkNode(ctx, stack)}
	report = append(report, c.checkBinary(ctx, pm.Binary()))
	if bin := pm.ExecBinary(); bin != pm.Binary() {
		report = append(report, c.checkBinary(ctx, bin))
	}
	return report
}

func (c *Checker) checkNode(ctx context.Context, stack framework.Stack) Result {
	res := Result{Name: "node"}

	if _, err := c.exec.LookPath("node"); err != nil {
		res.Detail = "not found on PATH"
		res.Err = err
		return res
	}

	out, err := c.exec.Output(ctx, "node", "--version")
	if err != nil {
		res.Err = err
		return res
	}

	v, err := ParseVersion(out)
	if err != nil {
		res.Detail = out
		res.Err = err
		return res
	}
	res.Detail = v.String()

	if stack.NodeConstraint == "" {
		return res
	}
	if err := Satisfies(v, stack.NodeConstraint); err != nil {
		res.Err = fmt.Errorf("%s needs Node.js %s: %w", stack.Framework.Label(), stack.NodeConstraint, err)
	}
	return res
}

func (c *Checker) checkBinary(ctx context.Context, name string) Result {
	res := Result{Name: name}

	path, err := c.exec.LookPath(name)
	if err != nil {
		res.Detail = "not found on PATH"
		res.Err = err
		return res
	}

	// The version is informational; a tool that cannot report one still counts.
	if out, err := c.exec.Output(ctx, name, "--version"); err == nil && out != "" {
		res.Detail = firstLine(out)
	} else {
		res.Detail = path
	}
	return res
}

// ParseVersion parses tool version output such as "v20.11.1".
func ParseVersion(out string) (*semver.Version, error) {
	s := strings.TrimSpace(firstLine(out))
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("cannot parse version %q: %w", s, err)
	}
	return v, nil
}

// Satisfies checks v against a constraint such as ">= 18.0.0".
func Satisfies(v *semver.Version, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}
	if ok, errs := c.Validate(v); !ok {
		if len(errs) > 0 {
			return errs[0]
		}
		return fmt.Errorf("%s does not satisfy %s", v, constraint)
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
