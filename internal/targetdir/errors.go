package targetdir

import "fmt"

// TargetExistsError is returned by PolicySkip when the target is occupied.
type TargetExistsError struct {
	Path string
}

func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("target directory already exists and is not empty: %s", e.Path)
}

// OperationCancelledError is returned when the operator declines the
// prompt, gives an unrecognized answer, closes input, or interrupts.
type OperationCancelledError struct {
	Path   string
	Answer string
}

func (e *OperationCancelledError) Error() string {
	if e.Answer == "" {
		return fmt.Sprintf("operation cancelled: %s was left untouched", e.Path)
	}
	return fmt.Sprintf("operation cancelled (answer %q): %s was left untouched", e.Answer, e.Path)
}

// IOError wraps a file-system failure while inspecting or changing the target.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
