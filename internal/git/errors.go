package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotAProject is matched by NotAProjectError through errors.Is.
var ErrNotAProject = errors.New("not a project")

// NotAProjectError is returned when the directory has no git metadata.
type NotAProjectError struct {
	Dir string
}

func (e *NotAProjectError) Error() string {
	return fmt.Sprintf("No project found in %s.\nThis command must be run from a project folder (a git repository).", e.Dir)
}

func (e *NotAProjectError) Is(target error) bool {
	return target == ErrNotAProject
}

// ToolInvocationError is returned when git exits non-zero or its output
// cannot be read.
type ToolInvocationError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ToolInvocationError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return msg + ": " + s
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ToolInvocationError) Unwrap() error {
	return e.Err
}
