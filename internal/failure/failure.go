// Package failure defines the typed per-item errors recorded by the pipeline.
//
// A per-item failure never aborts a run. Each stage attaches one of these
// errors to the record of the file it was working on, and reports classify
// them with KindOf so the audit log shows a stable error_kind next to the
// message.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of per-item failure classes.
type Kind string

const (
	KindNone           Kind = ""
	KindToolInvocation Kind = "tool_invocation"
	KindCollision      Kind = "collision"
	KindPermission     Kind = "permission"
	KindIO             Kind = "io"
)

// ToolInvocationError reports a metadata tool that failed to run or exited non-zero.
type ToolInvocationError struct {
	Path     string
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolInvocationError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Tool, e.Path)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

// CollisionError reports a destination path that already exists.
type CollisionError struct {
	Source      string
	Destination string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("destination %s already exists, not moving %s", e.Destination, e.Source)
}

// PermissionError reports a filesystem operation denied by permissions.
type PermissionError struct {
	Path string
	Op   string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// IOError reports any other filesystem failure.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// KindOf classifies err. Unrecognised non-nil errors are reported as KindIO.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		toolErr       *ToolInvocationError
		collisionErr  *CollisionError
		permissionErr *PermissionError
	)
	switch {
	case errors.As(err, &toolErr):
		return KindToolInvocation
	case errors.As(err, &collisionErr):
		return KindCollision
	case errors.As(err, &permissionErr):
		return KindPermission
	default:
		return KindIO
	}
}

// Message returns err's text, or "" for nil.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
