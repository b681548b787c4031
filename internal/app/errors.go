package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("app: already running")

	// ErrNoBackend indicates Run or a prompt was used without a terminal.
	ErrNoBackend = errors.New("app: no terminal backend")

	// ErrClosed indicates the application has been closed.
	ErrClosed = errors.New("app: closed")
)

// OperationError records which operation on which target failed.
type OperationError struct {
	Op     string // e.g. "load", "watch", "keymap"
	Target string // e.g. a path or sheet name
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
