// Package abort defines the user-abort condition shared by prompts,
// command handlers and background tasks.
package abort

import (
	"context"
	"errors"
	"fmt"
)

// ErrAborted indicates the user cancelled an input, confirmation or task.
var ErrAborted = errors.New("aborted")

// Errorf returns an abort error with a message for the status line.
// The result satisfies errors.Is(err, ErrAborted).
func Errorf(format string, args ...any) error {
	return &abortError{msg: fmt.Sprintf(format, args...)}
}

type abortError struct {
	msg string
}

func (e *abortError) Error() string { return e.msg }

func (e *abortError) Is(target error) bool { return target == ErrAborted }

// Is reports whether err is a user abort or a context cancellation.
func Is(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled)
}

// Check returns ErrAborted once ctx is done. Long loops call it per item.
func Check(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ErrAborted
	default:
		return nil
	}
}
