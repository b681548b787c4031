package dispatcher

import (
	"errors"
	"fmt"
)

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler is registered for a command.
	ErrNoHandler = errors.New("dispatcher: no handler for command")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)

// HaltError carries a command failure out of Dispatch in debug mode. The
// input loop recovers it and stops with Err.
type HaltError struct {
	Command string
	Err     error
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *HaltError) Unwrap() error {
	return e.Err
}
