// Package handler provides the result type returned by command handlers.
package handler

import (
	"fmt"

	"github.com/dshills/sheetstorm/internal/abort"
)

// ResultStatus indicates the outcome of a command.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the command had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusAborted indicates the user cancelled an input or confirmation.
	StatusAborted
	// StatusAsync indicates the work continues in a background task.
	StatusAsync
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusAborted:
		return "aborted"
	case StatusAsync:
		return "async"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling a command.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// IsAborted returns true if the user cancelled the command.
func (r Result) IsAborted() bool {
	return r.Status == StatusAborted
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// Successf creates a successful result with a formatted message.
func Successf(format string, args ...any) Result {
	return Result{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err, Message: err.Error()}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// Aborted creates a result for a user cancellation.
func Aborted(msg string) Result {
	if msg == "" {
		msg = abort.ErrAborted.Error()
	}
	return Result{Status: StatusAborted, Error: abort.ErrAborted, Message: msg}
}

// Async creates a result for work handed to a background task.
func Async(msg string) Result {
	return Result{Status: StatusAsync, Message: msg}
}

// FromError classifies err: nil is success, an abort is Aborted and
// anything else is Error.
func FromError(err error) Result {
	switch {
	case err == nil:
		return Success()
	case abort.Is(err):
		return Aborted(err.Error())
	default:
		return Error(err)
	}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}
