package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownName indicates an identifier matches no column.
	ErrUnknownName = errors.New("expr: unknown name")

	// ErrCircular indicates an expression column depends on its own value.
	ErrCircular = errors.New("expr: circular reference")

	// ErrEmpty indicates a blank expression.
	ErrEmpty = errors.New("expr: empty expression")
)

// Error reports a compile or evaluation failure.
type Error struct {
	Expr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Expr, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
