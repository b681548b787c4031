package source

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat indicates no loader handles the requested filetype.
	ErrUnknownFormat = errors.New("source: unknown filetype")

	// ErrUnknownEncoding indicates the encoding option names no known charset.
	ErrUnknownEncoding = errors.New("source: unknown encoding")
)

// LoadError reports a failure reading a source.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
