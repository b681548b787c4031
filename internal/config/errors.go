package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the option name doesn't exist.
	ErrSettingNotFound = errors.New("config: unknown option")

	// ErrTypeMismatch indicates the value can't be converted to the option type.
	ErrTypeMismatch = errors.New("config: type mismatch")

	// ErrWatcherClosed indicates the watcher has been closed.
	ErrWatcherClosed = errors.New("config: watcher closed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number, if known.
	Line int
	// Column is the column number, if known.
	Column int
	// Err is the underlying decode error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config: parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("config: parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
