package sheet

import "errors"

// Sheet errors.
var (
	// ErrNoReloader indicates the sheet has no loader assigned.
	ErrNoReloader = errors.New("no reloader")

	// ErrColumnIndex indicates a column index outside the column list.
	ErrColumnIndex = errors.New("sheet: column index out of range")

	// ErrNoRegex indicates a repeat search with no previous pattern.
	ErrNoRegex = errors.New("no regex")

	// ErrBadColumns indicates a search with no columns to look in.
	ErrBadColumns = errors.New("bad columns")

	// ErrNoMatch indicates a search that found nothing.
	ErrNoMatch = errors.New("no match")
)
