package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingApp indicates the controller is required but not set.
	ErrMissingApp = errors.New("execution context: application is required")

	// ErrMissingSheet indicates there is no sheet to operate on.
	ErrMissingSheet = errors.New("no sheet")

	// ErrMissingColumn indicates the sheet has no visible columns.
	ErrMissingColumn = errors.New("no columns")

	// ErrReadOnly indicates edits are disabled by the readonly option.
	ErrReadOnly = errors.New("readonly mode")
)
