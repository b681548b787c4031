// Package execctx provides the execution context for command handlers.
package execctx

import (
	"context"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/config"
	"github.com/dshills/sheetstorm/internal/renderer/viewport"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
	"github.com/dshills/sheetstorm/internal/task"
)

// Controller abstracts the application for handlers.
type Controller interface {
	// Sheet stack; index 0 is the visible sheet.
	Sheets() []*sheet.Sheet
	Push(sh *sheet.Sheet) *sheet.Sheet
	Pop() *sheet.Sheet
	Quit()

	// Status line
	Status(msg string)
	Statuses() []string

	// Input
	Prompt(ctx context.Context, prompt, initial, historyKind string) (string, error)
	Confirm(ctx context.Context, prompt string) error

	// Subsystems
	Tasks() *task.Scheduler
	Viewport() *viewport.Viewport
	Options() config.Options
	SetOption(name, value string) error
	OptionStore() *config.Store

	// Display
	Redraw()
	Version() string
}

// Context provides context for command execution: the sheet the command
// was issued on, its cursor, and the application.
type Context struct {
	ctx   context.Context
	app   Controller
	sheet *sheet.Sheet
	keys  string
}

// New creates a context for a command issued on sh with the given keystrokes.
func New(ctx context.Context, app Controller, sh *sheet.Sheet, keys string) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{ctx: ctx, app: app, sheet: sh, keys: keys}
}

// Context returns the cancellation context for blocking work.
func (c *Context) Context() context.Context {
	return c.ctx
}

// App returns the application controller.
func (c *Context) App() Controller {
	return c.app
}

// Keys returns the keystrokes that triggered the command.
func (c *Context) Keys() string {
	return c.keys
}

// Sheet returns the sheet the command operates on.
func (c *Context) Sheet() *sheet.Sheet {
	return c.sheet
}

// CursorRow returns the row under the cursor, or nil.
func (c *Context) CursorRow() *row.Row {
	if c.sheet == nil {
		return nil
	}
	return c.sheet.CursorRow()
}

// CursorColumn returns the column under the cursor, or nil.
func (c *Context) CursorColumn() *column.Column {
	if c.sheet == nil {
		return nil
	}
	return c.sheet.CursorColumn()
}

// CursorValue returns the typed value under the cursor.
func (c *Context) CursorValue() any {
	if c.sheet == nil {
		return nil
	}
	return c.sheet.CursorValue()
}

// Options returns the current options.
func (c *Context) Options() config.Options {
	if c.app == nil {
		return config.DefaultOptions()
	}
	return c.app.Options()
}

// Status posts a status message.
func (c *Context) Status(msg string) {
	if c.app != nil {
		c.app.Status(msg)
	}
}

// Validate checks that a sheet and controller are present.
func (c *Context) Validate() error {
	if c.app == nil {
		return ErrMissingApp
	}
	if c.sheet == nil {
		return ErrMissingSheet
	}
	return nil
}

// ValidateForEdit additionally rejects edits in read-only mode or on
// columns without setters.
func (c *Context) ValidateForEdit() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Options().ReadOnly {
		return ErrReadOnly
	}
	col := c.CursorColumn()
	if col == nil {
		return ErrMissingColumn
	}
	if col.ReadOnly() {
		return column.ErrReadOnly
	}
	return nil
}
