package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
	"github.com/dshills/sheetstorm/internal/expr"
	"github.com/dshills/sheetstorm/internal/input/keymap"
	"github.com/dshills/sheetstorm/internal/row"
)

// ErrNoSelection indicates a command over selected rows with none selected.
var ErrNoSelection = errors.New("no rows selected")

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Handler implements editing commands.
type Handler struct {
	keys *keymap.Keymap
	d    *dispatcher.Dispatcher
}

// NewHandler creates an editor handler. keys resolves the cmd_after_edit
// option; a nil keymap disables it.
func NewHandler(keys *keymap.Keymap) *Handler {
	return &Handler{keys: keys}
}

// Register binds the editing commands on d.
func (h *Handler) Register(d *dispatcher.Dispatcher) {
	h.d = d
	d.Register(dispatcher.CmdEditCell, h.editCell)
	d.Register(dispatcher.CmdEditSelected, h.editSelected)
	d.Register(dispatcher.CmdSetExprSelected, h.setExprSelected)
	d.Register(dispatcher.CmdDeleteRow, h.deleteRow)
	d.Register(dispatcher.CmdDeleteSelected, h.deleteSelected)
	d.Register(dispatcher.CmdYank, h.yank)
}

func (h *Handler) editCell(ctx *execctx.Context) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	r, col := sh.CursorRow(), sh.CursorColumn()
	if r == nil {
		return handler.NoOp()
	}
	value, err := ctx.App().Prompt(ctx.Context(), "", col.DisplayValue(r, 0).Text, "edit")
	if err != nil {
		return handler.FromError(err)
	}
	if err := h.write(ctx, col, []*row.Row{r}, value); err != nil {
		return handler.Error(err)
	}
	h.afterEdit(ctx)
	return handler.Success()
}

// afterEdit runs the cmd_after_edit keystrokes.
func (h *Handler) afterEdit(ctx *execctx.Context) {
	if h.keys == nil || h.d == nil || ctx.Options().CmdAfterEdit == "" {
		return
	}
	seq, err := keymap.ParseSeq(ctx.Options().CmdAfterEdit)
	if err != nil {
		return
	}
	b, ok := h.keys.Lookup(ctx.Sheet().Kind(), seq)
	if !ok || b.Command == dispatcher.CmdEditCell {
		return
	}
	h.d.Dispatch(execctx.New(ctx.Context(), ctx.App(), ctx.Sheet(), b.Name()), b.Command)
}

func (h *Handler) editSelected(ctx *execctx.Context) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	col := sh.CursorColumn()
	rows := sh.SelectedRows()
	if len(rows) == 0 {
		return handler.Error(ErrNoSelection)
	}
	value, err := ctx.App().Prompt(ctx.Context(), fmt.Sprintf("set %s for %d selected rows to: ", col.Name(), len(rows)), "", col.Name())
	if err != nil {
		return handler.FromError(err)
	}
	if err := h.write(ctx, col, rows, value); err != nil {
		return handler.Error(err)
	}
	return handler.Successf("set %d rows", len(rows))
}

// write sets col to value on rows between the edit hooks. PostEdit runs
// only when the write succeeds.
func (h *Handler) write(ctx *execctx.Context, col *column.Column, rows []*row.Row, value string) error {
	if h.d != nil {
		for _, r := range rows {
			h.d.Hooks().PreEdit.Run(ctx, col, r)
		}
	}
	if err := col.SetValues(rows, value); err != nil {
		return err
	}
	if h.d != nil {
		for _, r := range rows {
			h.d.Hooks().PostEdit.Run(ctx, col, r)
		}
	}
	return nil
}

func (h *Handler) setExprSelected(ctx *execctx.Context) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	col := sh.CursorColumn()
	rows := sh.SelectedRows()
	if len(rows) == 0 {
		return handler.Error(ErrNoSelection)
	}
	src, err := ctx.App().Prompt(ctx.Context(), fmt.Sprintf("set %s= ", col.Name()), "", "expr")
	if err != nil {
		return handler.FromError(err)
	}
	x, err := expr.Compile(src)
	if err != nil {
		return handler.Error(err)
	}
	app := ctx.App()
	_, err = app.Tasks().Start(ctx.Context(), sh, "set-expr", func(tctx context.Context) error {
		sh.SetProgress(int64(len(rows)))
		n, err := expr.SetRows(tctx, sh, col, rows, x)
		if err != nil {
			return fmt.Errorf("set %d of %d rows: %w", n, len(rows), err)
		}
		app.Status(fmt.Sprintf("set %d rows", n))
		return nil
	})
	if err != nil {
		return handler.FromError(err)
	}
	return handler.Async("")
}

func (h *Handler) deleteRow(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	if ctx.Options().ReadOnly {
		return handler.Error(execctx.ErrReadOnly)
	}
	sh := ctx.Sheet()
	if sh.NRows() == 0 {
		return handler.NoOp()
	}
	if _, err := sh.DeleteRow(sh.Cursor().Row); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func (h *Handler) deleteSelected(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	if ctx.Options().ReadOnly {
		return handler.Error(execctx.ErrReadOnly)
	}
	sh := ctx.Sheet()
	if sh.NSelected() == 0 {
		return handler.Error(ErrNoSelection)
	}
	app := ctx.App()
	_, err := app.Tasks().Start(ctx.Context(), sh, "delete-selected", func(tctx context.Context) error {
		n, err := sh.DeleteSelected(tctx)
		if err != nil {
			return err
		}
		app.Status(fmt.Sprintf("deleted %d rows", n))
		return nil
	})
	if err != nil {
		return handler.FromError(err)
	}
	return handler.Async("")
}

func (h *Handler) yank(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	cell := ctx.Sheet().CursorDisplay()
	if err := writeClipboard(cell.Text); err != nil {
		return handler.Error(fmt.Errorf("clipboard: %w", err))
	}
	return handler.Successf("copied %q", cell.Text)
}
