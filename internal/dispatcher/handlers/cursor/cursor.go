package cursor

import (
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Handler implements cursor movement commands.
type Handler struct{}

// NewHandler creates a cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register binds the cursor commands on d.
func (h *Handler) Register(d *dispatcher.Dispatcher) {
	d.Register(dispatcher.CmdCursorLeft, h.move(0, -1))
	d.Register(dispatcher.CmdCursorDown, h.move(1, 0))
	d.Register(dispatcher.CmdCursorUp, h.move(-1, 0))
	d.Register(dispatcher.CmdCursorRight, h.move(0, 1))
	d.Register(dispatcher.CmdPageDown, h.pageDown)
	d.Register(dispatcher.CmdPageUp, h.pageUp)
	d.Register(dispatcher.CmdTop, h.top)
	d.Register(dispatcher.CmdBottom, h.bottom)
	d.Register(dispatcher.CmdLeftmost, h.leftmost)
	d.Register(dispatcher.CmdRightmost, h.rightmost)
	d.Register(dispatcher.CmdPageLeft, h.pageLeft)
	d.Register(dispatcher.CmdPageRight, h.pageRight)
	d.Register(dispatcher.CmdPrevValue, h.nextValue(-1))
	d.Register(dispatcher.CmdNextValue, h.nextValue(1))
	d.Register(dispatcher.CmdPrevSelected, h.nextSelected(-1))
	d.Register(dispatcher.CmdNextSelected, h.nextSelected(1))
}

func (h *Handler) move(dRow, dCol int) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		ctx.Sheet().MoveCursor(dRow, dCol)
		return handler.Success()
	}
}

func (h *Handler) page(ctx *execctx.Context, dir int) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	n := ctx.App().Viewport().NVisibleRows() * dir
	cur := sh.Cursor()
	cur.Row += n
	cur.TopRow = max(cur.TopRow+n, 0)
	sh.SetCursor(cur)
	return handler.Success()
}

func (h *Handler) pageDown(ctx *execctx.Context) handler.Result { return h.page(ctx, 1) }

func (h *Handler) pageUp(ctx *execctx.Context) handler.Result { return h.page(ctx, -1) }

func (h *Handler) set(ctx *execctx.Context, fn func(sh *sheet.Sheet, cur *sheet.Cursor)) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	cur := sh.Cursor()
	fn(sh, &cur)
	sh.SetCursor(cur)
	return handler.Success()
}

func (h *Handler) top(ctx *execctx.Context) handler.Result {
	return h.set(ctx, func(_ *sheet.Sheet, cur *sheet.Cursor) { cur.Row = 0 })
}

func (h *Handler) bottom(ctx *execctx.Context) handler.Result {
	return h.set(ctx, func(sh *sheet.Sheet, cur *sheet.Cursor) { cur.Row = sh.NRows() - 1 })
}

func (h *Handler) leftmost(ctx *execctx.Context) handler.Result {
	return h.set(ctx, func(_ *sheet.Sheet, cur *sheet.Cursor) { cur.Col = 0 })
}

func (h *Handler) rightmost(ctx *execctx.Context) handler.Result {
	return h.set(ctx, func(sh *sheet.Sheet, cur *sheet.Cursor) { cur.Col = len(sh.VisibleColumns()) - 1 })
}

func (h *Handler) pageLeft(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	ctx.App().Viewport().PageLeft(ctx.Sheet())
	return handler.Success()
}

func (h *Handler) pageRight(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	ctx.App().Viewport().PageRight(ctx.Sheet())
	return handler.Success()
}

// moveToRow moves the cursor to the first row after (dir 1) or before
// (dir -1) the cursor row satisfying pred. It does not wrap.
func moveToRow(sh *sheet.Sheet, dir int, pred func(*row.Row) bool) bool {
	rows := sh.Rows()
	cur := sh.Cursor()
	for i := cur.Row + dir; i >= 0 && i < len(rows); i += dir {
		if pred(rows[i]) {
			cur.Row = i
			sh.SetCursor(cur)
			return true
		}
	}
	return false
}

func (h *Handler) nextValue(dir int) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		col := ctx.CursorColumn()
		if col == nil {
			return handler.Error(execctx.ErrMissingColumn)
		}
		v := ctx.CursorValue()
		if !moveToRow(ctx.Sheet(), dir, func(r *row.Row) bool {
			return column.Compare(col.Value(r), v) != 0
		}) {
			return handler.NoOpWithMessage("no different value")
		}
		return handler.Success()
	}
}

func (h *Handler) nextSelected(dir int) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		sh := ctx.Sheet()
		if !moveToRow(sh, dir, sh.IsSelected) {
			return handler.NoOpWithMessage("no more selected rows")
		}
		return handler.Success()
	}
}
