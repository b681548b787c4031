package view

import (
	"fmt"

	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
)

// Handler implements display commands.
type Handler struct {
	d *dispatcher.Dispatcher
}

// NewHandler creates a view handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register binds the display commands on d.
func (h *Handler) Register(d *dispatcher.Dispatcher) {
	h.d = d
	d.Register(dispatcher.CmdRedraw, h.redraw)
	d.Register(dispatcher.CmdSheetInfo, h.sheetInfo)
	d.Register(dispatcher.CmdVersion, h.version)
	d.Register(dispatcher.CmdToggleDebug, h.toggleDebug)
}

func (h *Handler) redraw(ctx *execctx.Context) handler.Result {
	if ctx.App() == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	ctx.App().Redraw()
	return handler.Success()
}

func (h *Handler) sheetInfo(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	return handler.SuccessWithMessage(fmt.Sprintf("%s: %d rows, %d columns (%d keys), %d selected",
		sh.Name(), sh.NRows(), sh.NColumns(), sh.NKeys(), sh.NSelected()))
}

func (h *Handler) version(ctx *execctx.Context) handler.Result {
	if ctx.App() == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	return handler.SuccessWithMessage(ctx.App().Version())
}

func (h *Handler) toggleDebug(ctx *execctx.Context) handler.Result {
	if ctx.App() == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	on := !h.d.Debug()
	if err := ctx.App().SetOption("debug", fmt.Sprint(on)); err != nil {
		return handler.Error(err)
	}
	h.d.SetDebug(on)
	if on {
		return handler.SuccessWithMessage("debug on")
	}
	return handler.SuccessWithMessage("debug off")
}
