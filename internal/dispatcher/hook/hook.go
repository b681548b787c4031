package hook

import (
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// ActionFunc observes a command before it runs.
type ActionFunc func(ctx *execctx.Context, command string)

// ResultFunc observes a command after it returns.
type ResultFunc func(ctx *execctx.Context, command string, result handler.Result)

// EditFunc observes a cell edit.
type EditFunc func(ctx *execctx.Context, col *column.Column, r *row.Row)

// DrawFunc observes a sheet about to be drawn.
type DrawFunc func(sh *sheet.Sheet)

// ActionHooks is an ordered list of ActionFunc.
type ActionHooks []ActionFunc

// Add appends fn.
func (h *ActionHooks) Add(fn ActionFunc) { *h = append(*h, fn) }

// Run calls every hook.
func (h ActionHooks) Run(ctx *execctx.Context, command string) {
	for _, fn := range h {
		safely(func() { fn(ctx, command) })
	}
}

// ResultHooks is an ordered list of ResultFunc.
type ResultHooks []ResultFunc

// Add appends fn.
func (h *ResultHooks) Add(fn ResultFunc) { *h = append(*h, fn) }

// Run calls every hook.
func (h ResultHooks) Run(ctx *execctx.Context, command string, result handler.Result) {
	for _, fn := range h {
		safely(func() { fn(ctx, command, result) })
	}
}

// EditHooks is an ordered list of EditFunc.
type EditHooks []EditFunc

// Add appends fn.
func (h *EditHooks) Add(fn EditFunc) { *h = append(*h, fn) }

// Run calls every hook.
func (h EditHooks) Run(ctx *execctx.Context, col *column.Column, r *row.Row) {
	for _, fn := range h {
		safely(func() { fn(ctx, col, r) })
	}
}

// DrawHooks is an ordered list of DrawFunc.
type DrawHooks []DrawFunc

// Add appends fn.
func (h *DrawHooks) Add(fn DrawFunc) { *h = append(*h, fn) }

// Run calls every hook.
func (h DrawHooks) Run(sh *sheet.Sheet) {
	for _, fn := range h {
		safely(func() { fn(sh) })
	}
}

// Points is the fixed set of extension points.
type Points struct {
	PreAction  ActionHooks
	PostAction ResultHooks
	PreEdit    EditHooks
	PostEdit   EditHooks
	PreDraw    DrawHooks
}

func safely(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// Logger is the subset of the application logger used by LogActions.
type Logger interface {
	Debug(msg string, args ...any)
}

// LogActions returns a PreAction hook that logs each command.
func LogActions(logger Logger) ActionFunc {
	return func(ctx *execctx.Context, command string) {
		name := ""
		if sh := ctx.Sheet(); sh != nil {
			name = sh.Name()
		}
		logger.Debug("dispatch %s keys=%q sheet=%s", command, ctx.Keys(), name)
	}
}

// LogResults returns a PostAction hook that logs failed commands.
func LogResults(logger interface{ Error(string, ...any) }) ResultFunc {
	return func(ctx *execctx.Context, command string, result handler.Result) {
		if result.IsError() {
			logger.Error("command %s failed: %v", command, result.Error)
		}
	}
}
