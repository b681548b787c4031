package sheetstack

import (
	"errors"
	"fmt"

	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
	"github.com/dshills/sheetstorm/internal/input/keymap"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
	"github.com/dshills/sheetstorm/internal/sheets"
)

var (
	// ErrNoSourceSheet indicates a sheet with no source sheet to return to.
	ErrNoSourceSheet = errors.New("no source sheet")

	// ErrNotOpenable indicates a sheet whose rows cannot be opened.
	ErrNotOpenable = errors.New("rows of this sheet cannot be opened")
)

// Opener is implemented by sheet sources whose rows open into sheets of
// their own, such as the tables of a database.
type Opener interface {
	Open(r *row.Row) (*sheet.Sheet, error)
}

// Handler implements sheet stack commands.
type Handler struct {
	keys *keymap.Keymap
	d    *dispatcher.Dispatcher
}

// NewHandler creates a sheet stack handler. keys is listed by the help
// sheet.
func NewHandler(keys *keymap.Keymap) *Handler {
	return &Handler{keys: keys}
}

// Register binds the sheet stack commands on d.
func (h *Handler) Register(d *dispatcher.Dispatcher) {
	h.d = d
	d.Register(dispatcher.CmdQuitSheet, h.quitSheet)
	d.Register(dispatcher.CmdQuitAll, h.quitAll)
	d.Register(dispatcher.CmdSwapSheets, h.swap)
	d.Register(dispatcher.CmdPushSelected, h.pushSelected)
	d.Register(dispatcher.CmdPushCopy, h.pushCopy)
	d.Register(dispatcher.CmdPushSource, h.pushSource)
	d.Register(dispatcher.CmdSheetsSheet, h.sheetsSheet)
	d.Register(dispatcher.CmdColumnsSheet, h.columnsSheet)
	d.Register(dispatcher.CmdOptionsSheet, h.optionsSheet)
	d.Register(dispatcher.CmdHelp, h.help)
	d.Register(dispatcher.CmdStatusHistory, h.statusHistory)
	d.Register(dispatcher.CmdLastError, h.lastError)
	d.Register(dispatcher.CmdAllErrors, h.allErrors)
	d.Register(dispatcher.CmdViewCell, h.viewCell)
	d.Register(dispatcher.CmdFreq, h.freq)
	d.Register(dispatcher.CmdJumpToSheet, h.jumpToSheet)
	d.Register(dispatcher.CmdEditOption, h.editOption)
	d.Register(dispatcher.CmdPushBin, h.pushBin)
	d.Register(dispatcher.CmdSelectBinSources, h.selectBinSources)
	d.Register(dispatcher.CmdOpenTable, h.openTable)
}

func push(ctx *execctx.Context, sh *sheet.Sheet) handler.Result {
	ctx.App().Push(sh)
	return handler.Success()
}

func (h *Handler) quitSheet(ctx *execctx.Context) handler.Result {
	app := ctx.App()
	if app == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	if sh := app.Pop(); sh != nil {
		app.Tasks().Cancel(sh)
	}
	if len(app.Sheets()) == 0 {
		app.Quit()
	}
	return handler.Success()
}

func (h *Handler) quitAll(ctx *execctx.Context) handler.Result {
	if ctx.App() == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	ctx.App().Tasks().CancelAll()
	ctx.App().Quit()
	return handler.Success()
}

func (h *Handler) swap(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	stack := ctx.App().Sheets()
	if len(stack) < 2 {
		return handler.NoOpWithMessage("no other sheet")
	}
	return push(ctx, stack[1])
}

// derive copies the current sheet as a sheet whose source is the current
// sheet, named with the sheetname joiner.
func derive(ctx *execctx.Context, suffix string) *sheet.Sheet {
	sh := ctx.Sheet()
	out := sh.Copy(ctx.Options().SheetnameJoiner + suffix)
	out.SetSources(sh)
	return out
}

func (h *Handler) pushSelected(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	if sh.NSelected() == 0 {
		return handler.NoOpWithMessage("no rows selected")
	}
	var rows []*row.Row
	for r := range sh.GatherBy(sh.IsSelected) {
		rows = append(rows, r)
	}
	out := derive(ctx, "selected")
	out.SetRows(rows)
	out.SetLoader(nil)
	return push(ctx, out)
}

func (h *Handler) pushCopy(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	return push(ctx, derive(ctx, "copy"))
}

func (h *Handler) pushSource(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	src, ok := ctx.Sheet().Source().(*sheet.Sheet)
	if !ok {
		return handler.Error(ErrNoSourceSheet)
	}
	return push(ctx, src)
}

func (h *Handler) sheetsSheet(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	return push(ctx, sheets.NewSheets(ctx.App().Sheets))
}

func (h *Handler) columnsSheet(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	return push(ctx, sheets.NewColumns(ctx.Sheet()))
}

func (h *Handler) optionsSheet(ctx *execctx.Context) handler.Result {
	if ctx.App() == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	return push(ctx, sheets.NewOptions(ctx.App().OptionStore()))
}

func (h *Handler) help(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	km := h.keys
	if km == nil {
		km = keymap.Default()
	}
	return push(ctx, sheets.NewHelp(km, ctx.Sheet()))
}

func (h *Handler) statusHistory(ctx *execctx.Context) handler.Result {
	if ctx.App() == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	return push(ctx, sheets.NewText("status_history", ctx.App().Statuses()))
}

func (h *Handler) lastError(ctx *execctx.Context) handler.Result {
	if ctx.App() == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	err := h.d.LastError()
	if err == nil {
		return handler.NoOpWithMessage("no error")
	}
	return push(ctx, sheets.NewText("last_error", err))
}

func (h *Handler) allErrors(ctx *execctx.Context) handler.Result {
	if ctx.App() == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	errs := h.d.Errors()
	if len(errs) == 0 {
		return handler.NoOpWithMessage("no errors")
	}
	return push(ctx, sheets.NewText("errors", errs))
}

func (h *Handler) viewCell(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	col := sh.CursorColumn()
	if col == nil || sh.CursorRow() == nil {
		return handler.NoOp()
	}
	var opts []sheets.TextOption
	if ctx.Options().TextWrap {
		opts = append(opts, sheets.WithWrap(ctx.App().Viewport().Width()))
	}
	name := fmt.Sprintf("%s%s%s", sh.Name(), ctx.Options().SheetnameJoiner, col.Name())
	return push(ctx, sheets.NewText(name, sh.CursorDisplay().Text, opts...))
}

func (h *Handler) freq(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	col := ctx.CursorColumn()
	if col == nil {
		return handler.Error(execctx.ErrMissingColumn)
	}
	return push(ctx, sheets.NewFreq(ctx.Sheet(), col))
}

func (h *Handler) jumpToSheet(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	target, ok := sheets.SheetAt(ctx.CursorRow())
	if !ok {
		return handler.NoOp()
	}
	return push(ctx, target)
}

func (h *Handler) editOption(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	name, ok := sheets.OptionAt(ctx.CursorRow())
	if !ok {
		return handler.NoOp()
	}
	app := ctx.App()
	current, err := app.Options().Get(name)
	if err != nil {
		return handler.Error(err)
	}
	value, err := app.Prompt(ctx.Context(), name+": ", current, "option")
	if err != nil {
		return handler.FromError(err)
	}
	if err := app.SetOption(name, value); err != nil {
		return handler.Error(err)
	}
	return handler.Successf("%s = %s", name, value)
}

// binSource returns the sheet the frequency sheet was built from.
func binSource(ctx *execctx.Context) (*sheet.Sheet, error) {
	src, ok := ctx.Sheet().Source().(*sheet.Sheet)
	if !ok {
		return nil, ErrNoSourceSheet
	}
	return src, nil
}

func (h *Handler) pushBin(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	b, ok := sheets.BinAt(ctx.CursorRow())
	if !ok {
		return handler.NoOp()
	}
	src, err := binSource(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return push(ctx, sheets.NewBinSheet(src, b))
}

func (h *Handler) selectBinSources(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	src, err := binSource(ctx)
	if err != nil {
		return handler.Error(err)
	}
	var firsts []*row.Row
	for _, r := range ctx.Sheet().SelectedRows() {
		if b, ok := sheets.BinAt(r); ok && len(b.Rows) > 0 {
			firsts = append(firsts, b.Rows[0])
		}
	}
	if len(firsts) == 0 {
		return handler.NoOpWithMessage("no bins selected")
	}
	n, err := src.Select(ctx.Context(), func(yield func(*row.Row) bool) {
		for _, r := range firsts {
			if !yield(r) {
				return
			}
		}
	})
	if err != nil {
		return handler.FromError(err)
	}
	return handler.Successf("selected %d rows in %s", n, src.Name())
}

func (h *Handler) openTable(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	o, ok := ctx.Sheet().Source().(Opener)
	if !ok {
		return handler.Error(ErrNotOpenable)
	}
	r := ctx.CursorRow()
	if r == nil {
		return handler.NoOp()
	}
	sh, err := o.Open(r)
	if err != nil {
		return handler.Error(err)
	}
	return push(ctx, sh)
}
