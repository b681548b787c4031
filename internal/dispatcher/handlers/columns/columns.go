package columns

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
	"github.com/dshills/sheetstorm/internal/expr"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

var (
	// ErrKeyBoundary indicates a move between the key and non-key regions.
	ErrKeyBoundary = errors.New("cannot move a column across the key boundary")

	// ErrNoSourceSheet indicates a sheet that was not derived from another sheet.
	ErrNoSourceSheet = errors.New("source is not a sheet")

	// ErrNoKeyColumns indicates a key sort on a sheet without key columns.
	ErrNoKeyColumns = errors.New("no key columns")
)

// Handler implements column commands.
type Handler struct{}

// NewHandler creates a column handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register binds the column commands on d.
func (h *Handler) Register(d *dispatcher.Dispatcher) {
	d.Register(dispatcher.CmdToggleWidth, h.toggleWidth)
	d.Register(dispatcher.CmdFitWidths, h.fitWidths)
	d.Register(dispatcher.CmdHideColumn, h.hide)
	d.Register(dispatcher.CmdToggleKey, h.toggleKey)
	d.Register(dispatcher.CmdTypeString, h.setType(column.String))
	d.Register(dispatcher.CmdTypeDate, h.setType(column.Date))
	d.Register(dispatcher.CmdTypeInt, h.setType(column.Int))
	d.Register(dispatcher.CmdTypeCurrency, h.setType(column.Currency))
	d.Register(dispatcher.CmdTypeFloat, h.setType(column.Float))
	d.Register(dispatcher.CmdTypeAny, h.setType(column.Any))
	d.Register(dispatcher.CmdRenameColumn, h.rename)
	d.Register(dispatcher.CmdSetAggregator, h.setAggregator)
	d.Register(dispatcher.CmdMoveColumnLeft, h.moveColumn(-1))
	d.Register(dispatcher.CmdMoveColumnRight, h.moveColumn(1))
	d.Register(dispatcher.CmdCleanNames, h.cleanNames)
	d.Register(dispatcher.CmdCopyColumnToSource, h.copyToSource)
	d.Register(dispatcher.CmdAddExpr, h.addExpr)

	s := &sorter{}
	d.Register(dispatcher.CmdSortAsc, s.byCursor(false))
	d.Register(dispatcher.CmdSortDesc, s.byCursor(true))
	d.Register(dispatcher.CmdSortKeysAsc, s.byKeys(false))
	d.Register(dispatcher.CmdSortKeysDesc, s.byKeys(true))
}

func cursorColumn(ctx *execctx.Context) (*column.Column, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	col := ctx.CursorColumn()
	if col == nil {
		return nil, execctx.ErrMissingColumn
	}
	return col, nil
}

// screenRows returns the rows currently on screen.
func screenRows(ctx *execctx.Context) []*row.Row {
	sh := ctx.Sheet()
	rows := sh.Rows()
	top := min(max(sh.Cursor().TopRow, 0), len(rows))
	return rows[top:min(top+ctx.App().Viewport().NVisibleRows(), len(rows))]
}

func (h *Handler) toggleWidth(ctx *execctx.Context) handler.Result {
	col, err := cursorColumn(ctx)
	if err != nil {
		return handler.Error(err)
	}
	col.ToggleWidth(col.MaxWidth(screenRows(ctx)), ctx.Options().DefaultWidth)
	return handler.Success()
}

func (h *Handler) fitWidths(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	rows := screenRows(ctx)
	for _, col := range ctx.Sheet().VisibleColumns() {
		col.SetWidth(col.MaxWidth(rows))
	}
	return handler.Success()
}

func (h *Handler) hide(ctx *execctx.Context) handler.Result {
	col, err := cursorColumn(ctx)
	if err != nil {
		return handler.Error(err)
	}
	col.SetWidth(0)
	return handler.Success()
}

func (h *Handler) toggleKey(ctx *execctx.Context) handler.Result {
	col, err := cursorColumn(ctx)
	if err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	key, err := sh.ToggleKeyColumn(sh.ColumnIndex(col))
	if err != nil {
		return handler.Error(err)
	}
	cur := sh.Cursor()
	cur.Col = max(sh.VisibleIndex(col), 0)
	sh.SetCursor(cur)
	if key {
		return handler.SuccessWithMessage(col.Name() + " is now a key column")
	}
	return handler.SuccessWithMessage(col.Name() + " is no longer a key column")
}

func (h *Handler) setType(t *column.Type) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		col, err := cursorColumn(ctx)
		if err != nil {
			return handler.Error(err)
		}
		col.SetType(t)
		return handler.Success()
	}
}

func (h *Handler) rename(ctx *execctx.Context) handler.Result {
	col, err := cursorColumn(ctx)
	if err != nil {
		return handler.Error(err)
	}
	name, err := ctx.App().Prompt(ctx.Context(), "rename column: ", col.Name(), "colname")
	if err != nil {
		return handler.FromError(err)
	}
	col.SetName(name)
	return handler.Success()
}

func (h *Handler) setAggregator(ctx *execctx.Context) handler.Result {
	col, err := cursorColumn(ctx)
	if err != nil {
		return handler.Error(err)
	}
	prompt := fmt.Sprintf("choose aggregator (%s): ", strings.Join(column.AggregatorNames(), " "))
	name, err := ctx.App().Prompt(ctx.Context(), prompt, "", "aggregator")
	if err != nil {
		return handler.FromError(err)
	}
	if strings.TrimSpace(name) == "" {
		col.SetAggregator(nil)
		return handler.SuccessWithMessage("aggregator cleared")
	}
	agg, err := column.LookupAggregator(strings.TrimSpace(name))
	if err != nil {
		return handler.Error(err)
	}
	col.SetAggregator(agg)
	return handler.Success()
}

// moveColumn swaps the cursor column with its visible neighbour.
func (h *Handler) moveColumn(dir int) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		col, err := cursorColumn(ctx)
		if err != nil {
			return handler.Error(err)
		}
		sh := ctx.Sheet()
		vis := sh.VisibleColumns()
		i := sh.VisibleIndex(col)
		j := i + dir
		if j < 0 || j >= len(vis) {
			return handler.NoOp()
		}
		if sh.IsKey(col) != sh.IsKey(vis[j]) {
			return handler.Error(ErrKeyBoundary)
		}
		if err := sh.MoveColumn(sh.ColumnIndex(col), sh.ColumnIndex(vis[j])); err != nil {
			return handler.Error(err)
		}
		cur := sh.Cursor()
		cur.Col = j
		sh.SetCursor(cur)
		return handler.Success()
	}
}

// CleanName drops every character that is not a letter, digit or
// underscore.
func CleanName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
}

func (h *Handler) cleanNames(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	n := 0
	for _, col := range ctx.Sheet().Columns() {
		if clean := CleanName(col.Name()); clean != col.Name() {
			col.SetName(clean)
			n++
		}
	}
	return handler.Successf("cleaned %d column names", n)
}

func (h *Handler) copyToSource(ctx *execctx.Context) handler.Result {
	col, err := cursorColumn(ctx)
	if err != nil {
		return handler.Error(err)
	}
	src, ok := ctx.Sheet().Source().(*sheet.Sheet)
	if !ok {
		return handler.Error(ErrNoSourceSheet)
	}
	src.AddColumn(col.Copy(), src.NColumns())
	return handler.Successf("added %s to %s", col.Name(), src.Name())
}

func (h *Handler) addExpr(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	src, err := ctx.App().Prompt(ctx.Context(), "new column expr=", "", "expr")
	if err != nil {
		return handler.FromError(err)
	}
	sh := ctx.Sheet()
	col, err := expr.NewColumn(sh, src)
	if err != nil {
		return handler.Error(err)
	}
	idx := sh.NColumns()
	if cur := ctx.CursorColumn(); cur != nil {
		idx = sh.ColumnIndex(cur) + 1
	}
	sh.AddColumn(col, idx)
	cur := sh.Cursor()
	cur.Col = sh.VisibleIndex(col)
	sh.SetCursor(cur)
	return handler.Success()
}
