package selection

import (
	"context"
	"fmt"
	"iter"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// op is one of the three selection transitions.
type op uint8

const (
	opSelect op = iota
	opUnselect
	opToggle
)

func (o op) String() string {
	switch o {
	case opSelect:
		return "selected"
	case opUnselect:
		return "unselected"
	default:
		return "toggled"
	}
}

func (o op) apply(ctx context.Context, sh *sheet.Sheet, rows iter.Seq[*row.Row]) (int, error) {
	switch o {
	case opSelect:
		return sh.Select(ctx, rows)
	case opUnselect:
		return sh.Unselect(ctx, rows)
	default:
		return sh.Toggle(ctx, rows)
	}
}

// Handler implements selection commands.
type Handler struct{}

// NewHandler creates a selection handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register binds the selection commands on d.
func (h *Handler) Register(d *dispatcher.Dispatcher) {
	d.Register(dispatcher.CmdToggleRow, h.cursorRow(opToggle))
	d.Register(dispatcher.CmdSelectRow, h.cursorRow(opSelect))
	d.Register(dispatcher.CmdUnselectRow, h.cursorRow(opUnselect))
	d.Register(dispatcher.CmdSelectRegex, h.regex(opSelect, sheet.ScopeCursorColumn))
	d.Register(dispatcher.CmdUnselectRegex, h.regex(opUnselect, sheet.ScopeCursorColumn))
	d.Register(dispatcher.CmdSelectRegexVisible, h.regex(opSelect, sheet.ScopeVisibleColumns))
	d.Register(dispatcher.CmdUnselectRegexVisible, h.regex(opUnselect, sheet.ScopeVisibleColumns))
	d.Register(dispatcher.CmdToggleAll, h.all(opToggle))
	d.Register(dispatcher.CmdSelectAll, h.all(opSelect))
	d.Register(dispatcher.CmdUnselectAll, h.all(opUnselect))
	d.Register(dispatcher.CmdSelectEqualColumn, h.equalColumn)
	d.Register(dispatcher.CmdSelectEqualRow, h.equalRow)
	d.Register(dispatcher.CmdSelectEqualSelected, h.equalSelected)
}

func (h *Handler) cursorRow(o op) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		sh := ctx.Sheet()
		r := sh.CursorRow()
		if r == nil {
			return handler.NoOp()
		}
		switch o {
		case opSelect:
			sh.SelectRow(r)
		case opUnselect:
			sh.UnselectRow(r)
		default:
			sh.ToggleRow(r)
		}
		sh.MoveCursor(1, 0)
		return handler.Success()
	}
}

// start runs o over the rows produced by gather as a task on the sheet.
// gather runs inside the task so that scans can be cancelled too.
func start(ctx *execctx.Context, o op, name string, gather func(context.Context) (iter.Seq[*row.Row], error)) handler.Result {
	sh := ctx.Sheet()
	app := ctx.App()
	_, err := app.Tasks().Start(ctx.Context(), sh, name, func(tctx context.Context) error {
		rows, err := gather(tctx)
		if err != nil {
			return err
		}
		sh.SetProgress(int64(sh.NRows()))
		n, err := o.apply(tctx, sh, rows)
		if err != nil {
			return err
		}
		app.Status(fmt.Sprintf("%s %d rows", o, n))
		return nil
	})
	if err != nil {
		return handler.FromError(err)
	}
	return handler.Async("")
}

func (h *Handler) regex(o op, scope sheet.SearchScope) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		verb := "select"
		if o == opUnselect {
			verb = "unselect"
		}
		pattern, err := ctx.App().Prompt(ctx.Context(), verb+" regex: ", "", "regex")
		if err != nil {
			return handler.FromError(err)
		}
		re, err := sheet.CompileRegex(pattern, ctx.Options().RegexFlags)
		if err != nil {
			return handler.Error(err)
		}
		sh := ctx.Sheet()
		sc := &sheet.SearchContext{Regex: re, Scope: scope}
		return start(ctx, o, verb+"-regex", func(tctx context.Context) (iter.Seq[*row.Row], error) {
			idx, err := sh.FindMatches(tctx, sc)
			if err != nil {
				return nil, err
			}
			rows := sh.Rows()
			return func(yield func(*row.Row) bool) {
				for _, i := range idx {
					if !yield(rows[i]) {
						return
					}
				}
			}, nil
		})
	}
}

func (h *Handler) all(o op) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		sh := ctx.Sheet()
		return start(ctx, o, o.String()+"-all", func(context.Context) (iter.Seq[*row.Row], error) {
			return sh.All(), nil
		})
	}
}

// displayText returns the display text of col in r.
func displayText(col *column.Column, r *row.Row) string {
	return col.DisplayValue(r, 0).Text
}

func (h *Handler) equalColumn(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	col, r := ctx.CursorColumn(), ctx.CursorRow()
	if col == nil || r == nil {
		return handler.NoOp()
	}
	want := displayText(col, r)
	sh := ctx.Sheet()
	return start(ctx, opSelect, "select-equal", func(context.Context) (iter.Seq[*row.Row], error) {
		return sh.GatherBy(func(r *row.Row) bool { return displayText(col, r) == want }), nil
	})
}

func (h *Handler) equalRow(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	r := ctx.CursorRow()
	if r == nil {
		return handler.NoOp()
	}
	sh := ctx.Sheet()
	cols := sh.VisibleColumns()
	want := make([]string, len(cols))
	for i, c := range cols {
		want[i] = displayText(c, r)
	}
	return start(ctx, opSelect, "select-equal-row", func(context.Context) (iter.Seq[*row.Row], error) {
		return sh.GatherBy(func(r *row.Row) bool {
			for i, c := range cols {
				if displayText(c, r) != want[i] {
					return false
				}
			}
			return true
		}), nil
	})
}

func (h *Handler) equalSelected(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	col := ctx.CursorColumn()
	if col == nil {
		return handler.NoOp()
	}
	sh := ctx.Sheet()
	selected := sh.SelectedRows()
	if len(selected) == 0 {
		return handler.NoOpWithMessage("no rows selected")
	}
	want := make(map[string]struct{}, len(selected))
	for _, r := range selected {
		want[displayText(col, r)] = struct{}{}
	}
	return start(ctx, opSelect, "select-equal-selected", func(context.Context) (iter.Seq[*row.Row], error) {
		return sh.GatherBy(func(r *row.Row) bool {
			_, ok := want[displayText(col, r)]
			return ok
		}), nil
	})
}
