package columns

import (
	"context"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
)

// sorter runs sorts as background tasks on the sheet being sorted.
type sorter struct{}

func (s *sorter) start(ctx *execctx.Context, cols []*column.Column, reverse bool) handler.Result {
	sh := ctx.Sheet()
	_, err := ctx.App().Tasks().Start(ctx.Context(), sh, "sort", func(tctx context.Context) error {
		return sh.SortBy(tctx, cols, reverse)
	})
	if err != nil {
		return handler.FromError(err)
	}
	return handler.Async("")
}

func (s *sorter) byCursor(reverse bool) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		col, err := cursorColumn(ctx)
		if err != nil {
			return handler.Error(err)
		}
		return s.start(ctx, []*column.Column{col}, reverse)
	}
}

func (s *sorter) byKeys(reverse bool) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		keys := ctx.Sheet().KeyColumns()
		if len(keys) == 0 {
			return handler.Error(ErrNoKeyColumns)
		}
		return s.start(ctx, keys, reverse)
	}
}
