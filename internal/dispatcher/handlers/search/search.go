package search

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Handler implements search commands.
type Handler struct {
	mu   sync.Mutex
	last *sheet.SearchContext
}

// NewHandler creates a search handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register binds the search commands on d.
func (h *Handler) Register(d *dispatcher.Dispatcher) {
	d.Register(dispatcher.CmdSearchForward, h.prompt(sheet.ScopeCursorColumn, false))
	d.Register(dispatcher.CmdSearchBackward, h.prompt(sheet.ScopeCursorColumn, true))
	d.Register(dispatcher.CmdSearchVisibleForward, h.prompt(sheet.ScopeVisibleColumns, false))
	d.Register(dispatcher.CmdSearchVisibleBackward, h.prompt(sheet.ScopeVisibleColumns, true))
	d.Register(dispatcher.CmdSearchNext, h.repeat(false))
	d.Register(dispatcher.CmdSearchPrev, h.repeat(true))
	d.Register(dispatcher.CmdSearchColumnName, h.columnName)
}

// Last returns the most recent search, or nil.
func (h *Handler) Last() *sheet.SearchContext {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *Handler) prompt(scope sheet.SearchScope, backward bool) dispatcher.HandlerFunc {
	label := "/"
	if backward {
		label = "?"
	}
	return func(ctx *execctx.Context) handler.Result {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		pattern, err := ctx.App().Prompt(ctx.Context(), label, "", "regex")
		if err != nil {
			return handler.FromError(err)
		}
		if pattern == "" {
			return h.repeat(false)(ctx)
		}
		re, err := sheet.CompileRegex(pattern, ctx.Options().RegexFlags)
		if err != nil {
			return handler.Error(err)
		}
		sc := &sheet.SearchContext{Regex: re, Scope: scope, Backward: backward}
		h.mu.Lock()
		h.last = sc
		h.mu.Unlock()
		return search(ctx, sc, false)
	}
}

func (h *Handler) repeat(reverse bool) dispatcher.HandlerFunc {
	return func(ctx *execctx.Context) handler.Result {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		return search(ctx, h.Last(), reverse)
	}
}

func search(ctx *execctx.Context, sc *sheet.SearchContext, reverse bool) handler.Result {
	m, err := ctx.Sheet().SearchRegex(ctx.Context(), sc, reverse)
	switch {
	case errors.Is(err, sheet.ErrNoMatch):
		return handler.NoOpWithMessage(fmt.Sprintf("no match for /%s/", pattern(sc)))
	case err != nil:
		return handler.FromError(err)
	case m.Wrapped:
		return handler.SuccessWithMessage("search wrapped")
	}
	return handler.Success()
}

// pattern returns the regex as the user typed it.
func pattern(sc *sheet.SearchContext) string {
	return strings.TrimPrefix(sc.Regex.String(), "(?i)")
}

func (h *Handler) columnName(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	p, err := ctx.App().Prompt(ctx.Context(), "column name regex: ", "", "regex")
	if err != nil {
		return handler.FromError(err)
	}
	re, err := sheet.CompileRegex(p, ctx.Options().RegexFlags)
	if err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	i, ok := sh.FindColumn(re)
	if !ok {
		return handler.NoOpWithMessage(fmt.Sprintf("no column name matches /%s/", p))
	}
	cur := sh.Cursor()
	cur.Col = i
	sh.SetCursor(cur)
	return handler.Success()
}
