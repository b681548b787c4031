// Package handlertest provides an in-memory controller for exercising
// command handlers without a terminal.
package handlertest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/config"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/renderer/viewport"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
	"github.com/dshills/sheetstorm/internal/task"
)

// App implements execctx.Controller. Prompts and confirmations consume
// queued answers; with none queued they abort.
type App struct {
	mu       sync.Mutex
	stack    []*sheet.Sheet
	statuses []string
	answers  []string
	prompts  []string
	errors   []error
	quit     bool
	redraws  int

	store *config.Store
	tasks *task.Scheduler
	vp    *viewport.Viewport
}

// New creates an App with sheets pushed in order, so the last is on top.
func New(sheets ...*sheet.Sheet) *App {
	a := &App{
		store: config.NewStore(config.DefaultOptions()),
		vp:    viewport.New(80, 25, viewport.DefaultOptions()),
	}
	a.tasks = task.NewScheduler(task.Config{
		Confirm:     a.Confirm,
		Status:      a.Status,
		RecordError: a.recordError,
	})
	for _, sh := range sheets {
		a.Push(sh)
	}
	return a
}

// Context returns an execution context on the top sheet.
func (a *App) Context(keys string) *execctx.Context {
	return execctx.New(context.Background(), a, a.Top(), keys)
}

// Answer queues responses for Prompt and Confirm.
func (a *App) Answer(answers ...string) {
	a.mu.Lock()
	a.answers = append(a.answers, answers...)
	a.mu.Unlock()
}

// Prompts returns the prompts shown so far.
func (a *App) Prompts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.prompts)
}

// TaskErrors returns failures recorded by background tasks.
func (a *App) TaskErrors() []error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.errors)
}

// Top returns the visible sheet, or nil.
func (a *App) Top() *sheet.Sheet {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[0]
}

// LastStatus returns the most recent status message.
func (a *App) LastStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.statuses) == 0 {
		return ""
	}
	return a.statuses[len(a.statuses)-1]
}

// Quitting reports whether Quit was called.
func (a *App) Quitting() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quit
}

// Redraws returns the number of Redraw calls.
func (a *App) Redraws() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.redraws
}

// Wait blocks until every background task has stopped.
func (a *App) Wait() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.tasks.WaitAll(ctx)
}

func (a *App) recordError(err error) {
	a.mu.Lock()
	a.errors = append(a.errors, err)
	a.mu.Unlock()
}

// Sheets implements execctx.Controller.
func (a *App) Sheets() []*sheet.Sheet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.stack)
}

// Push implements execctx.Controller.
func (a *App) Push(sh *sheet.Sheet) *sheet.Sheet {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stack = slices.DeleteFunc(a.stack, func(s *sheet.Sheet) bool { return s == sh })
	a.stack = slices.Insert(a.stack, 0, sh)
	return sh
}

// Pop implements execctx.Controller.
func (a *App) Pop() *sheet.Sheet {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.stack) == 0 {
		return nil
	}
	sh := a.stack[0]
	a.stack = a.stack[1:]
	return sh
}

// Quit implements execctx.Controller.
func (a *App) Quit() {
	a.mu.Lock()
	a.quit = true
	a.stack = nil
	a.mu.Unlock()
}

// Status implements execctx.Controller.
func (a *App) Status(msg string) {
	a.mu.Lock()
	a.statuses = append(a.statuses, msg)
	a.mu.Unlock()
}

// Statuses implements execctx.Controller.
func (a *App) Statuses() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.statuses)
}

func (a *App) next(prompt string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prompts = append(a.prompts, prompt)
	if len(a.answers) == 0 {
		return "", false
	}
	ans := a.answers[0]
	a.answers = a.answers[1:]
	return ans, true
}

// Prompt implements execctx.Controller.
func (a *App) Prompt(_ context.Context, prompt, _, _ string) (string, error) {
	ans, ok := a.next(prompt)
	if !ok {
		return "", abort.Errorf("aborted")
	}
	return ans, nil
}

// Confirm implements execctx.Controller.
func (a *App) Confirm(_ context.Context, prompt string) error {
	ans, ok := a.next(prompt)
	if !ok || (ans != "y" && ans != "Y") {
		return abort.Errorf("disconfirmed")
	}
	return nil
}

// Tasks implements execctx.Controller.
func (a *App) Tasks() *task.Scheduler { return a.tasks }

// Viewport implements execctx.Controller.
func (a *App) Viewport() *viewport.Viewport { return a.vp }

// Options implements execctx.Controller.
func (a *App) Options() config.Options { return a.store.Get() }

// SetOption implements execctx.Controller.
func (a *App) SetOption(name, value string) error { return a.store.Set(name, value) }

// OptionStore implements execctx.Controller.
func (a *App) OptionStore() *config.Store { return a.store }

// Redraw implements execctx.Controller.
func (a *App) Redraw() {
	a.mu.Lock()
	a.redraws++
	a.mu.Unlock()
}

// Version implements execctx.Controller.
func (a *App) Version() string { return "test" }

var _ execctx.Controller = (*App)(nil)

// Table builds a loaded sheet over rows of strings. Every column is
// editable and header names the columns.
func Table(name string, header []string, data ...[]string) *sheet.Sheet {
	cols := make([]*column.Column, len(header))
	for i, h := range header {
		cols[i] = column.New(h,
			func(r *row.Row) (any, error) { return (*r.Data.(*[]string))[i], nil },
			column.WithSetter(func(r *row.Row, v any) error {
				(*r.Data.(*[]string))[i] = column.ToString(v)
				return nil
			}))
	}
	rows := make([]*row.Row, len(data))
	for i := range data {
		rec := data[i]
		rows[i] = row.New(&rec)
	}
	return sheet.New(name, sheet.WithColumns(cols...), sheet.WithRows(rows))
}

// Cells returns the display values of column c, top to bottom.
func Cells(sh *sheet.Sheet, c int) []string {
	col := sh.Column(c)
	out := make([]string, 0, sh.NRows())
	for _, r := range sh.Rows() {
		out = append(out, col.DisplayValue(r, 0).Text)
	}
	return out
}
