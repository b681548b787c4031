package app

import (
	"context"
	"strings"

	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/input/key"
	"github.com/dshills/sheetstorm/internal/input/keymap"
	"github.com/dshills/sheetstorm/internal/renderer"
	"github.com/dshills/sheetstorm/internal/renderer/backend"
	"github.com/dshills/sheetstorm/internal/sheet"
	"github.com/dshills/sheetstorm/internal/task"
)

// Run initializes the backend and processes keystrokes until the sheet
// stack is empty, a quit command runs, or ctx is cancelled. In debug mode
// it also stops at the first command or task failure and returns it.
func (app *Application) Run(ctx context.Context) error {
	if app.closed.Load() {
		return ErrClosed
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}
	if err := b.Init(); err != nil {
		return NewOperationError("init", "terminal", err)
	}
	defer b.Shutdown()

	app.vp.Resize(b.Size())
	r := renderer.New(b, app.vp, rendererSettings(app.store.Get()))
	app.mu.Lock()
	app.renderer = r
	app.mu.Unlock()
	defer func() {
		app.mu.Lock()
		app.renderer = nil
		app.mu.Unlock()
	}()

	app.logger.Info("input loop started")
	for !app.quitting() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := app.haltErr(); err != nil {
			app.logger.Error("halted: %v", err)
			return err
		}
		app.loadTop(ctx)
		app.draw()

		ev, ok := b.PollEvent(app.pollTimeout())
		if !ok {
			app.tasks.Sweep()
			continue
		}
		app.handleEvent(ctx, ev)
	}
	app.logger.Info("input loop finished")
	return nil
}

// handleEvent routes one backend event.
func (app *Application) handleEvent(ctx context.Context, ev backend.Event) {
	if ev.Type == backend.EventResize {
		app.vp.Resize(ev.Width, ev.Height)
		app.Redraw()
		return
	}
	name := key.Name(ev)
	switch name {
	case "":
		return
	case key.Quit:
		app.logger.Debug("quit key")
		app.Quit()
		return
	}

	timer := StartTimer()
	defer func() { app.metrics.RecordKey(timer.Elapsed()) }()

	app.clearPending()
	top := app.Top()
	if top == nil {
		return
	}

	b, state := app.seq.Feed(top.Kind(), name)
	switch state {
	case keymap.Unbound:
		app.metrics.RecordUnbound()
		app.Status(keymap.UnboundError(b).Error())
	case keymap.Matched:
		app.metrics.RecordCommand()
		app.dispatch(execctx.New(ctx, app, top, b.Name()), b.Command)
	}
	app.tasks.Sweep()
}

// dispatch runs one command, turning a debug-mode halt into the loop's
// exit error.
func (app *Application) dispatch(ctx *execctx.Context, cmd dispatcher.Command) {
	defer func() {
		if r := recover(); r != nil {
			h, ok := r.(*dispatcher.HaltError)
			if !ok {
				panic(r)
			}
			app.halt(h)
		}
	}()
	app.dispatcher.Dispatch(ctx, cmd)
}

// halt records err as the reason the input loop stops. The first halt wins.
func (app *Application) halt(err error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.halted == nil {
		app.halted = err
	}
}

func (app *Application) haltErr() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.halted
}

// loadTop starts loading the visible sheet the first time it is shown.
// A failed load is not retried; reload does that on request.
func (app *Application) loadTop(ctx context.Context) {
	top := app.Top()
	if top == nil || top.Loaded() || top.Loader() == nil {
		return
	}
	app.mu.Lock()
	tried := app.loading[top]
	app.mu.Unlock()
	if !tried {
		_, _ = app.Load(ctx, top)
	}
}

// Load reloads sh in a background task.
func (app *Application) Load(ctx context.Context, sh *sheet.Sheet) (*task.Task, error) {
	app.mu.Lock()
	app.loading[sh] = true
	app.mu.Unlock()
	return app.tasks.Start(ctx, sh, "load", sh.Reload)
}

// draw renders the current state.
func (app *Application) draw() {
	app.mu.Lock()
	r := app.renderer
	b := app.backend
	resync := app.resync
	app.resync = false
	var top *sheet.Sheet
	if len(app.stack) > 0 {
		top = app.stack[0]
	}
	f := renderer.Frame{
		Sheet:    top,
		Statuses: append([]string(nil), app.pending...),
		Edit:     app.edit,
	}
	app.mu.Unlock()
	if r == nil {
		return
	}
	f.Keys = strings.Join(app.seq.Pending(), "")

	timer := StartTimer()
	if top != nil {
		app.vp.CheckCursor(top)
		app.dispatcher.Hooks().PreDraw.Run(top)
	}
	r.Draw(f)
	if resync {
		b.Sync()
	}
	app.metrics.RecordFrame(timer.Elapsed())
}
