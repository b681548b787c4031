package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/input/key"
	"github.com/dshills/sheetstorm/internal/input/lineedit"
	"github.com/dshills/sheetstorm/internal/renderer/backend"
	"github.com/dshills/sheetstorm/internal/renderer/statusline"
)

// Prompt implements execctx.Controller. It edits a line on the status row
// until Enter, which returns the text and records it in the history for
// historyKind, or an abort key, which returns an abort error.
func (app *Application) Prompt(ctx context.Context, prompt, initial, historyKind string) (string, error) {
	ed := lineedit.New(prompt, initial, app.history.Entries(historyKind))
	defer app.setEdit(nil)

	for {
		app.setEdit(&statusline.Edit{Prompt: ed.Prompt(), Text: ed.Text(), Cursor: ed.Cursor()})
		k, err := app.readKey(ctx)
		if err != nil {
			return "", err
		}
		switch ed.Feed(k) {
		case lineedit.Accept:
			app.history.Add(historyKind, ed.Text())
			return ed.Text(), nil
		case lineedit.Abort:
			return "", abort.Errorf("aborted")
		}
	}
}

// Confirm implements execctx.Controller. Only y or Y agrees.
func (app *Application) Confirm(ctx context.Context, prompt string) error {
	defer app.setEdit(nil)
	app.setEdit(&statusline.Edit{Prompt: prompt})
	k, err := app.readKey(ctx)
	if err != nil {
		return err
	}
	if k != "y" && k != "Y" {
		return abort.Errorf("disconfirmed")
	}
	return nil
}

func (app *Application) setEdit(e *statusline.Edit) {
	app.mu.Lock()
	app.edit = e
	app.mu.Unlock()
}

// readKey draws a frame and waits for the next key, handling resizes on
// the way. Interrupt and ctx cancellation abort the wait.
func (app *Application) readKey(ctx context.Context) (string, error) {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return "", fmt.Errorf("%w: %w", abort.ErrAborted, ErrNoBackend)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", abort.Errorf("aborted")
		}
		app.draw()
		ev, ok := b.PollEvent(app.pollTimeout())
		if !ok {
			continue
		}
		if ev.Type == backend.EventResize {
			app.vp.Resize(ev.Width, ev.Height)
			continue
		}
		switch k := key.Name(ev); k {
		case "":
			continue
		case key.Interrupt:
			return "", abort.Errorf("aborted")
		default:
			return k, nil
		}
	}
}

// pollTimeout is the curses_timeout option as a duration.
func (app *Application) pollTimeout() time.Duration {
	ms := app.store.Get().CursesTimeout
	if ms <= 0 {
		ms = 100
	}
	return time.Duration(ms) * time.Millisecond
}
