package app

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/sheetstorm/internal/column"
)

// shutdownTimeout bounds how long Close waits for cancelled tasks.
const shutdownTimeout = 2 * time.Second

// Close cancels background tasks, waits briefly for them to stop and
// releases the options watcher. It is safe to call more than once.
func (app *Application) Close() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	if n := app.tasks.CancelAll(); n > 0 {
		app.logger.Debug("cancelled %d tasks", n)
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.tasks.WaitAll(ctx); err != nil {
		errs = append(errs, NewOperationError("wait", "tasks", err))
	}

	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			errs = append(errs, NewOperationError("close", app.watcher.Path(), err))
		}
		app.watcher = nil
	}
	column.SetErrorReporter(nil)
	app.logger.Info("closed")
	return errors.Join(errs...)
}

// IsRunning reports whether the input loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}
