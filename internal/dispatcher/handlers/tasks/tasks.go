package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// ErrBadInterval indicates a reload interval that is not a positive number
// of seconds.
var ErrBadInterval = errors.New("interval must be a positive number of seconds")

// Handler implements task commands.
type Handler struct {
	// unit scales reload-every intervals; tests shorten it.
	unit time.Duration
}

// NewHandler creates a task handler.
func NewHandler() *Handler {
	return &Handler{unit: time.Second}
}

// Register binds the task commands on d.
func (h *Handler) Register(d *dispatcher.Dispatcher) {
	d.Register(dispatcher.CmdReload, h.reload)
	d.Register(dispatcher.CmdReloadEvery, h.reloadEvery)
	d.Register(dispatcher.CmdCancelTask, h.cancel)
	d.Register(dispatcher.CmdCancelAllTasks, h.cancelAll)
}

func (h *Handler) reload(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	if sh.Loader() == nil {
		return handler.Error(sheet.ErrNoReloader)
	}
	_, err := ctx.App().Tasks().Start(ctx.Context(), sh, "reload", sh.Reload)
	if err != nil {
		return handler.FromError(err)
	}
	return handler.Async("")
}

// ParseInterval parses a reload interval in seconds.
func ParseInterval(s string) (float64, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadInterval, s)
	}
	return secs, nil
}

func (h *Handler) reloadEvery(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	sh := ctx.Sheet()
	if sh.Loader() == nil {
		return handler.Error(sheet.ErrNoReloader)
	}
	answer, err := ctx.App().Prompt(ctx.Context(), "reload every N seconds: ", "", "interval")
	if err != nil {
		return handler.FromError(err)
	}
	secs, err := ParseInterval(answer)
	if err != nil {
		return handler.Error(err)
	}
	every := time.Duration(secs * float64(h.unit))

	app := ctx.App()
	_, err = app.Tasks().Start(ctx.Context(), sh, "reload-every", func(tctx context.Context) error {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			if err := sh.Reload(tctx); err != nil {
				return err
			}
			app.Redraw()
			select {
			case <-tctx.Done():
				return abort.ErrAborted
			case <-ticker.C:
			}
		}
	})
	if err != nil {
		return handler.FromError(err)
	}
	return handler.Async(fmt.Sprintf("reloading %s every %gs", sh.Name(), secs))
}

func (h *Handler) cancel(ctx *execctx.Context) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	if !ctx.App().Tasks().Cancel(ctx.Sheet()) {
		return handler.NoOpWithMessage("no task to cancel")
	}
	return handler.SuccessWithMessage("cancelled task")
}

func (h *Handler) cancelAll(ctx *execctx.Context) handler.Result {
	if ctx.App() == nil {
		return handler.Error(execctx.ErrMissingApp)
	}
	n := ctx.App().Tasks().CancelAll()
	return handler.Successf("cancelled %d tasks", n)
}
