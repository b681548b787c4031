package app

import (
	"context"
	"time"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/config"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/hook"
	"github.com/dshills/sheetstorm/internal/input/keymap"
	"github.com/dshills/sheetstorm/internal/renderer/viewport"
	"github.com/dshills/sheetstorm/internal/task"
)

// Initial viewport size before the terminal reports its own.
const (
	initialWidth  = 80
	initialHeight = 25
)

// bootstrapper handles component initialization with cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initKeymap,
		b.initDispatcher,
		b.initTasks,
		b.initViewport,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.applyOptions(b.app.store.Get())
	b.app.store.OnChange(b.app.applyOptions)
	return nil
}

// initConfig loads the options file and applies command-line overrides.
func (b *bootstrapper) initConfig() error {
	opts, err := config.Load(b.opts.ConfigPath)
	if err != nil {
		return NewOperationError("config", b.opts.ConfigPath, err)
	}
	if b.opts.Debug {
		opts.Debug = true
	}
	if b.opts.ReadOnly {
		opts.ReadOnly = true
	}
	b.app.store = config.NewStore(opts)
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initKeymap builds the default bindings and applies user overrides.
func (b *bootstrapper) initKeymap() error {
	km := keymap.Default()
	if b.opts.KeymapPath != "" {
		if err := km.LoadFile(b.opts.KeymapPath); err != nil {
			return NewOperationError("keymap", b.opts.KeymapPath, err)
		}
	}
	b.app.keys = km
	b.app.seq = keymap.NewSequencer(km)
	b.initOrder = append(b.initOrder, "keymap")
	return nil
}

// initDispatcher creates the dispatcher and registers every handler.
func (b *bootstrapper) initDispatcher() error {
	cfg := dispatcher.DefaultConfig().
		WithDebug(b.app.store.Get().Debug).
		WithLogger(b.app.logger.WithComponent("dispatcher"))
	if b.opts.Debug {
		cfg = cfg.WithMetrics()
	}
	d := dispatcher.New(cfg)
	RegisterHandlers(d, b.app.keys)

	log := b.app.logger.WithComponent("command")
	d.Hooks().PreAction.Add(hook.LogActions(log))
	d.Hooks().PostAction.Add(hook.LogResults(log))

	// Value errors during display are kept for the error sheet without
	// interrupting drawing.
	column.SetErrorReporter(d.RecordError)

	b.app.dispatcher = d
	b.initOrder = append(b.initOrder, "dispatcher")
	return nil
}

// initTasks creates the background task scheduler.
func (b *bootstrapper) initTasks() error {
	b.app.tasks = task.NewScheduler(task.Config{
		Confirm:     b.app.Confirm,
		Status:      b.app.Status,
		RecordError: b.app.dispatcher.RecordError,
		Logger:      b.app.logger.WithComponent("task"),
		Debug:       b.app.store.Get().Debug,
		Halt:        b.app.halt,
	})
	b.initOrder = append(b.initOrder, "tasks")
	return nil
}

func (b *bootstrapper) initViewport() error {
	b.app.vp = viewport.New(initialWidth, initialHeight, viewportSettings(b.app.store.Get()))
	b.initOrder = append(b.initOrder, "viewport")
	return nil
}

// initWatcher reloads the options file on change when requested.
func (b *bootstrapper) initWatcher() error {
	if !b.opts.Watch || b.opts.ConfigPath == "" {
		return nil
	}
	w, err := config.WatchFile(b.opts.ConfigPath, b.app.store, func(err error) {
		b.app.dispatcher.RecordError(err)
		b.app.Status(err.Error())
	})
	if err != nil {
		return NewOperationError("watch", b.opts.ConfigPath, err)
	}
	b.app.watcher = w
	b.initOrder = append(b.initOrder, "watcher")
	return nil
}

// cleanup releases components in reverse initialization order.
func (b *bootstrapper) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(ctx, b.initOrder[i])
	}
	b.initOrder = b.initOrder[:0]
}

func (b *bootstrapper) cleanupComponent(ctx context.Context, component string) {
	switch component {
	case "watcher":
		if b.app.watcher != nil {
			_ = b.app.watcher.Close()
			b.app.watcher = nil
		}
	case "tasks":
		if b.app.tasks != nil {
			b.app.tasks.CancelAll()
			_ = b.app.tasks.WaitAll(ctx)
			b.app.tasks = nil
		}
	case "dispatcher":
		column.SetErrorReporter(nil)
		b.app.dispatcher = nil
	case "keymap":
		b.app.keys = nil
		b.app.seq = nil
	case "viewport":
		b.app.vp = nil
	case "config":
		b.app.store = nil
	}
}
