// Package app provides the application controller for sheetstorm. It owns
// the sheet stack, the status log, prompts and the input loop, and wires
// the dispatcher, task scheduler, keymap, options and renderer together.
package app

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/sheetstorm/internal/config"
	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/input/keymap"
	"github.com/dshills/sheetstorm/internal/input/lineedit"
	"github.com/dshills/sheetstorm/internal/renderer"
	"github.com/dshills/sheetstorm/internal/renderer/backend"
	"github.com/dshills/sheetstorm/internal/renderer/statusline"
	"github.com/dshills/sheetstorm/internal/renderer/viewport"
	"github.com/dshills/sheetstorm/internal/sheet"
	"github.com/dshills/sheetstorm/internal/task"
)

// DefaultVersion is reported when Options.Version is empty.
const DefaultVersion = "dev"

// statusHistorySize bounds the status log.
const statusHistorySize = 1000

// Application is the central coordinator. It implements
// execctx.Controller for command handlers.
type Application struct {
	mu sync.Mutex

	opts   Options
	logger *Logger

	store      *config.Store
	watcher    *config.Watcher
	keys       *keymap.Keymap
	seq        *keymap.Sequencer
	dispatcher *dispatcher.Dispatcher
	tasks      *task.Scheduler
	vp         *viewport.Viewport
	history    *lineedit.History
	metrics    *Metrics

	backend  backend.Backend
	renderer *renderer.Renderer

	stack    []*sheet.Sheet
	statuses []string
	pending  []string
	edit     *statusline.Edit
	loading  map[*sheet.Sheet]bool
	quit     bool
	resync   bool
	halted   error

	running atomic.Bool
	closed  atomic.Bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the options file; empty uses built-in defaults.
	ConfigPath string
	// Watch reloads ConfigPath when it changes.
	Watch bool
	// KeymapPath is a TOML file of binding overrides.
	KeymapPath string
	// Debug and ReadOnly override the options file.
	Debug    bool
	ReadOnly bool
	// Version is reported by the version command.
	Version string
	// Logger receives diagnostics; nil uses GetLogger().
	Logger *Logger
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.Logger == nil {
		opts.Logger = GetLogger()
	}
	app := &Application{
		opts:    opts,
		logger:  opts.Logger.WithComponent("app"),
		history: lineedit.NewHistory(),
		metrics: NewMetrics(),
		loading: make(map[*sheet.Sheet]bool),
	}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	return nil
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Keymap returns the active key bindings.
func (app *Application) Keymap() *keymap.Keymap {
	return app.keys
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the input and frame timing collector.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// LastError returns the most recent recorded failure, or nil.
func (app *Application) LastError() error {
	return app.dispatcher.LastError()
}

// Top returns the visible sheet, or nil.
func (app *Application) Top() *sheet.Sheet {
	app.mu.Lock()
	defer app.mu.Unlock()
	if len(app.stack) == 0 {
		return nil
	}
	return app.stack[0]
}

// Context returns an execution context for a command on the top sheet.
func (app *Application) Context(ctx context.Context, keys string) *execctx.Context {
	return execctx.New(ctx, app, app.Top(), keys)
}

// Sheets implements execctx.Controller.
func (app *Application) Sheets() []*sheet.Sheet {
	app.mu.Lock()
	defer app.mu.Unlock()
	return slices.Clone(app.stack)
}

// Push implements execctx.Controller. A sheet already on the stack moves
// to the top.
func (app *Application) Push(sh *sheet.Sheet) *sheet.Sheet {
	app.mu.Lock()
	app.stack = slices.DeleteFunc(app.stack, func(s *sheet.Sheet) bool { return s == sh })
	app.stack = slices.Insert(app.stack, 0, sh)
	app.mu.Unlock()
	app.logger.Debug("pushed %s", sh.Name())
	return sh
}

// Pop implements execctx.Controller.
func (app *Application) Pop() *sheet.Sheet {
	app.mu.Lock()
	defer app.mu.Unlock()
	if len(app.stack) == 0 {
		return nil
	}
	sh := app.stack[0]
	app.stack = app.stack[1:]
	delete(app.loading, sh)
	return sh
}

// Quit implements execctx.Controller. The input loop exits after the
// current command.
func (app *Application) Quit() {
	app.mu.Lock()
	app.quit = true
	app.stack = nil
	app.mu.Unlock()
}

func (app *Application) quitting() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.quit || len(app.stack) == 0
}

// Status implements execctx.Controller. Messages show until the next
// keystroke and stay in the status history.
func (app *Application) Status(msg string) {
	app.mu.Lock()
	app.statuses = append(app.statuses, msg)
	if over := len(app.statuses) - statusHistorySize; over > 0 {
		app.statuses = slices.Delete(app.statuses, 0, over)
	}
	app.pending = append(app.pending, msg)
	app.mu.Unlock()
	app.logger.Debug("status: %s", msg)
}

// Statuses implements execctx.Controller.
func (app *Application) Statuses() []string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return slices.Clone(app.statuses)
}

func (app *Application) clearPending() {
	app.mu.Lock()
	app.pending = nil
	app.mu.Unlock()
}

// Tasks implements execctx.Controller.
func (app *Application) Tasks() *task.Scheduler { return app.tasks }

// Viewport implements execctx.Controller.
func (app *Application) Viewport() *viewport.Viewport { return app.vp }

// Options implements execctx.Controller.
func (app *Application) Options() config.Options { return app.store.Get() }

// SetOption implements execctx.Controller.
func (app *Application) SetOption(name, value string) error { return app.store.Set(name, value) }

// OptionStore implements execctx.Controller.
func (app *Application) OptionStore() *config.Store { return app.store }

// Redraw implements execctx.Controller. The next frame repaints the whole
// terminal.
func (app *Application) Redraw() {
	app.mu.Lock()
	app.resync = true
	app.mu.Unlock()
}

// Version implements execctx.Controller.
func (app *Application) Version() string { return app.opts.Version }

var _ execctx.Controller = (*Application)(nil)
