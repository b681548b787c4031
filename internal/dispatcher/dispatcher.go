// Package dispatcher routes commands to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/sheetstorm/internal/dispatcher/execctx"
	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
	"github.com/dshills/sheetstorm/internal/dispatcher/hook"
)

// HandlerFunc executes one command.
type HandlerFunc func(ctx *execctx.Context) handler.Result

// Dispatcher routes commands to handlers and coordinates execution.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers [numCommands]HandlerFunc
	hooks    hook.Points

	config  Config
	logger  Logger
	metrics *Metrics
	debug   atomic.Bool

	errMu  sync.Mutex
	errors []error
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	if config.ErrorHistory <= 0 {
		config.ErrorHistory = DefaultErrorHistory
	}
	d := &Dispatcher{config: config, logger: config.Logger}
	if d.logger == nil {
		d.logger = nopLogger{}
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	d.debug.Store(config.Debug)
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// Register installs fn as the handler for cmd, replacing any previous one.
func (d *Dispatcher) Register(cmd Command, fn HandlerFunc) {
	if !cmd.Valid() {
		return
	}
	d.mu.Lock()
	d.handlers[cmd] = fn
	d.mu.Unlock()
}

// Handler returns the handler for cmd, or nil.
func (d *Dispatcher) Handler(cmd Command) HandlerFunc {
	if !cmd.Valid() {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.handlers[cmd]
}

// Unregistered returns the commands without a handler.
func (d *Dispatcher) Unregistered() []Command {
	var out []Command
	for _, c := range Commands() {
		if d.Handler(c) == nil {
			out = append(out, c)
		}
	}
	return out
}

// Hooks returns the extension points. Hooks must be added before dispatch
// begins.
func (d *Dispatcher) Hooks() *hook.Points {
	return &d.hooks
}

// Debug reports whether failures should propagate.
func (d *Dispatcher) Debug() bool {
	return d.debug.Load()
}

// SetDebug sets the debug flag.
func (d *Dispatcher) SetDebug(on bool) {
	d.debug.Store(on)
}

// Dispatch executes cmd synchronously. Aborts become status messages;
// other failures are recorded in the error history and reported on the
// status line. In debug mode a failure panics with a *HaltError after it
// is recorded.
func (d *Dispatcher) Dispatch(ctx *execctx.Context, cmd Command) handler.Result {
	start := time.Now()
	name := cmd.String()

	fn := d.Handler(cmd)
	if fn == nil {
		result := handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, name))
		d.logger.Error("%v", result.Error)
		d.report(ctx, name, result)
		d.halt(name, result)
		return result
	}

	d.hooks.PreAction.Run(ctx, name)

	var result handler.Result
	if d.config.RecoverFromPanic && !d.Debug() {
		result = d.executeWithRecovery(fn, name, ctx)
	} else {
		result = fn(ctx)
	}

	d.report(ctx, name, result)
	d.hooks.PostAction.Run(ctx, name, result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(name, time.Since(start), result.Status)
	}
	d.halt(name, result)
	return result
}

func (d *Dispatcher) halt(name string, result handler.Result) {
	if result.Status == handler.StatusError && d.Debug() {
		panic(&HaltError{Command: name, Err: result.Error})
	}
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(fn HandlerFunc, name string, ctx *execctx.Context) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			d.logger.Error("handler panic for %s: %v\n%s", name, r, stack[:n])

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(name)
			}
		}
	}()
	return fn(ctx)
}

func (d *Dispatcher) report(ctx *execctx.Context, name string, result handler.Result) {
	switch result.Status {
	case handler.StatusError:
		// logged by the hook.LogResults PostAction hook when installed
		d.RecordError(result.Error)
	case handler.StatusAborted:
		d.logger.Debug("%s: %s", name, result.Message)
	}
	if result.Message != "" && ctx != nil {
		ctx.Status(result.Message)
	}
}

// RecordError appends err to the bounded error history.
func (d *Dispatcher) RecordError(err error) {
	if err == nil {
		return
	}
	d.errMu.Lock()
	defer d.errMu.Unlock()
	d.errors = append(d.errors, err)
	if over := len(d.errors) - d.config.ErrorHistory; over > 0 {
		d.errors = append(d.errors[:0:0], d.errors[over:]...)
	}
}

// Errors returns the recorded failures, oldest first.
func (d *Dispatcher) Errors() []error {
	d.errMu.Lock()
	defer d.errMu.Unlock()
	return append([]error(nil), d.errors...)
}

// LastError returns the most recent failure, or nil.
func (d *Dispatcher) LastError() error {
	d.errMu.Lock()
	defer d.errMu.Unlock()
	if len(d.errors) == 0 {
		return nil
	}
	return d.errors[len(d.errors)-1]
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
