package task

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// ErrPanic indicates a task function panicked.
var ErrPanic = errors.New("task: panic")

// historySize bounds the list of finished tasks kept for display.
const historySize = 100

// Logger receives task lifecycle events.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// Config wires the scheduler to the application.
type Config struct {
	// Confirm asks the user a yes/no question and returns an abort error on
	// no. A nil Confirm always agrees.
	Confirm func(ctx context.Context, prompt string) error
	// Status shows a one-line message.
	Status func(msg string)
	// RecordError appends a failure to the error history.
	RecordError func(err error)
	// Logger receives lifecycle events.
	Logger Logger
	// Debug sends failures to Halt after recording them.
	Debug bool
	// Halt stops the application. Nil ignores halts.
	Halt func(err error)
}

// Scheduler starts tasks and tracks the current one per sheet.
type Scheduler struct {
	cfg   Config
	debug atomic.Bool

	mu      sync.Mutex
	current map[*sheet.Sheet]*Task
	running map[*Task]struct{}
	history []*Task
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}
	if cfg.Status == nil {
		cfg.Status = func(string) {}
	}
	if cfg.RecordError == nil {
		cfg.RecordError = func(error) {}
	}
	if cfg.Halt == nil {
		cfg.Halt = func(error) {}
	}
	s := &Scheduler{
		cfg:     cfg,
		current: make(map[*sheet.Sheet]*Task),
		running: make(map[*Task]struct{}),
	}
	s.debug.Store(cfg.Debug)
	return s
}

// SetDebug sets whether task failures halt the application.
func (s *Scheduler) SetDebug(on bool) {
	s.debug.Store(on)
}

// Start runs fn in the background as the current task of sh. If sh already
// has a running task the user must confirm replacing it; declining returns
// the abort error and leaves the old task current.
func (s *Scheduler) Start(ctx context.Context, sh *sheet.Sheet, name string, fn Func) (*Task, error) {
	if old := s.Current(sh); old != nil && !old.Stopped() && s.cfg.Confirm != nil {
		if err := s.cfg.Confirm(ctx, fmt.Sprintf("replace task %s already in progress? ", old.Name)); err != nil {
			return nil, err
		}
	}

	taskCtx, cancel := context.WithCancel(context.Background())
	t := newTask(sh, name, cancel)

	s.mu.Lock()
	s.current[sh] = t
	s.running[t] = struct{}{}
	s.mu.Unlock()

	s.cfg.Logger.Debug("task %s started on %s", name, sh.Name())
	s.wg.Add(1)
	go s.run(taskCtx, t, fn)
	return t, nil
}

func (s *Scheduler) run(ctx context.Context, t *Task, fn Func) {
	defer s.wg.Done()
	defer t.cancel()

	err := s.call(ctx, fn)
	switch {
	case err == nil:
		t.finish(StateCompleted, "", nil)
		s.cfg.Logger.Debug("task %s completed in %s", t.Name, time.Since(t.StartTime()))
	case abort.Is(err):
		t.finish(StateAborted, "aborted by user", err)
		s.cfg.Status(fmt.Sprintf("%s aborted", t.Name))
		s.cfg.Logger.Debug("task %s aborted", t.Name)
	default:
		t.finish(StateFailed, err.Error(), err)
		s.cfg.RecordError(err)
		s.cfg.Status(err.Error())
		s.cfg.Logger.Error("task %s failed: %v", t.Name, err)
		if s.debug.Load() {
			s.cfg.Halt(fmt.Errorf("task %s: %w", t.Name, err))
		}
	}
	if t.Sheet != nil {
		t.Sheet.CompleteProgress()
	}
}

func (s *Scheduler) call(ctx context.Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			err = fmt.Errorf("%w: %v\n%s", ErrPanic, r, stack[:n])
		}
	}()
	return fn(ctx)
}

// Current returns the tracked task of sh, or nil.
func (s *Scheduler) Current(sh *sheet.Sheet) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current[sh]
}

// Sweep marks stopped tasks as finished: it assigns end times and a default
// status, resets the sheet's progress to complete and stops tracking them.
// It returns the number of tasks swept.
func (s *Scheduler) Sweep() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for t := range s.running {
		if !t.Stopped() {
			continue
		}
		if t.sweep(now) {
			n++
		}
		delete(s.running, t)
		if s.current[t.Sheet] == t {
			delete(s.current, t.Sheet)
		}
		if t.Sheet != nil {
			t.Sheet.CompleteProgress()
		}
		s.history = append(s.history, t)
	}
	if over := len(s.history) - historySize; over > 0 {
		s.history = slices.Delete(s.history, 0, over)
	}
	return n
}

// Running returns the tasks whose functions have not been swept yet.
func (s *Scheduler) Running() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Task, 0, len(s.running))
	for t := range s.running {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Task) int { return a.StartTime().Compare(b.StartTime()) })
	return out
}

// History returns swept tasks, oldest first.
func (s *Scheduler) History() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Cancel cancels the current task of sh and reports whether there was one.
func (s *Scheduler) Cancel(sh *sheet.Sheet) bool {
	t := s.Current(sh)
	if t == nil || t.Stopped() {
		return false
	}
	t.Cancel()
	return true
}

// CancelAll cancels every running task and returns how many were signalled.
func (s *Scheduler) CancelAll() int {
	n := 0
	for _, t := range s.Running() {
		if !t.Stopped() {
			t.Cancel()
			n++
		}
	}
	return n
}

// WaitAll blocks until every started task has returned, then sweeps.
func (s *Scheduler) WaitAll(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.Sweep()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
