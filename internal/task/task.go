// Package task runs long sheet operations off the input loop.
//
// At most one task per sheet is tracked as current. Starting another task on
// the same sheet asks for confirmation; the old task keeps running but is no
// longer tracked. Tasks observe cancellation through their context and end
// in one of three states: completed, aborted or failed.
package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/sheetstorm/internal/sheet"
)

// State is the lifecycle state of a task.
type State string

const (
	// StateRunning indicates the task function has not returned.
	StateRunning State = "running"
	// StateCompleted indicates the task finished without error.
	StateCompleted State = "completed"
	// StateAborted indicates the task stopped on a user abort.
	StateAborted State = "aborted"
	// StateFailed indicates the task returned an error or panicked.
	StateFailed State = "failed"
)

// Func is the work a task performs.
type Func func(ctx context.Context) error

// Task is one background operation on a sheet.
type Task struct {
	// ID uniquely identifies the task.
	ID string
	// Name describes the operation, e.g. "reload".
	Name string
	// Sheet is the sheet the task operates on.
	Sheet *sheet.Sheet

	mu     sync.RWMutex
	state  State
	status string
	err    error
	start  time.Time
	end    time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

func newTask(sh *sheet.Sheet, name string, cancel context.CancelFunc) *Task {
	return &Task{
		ID:     uuid.NewString(),
		Name:   name,
		Sheet:  sh,
		state:  StateRunning,
		start:  time.Now(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// State returns the task state.
func (t *Task) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Status returns the free-form status string.
func (t *Task) Status() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// SetStatus replaces the status string.
func (t *Task) SetStatus(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = s
}

// Err returns the failure, if any.
func (t *Task) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

// StartTime returns when the task started.
func (t *Task) StartTime() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.start
}

// EndTime returns when the task was swept, or the zero time while it is
// still tracked.
func (t *Task) EndTime() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.end
}

// Elapsed returns the run time so far.
func (t *Task) Elapsed() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.end.IsZero() {
		return time.Since(t.start)
	}
	return t.end.Sub(t.start)
}

// Done is closed when the task function returns.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Stopped reports whether the task function has returned.
func (t *Task) Stopped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Cancel asks the task to stop.
func (t *Task) Cancel() {
	t.cancel()
}

func (t *Task) finish(state State, status string, err error) {
	t.mu.Lock()
	t.state = state
	if status != "" {
		t.status = status
	}
	t.err = err
	t.mu.Unlock()
	close(t.done)
}

// sweep marks a stopped task as ended. It reports whether this call did it.
func (t *Task) sweep(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.end.IsZero() {
		return false
	}
	t.end = now
	if t.status == "" {
		t.status = "ended"
	}
	return true
}
