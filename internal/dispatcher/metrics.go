package dispatcher

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/dshills/sheetstorm/internal/dispatcher/handler"
)

// CommandStats holds metrics for one command.
type CommandStats struct {
	Name       string
	Count      uint64
	Errors     uint64
	Aborts     uint64
	Total      time.Duration
	Max        time.Duration
	LastStatus handler.ResultStatus
	Last       time.Time
}

// Average returns the mean dispatch duration.
func (s CommandStats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Metrics collects dispatch statistics.
type Metrics struct {
	mu       sync.RWMutex
	commands map[string]*CommandStats

	dispatches uint64
	errors     uint64
	panics     uint64
	duration   time.Duration
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{commands: make(map[string]*CommandStats)}
}

// RecordDispatch records one dispatch.
func (m *Metrics) RecordDispatch(name string, d time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dispatches++
	m.duration += d

	s := m.commands[name]
	if s == nil {
		s = &CommandStats{Name: name}
		m.commands[name] = s
	}
	s.Count++
	s.Total += d
	s.Max = max(s.Max, d)
	s.LastStatus = status
	s.Last = time.Now()

	switch status {
	case handler.StatusError:
		m.errors++
		s.Errors++
	case handler.StatusAborted:
		s.Aborts++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	m.panics++
	m.mu.Unlock()
}

// Stats returns metrics for one command.
func (m *Metrics) Stats(name string) (CommandStats, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.commands[name]
	if !ok {
		return CommandStats{}, false
	}
	return *s, true
}

// Top returns the n most dispatched commands.
func (m *Metrics) Top(n int) []CommandStats {
	m.mu.RLock()
	out := make([]CommandStats, 0, len(m.commands))
	for _, s := range m.commands {
		out = append(out, *s)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b CommandStats) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out[:min(n, len(out))]
}

// MetricsSnapshot is a point-in-time view of the totals.
type MetricsSnapshot struct {
	Dispatches uint64
	Errors     uint64
	Panics     uint64
	Duration   time.Duration
	Average    time.Duration
	Commands   int
}

// Snapshot returns the current totals.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := MetricsSnapshot{
		Dispatches: m.dispatches,
		Errors:     m.errors,
		Panics:     m.panics,
		Duration:   m.duration,
		Commands:   len(m.commands),
	}
	if m.dispatches > 0 {
		s.Average = m.duration / time.Duration(m.dispatches)
	}
	return s
}
