package app

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Metrics tracks input loop timing.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	// Keystroke handling, from event to dispatch result
	keyCount   atomic.Uint64
	keyTotalNs atomic.Int64
	unbound    atomic.Uint64

	commandCount atomic.Uint64

	startTime atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.Reset()
	return m
}

// RecordFrame records frame timing.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordKey records the time spent handling one keystroke.
func (m *Metrics) RecordKey(duration time.Duration) {
	m.keyCount.Add(1)
	m.keyTotalNs.Add(duration.Nanoseconds())
}

// RecordUnbound counts a key sequence with no command.
func (m *Metrics) RecordUnbound() {
	m.unbound.Add(1)
}

// RecordCommand counts a dispatched command.
func (m *Metrics) RecordCommand() {
	m.commandCount.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()
	keys := m.keyCount.Load()

	var avgFrame, avgKey time.Duration
	if frames > 0 {
		avgFrame = time.Duration(m.frameTotalNs.Load() / int64(frames))
	}
	if keys > 0 {
		avgKey = time.Duration(m.keyTotalNs.Load() / int64(keys))
	}
	minFrame := m.frameMinNs.Load()
	if minFrame == 1<<63-1 {
		minFrame = 0
	}

	return MetricsSnapshot{
		Uptime:    time.Since(time.Unix(0, m.startTime.Load())),
		Frames:    frames,
		AvgFrame:  avgFrame,
		MinFrame:  time.Duration(minFrame),
		MaxFrame:  time.Duration(m.frameMaxNs.Load()),
		LastFrame: time.Duration(m.lastFrameNs.Load()),
		Keys:      keys,
		AvgKey:    avgKey,
		Unbound:   m.unbound.Load(),
		Commands:  m.commandCount.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frameCount.Store(0)
	m.frameTotalNs.Store(0)
	m.frameMinNs.Store(1<<63 - 1)
	m.frameMaxNs.Store(0)
	m.lastFrameNs.Store(0)
	m.keyCount.Store(0)
	m.keyTotalNs.Store(0)
	m.unbound.Store(0)
	m.commandCount.Store(0)
	m.startTime.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime    time.Duration
	Frames    uint64
	AvgFrame  time.Duration
	MinFrame  time.Duration
	MaxFrame  time.Duration
	LastFrame time.Duration
	Keys      uint64
	AvgKey    time.Duration
	Unbound   uint64
	Commands  uint64
}

// AvgFPS returns the frame rate the average frame time allows.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrame == 0 {
		return 0
	}
	return float64(time.Second) / float64(s.AvgFrame)
}

// String summarizes the snapshot on one line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("%s frames (avg %v), %s keys (avg %v), %s commands, %s unbound",
		humanize.Comma(int64(s.Frames)), s.AvgFrame,
		humanize.Comma(int64(s.Keys)), s.AvgKey,
		humanize.Comma(int64(s.Commands)), humanize.Comma(int64(s.Unbound)))
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop returns the elapsed time and restarts the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}
