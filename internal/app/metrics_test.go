package app

import (
	"strings"
	"testing"
	"time"
)

func TestMetricsFrames(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(30 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)

	s := m.Snapshot()
	if s.Frames != 3 {
		t.Errorf("Frames = %d, want 3", s.Frames)
	}
	if s.AvgFrame != 20*time.Millisecond {
		t.Errorf("AvgFrame = %v, want 20ms", s.AvgFrame)
	}
	if s.MinFrame != 10*time.Millisecond {
		t.Errorf("MinFrame = %v, want 10ms", s.MinFrame)
	}
	if s.MaxFrame != 30*time.Millisecond {
		t.Errorf("MaxFrame = %v, want 30ms", s.MaxFrame)
	}
	if s.LastFrame != 20*time.Millisecond {
		t.Errorf("LastFrame = %v, want 20ms", s.LastFrame)
	}
	if fps := s.AvgFPS(); fps != 50 {
		t.Errorf("AvgFPS = %v, want 50", fps)
	}
}

func TestMetricsKeys(t *testing.T) {
	m := NewMetrics()
	m.RecordKey(2 * time.Millisecond)
	m.RecordKey(4 * time.Millisecond)
	m.RecordCommand()
	m.RecordUnbound()

	s := m.Snapshot()
	if s.Keys != 2 {
		t.Errorf("Keys = %d, want 2", s.Keys)
	}
	if s.AvgKey != 3*time.Millisecond {
		t.Errorf("AvgKey = %v, want 3ms", s.AvgKey)
	}
	if s.Commands != 1 || s.Unbound != 1 {
		t.Errorf("Commands, Unbound = %d, %d, want 1, 1", s.Commands, s.Unbound)
	}
}

func TestMetricsEmpty(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.MinFrame != 0 || s.AvgFrame != 0 || s.AvgKey != 0 {
		t.Errorf("empty snapshot = %+v, want zero timings", s)
	}
	if s.AvgFPS() != 0 {
		t.Errorf("AvgFPS = %v, want 0", s.AvgFPS())
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(time.Millisecond)
	m.RecordKey(time.Millisecond)
	m.Reset()

	s := m.Snapshot()
	if s.Frames != 0 || s.Keys != 0 {
		t.Errorf("after Reset Frames, Keys = %d, %d, want 0, 0", s.Frames, s.Keys)
	}
}

func TestMetricsString(t *testing.T) {
	m := NewMetrics()
	for range 1200 {
		m.RecordCommand()
	}
	s := m.Snapshot().String()
	if !strings.Contains(s, "1,200 commands") {
		t.Errorf("String() = %q, want it to contain %q", s, "1,200 commands")
	}
}

func TestTimer(t *testing.T) {
	tm := StartTimer()
	time.Sleep(time.Millisecond)
	if d := tm.Stop(); d < time.Millisecond {
		t.Errorf("Stop() = %v, want >= 1ms", d)
	}
	if d := tm.Elapsed(); d > time.Second {
		t.Errorf("Elapsed() after Stop = %v, want a fresh start", d)
	}
}
