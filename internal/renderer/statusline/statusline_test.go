package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/sheetstorm/internal/renderer/backend"
)

func TestLeftRight(t *testing.T) {
	s := New(DefaultOptions())
	s.SetSheet("items", 42)
	s.SetStatuses([]string{"sorted", "copied \"x\""})

	if got, want := s.Left(), `items| sorted | copied "x"`; got != want {
		t.Errorf("Left() = %q, want %q", got, want)
	}
	if got := s.Right(); got != "42 rows" {
		t.Errorf("Right() = %q, want %q", got, "42 rows")
	}

	s.SetKeys("g")
	s.SetProgress(7)
	if got := s.Right(); got != "g  7%" {
		t.Errorf("Right() loading = %q, want %q", got, "g  7%")
	}
}

func TestRender(t *testing.T) {
	b := backend.NewNullBackend(30, 1)
	b.Init()
	s := New(DefaultOptions())
	s.Resize(30)
	s.SetSheet("data", 3)
	s.SetStatuses([]string{"hello"})
	s.Render(b, 0)

	if got, want := b.Line(0), "data| hello"+strings.Repeat(" ", 13)+"3 rows"; got != want {
		t.Errorf("Line(0) = %q, want %q", got, want)
	}
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor visible outside edit mode")
	}
}

func TestRenderClipsLeft(t *testing.T) {
	b := backend.NewNullBackend(16, 1)
	b.Init()
	s := New(DefaultOptions())
	s.Resize(16)
	s.SetSheet("a", 1)
	s.SetStatuses([]string{"a very long message"})
	s.Render(b, 0)

	if got, want := b.Line(0), "a| a ver… 1 rows"; got != want {
		t.Errorf("Line(0) = %q, want %q", got, want)
	}
}

func TestRenderEdit(t *testing.T) {
	b := backend.NewNullBackend(12, 1)
	b.Init()
	s := New(DefaultOptions())
	s.Resize(12)
	s.SetEdit(&Edit{Prompt: "> ", Text: "abc", Cursor: 1})
	s.Render(b, 0)

	if got, want := b.Line(0), "> abc_______"; got != want {
		t.Errorf("Line(0) = %q, want %q", got, want)
	}
	x, y, visible := b.CursorPosition()
	if !visible || x != 3 || y != 0 {
		t.Errorf("cursor = (%d,%d,%v), want (3,0,true)", x, y, visible)
	}
}

func TestRenderEditScrolls(t *testing.T) {
	b := backend.NewNullBackend(8, 1)
	b.Init()
	s := New(DefaultOptions())
	s.Resize(8)
	s.SetEdit(&Edit{Prompt: "/", Text: "abcdefghij", Cursor: 10})
	s.Render(b, 0)

	if got, want := b.Line(0), "/efghij_"; got != want {
		t.Errorf("Line(0) = %q, want %q", got, want)
	}
	if x, _, _ := b.CursorPosition(); x != 7 {
		t.Errorf("cursor x = %d, want 7", x)
	}
}
