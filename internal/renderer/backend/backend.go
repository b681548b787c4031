// Package backend abstracts the terminal: a cell grid to draw into, a
// cursor, and a queue of key and resize events.
package backend

import (
	"sync"
	"time"

	"github.com/dshills/sheetstorm/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event is one terminal event.
type Event struct {
	Type EventType

	// Key events
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize events
	Width, Height int
}

// Key is a keyboard key. Printable characters are KeyRune with Rune set.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	// KeyCtrl is a control chord; Rune holds the upper-case letter or symbol.
	KeyCtrl
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// ModMask is the set of modifiers held during a key event.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m includes mod.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is a display and input surface.
type Backend interface {
	// Init prepares the backend. No other method may be called first.
	Init() error
	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the screen dimensions in cells.
	Size() (width, height int)
	// SetCell writes one cell; positions off screen are ignored.
	SetCell(x, y int, cell core.Cell)
	// Clear blanks the screen.
	Clear()
	// Show flushes pending changes.
	Show()
	// Sync repaints the whole screen.
	Sync()

	ShowCursor(x, y int)
	HideCursor()

	// PollEvent waits up to timeout for the next event. ok is false when
	// the timeout elapsed first.
	PollEvent(timeout time.Duration) (ev Event, ok bool)
	// PostEvent queues a synthetic event.
	PostEvent(event Event)
}

// nullQueueSize bounds the events a NullBackend holds before dropping.
const nullQueueSize = 256

// NullBackend is an in-memory Backend for tests. Its cell grid can be read
// back with Line and GetCell, and keystrokes queued with PostKeys.
type NullBackend struct {
	mu      sync.Mutex
	width   int
	height  int
	cells   [][]core.Cell
	cursorX int
	cursorY int
	cursor  bool
	events  chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, nullQueueSize),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
	return nil
}

// reset fills the grid with empty cells; b.mu must be held.
func (b *NullBackend) reset() {
	b.cells = make([][]core.Cell, b.height)
	for y := range b.cells {
		row := make([]core.Cell, b.width)
		for x := range row {
			row[x] = core.EmptyCell()
		}
		b.cells[y] = row
	}
}

func (b *NullBackend) inside(x, y int) bool {
	return y >= 0 && y < len(b.cells) && x >= 0 && x < len(b.cells[y])
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inside(x, y) {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at (x, y), or an empty cell off screen.
func (b *NullBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inside(x, y) {
		return core.EmptyCell()
	}
	return b.cells[y][x]
}

// Line returns row y as text. Continuation cells of wide runes are skipped.
func (b *NullBackend) Line(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= len(b.cells) {
		return ""
	}
	rs := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		if c.Rune != 0 {
			rs = append(rs, c.Rune)
		}
	}
	return string(rs)
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *NullBackend) Show() {}

func (b *NullBackend) Sync() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY, b.cursor = x, y, true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = false
}

func (b *NullBackend) PollEvent(timeout time.Duration) (Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-b.events:
		return ev, true
	case <-timer.C:
		return Event{}, false
	}
}

// PostEvent queues event, dropping it when the queue is full.
func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

// CursorPosition returns where the cursor was last shown and whether it is
// visible.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursor
}

// Resize changes the dimensions, blanks the grid and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.reset()
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// PostKeys queues one key event per rune of s.
func (b *NullBackend) PostKeys(s string) {
	for _, r := range s {
		b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: r})
	}
}
