package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sheetstorm/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	events chan Event
	done   chan struct{}
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen), nil
}

// NewTerminalScreen wraps an existing screen, such as tcell's simulation screen.
func NewTerminalScreen(screen tcell.Screen) *Terminal {
	return newTerminal(screen)
}

func newTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	go t.pump()
	return nil
}

// pump forwards tcell events until the screen is finalized.
func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		out := convertEvent(ev)
		if out.Type == EventNone {
			continue
		}
		select {
		case t.events <- out:
		case <-t.done:
			return
		}
	}
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.done:
		return
	default:
	}
	close(t.done)
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	if cell.Width == 0 && cell.Rune == 0 {
		// continuation of a wide rune drawn to the left
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Sync()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) PollEvent(timeout time.Duration) (Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-t.events:
		return ev, true
	case <-timer.C:
		return Event{}, false
	case <-t.done:
		return Event{}, false
	}
}

func (t *Terminal) PostEvent(event Event) {
	select {
	case t.events <- event:
	default:
	}
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

// Suspend releases the terminal so a child process can use it.
func (t *Terminal) Suspend() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Suspend()
}

// Resume reclaims the terminal after Suspend.
func (t *Terminal) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Resume()
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(convertColor(s.Background))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrBlink) {
		style = style.Blink(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}

func convertColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKeyEvent(e)

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}

var namedKeys = map[tcell.Key]Key{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

var ctrlSymbols = map[tcell.Key]rune{
	tcell.KeyCtrlSpace:      '@',
	tcell.KeyCtrlBackslash:  '\\',
	tcell.KeyCtrlRightSq:    ']',
	tcell.KeyCtrlCarat:      '^',
	tcell.KeyCtrlUnderscore: '_',
}

// convertKeyEvent maps a tcell key event. Enter, Tab, Backspace and Escape
// share codes with ^M, ^I, ^H and ^[ so they are resolved by name first.
func convertKeyEvent(e *tcell.EventKey) Event {
	mod := convertMod(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyRune {
		r := e.Rune()
		if mod.Has(ModCtrl) {
			switch {
			case r >= 'a' && r <= 'z':
				return Event{Type: EventKey, Key: KeyCtrl, Rune: r - 'a' + 'A', Mod: mod}
			case r >= 'A' && r <= 'Z', r == '@', r == '\\', r == ']', r == '^', r == '_':
				return Event{Type: EventKey, Key: KeyCtrl, Rune: r, Mod: mod}
			}
		}
		return Event{Type: EventKey, Key: KeyRune, Rune: r, Mod: mod}
	}
	if named, ok := namedKeys[k]; ok {
		return Event{Type: EventKey, Key: named, Mod: mod}
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Event{Type: EventKey, Key: KeyCtrl, Rune: 'A' + rune(k-tcell.KeyCtrlA), Mod: mod}
	}
	if r, ok := ctrlSymbols[k]; ok {
		return Event{Type: EventKey, Key: KeyCtrl, Rune: r, Mod: mod}
	}
	return Event{Type: EventNone}
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}
