package key

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/sheetstorm/internal/renderer/backend"
)

// Well-known key names.
const (
	Enter     = "^J"
	Escape    = "^["
	Interrupt = "^C"
	Quit      = "^Q"
	Tab       = "^I"
	Backspace = "KEY_BACKSPACE"
	Delete    = "KEY_DC"
	Insert    = "KEY_IC"
	Home      = "KEY_HOME"
	End       = "KEY_END"
	PageUp    = "KEY_PPAGE"
	PageDown  = "KEY_NPAGE"
	Up        = "KEY_UP"
	Down      = "KEY_DOWN"
	Left      = "KEY_LEFT"
	Right     = "KEY_RIGHT"
	Backtab   = "KEY_BTAB"
	Resize    = "KEY_RESIZE"
)

var specialNames = map[backend.Key]string{
	backend.KeyEnter:     Enter,
	backend.KeyTab:       Tab,
	backend.KeyEscape:    Escape,
	backend.KeyBacktab:   Backtab,
	backend.KeyBackspace: Backspace,
	backend.KeyDelete:    Delete,
	backend.KeyInsert:    Insert,
	backend.KeyHome:      Home,
	backend.KeyEnd:       End,
	backend.KeyPageUp:    PageUp,
	backend.KeyPageDown:  PageDown,
	backend.KeyUp:        Up,
	backend.KeyDown:      Down,
	backend.KeyLeft:      Left,
	backend.KeyRight:     Right,
}

var specialKeys = func() map[string]backend.Key {
	m := make(map[string]backend.Key, len(specialNames))
	for k, name := range specialNames {
		m[name] = k
	}
	return m
}()

// Name returns the key name for an event, or "" for events that carry no key.
func Name(ev backend.Event) string {
	switch ev.Type {
	case backend.EventResize:
		return Resize
	case backend.EventKey:
	default:
		return ""
	}

	switch ev.Key {
	case backend.KeyRune:
		return string(ev.Rune)
	case backend.KeyCtrl:
		return "^" + string(unicode.ToUpper(ev.Rune))
	}
	if ev.Key >= backend.KeyF1 && ev.Key <= backend.KeyF12 {
		return fmt.Sprintf("KEY_F(%d)", int(ev.Key-backend.KeyF1)+1)
	}
	return specialNames[ev.Key]
}

// Event converts a key name back into a backend key event.
func Event(name string) (backend.Event, error) {
	ev := backend.Event{Type: backend.EventKey}
	if k, ok := specialKeys[name]; ok {
		ev.Key = k
		return ev, nil
	}
	if strings.HasPrefix(name, "KEY_F(") && strings.HasSuffix(name, ")") {
		n, err := strconv.Atoi(name[len("KEY_F(") : len(name)-1])
		if err != nil || n < 1 || n > 12 {
			return backend.Event{}, fmt.Errorf("key: unknown function key %q", name)
		}
		ev.Key = backend.KeyF1 + backend.Key(n-1)
		return ev, nil
	}
	if name == Resize {
		return backend.Event{Type: backend.EventResize}, nil
	}

	rs := []rune(name)
	switch {
	case len(rs) == 1:
		ev.Key = backend.KeyRune
		ev.Rune = rs[0]
		return ev, nil
	case len(rs) == 2 && rs[0] == '^':
		ev.Key = backend.KeyCtrl
		ev.Rune = unicode.ToUpper(rs[1])
		return ev, nil
	}
	return backend.Event{}, fmt.Errorf("key: unknown key name %q", name)
}

// Events converts a sequence of key names.
func Events(names ...string) ([]backend.Event, error) {
	out := make([]backend.Event, 0, len(names))
	for _, n := range names {
		ev, err := Event(n)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// IsPrintable reports whether the key name is a single printable character.
func IsPrintable(name string) bool {
	rs := []rune(name)
	return len(rs) == 1 && unicode.IsPrint(rs[0])
}
