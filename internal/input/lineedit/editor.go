package lineedit

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/sheetstorm/internal/input/key"
)

// Result is the state of an edit after a key.
type Result int

const (
	// Continue means the edit is still in progress.
	Continue Result = iota
	// Accept means Enter was pressed.
	Accept
	// Abort means the edit was cancelled.
	Abort
)

// Editor edits one line of text.
type Editor struct {
	prompt  string
	initial []rune

	// buffer holds the text being typed.
	buffer []rune
	// cursorPos is the cursor position within buffer.
	cursorPos int
	overwrite bool
	literal   bool
	// touched is set after the first key that is not a plain insert.
	touched bool

	history []string
	// historyIndex is the current position in history (-1 = current input).
	historyIndex int
	savedBuffer  []rune
}

// New creates an editor prefilled with initial, the cursor at its end.
// history is walked with Up and Down, newest last.
func New(prompt, initial string, history []string) *Editor {
	buf := []rune(initial)
	return &Editor{
		prompt:       prompt,
		initial:      slices.Clone(buf),
		buffer:       buf,
		cursorPos:    len(buf),
		history:      history,
		historyIndex: -1,
	}
}

// Prompt returns the prompt text.
func (e *Editor) Prompt() string {
	return e.prompt
}

// Text returns the current text.
func (e *Editor) Text() string {
	return string(e.buffer)
}

// Cursor returns the cursor position in runes.
func (e *Editor) Cursor() int {
	return e.cursorPos
}

// Overwrite reports whether typed characters replace the ones under the
// cursor.
func (e *Editor) Overwrite() bool {
	return e.overwrite
}

// Feed applies one key.
func (e *Editor) Feed(k string) Result {
	if e.literal {
		e.literal = false
		e.insertRune(literalRune(k))
		return Continue
	}

	first := !e.touched
	e.touched = true

	switch k {
	case key.Enter:
		return Accept
	case key.Escape, key.Interrupt:
		return Abort
	case key.Home, "^A":
		e.cursorPos = 0
	case key.End, "^E":
		e.cursorPos = len(e.buffer)
	case key.Left, "^B":
		e.cursorPos = max(e.cursorPos-1, 0)
	case key.Right, "^F":
		e.cursorPos = min(e.cursorPos+1, len(e.buffer))
	case key.Backspace, "^H":
		if e.cursorPos > 0 {
			e.buffer = slices.Delete(e.buffer, e.cursorPos-1, e.cursorPos)
			e.cursorPos--
		}
	case key.Delete, "^D":
		if e.cursorPos < len(e.buffer) {
			e.buffer = slices.Delete(e.buffer, e.cursorPos, e.cursorPos+1)
		}
	case "^K":
		e.buffer = e.buffer[:e.cursorPos]
	case "^U":
		e.buffer = slices.Clone(e.buffer[e.cursorPos:])
		e.cursorPos = 0
	case "^R":
		e.setBuffer(slices.Clone(e.initial))
	case "^T":
		if e.cursorPos >= 2 {
			e.buffer[e.cursorPos-2], e.buffer[e.cursorPos-1] = e.buffer[e.cursorPos-1], e.buffer[e.cursorPos-2]
		}
	case "^V":
		e.literal = true
	case key.Insert:
		e.overwrite = !e.overwrite
	case key.Up:
		e.historyPrev()
	case key.Down:
		e.historyNext()
	default:
		r, size := utf8.DecodeRuneInString(k)
		if size != len(k) || !unicode.IsPrint(r) {
			return Continue
		}
		if first {
			e.buffer = e.buffer[:0]
			e.cursorPos = 0
		}
		e.insertRune(r)
	}
	return Continue
}

// literalRune maps a key name to the character ^V inserts: control names
// become control characters, other multi-rune names are dropped.
func literalRune(k string) rune {
	rs := []rune(k)
	switch {
	case len(rs) == 1:
		return rs[0]
	case len(rs) == 2 && rs[0] == '^' && rs[1] >= '@' && rs[1] <= '_':
		return rs[1] - '@'
	}
	return utf8.RuneError
}

// insertRune inserts or overwrites a character at the cursor position.
func (e *Editor) insertRune(r rune) {
	if r == utf8.RuneError {
		return
	}
	if e.overwrite && e.cursorPos < len(e.buffer) {
		e.buffer[e.cursorPos] = r
	} else {
		e.buffer = slices.Insert(e.buffer, e.cursorPos, r)
	}
	e.cursorPos++
}

func (e *Editor) setBuffer(buf []rune) {
	e.buffer = buf
	e.cursorPos = len(buf)
}

// historyPrev moves to the previous history entry.
func (e *Editor) historyPrev() {
	if len(e.history) == 0 {
		return
	}
	switch {
	case e.historyIndex == -1:
		e.savedBuffer = slices.Clone(e.buffer)
		e.historyIndex = len(e.history) - 1
	case e.historyIndex > 0:
		e.historyIndex--
	default:
		return
	}
	e.setBuffer([]rune(e.history[e.historyIndex]))
}

// historyNext moves to the next history entry, restoring the typed text
// past the newest one.
func (e *Editor) historyNext() {
	if e.historyIndex == -1 {
		return
	}
	e.historyIndex++
	if e.historyIndex >= len(e.history) {
		e.historyIndex = -1
		e.setBuffer(e.savedBuffer)
		e.savedBuffer = nil
		return
	}
	e.setBuffer([]rune(e.history[e.historyIndex]))
}
