// Package statusline composes and draws the bottom line of the screen: the
// sheet name and pending status messages on the left, the keystroke buffer
// and row count or load progress on the right, or the line editor while a
// prompt is active.
package statusline

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/sheetstorm/internal/renderer/backend"
	"github.com/dshills/sheetstorm/internal/renderer/clip"
	"github.com/dshills/sheetstorm/internal/renderer/core"
)

// Options controls status line text and styles.
type Options struct {
	// Format prefixes the left side; {name} is replaced by the sheet name.
	Format string
	// Sep joins status messages.
	Sep string
	// EditFill pads the rest of the line editor field.
	EditFill string
	Style     core.Style
	EditStyle core.Style
	Clip      clip.Options
}

// DefaultOptions returns the built-in status line settings.
func DefaultOptions() Options {
	return Options{
		Format:    "{name}| ",
		Sep:       " | ",
		EditFill:  "_",
		Style:     core.DefaultStyle().WithAttributes(core.AttrBold),
		EditStyle: core.DefaultStyle(),
		Clip:      clip.DefaultOptions(),
	}
}

// Edit is an active line edit.
type Edit struct {
	Prompt string
	Text   string
	// Cursor is the rune offset of the caret in Text.
	Cursor int
}

// StatusLine holds what the bottom line shows.
type StatusLine struct {
	opts Options

	sheetName string
	statuses  []string
	keys      string
	nRows     int
	progress  int
	edit      *Edit
	width     int
}

// New creates a status line.
func New(opts Options) *StatusLine {
	return &StatusLine{opts: opts, progress: -1}
}

// SetOptions replaces the settings.
func (s *StatusLine) SetOptions(opts Options) {
	s.opts = opts
}

// SetSheet updates the sheet name and row count.
func (s *StatusLine) SetSheet(name string, nRows int) {
	s.sheetName = name
	s.nRows = nRows
}

// SetStatuses replaces the pending status messages.
func (s *StatusLine) SetStatuses(msgs []string) {
	s.statuses = msgs
}

// SetKeys updates the pending keystroke prefix.
func (s *StatusLine) SetKeys(keys string) {
	s.keys = keys
}

// SetProgress updates the load percentage; a negative value means idle.
func (s *StatusLine) SetProgress(pct int) {
	s.progress = pct
}

// SetEdit activates the line editor display; nil returns to status mode.
func (s *StatusLine) SetEdit(e *Edit) {
	s.edit = e
}

// Resize updates the line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Left returns the left status text.
func (s *StatusLine) Left() string {
	prefix := strings.ReplaceAll(s.opts.Format, "{name}", s.sheetName)
	return prefix + strings.Join(s.statuses, s.opts.Sep)
}

// Right returns the right status text.
func (s *StatusLine) Right() string {
	var parts []string
	if s.keys != "" {
		parts = append(parts, s.keys)
	}
	if s.progress >= 0 {
		parts = append(parts, fmt.Sprintf("%2d%%", s.progress))
	} else {
		parts = append(parts, fmt.Sprintf("%d rows", s.nRows))
	}
	return strings.Join(parts, " ")
}

// Render draws the status line at row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	if s.edit != nil {
		s.renderEdit(b, row)
		return
	}
	b.HideCursor()
	backend.Fill(b, 0, row, s.width, ' ', s.opts.Style)

	right := s.Right()
	rw := runewidth.StringWidth(right)
	left, _ := clip.Clip(s.Left(), s.width-rw-1, s.opts.Clip)
	backend.Print(b, 0, row, s.width, left, s.opts.Style)
	backend.Print(b, max(s.width-rw, 0), row, s.width, right, s.opts.Style)
}

// renderEdit draws prompt and field, scrolling the field so the caret stays
// visible, and places the terminal cursor on the caret.
func (s *StatusLine) renderEdit(b backend.Backend, row int) {
	e := s.edit
	st := s.opts.EditStyle
	backend.Fill(b, 0, row, s.width, ' ', st)

	x := backend.Print(b, 0, row, s.width, e.Prompt, st)
	field := []rune(e.Text)
	cursor := min(max(e.Cursor, 0), len(field))
	avail := s.width - x - 1

	start := 0
	for start < cursor && runewidth.StringWidth(string(field[start:cursor])) > avail {
		start++
	}
	caret := x + runewidth.StringWidth(string(field[start:cursor]))
	n := backend.Print(b, x, row, s.width, string(field[start:]), st)
	if fill := []rune(s.opts.EditFill); len(fill) > 0 {
		backend.Fill(b, x+n, row, s.width-x-n, fill[0], st)
	}
	b.ShowCursor(min(caret, s.width-1), row)
}
