package renderer

import (
	"slices"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/renderer/backend"
	"github.com/dshills/sheetstorm/internal/renderer/clip"
	"github.com/dshills/sheetstorm/internal/renderer/core"
	"github.com/dshills/sheetstorm/internal/renderer/statusline"
	"github.com/dshills/sheetstorm/internal/renderer/style"
	"github.com/dshills/sheetstorm/internal/renderer/viewport"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Options configures what the renderer draws besides the sheet's own color
// rules.
type Options struct {
	ColumnSep  string
	KeyColSep  string
	MoreLeft   string
	MoreRight  string
	ColumnFill string
	FormatExc  string
	GetterExc  string

	// Color strings, parsed with style.Parse.
	ColorColumnSep string
	ColorFormatExc string
	ColorGetterExc string

	Clip   clip.Options
	Status statusline.Options
}

// DefaultOptions returns the built-in renderer settings.
func DefaultOptions() Options {
	return Options{
		ColumnSep:      "|",
		KeyColSep:      "‖",
		MoreLeft:       "<",
		MoreRight:      ">",
		ColumnFill:     " ",
		FormatExc:      "?",
		GetterExc:      "!",
		ColorColumnSep: "246 blue",
		ColorFormatExc: "48 bold yellow",
		ColorGetterExc: "red bold",
		Clip:           clip.DefaultOptions(),
		Status:         statusline.DefaultOptions(),
	}
}

// Frame is everything one screen shows.
type Frame struct {
	// Sheet is the visible sheet; nil draws only the status line.
	Sheet *sheet.Sheet
	// Statuses are the messages posted since the last keystroke.
	Statuses []string
	// Keys is the pending prefix keystroke buffer.
	Keys string
	// Edit is the active line edit, or nil.
	Edit *statusline.Edit
}

// Renderer draws frames onto a backend through a viewport.
type Renderer struct {
	mu sync.Mutex

	backend backend.Backend
	vp      *viewport.Viewport
	opts    Options
	status  *statusline.StatusLine

	frames uint64
}

// New creates a renderer.
func New(b backend.Backend, vp *viewport.Viewport, opts Options) *Renderer {
	return &Renderer{
		backend: b,
		vp:      vp,
		opts:    opts,
		status:  statusline.New(opts.Status),
	}
}

// SetOptions replaces the renderer settings.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
	r.status.SetOptions(opts.Status)
}

// Frames returns how many frames have been drawn.
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Draw lays out and draws f, then shows the result.
func (r *Renderer) Draw(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.vp.Width(), r.vp.Height()
	r.backend.Clear()

	r.status.SetSheet("", 0)
	r.status.SetProgress(-1)
	if sh := f.Sheet; sh != nil {
		r.drawSheet(sh, width)
		r.status.SetSheet(sh.Name(), sh.NRows())
		r.status.SetProgress(sh.ProgressPct())
	}

	r.status.SetStatuses(f.Statuses)
	r.status.SetKeys(f.Keys)
	r.status.SetEdit(f.Edit)
	r.status.Resize(width)
	r.status.Render(r.backend, height-1)

	r.backend.Show()
	r.frames++
}

// drawSheet draws the header line and the visible rows.
func (r *Renderer) drawSheet(sh *sheet.Sheet, width int) {
	l := r.vp.CalcColLayout(sh)
	vis := sh.VisibleColumns()
	nKeys := sh.NVisibleKeys()
	cur := sh.Cursor()

	order := make([]int, 0, len(l.Cols))
	for i := range l.Cols {
		if i < len(vis) {
			order = append(order, i)
		}
	}
	slices.Sort(order)

	sepStyle := style.NewAttr().Update(r.opts.ColorColumnSep, 0).Style
	for _, i := range order {
		r.drawHeader(sh, vis, i, l, nKeys, cur.LeftCol)
	}

	rows := sh.Rows()
	top := min(max(cur.TopRow, 0), len(rows))
	end := min(top+r.vp.NVisibleRows(), len(rows))
	for y, rw := range rows[top:end] {
		for _, i := range order {
			r.drawCell(sh, vis[i], rw, l.Cols[i], y+1)
		}
	}

	rowSeps := make([]core.Style, end-top)
	for y, rw := range rows[top:end] {
		a := sh.Colorizers.Resolve(sheet.Target{Sheet: sh, Row: rw}, style.ScopeRow)
		if rw == sh.CursorRow() {
			a = sheet.HighlightCursorRow(a)
		}
		rowSeps[y] = sepStyle
		if a.Colored() || a.Style.Attributes != 0 {
			rowSeps[y] = a.Style
		}
	}

	for _, i := range order {
		span := l.Cols[i]
		x := span.X + span.W
		if x >= width {
			continue
		}
		sep := r.opts.ColumnSep
		if nKeys > 0 && i == nKeys-1 {
			sep = r.opts.KeyColSep
		}
		backend.Print(r.backend, x, 0, width, sep, sepStyle)
		for y, st := range rowSeps {
			backend.Print(r.backend, x, y+1, width, sep, st)
		}
	}
}

// drawHeader draws a column name, adding the more-left marker on the first
// scrolled column and the more-right marker on the last laid-out column when
// columns remain beyond it.
func (r *Renderer) drawHeader(sh *sheet.Sheet, vis []*column.Column, i int, l sheet.Layout, nKeys, leftCol int) {
	col := vis[i]
	span := l.Cols[i]
	st := sh.Colorizers.Resolve(sheet.Target{Sheet: sh, Col: col}, style.ScopeHdr).Style

	name := col.Name()
	if i >= nKeys && i == leftCol && leftCol > nKeys {
		name = r.opts.MoreLeft + name
	}
	more := ""
	if i == l.RightCol && i < len(vis)-1 {
		more = r.opts.MoreRight
	}
	r.drawText(span, 0, name, more, st, st)
}

// drawCell draws one value with its wrong-type or getter-failure
// annotation at the right edge.
func (r *Renderer) drawCell(sh *sheet.Sheet, col *column.Column, rw *row.Row, span sheet.Span, y int) {
	cell := col.DisplayValue(rw, span.W)
	t := sheet.Target{Sheet: sh, Col: col, Row: rw, Value: cell}
	attr := sh.Colorizers.Resolve(t, style.ScopeRow, style.ScopeCol, style.ScopeCell)
	if rw == sh.CursorRow() {
		attr = sheet.HighlightCursorRow(attr)
	}

	note := cell.Annotation(r.opts.FormatExc, r.opts.GetterExc)
	noteAttr := attr
	switch cell.Kind {
	case column.KindWrongType:
		noteAttr = attr.Update(r.opts.ColorFormatExc, attr.Precedence+1)
	case column.KindError:
		noteAttr = attr.Update(r.opts.ColorGetterExc, attr.Precedence+1)
	}
	r.drawText(span, y, cell.Text, note, attr.Style, noteAttr.Style)
}

// drawText fills span with text clipped to leave room for suffix, padding
// with the column fill, and draws suffix flush right.
func (r *Renderer) drawText(span sheet.Span, y int, text, suffix string, st, suffixStyle core.Style) {
	if span.W <= 0 {
		return
	}
	sw := runewidth.StringWidth(suffix)
	if sw >= span.W {
		suffix, sw = "", 0
	}
	clipped, w := clip.Clip(text, span.W-sw, r.opts.Clip)

	fill := ' '
	if rs := []rune(r.opts.ColumnFill); len(rs) > 0 {
		fill = rs[0]
	}
	limit := span.X + span.W
	n := backend.Print(r.backend, span.X, y, limit, clipped, st)
	backend.Fill(r.backend, span.X+n, y, span.W-sw-max(n, w), fill, st)
	if suffix != "" {
		backend.Print(r.backend, limit-sw, y, limit, suffix, suffixStyle)
	}
}
