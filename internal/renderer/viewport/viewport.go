// Package viewport keeps a sheet's cursor on screen and computes which
// columns fit in the window.
//
// The four coordinates it manages live on the sheet (cursor row, cursor
// visible column, top row, left visible column). The window holds a header
// line and a status line, so a window of height h shows h-2 rows.
package viewport

import (
	"slices"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Options holds the display settings that affect layout.
type Options struct {
	// DefaultWidth is used for an unsized column while no rows are visible.
	DefaultWidth int
	// ColumnSep is drawn between columns.
	ColumnSep string
	// MoreLeft and MoreRight mark clipped columns; their widths pad
	// computed column widths.
	MoreLeft  string
	MoreRight string
}

// DefaultOptions returns the built-in layout settings.
func DefaultOptions() Options {
	return Options{
		DefaultWidth: 20,
		ColumnSep:    "|",
		MoreLeft:     "<",
		MoreRight:    ">",
	}
}

// Viewport is the window a sheet is drawn into.
type Viewport struct {
	mu     sync.RWMutex
	width  int
	height int
	opts   Options
}

// New creates a viewport of the given size. Sizes are clamped to at least
// one cell.
func New(width, height int, opts Options) *Viewport {
	return &Viewport{width: max(width, 1), height: max(height, 1), opts: opts}
}

// Width returns the window width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the window height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// Resize changes the window size.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetOptions replaces the layout settings.
func (v *Viewport) SetOptions(opts Options) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts = opts
}

// Options returns the layout settings.
func (v *Viewport) Options() Options {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.opts
}

// NVisibleRows returns how many data rows fit between header and status.
func (v *Viewport) NVisibleRows() int {
	return max(v.Height()-2, 1)
}

// CalcColLayout lays out the visible columns from the sheet's left column,
// always including key columns, and stores the result on the sheet.
func (v *Viewport) CalcColLayout(sh *sheet.Sheet) sheet.Layout {
	l := v.layout(sh, sh.Cursor())
	sh.SetLayout(l)
	return l
}

func (v *Viewport) layout(sh *sheet.Sheet, cur sheet.Cursor) sheet.Layout {
	opts := v.Options()
	winWidth := v.Width()
	minColWidth := runewidth.StringWidth(opts.MoreLeft) + runewidth.StringWidth(opts.MoreRight)
	sepWidth := runewidth.StringWidth(opts.ColumnSep)

	vis := sh.VisibleColumns()
	nKeys := sh.NVisibleKeys()
	rows := visibleRows(sh, cur.TopRow, v.NVisibleRows())

	l := sheet.Layout{Cols: make(map[int]sheet.Span), Rows: v.NVisibleRows(), Width: winWidth}
	x := 0
	for i, col := range vis {
		l.RightCol = i
		if col.Width() == column.WidthAuto && len(rows) > 0 {
			col.SetWidth(col.MaxWidth(rows) + minColWidth)
		}
		width := col.Width()
		if width == column.WidthAuto {
			width = opts.DefaultWidth
		}
		isKey := i < nKeys
		if isKey {
			width = max(width, 1)
		}
		if isKey || i >= cur.LeftCol {
			l.Cols[i] = sheet.Span{X: x, W: min(width, winWidth-x)}
			x += width + sepWidth
		}
		if x > winWidth-1 {
			break
		}
	}
	return l
}

func visibleRows(sh *sheet.Sheet, top, n int) []*row.Row {
	rows := sh.Rows()
	top = min(max(top, 0), len(rows))
	return rows[top:min(top+n, len(rows))]
}

// CheckCursor clamps the cursor to the sheet and scrolls so it is on
// screen. It runs after every command.
func (v *Viewport) CheckCursor(sh *sheet.Sheet) {
	cur := sh.Cursor()
	nRows := sh.NRows()
	nCols := len(sh.VisibleColumns())

	cur.Row = clamp(cur.Row, nRows)
	cur.Col = clamp(cur.Col, nCols)
	nVisible := v.NVisibleRows()
	// the last page stays full after a jump to the bottom
	cur.TopRow = min(max(cur.TopRow, 0), max(nRows-nVisible, 0))

	switch y := cur.Row - cur.TopRow; {
	case y < 0:
		cur.TopRow = cur.Row
	case y >= nVisible:
		cur.TopRow = cur.Row - nVisible + 1
	}

	if cur.Col-cur.LeftCol <= 0 {
		cur.LeftCol = cur.Col
	} else {
		winWidth := v.Width()
		for cur.LeftCol != cur.Col {
			l := v.layout(sh, cur)
			if len(l.Cols) == 0 {
				break
			}
			minIdx, maxIdx := spanBounds(l)
			if cur.Col < minIdx {
				cur.LeftCol--
				continue
			}
			if cur.Col > maxIdx {
				cur.LeftCol++
				continue
			}
			span := l.Cols[cur.Col]
			if span.X+span.W < winWidth {
				break
			}
			cur.LeftCol++
		}
	}

	sh.SetCursor(cur)
	v.CalcColLayout(sh)
}

func clamp(i, n int) int {
	if n == 0 || i <= 0 {
		return 0
	}
	return min(i, n-1)
}

func spanBounds(l sheet.Layout) (lo, hi int) {
	keys := make([]int, 0, len(l.Cols))
	for k := range l.Cols {
		keys = append(keys, k)
	}
	return slices.Min(keys), slices.Max(keys)
}

// PageRight scrolls one screen of columns right, putting the cursor on the
// previously rightmost column.
func (v *Viewport) PageRight(sh *sheet.Sheet) {
	l := v.CalcColLayout(sh)
	cur := sh.Cursor()
	cur.LeftCol = l.RightCol
	cur.Col = l.RightCol
	sh.SetCursor(cur)
	v.CalcColLayout(sh)
}

// PageLeft scrolls one screen of columns left so the previous leftmost
// column becomes the rightmost, moving the cursor in tandem. When the last
// column is already in view it keeps pulling columns in from the left while
// the rightmost column still fits at full width.
func (v *Viewport) PageLeft(sh *sheet.Sheet) {
	vis := sh.VisibleColumns()
	firstNonKey := sh.NVisibleKeys()
	if firstNonKey >= len(vis) {
		return
	}

	cur := sh.Cursor()
	target := cur.LeftCol
	l := v.layout(sh, cur)
	for l.RightCol != target && cur.LeftCol > firstNonKey {
		cur.Col--
		cur.LeftCol--
		l = v.layout(sh, cur)
	}

	if l.RightCol == len(vis)-1 {
		for cur.LeftCol > firstNonKey {
			right := vis[l.RightCol]
			if span, ok := l.Cols[l.RightCol]; ok && right.Width() > span.W {
				cur.Col++
				cur.LeftCol++
				break
			}
			cur.Col--
			cur.LeftCol--
			l = v.layout(sh, cur)
		}
	}

	sh.SetCursor(cur)
	v.CheckCursor(sh)
}
