package backend

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/sheetstorm/internal/renderer/core"
)

// Print draws s at (x, y) in one style and returns the number of cells
// written. Wide runes take two cells; the second holds a zero continuation
// cell. Drawing stops before a rune that would cross limit.
func Print(b Backend, x, y, limit int, s string, style core.Style) int {
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		b.SetCell(x, y, core.Cell{Rune: r, Width: w, Style: style})
		if w == 2 {
			b.SetCell(x+1, y, core.Cell{})
		}
		x += w
	}
	return x - start
}

// Fill draws n copies of r starting at (x, y).
func Fill(b Backend, x, y, n int, r rune, style core.Style) {
	for i := range n {
		b.SetCell(x+i, y, core.NewStyledCell(r, style))
	}
}
