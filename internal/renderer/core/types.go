// Package core holds the cell, color and attribute values shared by the
// renderer, the style composer and the terminal backends.
package core

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attribute is a set of text attributes.
type Attribute uint16

// Attributes a color string can name.
const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
)

var attrNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrDim, "dim"},
	{AttrItalic, "italic"},
	{AttrUnderline, "underline"},
	{AttrBlink, "blink"},
	{AttrReverse, "reverse"},
}

// Has reports whether a includes every bit of attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a plus attr.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a minus attr.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// String names the attributes in color-string form, "normal" for none.
func (a Attribute) String() string {
	var names []string
	for _, n := range attrNames {
		if a.Has(n.attr) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "normal"
	}
	return strings.Join(names, " ")
}

// Color is a palette index, a 24-bit color, or the terminal default.
type Color struct {
	// R holds the palette index when Indexed is set.
	R, G, B uint8
	Indexed bool
	Default bool
}

// ColorDefault is the terminal's own foreground or background.
var ColorDefault = Color{Default: true}

// ColorFromRGB returns a 24-bit color.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex returns a 256-color palette entry.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// IsDefault reports whether c is the terminal default.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals compares the meaningful fields of two colors.
func (c Color) Equals(other Color) bool {
	switch {
	case c.Default || other.Default:
		return c.Default == other.Default
	case c.Indexed || other.Indexed:
		return c.Indexed == other.Indexed && c.R == other.R
	}
	return c == other
}

func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style is the look of one cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal colors and no attributes.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns s with fg as its foreground.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithAttributes returns s with attrs added.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes |= attrs
	return s
}

// Equals compares two styles.
func (s Style) Equals(other Style) bool {
	return s.Attributes == other.Attributes &&
		s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background)
}

// IsDefault reports whether s is DefaultStyle.
func (s Style) IsDefault() bool {
	return s.Equals(DefaultStyle())
}

// Cell is one screen position. A zero Width marks the second half of a
// wide rune.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// EmptyCell is a blank in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewStyledCell returns a cell for r measured with RuneWidth.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// Equals compares two cells.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune && c.Width == other.Width && c.Style.Equals(other.Style)
}

// RuneWidth is the number of terminal columns r occupies.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}
