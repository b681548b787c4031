package sheet

import (
	"sync/atomic"

	"github.com/dshills/sheetstorm/internal/renderer/style"
)

// Theme holds the color strings used by the default color rules.
type Theme struct {
	Default     string
	DefaultHdr  string
	CurrentHdr  string
	CurrentCol  string
	CurrentRow  string
	KeyCol      string
	SelectedRow string
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	return Theme{
		Default:     "normal",
		DefaultHdr:  "bold underline",
		CurrentHdr:  "reverse underline",
		CurrentCol:  "bold",
		CurrentRow:  "reverse",
		KeyCol:      "81 cyan",
		SelectedRow: "215 yellow",
	}
}

var theme atomic.Pointer[Theme]

func init() {
	t := DefaultTheme()
	theme.Store(&t)
}

// ConfigureTheme replaces the colors read by the default rules.
func ConfigureTheme(t Theme) {
	theme.Store(&t)
}

// CurrentTheme returns the active colors.
func CurrentTheme() Theme {
	return *theme.Load()
}

// CursorRowPrecedence is the precedence of the cursor row highlight. It is
// applied after every rule has been resolved, so no rule outranks it.
const CursorRowPrecedence = 1 << 30

// HighlightCursorRow applies the cursor row colors on top of a resolved
// attribute.
func HighlightCursorRow(a style.Attr) style.Attr {
	return a.Update(CurrentTheme().CurrentRow, CursorRowPrecedence)
}

// DefaultColorizers returns the standard header, column, cell and row rules.
// The cursor row is not among them; see HighlightCursorRow.
func DefaultColorizers() *style.Composer[Target] {
	c := style.NewComposer[Target]()
	c.Add(style.ScopeHdr, 0, func(Target) string { return CurrentTheme().DefaultHdr })
	c.Add(style.ScopeHdr, 9, func(t Target) string {
		if t.Col != nil && t.Col == t.Sheet.CursorColumn() {
			return CurrentTheme().CurrentHdr
		}
		return ""
	})
	c.Add(style.ScopeHdr, 8, keyColColor)
	c.Add(style.ScopeCol, 5, func(t Target) string {
		if t.Col != nil && t.Col == t.Sheet.CursorColumn() {
			return CurrentTheme().CurrentCol
		}
		return ""
	})
	c.Add(style.ScopeCol, 7, keyColColor)
	c.Add(style.ScopeCell, 2, func(Target) string { return CurrentTheme().Default })
	c.Add(style.ScopeRow, 8, func(t Target) string {
		if t.Row != nil && t.Sheet.IsSelected(t.Row) {
			return CurrentTheme().SelectedRow
		}
		return ""
	})
	return c
}

func keyColColor(t Target) string {
	if t.Col != nil && t.Sheet.IsKey(t.Col) {
		return CurrentTheme().KeyCol
	}
	return ""
}
