// Package clip fits strings into terminal cells.
package clip

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Options controls clipping.
type Options struct {
	// Truncator replaces the clipped tail.
	Truncator string
	// OddSpace replaces control characters and non-ASCII spaces.
	OddSpace string
	// AmbigWidth is the width of East Asian ambiguous characters (1 or 2).
	AmbigWidth int
}

// DefaultOptions returns the built-in clipping options.
func DefaultOptions() Options {
	return Options{Truncator: "…", OddSpace: "·", AmbigWidth: 1}
}

func (o Options) condition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = o.AmbigWidth >= 2
	return c
}

// isOdd reports whether r must be substituted before display.
func isOdd(r rune) bool {
	if r == ' ' {
		return false
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Zs, r) || unicode.Is(unicode.Zl, r)
}

// Sanitize replaces odd whitespace and control characters.
func Sanitize(s string, o Options) string {
	if !strings.ContainsFunc(s, isOdd) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if isOdd(r) {
			b.WriteString(o.OddSpace)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Width returns the display width of s after sanitizing.
func Width(s string, o Options) int {
	return o.condition().StringWidth(Sanitize(s, o))
}

// Clip sanitizes s and truncates it to at most width cells, ending with the
// truncator when anything was cut. It returns the clipped string and its
// display width.
func Clip(s string, width int, o Options) (string, int) {
	if width <= 0 {
		return "", 0
	}
	s = Sanitize(s, o)
	cond := o.condition()
	w := cond.StringWidth(s)
	if w <= width {
		return s, w
	}

	tw := cond.StringWidth(o.Truncator)
	if tw >= width {
		out := cond.Truncate(o.Truncator, width, "")
		return out, cond.StringWidth(out)
	}
	out := cond.Truncate(s, width, o.Truncator)
	return out, cond.StringWidth(out)
}
