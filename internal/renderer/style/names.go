package style

import (
	"strconv"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/sheetstorm/internal/renderer/core"
)

var namedColors = map[string]uint8{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

var namedAttrs = map[string]core.Attribute{
	"normal":    core.AttrNone,
	"bold":      core.AttrBold,
	"dim":       core.AttrDim,
	"italic":    core.AttrItalic,
	"underline": core.AttrUnderline,
	"blink":     core.AttrBlink,
	"reverse":   core.AttrReverse,
	"standout":  core.AttrReverse | core.AttrBold,
}

// Spec is a parsed color string such as "215 yellow" or "bold underline".
// Colors lists every color token in order; the first takes effect.
type Spec struct {
	Colors     []core.Color
	Attributes core.Attribute
}

var specCache sync.Map // string -> Spec

// Parse splits a space-separated color string into colors and attributes.
// Tokens may be palette numbers (0-255), the eight basic color names,
// "#rrggbb" hex colors, or attribute names. Unknown tokens are ignored.
func Parse(s string) Spec {
	if v, ok := specCache.Load(s); ok {
		return v.(Spec)
	}

	var spec Spec
	for _, tok := range strings.Fields(s) {
		name := strings.ToLower(tok)
		if a, ok := namedAttrs[name]; ok {
			spec.Attributes |= a
			continue
		}
		if c, ok := ParseColor(name); ok {
			spec.Colors = append(spec.Colors, c)
		}
	}

	specCache.Store(s, spec)
	return spec
}

// ParseColor parses a single color token.
func ParseColor(name string) (core.Color, bool) {
	if idx, ok := namedColors[name]; ok {
		return core.ColorFromIndex(idx), true
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > 255 {
			return core.Color{}, false
		}
		return core.ColorFromIndex(uint8(n)), true
	}
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return core.Color{}, false
		}
		r, g, b := c.RGB255()
		return core.ColorFromRGB(r, g, b), true
	}
	return core.Color{}, false
}
