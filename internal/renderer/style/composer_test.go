package style

import (
	"testing"

	"github.com/dshills/sheetstorm/internal/renderer/core"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		colors []core.Color
		attrs  core.Attribute
	}{
		{"bold underline", nil, core.AttrBold | core.AttrUnderline},
		{"215 yellow", []core.Color{core.ColorFromIndex(215), core.ColorFromIndex(3)}, core.AttrNone},
		{"red bold", []core.Color{core.ColorFromIndex(1)}, core.AttrBold},
		{"#ff8000", []core.Color{core.ColorFromRGB(255, 128, 0)}, core.AttrNone},
		{"normal", nil, core.AttrNone},
		{"sparkly 999", nil, core.AttrNone},
	}

	for _, tt := range tests {
		spec := Parse(tt.in)
		if spec.Attributes != tt.attrs {
			t.Errorf("Parse(%q): expected attrs %b, got %b", tt.in, tt.attrs, spec.Attributes)
		}
		if len(spec.Colors) != len(tt.colors) {
			t.Errorf("Parse(%q): expected %d colors, got %d", tt.in, len(tt.colors), len(spec.Colors))
			continue
		}
		for i := range tt.colors {
			if !spec.Colors[i].Equals(tt.colors[i]) {
				t.Errorf("Parse(%q)[%d]: expected %s, got %s", tt.in, i, tt.colors[i], spec.Colors[i])
			}
		}
	}
}

func TestAttrUpdatePrecedence(t *testing.T) {
	a := NewAttr().Update("81 cyan", 8)
	if !a.Style.Foreground.Equals(core.ColorFromIndex(81)) {
		t.Fatalf("expected first color of string, got %s", a.Style.Foreground)
	}

	// equal precedence does not replace the color
	a = a.Update("red", 8)
	if !a.Style.Foreground.Equals(core.ColorFromIndex(81)) {
		t.Errorf("expected color kept at equal precedence, got %s", a.Style.Foreground)
	}

	// lower precedence only contributes attributes
	a = a.Update("blue underline", 2)
	if !a.Style.Foreground.Equals(core.ColorFromIndex(81)) {
		t.Errorf("expected color kept at lower precedence, got %s", a.Style.Foreground)
	}
	if !a.Style.Attributes.Has(core.AttrUnderline) {
		t.Error("expected underline accumulated")
	}

	a = a.Update("215 yellow bold", 10)
	if !a.Style.Foreground.Equals(core.ColorFromIndex(215)) {
		t.Errorf("expected higher precedence color, got %s", a.Style.Foreground)
	}
	if !a.Style.Attributes.Has(core.AttrBold) || !a.Style.Attributes.Has(core.AttrUnderline) {
		t.Errorf("expected bold|underline, got %b", a.Style.Attributes)
	}
}

type target struct {
	current bool
	key     bool
}

func TestComposerResolve(t *testing.T) {
	c := NewComposer[target]()
	c.Add(ScopeHdr, 0, func(target) string { return "bold underline" })
	c.Add(ScopeHdr, 9, func(tg target) string {
		if tg.current {
			return "reverse underline"
		}
		return ""
	})
	c.Add(ScopeHdr, 8, func(tg target) string {
		if tg.key {
			return "81 cyan"
		}
		return ""
	})
	c.Add(ScopeCol, 5, func(target) string { return "green" })

	got := c.Resolve(target{current: true, key: true}, ScopeHdr)
	if !got.Style.Foreground.Equals(core.ColorFromIndex(81)) {
		t.Errorf("expected key color, got %s", got.Style.Foreground)
	}
	want := core.AttrBold | core.AttrUnderline | core.AttrReverse
	if got.Style.Attributes != want {
		t.Errorf("expected attrs %b, got %b", want, got.Style.Attributes)
	}
	if got.Precedence != 8 {
		t.Errorf("expected precedence 8, got %d", got.Precedence)
	}

	plain := c.Resolve(target{}, ScopeHdr)
	if plain.Colored() {
		t.Errorf("expected no color, got %s", plain.Style.Foreground)
	}
}

func TestComposerClone(t *testing.T) {
	c := NewComposer[int]()
	c.Add(ScopeRow, 1, func(int) string { return "red" })
	cl := c.Clone()
	cl.Add(ScopeRow, 2, func(int) string { return "blue" })

	if len(c.Rules()) != 1 {
		t.Errorf("expected original to keep 1 rule, got %d", len(c.Rules()))
	}
	if len(cl.Rules()) != 2 {
		t.Errorf("expected clone to have 2 rules, got %d", len(cl.Rules()))
	}
}
