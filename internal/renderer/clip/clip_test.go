package clip

import "testing"

func TestClip(t *testing.T) {
	o := DefaultOptions()

	tests := []struct {
		name  string
		in    string
		width int
		want  string
		w     int
	}{
		{"fits", "hello", 10, "hello", 5},
		{"exact", "hello", 5, "hello", 5},
		{"truncated", "hello world", 6, "hello…", 6},
		{"wide chars", "世界世界", 5, "世界…", 5},
		{"tab substituted", "a\tb", 5, "a·b", 3},
		{"nbsp substituted", "a\u00a0b", 5, "a·b", 3},
		{"zero width", "abc", 0, "", 0},
		{"width one", "abc", 1, "…", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, w := Clip(tt.in, tt.width, o)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if w != tt.w {
				t.Errorf("expected width %d, got %d", tt.w, w)
			}
		})
	}
}

func TestAmbiguousWidth(t *testing.T) {
	narrow := DefaultOptions()
	wide := DefaultOptions()
	wide.AmbigWidth = 2

	// U+00B1 PLUS-MINUS SIGN is East Asian ambiguous
	if got := Width("±", narrow); got != 1 {
		t.Errorf("expected narrow width 1, got %d", got)
	}
	if got := Width("±", wide); got != 2 {
		t.Errorf("expected wide width 2, got %d", got)
	}
}

func TestSanitizeKeepsSpace(t *testing.T) {
	if got := Sanitize("a b", DefaultOptions()); got != "a b" {
		t.Errorf("expected %q, got %q", "a b", got)
	}
}
