package column

import (
	"errors"
	"testing"
	"time"
)

func TestLookupType(t *testing.T) {
	for _, name := range []string{"", "str", "int", "float", "currency", "date"} {
		typ, err := LookupType(name)
		if err != nil {
			t.Errorf("LookupType(%q): %v", name, err)
			continue
		}
		if typ.Name() != name {
			t.Errorf("expected name %q, got %q", name, typ.Name())
		}
	}
	if _, err := LookupType("complex"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestTypeIcons(t *testing.T) {
	tests := map[*Type]string{
		String:   "~",
		Date:     "@",
		Int:      "#",
		Currency: "$",
		Float:    "%",
		Any:      " ",
	}
	for typ, icon := range tests {
		if typ.Icon() != icon {
			t.Errorf("%s: expected icon %q, got %q", typ.Name(), icon, typ.Icon())
		}
	}
}

func TestCurrencyStripsEdges(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$12.50", 12.5},
		{"12.50€", 12.5},
		{"  -3 ", -3},
		{"(1e3)", 1000},
	}
	for _, tt := range tests {
		got, err := Currency.Convert(tt.in)
		if err != nil {
			t.Errorf("Convert(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Convert(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
	if _, err := Currency.Convert("$"); err == nil {
		t.Error("expected error for value with no digits")
	}
}

func TestDateConvert(t *testing.T) {
	got, err := Date.Convert("2023-11-02")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	d := got.(time.Time)
	if d.Year() != 2023 || d.Month() != time.November || d.Day() != 2 {
		t.Errorf("expected 2023-11-02, got %v", d)
	}

	got, err = Date.Convert(int64(0))
	if err != nil {
		t.Fatalf("Convert(0): %v", err)
	}
	if !got.(time.Time).Equal(time.Unix(0, 0)) {
		t.Errorf("expected unix epoch, got %v", got)
	}

	if _, err := Date.Convert("not a date"); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b any
		want int
	}{
		{int64(1), int64(2), -1},
		{2.5, int64(2), 1},
		{"b", "a", 1},
		{nil, "a", -1},
		{"a", nil, 1},
		{nil, nil, 0},
		{time.Unix(5, 0), time.Unix(5, 0), 0},
		{int64(10), "9", -1},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
	if got := CompareAll([]any{"a", int64(2)}, []any{"a", int64(1)}); got != 1 {
		t.Errorf("CompareAll: expected 1, got %d", got)
	}
}
