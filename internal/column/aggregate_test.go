package column

import (
	"errors"
	"testing"
)

func TestAggregators(t *testing.T) {
	vals := []any{int64(3), int64(1), int64(3), int64(5)}

	tests := []struct {
		name string
		want any
	}{
		{"min", int64(1)},
		{"max", int64(5)},
		{"avg", 3.0},
		{"sum", 12.0},
		{"distinct", int64(3)},
		{"count", int64(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := LookupAggregator(tt.name)
			if err != nil {
				t.Fatalf("LookupAggregator: %v", err)
			}
			got, err := a.Apply(vals)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAggregatorEmpty(t *testing.T) {
	for _, name := range []string{"min", "max", "avg"} {
		a, _ := LookupAggregator(name)
		if _, err := a.Apply(nil); !errors.Is(err, ErrNoValues) {
			t.Errorf("%s: expected ErrNoValues, got %v", name, err)
		}
	}
}

func TestUnknownAggregator(t *testing.T) {
	if _, err := LookupAggregator("median-ish"); !errors.Is(err, ErrUnknownAggregator) {
		t.Errorf("expected ErrUnknownAggregator, got %v", err)
	}
}

func TestFilterNull(t *testing.T) {
	vals := []any{nil, "", "a", int64(0), int64(2)}

	tests := []struct {
		filter string
		want   int
	}{
		// only the first letter counts, so "none" drops nils like "n"
		{"none", 4},
		{"", 5},
		{"keep", 5},
		{"n", 4},
		{"empties", 3},
		{"f", 2},
	}

	for _, tt := range tests {
		if got := len(FilterNull(vals, tt.filter)); got != tt.want {
			t.Errorf("FilterNull(%q): expected %d values, got %d", tt.filter, tt.want, got)
		}
	}
}

func TestAggregatorNamesOrder(t *testing.T) {
	names := AggregatorNames()
	want := []string{"min", "max", "avg", "sum", "distinct", "count"}
	if len(names) < len(want) {
		t.Fatalf("expected at least %d names, got %v", len(want), names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d]: expected %s, got %s", i, n, names[i])
		}
	}
}
