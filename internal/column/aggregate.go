package column

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregator combines the values of a column for grouped summaries.
type Aggregator struct {
	name string
	typ  *Type
	fn   func(values []any) (any, error)
}

// NewAggregator creates an aggregator. A nil result type means the result
// keeps the aggregated column's type.
func NewAggregator(name string, result *Type, fn func(values []any) (any, error)) *Aggregator {
	return &Aggregator{name: name, typ: result, fn: fn}
}

// Name returns the aggregator name.
func (a *Aggregator) Name() string { return a.name }

// Type returns the result type, or nil when the result keeps the column type.
func (a *Aggregator) Type() *Type { return a.typ }

// Apply filters values per the configured null filter and combines them.
func (a *Aggregator) Apply(values []any) (any, error) {
	return a.fn(FilterNull(values, CurrentDisplay().NullFilter))
}

// FilterNull drops values according to filter: "n..." drops nils, "e..."
// drops nils and empty strings, "f..." drops zero values. Anything else
// keeps every value.
func FilterNull(values []any, filter string) []any {
	mode := strings.ToLower(filter)
	if mode == "" {
		return values
	}
	var keep func(v any) bool
	switch mode[0] {
	case 'n':
		keep = func(v any) bool { return v != nil }
	case 'e':
		keep = func(v any) bool { return v != nil && v != "" }
	case 'f':
		keep = func(v any) bool { return !isFalsy(v) }
	default:
		return values
	}
	out := make([]any, 0, len(values))
	for _, v := range values {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case int64:
		return x == 0
	case float64:
		return x == 0
	case bool:
		return !x
	default:
		return false
	}
}

var (
	aggMu       sync.RWMutex
	aggregators = map[string]*Aggregator{}
	aggOrder    []string
)

// RegisterAggregator makes a available by name. Re-registering a name
// replaces it in place.
func RegisterAggregator(a *Aggregator) {
	aggMu.Lock()
	defer aggMu.Unlock()
	if _, ok := aggregators[a.name]; !ok {
		aggOrder = append(aggOrder, a.name)
	}
	aggregators[a.name] = a
}

// LookupAggregator returns the aggregator registered under name.
func LookupAggregator(name string) (*Aggregator, error) {
	aggMu.RLock()
	defer aggMu.RUnlock()
	a, ok := aggregators[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAggregator, name)
	}
	return a, nil
}

// AggregatorNames returns registered names in registration order.
func AggregatorNames() []string {
	aggMu.RLock()
	defer aggMu.RUnlock()
	return slices.Clone(aggOrder)
}

func init() {
	RegisterAggregator(NewAggregator("min", nil, func(vals []any) (any, error) {
		if len(vals) == 0 {
			return nil, ErrNoValues
		}
		return slices.MinFunc(vals, Compare), nil
	}))
	RegisterAggregator(NewAggregator("max", nil, func(vals []any) (any, error) {
		if len(vals) == 0 {
			return nil, ErrNoValues
		}
		return slices.MaxFunc(vals, Compare), nil
	}))
	RegisterAggregator(NewAggregator("avg", Float, func(vals []any) (any, error) {
		fs, err := asFloats(vals)
		if err != nil {
			return nil, err
		}
		if len(fs) == 0 {
			return nil, ErrNoValues
		}
		return stat.Mean(fs, nil), nil
	}))
	RegisterAggregator(NewAggregator("sum", nil, func(vals []any) (any, error) {
		fs, err := asFloats(vals)
		if err != nil {
			return nil, err
		}
		return floats.Sum(fs), nil
	}))
	RegisterAggregator(NewAggregator("distinct", Int, func(vals []any) (any, error) {
		seen := make(map[string]struct{}, len(vals))
		for _, v := range vals {
			seen[fmt.Sprintf("%T:%v", v, v)] = struct{}{}
		}
		return int64(len(seen)), nil
	}))
	RegisterAggregator(NewAggregator("count", Int, func(vals []any) (any, error) {
		return int64(len(vals)), nil
	}))
}

func asFloats(vals []any) ([]float64, error) {
	fs := make([]float64, len(vals))
	for i, v := range vals {
		f, err := Float.Convert(v)
		if err != nil {
			return nil, err
		}
		fs[i] = f.(float64)
	}
	return fs, nil
}
