package column

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Type converts raw values for a column. Zero yields the default value used
// when a getter or conversion fails; Convert yields the typed value or an
// error.
type Type struct {
	name    string
	icon    string
	numeric bool
	zero    func() any
	convert func(v any) (any, error)
}

// NewType creates a custom column type.
func NewType(name, icon string, zero func() any, convert func(v any) (any, error)) *Type {
	return &Type{name: name, icon: icon, zero: zero, convert: convert}
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Icon returns the single-character header indicator.
func (t *Type) Icon() string { return t.icon }

// Numeric reports whether values of this type are right-justified.
func (t *Type) Numeric() bool { return t.numeric }

// Zero returns the type's default value.
func (t *Type) Zero() any { return t.zero() }

// Convert converts raw to this type.
func (t *Type) Convert(raw any) (any, error) {
	v, err := t.convert(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s(%q): %v", ErrConversion, t.name, ToString(raw), err)
	}
	return v, nil
}

// Built-in types.
var (
	Any = &Type{name: "", icon: " ", zero: func() any { return "" },
		convert: func(v any) (any, error) { return ToString(v), nil }}
	String = &Type{name: "str", icon: "~", zero: func() any { return "" },
		convert: func(v any) (any, error) { return ToString(v), nil }}
	Int = &Type{name: "int", icon: "#", numeric: true, zero: func() any { return int64(0) },
		convert: toInt}
	Float = &Type{name: "float", icon: "%", numeric: true, zero: func() any { return float64(0) },
		convert: toFloat}
	Currency = &Type{name: "currency", icon: "$", numeric: true, zero: func() any { return float64(0) },
		convert: toCurrency}
	Date = &Type{name: "date", icon: "@", zero: func() any { return time.Time{} },
		convert: toDate}
)

var (
	typesMu sync.RWMutex
	types   = map[string]*Type{
		"":         Any,
		"any":      Any,
		"str":      String,
		"int":      Int,
		"float":    Float,
		"currency": Currency,
		"date":     Date,
	}
)

// RegisterType makes t available to LookupType under its name.
func RegisterType(t *Type) {
	typesMu.Lock()
	defer typesMu.Unlock()
	types[t.name] = t
}

// LookupType returns the type registered under name.
func LookupType(name string) (*Type, error) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := types[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// ToString renders v in its natural string form.
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return DecodeBytes(x)
	case fmt.Stringer:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case time.Time:
		return x.Format(time.DateTime)
	default:
		return fmt.Sprint(v)
	}
}

func toInt(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, strconv.ErrRange
		}
		return int64(x), nil
	case float32:
		return int64(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, strconv.ErrRange
		}
		return int64(x), nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case time.Time:
		return x.Unix(), nil
	case nil:
		return nil, strconv.ErrSyntax
	default:
		return strconv.ParseInt(strings.TrimSpace(ToString(v)), 10, 64)
	}
}

func toFloat(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		i, err := toInt(x)
		if err != nil {
			return nil, err
		}
		return float64(i.(int64)), nil
	case time.Time:
		return float64(x.UnixNano()) / 1e9, nil
	case nil:
		return nil, strconv.ErrSyntax
	default:
		return strconv.ParseFloat(strings.TrimSpace(ToString(v)), 64)
	}
}

func toCurrency(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return toFloat(v)
	}
	chars := CurrentDisplay().FloatChars
	keep := func(r rune) bool { return !strings.ContainsRune(chars, r) }
	s = strings.TrimRightFunc(strings.TrimLeftFunc(s, keep), keep)
	if s == "" {
		return nil, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	time.Kitchen,
}

func toDate(v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		i, err := toInt(x)
		if err != nil {
			return nil, err
		}
		return time.Unix(i.(int64), 0), nil
	case float32, float64:
		f, _ := toFloat(x)
		sec, frac := math.Modf(f.(float64))
		return time.Unix(int64(sec), int64(frac*1e9)), nil
	case nil:
		return nil, strconv.ErrSyntax
	}

	s := strings.TrimSpace(ToString(v))
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}
