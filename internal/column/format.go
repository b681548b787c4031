package column

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

// FormatValue converts raw to the column type and renders it. Dates use the
// column format as a strftime pattern (falling back to the configured date
// format); other types use the column format as a fmt pattern when set.
func (c *Column) FormatValue(raw any) (string, error) {
	if isComposite(raw) {
		return fmt.Sprintf("%T", raw), nil
	}

	t := c.Type()
	v, err := t.Convert(raw)
	if err != nil {
		return "", err
	}

	pattern := c.Format()
	if t == Date {
		if pattern == "" {
			pattern = CurrentDisplay().DateFormat
		}
		return strftime.Format(pattern, v.(time.Time)), nil
	}
	if pattern != "" {
		return fmt.Sprintf(pattern, v), nil
	}

	switch t {
	case Int:
		return strconv.FormatInt(v.(int64), 10), nil
	case Float:
		return strconv.FormatFloat(v.(float64), 'f', 2, 64), nil
	case Currency:
		return humanize.FormatFloat("#,###.##", v.(float64)), nil
	default:
		return ToString(v), nil
	}
}

// isComposite reports whether raw is a slice or map other than []byte.
// Such values can be arbitrarily large and render as their type name.
func isComposite(raw any) bool {
	if raw == nil {
		return false
	}
	if _, ok := raw.([]byte); ok {
		return false
	}
	switch reflect.TypeOf(raw).Kind() {
	case reflect.Slice, reflect.Map:
		return true
	default:
		return false
	}
}
