package column

import (
	"sync/atomic"
)

// Display holds the markers and formats applied while converting and
// rendering values. It is configured once from options and swapped
// atomically when options change.
type Display struct {
	// None is shown for nil raw values.
	None string
	// ErrorVal is shown when a getter fails.
	ErrorVal string
	// DateFormat is the strftime pattern for dates without a column format.
	DateFormat string
	// FloatChars are the characters kept when parsing currency.
	FloatChars string
	// NullFilter selects which values aggregators discard: n, e, f or none.
	NullFilter string
	// Encoding is the charset of byte values; empty means UTF-8.
	Encoding string
}

// DefaultDisplay returns the built-in display settings.
func DefaultDisplay() Display {
	return Display{
		None:       "",
		ErrorVal:   "¿",
		DateFormat: "%Y-%m-%d %H:%M:%S",
		FloatChars: "+-0123456789.eE_",
		NullFilter: "none",
		Encoding:   "utf-8",
	}
}

var (
	display  atomic.Pointer[Display]
	reporter atomic.Pointer[func(error)]
)

func init() {
	d := DefaultDisplay()
	display.Store(&d)
}

// Configure replaces the display settings used by every column.
func Configure(d Display) {
	display.Store(&d)
}

// CurrentDisplay returns the active display settings.
func CurrentDisplay() Display {
	return *display.Load()
}

// SetErrorReporter installs fn to receive value errors. Value errors never
// surface as status messages; the reporter only records them.
func SetErrorReporter(fn func(error)) {
	if fn == nil {
		reporter.Store(nil)
		return
	}
	reporter.Store(&fn)
}

func report(err error) {
	if fn := reporter.Load(); fn != nil {
		(*fn)(err)
	}
}

// Kind classifies a rendered cell.
type Kind uint8

const (
	// KindValue is a successfully formatted value.
	KindValue Kind = iota
	// KindNone is a nil raw value rendered as the None marker.
	KindNone
	// KindWrongType is a raw value the column type could not convert.
	KindWrongType
	// KindError is a getter failure rendered as the ErrorVal marker.
	KindError
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindNone:
		return "none"
	case KindWrongType:
		return "wrong-type"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Cell is the display form of one value.
type Cell struct {
	Text string
	Kind Kind
}

// String returns the display text.
func (c Cell) String() string {
	return c.Text
}

// Annotation returns the marker drawn at the right edge of the cell:
// formatExc for wrong-type cells, getterExc for getter failures, "" otherwise.
func (c Cell) Annotation(formatExc, getterExc string) string {
	switch c.Kind {
	case KindWrongType:
		return formatExc
	case KindError:
		return getterExc
	default:
		return ""
	}
}
