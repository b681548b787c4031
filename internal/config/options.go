// Package config holds the user-adjustable options: display markers,
// colors and behavior switches. Options load from a TOML file, can be set
// one at a time by name, and reload when the file changes.
package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Options is the complete option set. Field tags give each option its name
// and help text.
type Options struct {
	Debug         bool   `toml:"debug" help:"stop on uncaught errors"`
	ReadOnly      bool   `toml:"readonly" help:"disallow cell and column edits"`
	Encoding      string `toml:"encoding" help:"text encoding of sources"`
	CursesTimeout int    `toml:"curses_timeout" help:"milliseconds to wait for a keystroke"`
	DefaultWidth  int    `toml:"default_width" help:"maximum computed column width"`
	RegexFlags    string `toml:"regex_flags" help:"flags for search regexes (I for case-insensitive)"`
	CmdAfterEdit  string `toml:"cmd_after_edit" help:"keystroke to run after editing a cell"`
	TextWrap      bool   `toml:"textwrap" help:"wrap text on text sheets"`
	FloatChars    string `toml:"float_chars" help:"characters kept when parsing currency"`
	DateFormat    string `toml:"date_format" help:"strftime pattern for date display"`
	NullFilter    string `toml:"aggr_null_filter" help:"values aggregators skip: n(one), e(mpty), f(alse)"`

	SheetnameJoiner string `toml:"sheetname_joiner" help:"joins names of derived sheets"`

	DispTruncator   string `toml:"disp_truncator" help:"marks clipped text"`
	DispKeySep      string `toml:"disp_key_sep" help:"joins key values in status text"`
	DispFormatExc   string `toml:"disp_format_exc" help:"marks values of the wrong type"`
	DispGetterExc   string `toml:"disp_getter_exc" help:"marks cells whose getter failed"`
	DispEditFill    string `toml:"disp_edit_fill" help:"fills the rest of an edit field"`
	DispMoreLeft    string `toml:"disp_more_left" help:"marks columns off the left edge"`
	DispMoreRight   string `toml:"disp_more_right" help:"marks columns off the right edge"`
	DispColumnSep   string `toml:"disp_column_sep" help:"separates columns"`
	DispKeyColSep   string `toml:"disp_keycol_sep" help:"separates key columns"`
	DispErrorVal    string `toml:"disp_error_val" help:"shown for getter failures"`
	DispNone        string `toml:"disp_none" help:"shown for missing values"`
	DispStatusSep   string `toml:"disp_status_sep" help:"separates status messages"`
	DispUnprintable string `toml:"disp_unprintable" help:"replaces unprintable characters"`
	DispColumnFill  string `toml:"disp_column_fill" help:"pads cells"`
	DispOddSpace    string `toml:"disp_oddspace" help:"replaces control and odd space characters"`
	DispAmbigWidth  int    `toml:"disp_ambig_width" help:"width of East Asian ambiguous characters"`
	DispStatusFmt   string `toml:"disp_status_fmt" help:"left status prefix; {name} is the sheet name"`

	ColorCurrentRow  string `toml:"color_current_row" help:"cursor row"`
	ColorDefault     string `toml:"color_default" help:"ordinary cells"`
	ColorSelectedRow string `toml:"color_selected_row" help:"selected rows"`
	ColorFormatExc   string `toml:"color_format_exc" help:"wrong-type marker"`
	ColorGetterExc   string `toml:"color_getter_exc" help:"getter failure marker"`
	ColorCurrentCol  string `toml:"color_current_col" help:"cursor column"`
	ColorCurrentHdr  string `toml:"color_current_hdr" help:"cursor column header"`
	ColorKeyCol      string `toml:"color_key_col" help:"key columns"`
	ColorDefaultHdr  string `toml:"color_default_hdr" help:"column headers"`
	ColorColumnSep   string `toml:"color_column_sep" help:"column separators"`
	ColorStatus      string `toml:"color_status" help:"status line"`
	ColorEditCell    string `toml:"color_edit_cell" help:"cell being edited"`
}

// DefaultOptions returns the built-in option values.
func DefaultOptions() Options {
	return Options{
		Encoding:      "utf-8",
		CursesTimeout: 100,
		DefaultWidth:  20,
		RegexFlags:    "I",
		CmdAfterEdit:  "j",
		TextWrap:      true,
		FloatChars:    "+-0123456789.eE_",
		DateFormat:    "%Y-%m-%d %H:%M:%S",
		NullFilter:    "none",

		SheetnameJoiner: "~",

		DispTruncator:   "…",
		DispKeySep:      "/",
		DispFormatExc:   "?",
		DispGetterExc:   "!",
		DispEditFill:    "_",
		DispMoreLeft:    "<",
		DispMoreRight:   ">",
		DispColumnSep:   "|",
		DispKeyColSep:   "‖",
		DispErrorVal:    "¿",
		DispNone:        "",
		DispStatusSep:   " | ",
		DispUnprintable: ".",
		DispColumnFill:  " ",
		DispOddSpace:    "·",
		DispAmbigWidth:  1,
		DispStatusFmt:   "{name}| ",

		ColorCurrentRow:  "reverse",
		ColorDefault:     "normal",
		ColorSelectedRow: "215 yellow",
		ColorFormatExc:   "48 bold yellow",
		ColorGetterExc:   "red bold",
		ColorCurrentCol:  "bold",
		ColorCurrentHdr:  "reverse underline",
		ColorKeyCol:      "81 cyan",
		ColorDefaultHdr:  "bold underline",
		ColorColumnSep:   "246 blue",
		ColorStatus:      "bold",
		ColorEditCell:    "normal",
	}
}

// Info describes one option for display.
type Info struct {
	Name    string
	Value   string
	Default string
	Help    string
}

type field struct {
	index int
	help  string
}

var fields = func() map[string]field {
	t := reflect.TypeFor[Options]()
	m := make(map[string]field, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		m[f.Tag.Get("toml")] = field{index: i, help: f.Tag.Get("help")}
	}
	return m
}()

// Names returns every option name, sorted.
func Names() []string {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the value of the named option as a string.
func (o Options) Get(name string) (string, error) {
	f, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, name)
	}
	return fmt.Sprint(reflect.ValueOf(o).Field(f.index).Interface()), nil
}

// Set converts value to the named option's type and stores it.
func (o *Options) Set(name, value string) error {
	f, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSettingNotFound, name)
	}
	v := reflect.ValueOf(o).Elem().Field(f.index)
	switch v.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants a bool, got %q", ErrTypeMismatch, name, value)
		}
		v.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s wants an int, got %q", ErrTypeMismatch, name, value)
		}
		v.SetInt(int64(n))
	default:
		v.SetString(value)
	}
	return nil
}

// List returns every option with its current and default values.
func (o Options) List() []Info {
	defaults := DefaultOptions()
	out := make([]Info, 0, len(fields))
	for _, name := range Names() {
		cur, _ := o.Get(name)
		def, _ := defaults.Get(name)
		out = append(out, Info{Name: name, Value: cur, Default: def, Help: fields[name].help})
	}
	return out
}
