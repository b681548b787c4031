// Package column implements typed column accessors: raw-value extraction,
// type conversion, display formatting and bounded display caching.
package column

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/sheetstorm/internal/row"
)

// WidthAuto marks a column whose width is computed from the visible rows
// on the next layout.
const WidthAuto = -1

// Getter extracts the raw value of a column from a row.
type Getter func(r *row.Row) (any, error)

// Setter stores a converted value into a row.
type Setter func(r *row.Row, v any) error

// Column is a named, typed accessor over a sheet's rows.
type Column struct {
	mu sync.RWMutex

	name       string
	typ        *Type
	getter     Getter
	setter     Setter
	width      int
	format     string
	aggregator *Aggregator
	expr       string
	cache      *Cache
}

// Option configures a Column.
type Option func(*Column)

// WithType sets the column type.
func WithType(t *Type) Option {
	return func(c *Column) { c.typ = t }
}

// WithSetter makes the column editable.
func WithSetter(s Setter) Option {
	return func(c *Column) { c.setter = s }
}

// WithWidth sets an explicit width. Zero hides the column.
func WithWidth(w int) Option {
	return func(c *Column) { c.width = w }
}

// WithFormat sets the format pattern: a fmt verb pattern, or a strftime
// pattern for date columns.
func WithFormat(f string) Option {
	return func(c *Column) { c.format = f }
}

// WithCache enables display caching with the given capacity.
func WithCache(capacity int) Option {
	return func(c *Column) { c.cache = NewCache(capacity) }
}

// WithExpr records the expression a computed column was built from.
func WithExpr(expr string) Option {
	return func(c *Column) { c.expr = expr }
}

// New creates a column. A nil getter returns the row data unchanged.
func New(name string, getter Getter, opts ...Option) *Column {
	if getter == nil {
		getter = func(r *row.Row) (any, error) { return r.Data, nil }
	}
	c := &Column{
		name:   name,
		typ:    Any,
		getter: getter,
		width:  WidthAuto,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.typ == nil {
		c.typ = Any
	}
	return c
}

// Name returns the column name.
func (c *Column) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// SetName renames the column.
func (c *Column) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// Type returns the column type.
func (c *Column) Type() *Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.typ
}

// SetType changes the column type; nil reverts to Any. Cached display
// values are dropped.
func (c *Column) SetType(t *Type) {
	if t == nil {
		t = Any
	}
	c.mu.Lock()
	c.typ = t
	c.mu.Unlock()
	c.Recalc()
}

// Width returns the display width, WidthAuto when unset.
func (c *Column) Width() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width
}

// SetWidth sets the display width.
func (c *Column) SetWidth(w int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = w
}

// Hidden reports whether the column has zero width.
func (c *Column) Hidden() bool {
	return c.Width() == 0
}

// ToggleWidth sets the width to w, or to defaultWidth if it is already w.
func (c *Column) ToggleWidth(w, defaultWidth int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.width != w {
		c.width = w
	} else {
		c.width = defaultWidth
	}
}

// Format returns the format pattern.
func (c *Column) Format() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.format
}

// SetFormat sets the format pattern. Cached display values are dropped.
func (c *Column) SetFormat(f string) {
	c.mu.Lock()
	c.format = f
	c.mu.Unlock()
	c.Recalc()
}

// Aggregator returns the aggregator, or nil.
func (c *Column) Aggregator() *Aggregator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.aggregator
}

// SetAggregator sets the aggregator; nil clears it.
func (c *Column) SetAggregator(a *Aggregator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aggregator = a
}

// Expr returns the expression of a computed column.
func (c *Column) Expr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expr
}

// ReadOnly reports whether the column lacks a setter.
func (c *Column) ReadOnly() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.setter == nil
}

// Cache returns the display cache, or nil when caching is disabled.
func (c *Column) Cache() *Cache {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache
}

// Recalc drops all cached display values.
func (c *Column) Recalc() {
	if cache := c.Cache(); cache != nil {
		cache.Clear()
	}
}

// Copy returns an independent column with the same accessors and display
// attributes and an empty cache.
func (c *Column) Copy() *Column {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := &Column{
		name:       c.name,
		typ:        c.typ,
		getter:     c.getter,
		setter:     c.setter,
		width:      c.width,
		format:     c.format,
		aggregator: c.aggregator,
		expr:       c.expr,
	}
	if c.cache != nil {
		n.cache = NewCache(c.cache.Capacity())
	}
	return n
}

// Raw returns the getter's raw value for r.
func (c *Column) Raw(r *row.Row) (any, error) {
	c.mu.RLock()
	getter := c.getter
	c.mu.RUnlock()
	return getter(r)
}

// Value returns the typed value for r. A failing getter or conversion
// yields the type's default value; the error is recorded silently.
func (c *Column) Value(r *row.Row) any {
	t := c.Type()
	raw, err := c.Raw(r)
	if err != nil {
		report(fmt.Errorf("%s: %w", c.Name(), err))
		return t.Zero()
	}
	v, err := t.Convert(raw)
	if err != nil {
		report(fmt.Errorf("%s: %w", c.Name(), err))
		return t.Zero()
	}
	return v
}

// Values returns the typed values for rows.
func (c *Column) Values(rows []*row.Row) []any {
	vals := make([]any, len(rows))
	for i, r := range rows {
		vals[i] = c.Value(r)
	}
	return vals
}

// DisplayValue returns the display form of r, right-justified to width for
// numeric types when width is positive.
func (c *Column) DisplayValue(r *row.Row, width int) Cell {
	cache := c.Cache()
	if cache == nil {
		return c.displayValue(r, width)
	}
	if cell, ok := cache.Get(r.ID(), width); ok {
		return cell
	}
	cell := c.displayValue(r, width)
	cache.Put(r.ID(), width, cell)
	return cell
}

func (c *Column) displayValue(r *row.Row, width int) Cell {
	d := CurrentDisplay()
	raw, err := c.Raw(r)
	if err != nil {
		report(fmt.Errorf("%s: %w", c.Name(), err))
		return Cell{Text: d.ErrorVal, Kind: KindError}
	}
	if raw == nil {
		return Cell{Text: d.None, Kind: KindNone}
	}
	if b, ok := raw.([]byte); ok {
		raw = DecodeBytes(b)
	}

	s, err := c.FormatValue(raw)
	if err != nil {
		report(fmt.Errorf("%s: %w", c.Name(), err))
		return Cell{Text: ToString(raw), Kind: KindWrongType}
	}
	if width > 0 && c.Type().Numeric() {
		if pad := width - runewidth.StringWidth(s); pad > 0 {
			s = strings.Repeat(" ", pad) + s
		}
	}
	return Cell{Text: s, Kind: KindValue}
}

// SetValues converts raw to the column type and stores it in every row.
func (c *Column) SetValues(rows []*row.Row, raw any) error {
	c.mu.RLock()
	setter := c.setter
	c.mu.RUnlock()
	if setter == nil {
		return ErrReadOnly
	}
	v, err := c.Type().Convert(raw)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := setter(r, v); err != nil {
			return err
		}
	}
	c.Recalc()
	return nil
}

// SetValue stores raw into a single row.
func (c *Column) SetValue(r *row.Row, raw any) error {
	return c.SetValues([]*row.Row{r}, raw)
}

// MaxWidth returns the width needed to show every value in rows and the
// header, bounded below by the header width.
func (c *Column) MaxWidth(rows []*row.Row) int {
	nameWidth := runewidth.StringWidth(c.Name())
	w := 0
	if len(rows) > 0 {
		for _, r := range rows {
			w = max(w, runewidth.StringWidth(c.DisplayValue(r, 0).Text))
		}
		w = max(w, nameWidth) + 2
	}
	return max(w, nameWidth)
}
