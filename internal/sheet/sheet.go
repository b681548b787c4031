// Package sheet implements the sheet data model: a named view over opaque
// rows with an ordered column list, key columns, an identity-keyed
// selection set, cursor state and progress counters.
//
// A sheet's row list, selection, cursor and column list are guarded by the
// sheet's lock. Operations that rewrite the row list (sort, delete) build a
// new slice from a snapshot and swap it in, so the slice returned by Rows is
// never modified after it is handed out.
package sheet

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/renderer/style"
	"github.com/dshills/sheetstorm/internal/row"
)

// Kind names a sheet type. Command tables may override bindings per kind.
type Kind string

// Built-in sheet kinds.
const (
	KindTable   Kind = "table"
	KindText    Kind = "text"
	KindColumns Kind = "columns"
	KindSheets  Kind = "sheets"
	KindOptions Kind = "options"
	KindHelp    Kind = "help"
	KindFreq    Kind = "freq"
	KindDB      Kind = "database"
)

// Loader populates a sheet. It runs as a background task.
type Loader func(ctx context.Context, sh *Sheet) error

// Cursor holds the four cursor and scroll coordinates of a sheet.
type Cursor struct {
	// Row is the cursor row index.
	Row int
	// Col is the cursor index into the visible columns.
	Col int
	// TopRow is the first row drawn.
	TopRow int
	// LeftCol is the first non-key visible column drawn.
	LeftCol int
}

// Span is the horizontal extent of a drawn column.
type Span struct {
	X, W int
}

// Layout is the result of the last column layout pass.
type Layout struct {
	// Cols maps visible column indexes to their drawn spans.
	Cols map[int]Span
	// RightCol is the rightmost visible column that was laid out.
	RightCol int
	// Rows is the number of data rows on screen.
	Rows int
	// Width is the screen width the layout was computed for.
	Width int
}

// Target is what a color rule receives. Col is nil for row rules and Row is
// nil for header and column rules.
type Target struct {
	Sheet *Sheet
	Col   *column.Column
	Row   *row.Row
	Value column.Cell
}

// Sheet is a named view over a row collection plus its columns.
type Sheet struct {
	mu sync.RWMutex

	name     string
	kind     Kind
	sources  []any
	rows     []*row.Row
	columns  []*column.Column
	nKeys    int
	selected map[row.ID]*row.Row
	cursor   Cursor
	layout   Layout
	loader   Loader
	loaded   bool

	made  atomic.Int64
	total atomic.Int64

	// Colorizers holds the sheet's color rules.
	Colorizers *style.Composer[Target]
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithKind sets the sheet kind.
func WithKind(k Kind) Option {
	return func(s *Sheet) { s.kind = k }
}

// WithSources records the objects the sheet was built from.
func WithSources(src ...any) Option {
	return func(s *Sheet) { s.sources = append(s.sources, src...) }
}

// WithColumns sets the initial columns.
func WithColumns(cols ...*column.Column) Option {
	return func(s *Sheet) { s.columns = append(s.columns, cols...) }
}

// WithKeys marks the first n columns as key columns.
func WithKeys(n int) Option {
	return func(s *Sheet) { s.nKeys = n }
}

// WithRows sets the initial rows and marks the sheet loaded.
func WithRows(rows []*row.Row) Option {
	return func(s *Sheet) {
		s.rows = rows
		s.loaded = true
	}
}

// WithLoader assigns the reload operation.
func WithLoader(l Loader) Option {
	return func(s *Sheet) { s.loader = l }
}

// New creates a sheet.
func New(name string, opts ...Option) *Sheet {
	s := &Sheet{
		name:       normalizeName(name),
		kind:       KindTable,
		selected:   make(map[row.ID]*row.Row),
		Colorizers: DefaultColorizers(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.nKeys = min(max(s.nKeys, 0), len(s.columns))
	return s
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// Name returns the sheet name.
func (s *Sheet) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// SetName renames the sheet.
func (s *Sheet) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = normalizeName(name)
}

// Kind returns the sheet kind.
func (s *Sheet) Kind() Kind {
	return s.kind
}

// Sources returns the objects the sheet was built from.
func (s *Sheet) Sources() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sources)
}

// Source returns the first source, or nil.
func (s *Sheet) Source() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.sources) == 0 {
		return nil
	}
	return s.sources[0]
}

// SetSources replaces the objects the sheet was built from.
func (s *Sheet) SetSources(src ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = src
}

// Rows returns a snapshot of the row list.
func (s *Sheet) Rows() []*row.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[:len(s.rows):len(s.rows)]
}

// NRows returns the number of rows.
func (s *Sheet) NRows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Row returns row i, or nil when i is out of range.
func (s *Sheet) Row(i int) *row.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.rows) {
		return nil
	}
	return s.rows[i]
}

// RowIndex returns the index of r, or -1.
func (s *Sheet) RowIndex(r *row.Row) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Index(s.rows, r)
}

// AppendRows adds rows to the end of the row list.
func (s *Sheet) AppendRows(rows ...*row.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}

// SetRows replaces the row list.
func (s *Sheet) SetRows(rows []*row.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.loaded = true
}

// Loaded reports whether the row list has been populated.
func (s *Sheet) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Columns returns a copy of the column list.
func (s *Sheet) Columns() []*column.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.columns)
}

// NColumns returns the number of columns.
func (s *Sheet) NColumns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.columns)
}

// Column returns column i, or nil when i is out of range.
func (s *Sheet) Column(i int) *column.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.columns) {
		return nil
	}
	return s.columns[i]
}

// ColumnIndex returns the index of col in the column list, or -1.
func (s *Sheet) ColumnIndex(col *column.Column) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Index(s.columns, col)
}

// AddColumn inserts col at index, or appends it when index is negative or
// past the end.
func (s *Sheet) AddColumn(col *column.Column, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index > len(s.columns) {
		index = len(s.columns)
	}
	s.columns = slices.Insert(s.columns, index, col)
}

// SetColumns replaces the column list and key count.
func (s *Sheet) SetColumns(cols []*column.Column, nKeys int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns = slices.Clone(cols)
	s.nKeys = min(max(nKeys, 0), len(s.columns))
}

// MoveColumn moves the column at index from to index to.
func (s *Sheet) MoveColumn(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from < 0 || from >= len(s.columns) || to < 0 || to >= len(s.columns) {
		return ErrColumnIndex
	}
	moveItem(s.columns, from, to)
	return nil
}

func moveItem[T any](list []T, from, to int) {
	item := list[from]
	if from < to {
		copy(list[from:to], list[from+1:to+1])
	} else {
		copy(list[to+1:from+1], list[to:from])
	}
	list[to] = item
}

// NKeys returns the number of key columns.
func (s *Sheet) NKeys() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nKeys
}

// KeyColumns returns the key columns.
func (s *Sheet) KeyColumns() []*column.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.columns[:s.nKeys])
}

// IsKey reports whether col is a key column.
func (s *Sheet) IsKey(col *column.Column) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.columns[:s.nKeys], col)
}

// ToggleKeyColumn promotes the column at idx to the end of the key region,
// or demotes a key column to just past it. It returns whether the column is
// now a key.
func (s *Sheet) ToggleKeyColumn(idx int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.columns) {
		return false, ErrColumnIndex
	}
	if idx >= s.nKeys {
		moveItem(s.columns, idx, s.nKeys)
		s.nKeys++
		return true, nil
	}
	s.nKeys--
	moveItem(s.columns, idx, s.nKeys)
	return false, nil
}

// VisibleColumns returns the non-hidden columns, key columns first.
func (s *Sheet) VisibleColumns() []*column.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visibleColumns()
}

func (s *Sheet) visibleColumns() []*column.Column {
	vis := make([]*column.Column, 0, len(s.columns))
	for _, c := range s.columns {
		if !c.Hidden() {
			vis = append(vis, c)
		}
	}
	return vis
}

// NVisibleKeys returns the number of visible key columns.
func (s *Sheet) NVisibleKeys() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.columns[:s.nKeys] {
		if !c.Hidden() {
			n++
		}
	}
	return n
}

// CellValue returns the typed value of col for row rowNum.
func (s *Sheet) CellValue(rowNum int, col *column.Column) any {
	r := s.Row(rowNum)
	if r == nil || col == nil {
		return nil
	}
	return col.Value(r)
}

// Cursor returns the cursor coordinates.
func (s *Sheet) Cursor() Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// SetCursor replaces the cursor coordinates.
func (s *Sheet) SetCursor(c Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = c
}

// MoveCursor moves the cursor by rows and visible columns. Clamping is left
// to the viewport.
func (s *Sheet) MoveCursor(dRow, dCol int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Row += dRow
	s.cursor.Col += dCol
}

// CursorRow returns the row under the cursor, or nil.
func (s *Sheet) CursorRow() *row.Row {
	return s.Row(s.Cursor().Row)
}

// CursorColumn returns the visible column under the cursor, or nil.
func (s *Sheet) CursorColumn() *column.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vis := s.visibleColumns()
	if s.cursor.Col < 0 || s.cursor.Col >= len(vis) {
		return nil
	}
	return vis[s.cursor.Col]
}

// CursorColumnIndex returns the index of the cursor column in the full
// column list, or -1.
func (s *Sheet) CursorColumnIndex() int {
	return s.ColumnIndex(s.CursorColumn())
}

// CursorValue returns the typed value under the cursor.
func (s *Sheet) CursorValue() any {
	return s.CellValue(s.Cursor().Row, s.CursorColumn())
}

// CursorDisplay returns the display value under the cursor.
func (s *Sheet) CursorDisplay() column.Cell {
	r, c := s.CursorRow(), s.CursorColumn()
	if r == nil || c == nil {
		return column.Cell{}
	}
	return c.DisplayValue(r, 0)
}

// Layout returns the last computed layout.
func (s *Sheet) Layout() Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout
}

// SetLayout stores a computed layout.
func (s *Sheet) SetLayout(l Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout = l
}

// Progress returns the made and total counters.
func (s *Sheet) Progress() (made, total int64) {
	return s.made.Load(), s.total.Load()
}

// SetProgress resets the made counter and sets the total.
func (s *Sheet) SetProgress(total int64) {
	s.made.Store(0)
	s.total.Store(total)
}

// AddProgress advances the made counter.
func (s *Sheet) AddProgress(n int64) {
	s.made.Add(n)
}

// CompleteProgress marks progress as complete.
func (s *Sheet) CompleteProgress() {
	s.made.Store(s.total.Load())
}

// ProgressPct returns percent completion, or -1 when no total is set or
// progress is complete.
func (s *Sheet) ProgressPct() int {
	made, total := s.Progress()
	if total <= 0 || made >= total {
		return -1
	}
	return int(made * 100 / total)
}

// Loader returns the assigned reload operation.
func (s *Sheet) Loader() Loader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loader
}

// SetLoader assigns the reload operation.
func (s *Sheet) SetLoader(l Loader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loader = l
}

// Reload runs the assigned loader and invalidates column caches.
func (s *Sheet) Reload(ctx context.Context) error {
	l := s.Loader()
	if l == nil {
		return ErrNoReloader
	}
	if err := l(ctx, s); err != nil {
		return err
	}
	s.mu.Lock()
	s.loaded = true
	cols := s.columns
	s.mu.Unlock()
	for _, c := range cols {
		c.Recalc()
	}
	return nil
}

// Copy returns a sheet sharing the row list with deep-copied columns and a
// copy of the selection. The cursor starts at the origin.
func (s *Sheet) Copy(suffix string) *Sheet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cols := make([]*column.Column, len(s.columns))
	for i, c := range s.columns {
		cols[i] = c.Copy()
	}
	sel := make(map[row.ID]*row.Row, len(s.selected))
	for id, r := range s.selected {
		sel[id] = r
	}
	return &Sheet{
		name:       s.name + suffix,
		kind:       s.kind,
		sources:    slices.Clone(s.sources),
		rows:       s.rows[:len(s.rows):len(s.rows)],
		columns:    cols,
		nKeys:      s.nKeys,
		selected:   sel,
		loader:     s.loader,
		loaded:     s.loaded,
		Colorizers: s.Colorizers.Clone(),
	}
}
