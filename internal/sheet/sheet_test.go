package sheet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
)

type pair struct {
	Name string
	N    int
}

func pairColumns() []*column.Column {
	return []*column.Column{
		column.New("name", func(r *row.Row) (any, error) { return r.Data.(pair).Name, nil }),
		column.New("n", func(r *row.Row) (any, error) { return r.Data.(pair).N, nil }, column.WithType(column.Int)),
	}
}

func newPairSheet(data ...pair) *Sheet {
	return New("pairs", WithColumns(pairColumns()...), WithRows(row.FromSlice(data)))
}

func TestNewNormalizesName(t *testing.T) {
	s := New("  my  data sheet ")
	if s.Name() != "my_data_sheet" {
		t.Errorf("Name() = %q, want %q", s.Name(), "my_data_sheet")
	}
}

func TestSelectionIsIdentityBased(t *testing.T) {
	s := newPairSheet(pair{"a", 1}, pair{"a", 1})
	r0, r1 := s.Row(0), s.Row(1)

	s.SelectRow(r0)
	s.SelectRow(r1)
	if s.NSelected() != 2 {
		t.Fatalf("expected 2 selected, got %d", s.NSelected())
	}

	s.UnselectRow(r0)
	if s.IsSelected(r0) {
		t.Error("r0 should be unselected")
	}
	if !s.IsSelected(r1) {
		t.Error("unselecting r0 must not affect r1")
	}

	s.ToggleRow(r0)
	s.ToggleRow(r1)
	if !s.IsSelected(r0) || s.IsSelected(r1) {
		t.Error("toggle should flip each row independently")
	}
}

func TestSelectGatherBy(t *testing.T) {
	s := newPairSheet(pair{"a", 1}, pair{"b", 2}, pair{"a", 3})
	name := s.Column(0)

	n, err := s.Select(context.Background(), s.GatherBy(func(r *row.Row) bool {
		return name.Value(r) == "a"
	}))
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 newly selected, got %d", n)
	}
	got := s.SelectedRows()
	if len(got) != 2 || got[0] != s.Row(0) || got[1] != s.Row(2) {
		t.Errorf("unexpected selected rows %v", got)
	}

	n, _ = s.Select(context.Background(), s.All())
	if n != 1 {
		t.Errorf("expected 1 more selected, got %d", n)
	}
}

func TestSelectAborts(t *testing.T) {
	s := newPairSheet(pair{"a", 1}, pair{"b", 2})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Select(ctx, s.All()); err == nil {
		t.Error("expected abort error")
	}
	if s.NSelected() != 0 {
		t.Errorf("expected nothing selected, got %d", s.NSelected())
	}
}

func TestToggleKeyColumn(t *testing.T) {
	cols := []*column.Column{column.New("a", nil), column.New("b", nil), column.New("c", nil)}
	s := New("t", WithColumns(cols...))

	isKey, err := s.ToggleKeyColumn(2)
	if err != nil || !isKey {
		t.Fatalf("ToggleKeyColumn(2) = %v, %v", isKey, err)
	}
	if s.NKeys() != 1 || s.Column(0) != cols[2] {
		t.Errorf("expected c promoted to key position 0")
	}

	isKey, _ = s.ToggleKeyColumn(0)
	if isKey {
		t.Error("expected demotion")
	}
	if s.NKeys() != 0 || s.Column(0) != cols[2] {
		t.Errorf("demoted column should sit just past the key region")
	}

	if _, err := s.ToggleKeyColumn(5); !errors.Is(err, ErrColumnIndex) {
		t.Errorf("expected ErrColumnIndex, got %v", err)
	}
}

func TestToggleKeyColumnPairs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "ncols")
		nKeys := rapid.IntRange(0, n-1).Draw(t, "nkeys")
		idx := rapid.IntRange(nKeys, n-1).Draw(t, "idx")

		cols := make([]*column.Column, n)
		for i := range cols {
			cols[i] = column.New(fmt.Sprintf("c%d", i), nil)
		}
		s := New("t", WithColumns(cols...), WithKeys(nKeys))
		target := cols[idx]

		if _, err := s.ToggleKeyColumn(idx); err != nil {
			t.Fatal(err)
		}
		if _, err := s.ToggleKeyColumn(s.ColumnIndex(target)); err != nil {
			t.Fatal(err)
		}

		if s.NKeys() != nKeys {
			t.Fatalf("nKeys = %d, want %d", s.NKeys(), nKeys)
		}
		got := s.Columns()
		others := slices.DeleteFunc(slices.Clone(got), func(c *column.Column) bool { return c == target })
		want := slices.DeleteFunc(slices.Clone(cols), func(c *column.Column) bool { return c == target })
		if !slices.Equal(others, want) {
			t.Fatalf("other columns reordered")
		}
		if idx == nKeys && !slices.Equal(got, cols) {
			t.Fatalf("column order not restored")
		}
	})
}

func TestAddColumn(t *testing.T) {
	s := New("t", WithColumns(column.New("a", nil), column.New("b", nil)))
	s.AddColumn(column.New("x", nil), 1)
	s.AddColumn(column.New("y", nil), -1)

	var names []string
	for _, c := range s.Columns() {
		names = append(names, c.Name())
	}
	if !slices.Equal(names, []string{"a", "x", "b", "y"}) {
		t.Errorf("unexpected column order %v", names)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	s := newPairSheet(pair{"a", 1}, pair{"b", 2})
	s.SelectRow(s.Row(1))
	s.SetCursor(Cursor{Row: 1, Col: 1})

	c := s.Copy("'")
	if c.Name() != "pairs'" {
		t.Errorf("Name() = %q, want %q", c.Name(), "pairs'")
	}
	if c.Cursor() != (Cursor{}) {
		t.Errorf("copy cursor should be at origin, got %+v", c.Cursor())
	}
	if c.Row(0) != s.Row(0) {
		t.Error("copy should share rows")
	}
	if !c.IsSelected(s.Row(1)) {
		t.Error("copy should carry the selection")
	}

	c.Column(0).SetWidth(3)
	if s.Column(0).Width() == 3 {
		t.Error("column edits on the copy must not reach the original")
	}
	c.ClearSelection()
	if s.NSelected() != 1 {
		t.Error("selection edits on the copy must not reach the original")
	}
}

func TestReload(t *testing.T) {
	s := New("empty")
	if err := s.Reload(context.Background()); !errors.Is(err, ErrNoReloader) {
		t.Errorf("expected ErrNoReloader, got %v", err)
	}

	s.SetLoader(func(ctx context.Context, sh *Sheet) error {
		sh.SetRows(row.FromSlice([]string{"x", "y"}))
		return nil
	})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if s.NRows() != 2 || !s.Loaded() {
		t.Errorf("expected 2 loaded rows, got %d", s.NRows())
	}
}

func TestCellValue(t *testing.T) {
	s := newPairSheet(pair{"a", 7})
	if v := s.CellValue(0, s.Column(1)); v != int64(7) {
		t.Errorf("CellValue = %#v, want int64(7)", v)
	}
	if v := s.CellValue(9, s.Column(1)); v != nil {
		t.Errorf("out of range CellValue = %#v, want nil", v)
	}
}

func TestVisibleColumnsSkipHidden(t *testing.T) {
	cols := []*column.Column{column.New("a", nil), column.New("b", nil, column.WithWidth(0)), column.New("c", nil)}
	s := New("t", WithColumns(cols...))
	vis := s.VisibleColumns()
	if len(vis) != 2 || vis[1] != cols[2] {
		t.Errorf("unexpected visible columns")
	}
	s.SetCursor(Cursor{Col: 1})
	if s.CursorColumn() != cols[2] {
		t.Error("cursor column should index visible columns")
	}
}
