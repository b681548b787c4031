package sheet

import (
	"context"
	"fmt"
	"slices"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
)

// SortBy orders the rows by the typed values of cols. The sort runs on a
// snapshot and the sorted list replaces the row list when done; rows
// appended meanwhile are kept at the end.
func (s *Sheet) SortBy(ctx context.Context, cols []*column.Column, reverse bool) error {
	rows := s.Rows()
	s.SetProgress(int64(len(rows)))
	defer s.CompleteProgress()

	type keyed struct {
		r    *row.Row
		keys []any
	}
	ks := make([]keyed, len(rows))
	for i, r := range rows {
		if err := abort.Check(ctx); err != nil {
			return err
		}
		vals := make([]any, len(cols))
		for j, c := range cols {
			vals[j] = c.Value(r)
		}
		ks[i] = keyed{r: r, keys: vals}
		s.AddProgress(1)
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		c := column.CompareAll(a.keys, b.keys)
		if reverse {
			return -c
		}
		return c
	})
	if err := abort.Check(ctx); err != nil {
		return err
	}

	sorted := make([]*row.Row, len(ks))
	for i, k := range ks {
		sorted[i] = k.r
	}
	s.swapRows(len(rows), sorted)
	return nil
}

// swapRows replaces the first n rows of the current list with replacement,
// keeping anything appended after the snapshot was taken.
func (s *Sheet) swapRows(n int, replacement []*row.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]*row.Row, 0, len(replacement)+len(s.rows)-n)
	next = append(next, replacement...)
	if len(s.rows) > n {
		next = append(next, s.rows[n:]...)
	}
	s.rows = next
}

// DeleteSelected removes the selected rows, clears the selection and moves
// the cursor onto the first surviving row at or after it. It returns the
// number of rows deleted.
func (s *Sheet) DeleteSelected(ctx context.Context) (int, error) {
	rows := s.Rows()
	s.mu.RLock()
	sel := make(map[row.ID]bool, len(s.selected))
	for id := range s.selected {
		sel[id] = true
	}
	cur := s.cursor.Row
	s.mu.RUnlock()

	s.SetProgress(int64(len(rows)))
	defer s.CompleteProgress()

	// the first unselected row at or after the cursor keeps the cursor
	var anchor *row.Row
	for _, r := range rows[min(max(cur, 0), len(rows)):] {
		if !sel[r.ID()] {
			anchor = r
			break
		}
	}

	kept := make([]*row.Row, 0, len(rows))
	newCursor := 0
	for _, r := range rows {
		if err := abort.Check(ctx); err != nil {
			return 0, err
		}
		s.AddProgress(1)
		if sel[r.ID()] {
			continue
		}
		if r == anchor {
			newCursor = len(kept)
		}
		kept = append(kept, r)
	}
	if anchor == nil && len(kept) > 0 {
		newCursor = len(kept) - 1
	}

	deleted := len(rows) - len(kept)
	s.swapRows(len(rows), kept)

	s.mu.Lock()
	clear(s.selected)
	s.cursor.Row = newCursor
	s.mu.Unlock()

	if deleted != len(sel) {
		return deleted, fmt.Errorf("sheet: deleted %d rows, expected %d", deleted, len(sel))
	}
	return deleted, nil
}

// DeleteRow removes the row at index i and drops it from the selection.
func (s *Sheet) DeleteRow(i int) (*row.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.rows) {
		return nil, fmt.Errorf("sheet: no row %d", i)
	}
	r := s.rows[i]
	s.rows = slices.Delete(slices.Clone(s.rows), i, i+1)
	delete(s.selected, r.ID())
	return r, nil
}
