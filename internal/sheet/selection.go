package sheet

import (
	"context"
	"iter"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/row"
)

// IsSelected reports whether r is selected.
func (s *Sheet) IsSelected(r *row.Row) bool {
	if r == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[r.ID()]
	return ok
}

// NSelected returns the size of the selection.
func (s *Sheet) NSelected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

// SelectedRows returns the selected rows in row-list order.
func (s *Sheet) SelectedRows() []*row.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*row.Row, 0, len(s.selected))
	for _, r := range s.rows {
		if _, ok := s.selected[r.ID()]; ok {
			out = append(out, r)
		}
	}
	return out
}

// SelectRow adds r to the selection.
func (s *Sheet) SelectRow(r *row.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[r.ID()] = r
}

// UnselectRow removes r from the selection. It reports whether r was
// selected.
func (s *Sheet) UnselectRow(r *row.Row) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[r.ID()]; !ok {
		return false
	}
	delete(s.selected, r.ID())
	return true
}

// ToggleRow flips the selection state of r.
func (s *Sheet) ToggleRow(r *row.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[r.ID()]; ok {
		delete(s.selected, r.ID())
	} else {
		s.selected[r.ID()] = r
	}
}

// ClearSelection empties the selection.
func (s *Sheet) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.selected)
}

// Select adds rows to the selection and returns how many were newly
// selected. It checks ctx per row.
func (s *Sheet) Select(ctx context.Context, rows iter.Seq[*row.Row]) (int, error) {
	return s.apply(ctx, rows, func(r *row.Row) bool {
		if _, ok := s.selected[r.ID()]; ok {
			return false
		}
		s.selected[r.ID()] = r
		return true
	})
}

// Unselect removes rows from the selection and returns how many were
// selected before.
func (s *Sheet) Unselect(ctx context.Context, rows iter.Seq[*row.Row]) (int, error) {
	return s.apply(ctx, rows, func(r *row.Row) bool {
		if _, ok := s.selected[r.ID()]; !ok {
			return false
		}
		delete(s.selected, r.ID())
		return true
	})
}

// Toggle flips the selection state of rows and returns how many were
// processed.
func (s *Sheet) Toggle(ctx context.Context, rows iter.Seq[*row.Row]) (int, error) {
	return s.apply(ctx, rows, func(r *row.Row) bool {
		if _, ok := s.selected[r.ID()]; ok {
			delete(s.selected, r.ID())
		} else {
			s.selected[r.ID()] = r
		}
		return true
	})
}

func (s *Sheet) apply(ctx context.Context, rows iter.Seq[*row.Row], fn func(*row.Row) bool) (int, error) {
	n := 0
	for r := range rows {
		if err := abort.Check(ctx); err != nil {
			return n, err
		}
		s.mu.Lock()
		if fn(r) {
			n++
		}
		s.mu.Unlock()
		s.AddProgress(1)
	}
	return n, nil
}

// All yields every row of the current snapshot.
func (s *Sheet) All() iter.Seq[*row.Row] {
	rows := s.Rows()
	return func(yield func(*row.Row) bool) {
		for _, r := range rows {
			if !yield(r) {
				return
			}
		}
	}
}

// GatherBy lazily yields the rows matching pred.
func (s *Sheet) GatherBy(pred func(*row.Row) bool) iter.Seq[*row.Row] {
	rows := s.Rows()
	return func(yield func(*row.Row) bool) {
		for _, r := range rows {
			if pred(r) && !yield(r) {
				return
			}
		}
	}
}
