package sheet

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
)

// SearchScope selects which columns a search looks in.
type SearchScope uint8

const (
	// ScopeCursorColumn searches the cursor column.
	ScopeCursorColumn SearchScope = iota
	// ScopeVisibleColumns searches every visible column.
	ScopeVisibleColumns
)

// SearchContext is the last search, reused by repeat-search commands.
type SearchContext struct {
	Regex    *regexp.Regexp
	Scope    SearchScope
	Backward bool
}

// Match is a search hit.
type Match struct {
	// Row is the matching row index.
	Row int
	// Col is the visible index of the matching column.
	Col int
	// Wrapped is set when the scan passed the end of the sheet first.
	Wrapped bool
}

// CompileRegex compiles pattern with option flags. The only flag is I
// (case-insensitive).
func CompileRegex(pattern, flags string) (*regexp.Regexp, error) {
	if strings.Contains(flags, "I") {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// searchColumns resolves the scope to visible columns and their indexes.
func (s *Sheet) searchColumns(scope SearchScope) ([]*column.Column, []int) {
	vis := s.VisibleColumns()
	if scope == ScopeVisibleColumns {
		idx := make([]int, len(vis))
		for i := range vis {
			idx[i] = i
		}
		return vis, idx
	}
	cur := s.Cursor().Col
	if cur < 0 || cur >= len(vis) {
		return nil, nil
	}
	return vis[cur : cur+1], []int{cur}
}

// scan yields matches starting after (or before) the cursor row and
// wrapping to the other end. The cursor row itself is tested last.
func (s *Sheet) scan(ctx context.Context, sc *SearchContext, reverse bool, yield func(Match) bool) error {
	if sc == nil || sc.Regex == nil {
		return ErrNoRegex
	}
	cols, colIdx := s.searchColumns(sc.Scope)
	if len(cols) == 0 {
		return ErrBadColumns
	}

	rows := s.Rows()
	n := len(rows)
	cur := s.Cursor().Row
	backward := sc.Backward != reverse
	s.SetProgress(int64(n))
	defer s.CompleteProgress()

	for i := 1; i <= n; i++ {
		if err := abort.Check(ctx); err != nil {
			return err
		}
		s.AddProgress(1)

		var r int
		if backward {
			r = cur - i
		} else {
			r = cur + i
		}
		wrapped := r < 0 || r >= n
		r = ((r % n) + n) % n

		for j, c := range cols {
			if sc.Regex.MatchString(c.DisplayValue(rows[r], 0).Text) {
				if !yield(Match{Row: r, Col: colIdx[j], Wrapped: wrapped}) {
					return nil
				}
				break
			}
		}
	}
	return nil
}

// SearchRegex moves the cursor to the next row matching sc. It returns
// ErrNoMatch when no row matches.
func (s *Sheet) SearchRegex(ctx context.Context, sc *SearchContext, reverse bool) (Match, error) {
	var found *Match
	err := s.scan(ctx, sc, reverse, func(m Match) bool {
		found = &m
		return false
	})
	if err != nil {
		return Match{}, err
	}
	if found == nil {
		return Match{}, ErrNoMatch
	}
	s.mu.Lock()
	s.cursor.Row = found.Row
	s.cursor.Col = found.Col
	s.mu.Unlock()
	return *found, nil
}

// FindMatches returns the indexes of every matching row in scan order
// without moving the cursor.
func (s *Sheet) FindMatches(ctx context.Context, sc *SearchContext) ([]int, error) {
	var out []int
	err := s.scan(ctx, sc, false, func(m Match) bool {
		out = append(out, m.Row)
		return true
	})
	return out, err
}

// MatchStatus returns the status line for a search that found n rows.
func MatchStatus(n int, re *regexp.Regexp) string {
	return fmt.Sprintf("%d matches for /%s/", n, strings.TrimPrefix(re.String(), "(?i)"))
}

// FindColumn returns the visible index of the first column after the
// cursor column whose name matches re, wrapping around.
func (s *Sheet) FindColumn(re *regexp.Regexp) (int, bool) {
	vis := s.VisibleColumns()
	cur := s.Cursor().Col
	for i := 1; i <= len(vis); i++ {
		j := (cur + i) % len(vis)
		if re.MatchString(vis[j].Name()) {
			return j, true
		}
	}
	return 0, false
}

// VisibleIndex returns the visible index of col, or -1.
func (s *Sheet) VisibleIndex(col *column.Column) int {
	return slices.Index(s.VisibleColumns(), col)
}
