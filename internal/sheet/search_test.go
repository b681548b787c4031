package sheet

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

func TestSearchWraparound(t *testing.T) {
	s := newPairSheet(pair{"target", 1}, pair{"b", 2}, pair{"c", 3}, pair{"d", 4})
	s.SetCursor(Cursor{Row: 3})
	sc := &SearchContext{Regex: regexp.MustCompile("targ")}

	m, err := s.SearchRegex(context.Background(), sc, false)
	if err != nil {
		t.Fatalf("SearchRegex error: %v", err)
	}
	if m.Row != 0 || !m.Wrapped {
		t.Errorf("expected wrapped match on row 0, got %+v", m)
	}
	if s.Cursor().Row != 0 {
		t.Errorf("cursor row = %d, want 0", s.Cursor().Row)
	}
}

func TestSearchBackwardAndReverse(t *testing.T) {
	s := newPairSheet(pair{"x", 1}, pair{"b", 2}, pair{"x", 3}, pair{"d", 4})
	s.SetCursor(Cursor{Row: 1})
	sc := &SearchContext{Regex: regexp.MustCompile("^x$"), Backward: true}

	m, err := s.SearchRegex(context.Background(), sc, false)
	if err != nil || m.Row != 0 || m.Wrapped {
		t.Fatalf("backward search = %+v, %v", m, err)
	}

	// reverse flips the stored direction
	m, err = s.SearchRegex(context.Background(), sc, true)
	if err != nil || m.Row != 2 {
		t.Fatalf("reversed search = %+v, %v", m, err)
	}
}

func TestSearchMatchesDisplayValue(t *testing.T) {
	s := newPairSheet(pair{"a", 1}, pair{"b", 25})
	s.SetCursor(Cursor{Col: 1})
	sc := &SearchContext{Regex: regexp.MustCompile("^25$")}

	m, err := s.SearchRegex(context.Background(), sc, false)
	if err != nil || m.Row != 1 || m.Col != 1 {
		t.Errorf("expected match at row 1 col 1, got %+v, %v", m, err)
	}
}

func TestSearchVisibleColumns(t *testing.T) {
	s := newPairSheet(pair{"a", 1}, pair{"b", 42})
	sc := &SearchContext{Regex: regexp.MustCompile("42"), Scope: ScopeVisibleColumns}

	m, err := s.SearchRegex(context.Background(), sc, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Row != 1 || m.Col != 1 {
		t.Errorf("expected match in column 1, got %+v", m)
	}
}

func TestSearchErrors(t *testing.T) {
	s := newPairSheet(pair{"a", 1})
	if _, err := s.SearchRegex(context.Background(), &SearchContext{}, false); !errors.Is(err, ErrNoRegex) {
		t.Errorf("expected ErrNoRegex, got %v", err)
	}
	sc := &SearchContext{Regex: regexp.MustCompile("zzz")}
	if _, err := s.SearchRegex(context.Background(), sc, false); !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
	empty := New("none")
	if _, err := empty.SearchRegex(context.Background(), sc, false); !errors.Is(err, ErrBadColumns) {
		t.Errorf("expected ErrBadColumns, got %v", err)
	}
}

func TestFindMatches(t *testing.T) {
	s := newPairSheet(pair{"x", 1}, pair{"y", 2}, pair{"x", 3})
	got, err := s.FindMatches(context.Background(), &SearchContext{Regex: regexp.MustCompile("x")})
	if err != nil {
		t.Fatal(err)
	}
	// scan starts after the cursor row and tests it last
	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("FindMatches = %v, want [2 0]", got)
	}
	if s.Cursor().Row != 0 {
		t.Error("FindMatches must not move the cursor")
	}
}

func TestCompileRegexFlags(t *testing.T) {
	re, err := CompileRegex("abc", "I")
	if err != nil {
		t.Fatal(err)
	}
	if !re.MatchString("xABCx") {
		t.Error("I flag should ignore case")
	}
	if got := MatchStatus(3, re); got != "3 matches for /abc/" {
		t.Errorf("MatchStatus = %q", got)
	}
	if _, err := CompileRegex("(", ""); err == nil {
		t.Error("expected compile error")
	}
}

func TestFindColumn(t *testing.T) {
	s := newPairSheet(pair{"a", 1})
	j, ok := s.FindColumn(regexp.MustCompile("^na"))
	if !ok || j != 0 {
		t.Errorf("FindColumn = %d, %v; want 0, true", j, ok)
	}
}
