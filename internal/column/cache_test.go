package column

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/sheetstorm/internal/row"
)

func TestCacheEvictsOldestInserted(t *testing.T) {
	c := NewCache(2)
	c.Put(1, 0, Cell{Text: "a"})
	c.Put(2, 0, Cell{Text: "b"})

	// lookups do not refresh age
	if _, ok := c.Get(1, 0); !ok {
		t.Fatal("expected entry 1")
	}
	c.Put(3, 0, Cell{Text: "c"})

	if _, ok := c.Get(1, 0); ok {
		t.Error("expected entry 1 evicted")
	}
	if _, ok := c.Get(2, 0); !ok {
		t.Error("expected entry 2 kept")
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
}

func TestCacheKeyIncludesWidth(t *testing.T) {
	c := NewCache(4)
	c.Put(1, 5, Cell{Text: "    x"})
	c.Put(1, 2, Cell{Text: " x"})
	if cell, _ := c.Get(1, 5); cell.Text != "    x" {
		t.Errorf("expected width-5 entry, got %q", cell.Text)
	}
	if cell, _ := c.Get(1, 2); cell.Text != " x" {
		t.Errorf("expected width-2 entry, got %q", cell.Text)
	}
}

func TestCacheNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 300).Draw(t, "capacity")
		col := New("c", nil, WithType(Int), WithCache(capacity))
		n := rapid.IntRange(0, 600).Draw(t, "rows")
		rows := make([]*row.Row, n)
		for i := range rows {
			rows[i] = row.New(i)
		}
		widths := rapid.SliceOfN(rapid.IntRange(0, 30), 1, 4).Draw(t, "widths")

		for _, r := range rows {
			for _, w := range widths {
				_ = col.DisplayValue(r, w)
				if got := col.Cache().Len(); got > capacity {
					t.Fatalf("cache size %d exceeds capacity %d", got, capacity)
				}
			}
		}
	})
}
