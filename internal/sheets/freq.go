package sheets

import (
	"context"
	"slices"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Bin groups the source rows sharing one display value.
type Bin struct {
	Value string
	Rows  []*row.Row
}

func binOf(r *row.Row) *Bin {
	return r.Data.(*Bin)
}

// BinAt returns the bin listed in row r of a frequency sheet.
func BinAt(r *row.Row) (*Bin, bool) {
	if r == nil {
		return nil, false
	}
	b, ok := r.Data.(*Bin)
	return b, ok
}

// BinRows groups rows by the display value of col. Bins are ordered by
// descending count, ties in order of first appearance.
func BinRows(ctx context.Context, rows []*row.Row, col *column.Column, progress func()) ([]*Bin, error) {
	index := make(map[string]*Bin)
	var bins []*Bin
	for _, r := range rows {
		if err := abort.Check(ctx); err != nil {
			return nil, err
		}
		v := col.DisplayValue(r, 0).Text
		b, ok := index[v]
		if !ok {
			b = &Bin{Value: v}
			index[v] = b
			bins = append(bins, b)
		}
		b.Rows = append(b.Rows, r)
		if progress != nil {
			progress()
		}
	}
	slices.SortStableFunc(bins, func(a, b *Bin) int {
		return len(b.Rows) - len(a.Rows)
	})
	return bins, nil
}

// NewFreq creates a frequency table of src grouped by col. Every source
// column with an aggregator contributes an aggregated column.
func NewFreq(src *sheet.Sheet, col *column.Column) *sheet.Sheet {
	cols := []*column.Column{
		column.New(col.Name(), func(r *row.Row) (any, error) { return binOf(r).Value, nil }),
		column.New("count", func(r *row.Row) (any, error) { return int64(len(binOf(r).Rows)), nil },
			column.WithType(column.Int)),
	}
	for _, c := range src.Columns() {
		agg := c.Aggregator()
		if agg == nil {
			continue
		}
		opts := []column.Option{column.WithType(c.Type())}
		if t := agg.Type(); t != nil {
			opts[0] = column.WithType(t)
		}
		cols = append(cols, column.New(c.Name()+"_"+agg.Name(), func(r *row.Row) (any, error) {
			return agg.Apply(c.Values(binOf(r).Rows))
		}, opts...))
	}

	return sheet.New(src.Name()+"_"+col.Name()+"_freq",
		sheet.WithKind(sheet.KindFreq),
		sheet.WithSources(src),
		sheet.WithColumns(cols...),
		sheet.WithKeys(1),
		sheet.WithLoader(func(ctx context.Context, sh *sheet.Sheet) error {
			rows := src.Rows()
			sh.SetProgress(int64(len(rows)))
			bins, err := BinRows(ctx, rows, col, func() { sh.AddProgress(1) })
			if err != nil {
				return err
			}
			out := make([]*row.Row, len(bins))
			for i, b := range bins {
				out[i] = row.New(b)
			}
			sh.SetRows(out)
			sh.CompleteProgress()
			return nil
		}),
	)
}

// NewBinSheet creates a sheet of src's columns over the rows of one bin.
func NewBinSheet(src *sheet.Sheet, b *Bin) *sheet.Sheet {
	sh := src.Copy("_" + b.Value)
	sh.SetRows(slices.Clone(b.Rows))
	sh.ClearSelection()
	sh.SetLoader(nil)
	return sh
}
