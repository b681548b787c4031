package expr

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// compiled maps columns made by NewColumn to their expressions, so a
// lookup can follow references between expression columns.
var compiled sync.Map // *column.Column -> *Expr

// RowLookup resolves names to the typed values of sh's columns in r. A
// reference back to self, directly or through other expression columns,
// fails with ErrCircular.
func RowLookup(sh *sheet.Sheet, r *row.Row, self *column.Column) Lookup {
	var chain []*column.Column
	if self != nil {
		chain = []*column.Column{self}
	}
	return chainLookup(sh, r, chain)
}

// chainLookup evaluates referenced expression columns in place, carrying
// the columns already being evaluated for r.
func chainLookup(sh *sheet.Sheet, r *row.Row, chain []*column.Column) Lookup {
	return func(name string) (any, error) {
		for _, c := range sh.Columns() {
			if c.Name() != name {
				continue
			}
			if slices.Contains(chain, c) {
				return nil, ErrCircular
			}
			v, ok := compiled.Load(c)
			if !ok {
				return c.Value(r), nil
			}
			if len(chain) >= maxDepth {
				return nil, ErrCircular
			}
			raw, err := v.(*Expr).Eval(context.Background(), chainLookup(sh, r, append(slices.Clip(chain), c)))
			if err != nil {
				return nil, err
			}
			return c.Type().Convert(raw)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownName, name)
	}
}

// NewColumn compiles src into a read-only column of sh named after the
// expression.
func NewColumn(sh *sheet.Sheet, src string) (*column.Column, error) {
	x, err := Compile(src)
	if err != nil {
		return nil, err
	}
	var col *column.Column
	col = column.New(x.String(), func(r *row.Row) (any, error) {
		return x.Eval(context.Background(), RowLookup(sh, r, col))
	}, column.WithExpr(x.String()))
	compiled.Store(col, x)
	return col, nil
}

// SetRows stores the value of x evaluated over each row into col. It
// returns the number of rows changed before the first failure.
func SetRows(ctx context.Context, sh *sheet.Sheet, col *column.Column, rows []*row.Row, x *Expr) (int, error) {
	if col.ReadOnly() {
		return 0, column.ErrReadOnly
	}
	for i, r := range rows {
		if err := abort.Check(ctx); err != nil {
			return i, err
		}
		v, err := x.Eval(ctx, RowLookup(sh, r, nil))
		if err != nil {
			return i, err
		}
		if err := col.SetValue(r, v); err != nil {
			return i, err
		}
		sh.AddProgress(1)
	}
	return len(rows), nil
}
