package sheets

import (
	"context"
	"strconv"
	"strings"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/renderer/style"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

func colOf(r *row.Row) *column.Column {
	return r.Data.(*column.Column)
}

// NewColumns creates a sheet with one row per column of src. Editing its
// cells renames, resizes, retypes or reformats the source columns.
func NewColumns(src *sheet.Sheet) *sheet.Sheet {
	cols := []*column.Column{
		column.New("name", func(r *row.Row) (any, error) { return colOf(r).Name(), nil },
			column.WithType(column.String),
			column.WithSetter(func(r *row.Row, v any) error {
				colOf(r).SetName(column.ToString(v))
				return nil
			})),
		column.New("width", func(r *row.Row) (any, error) { return int64(colOf(r).Width()), nil },
			column.WithType(column.Int),
			column.WithSetter(func(r *row.Row, v any) error {
				colOf(r).SetWidth(int(v.(int64)))
				return nil
			})),
		column.New("type", func(r *row.Row) (any, error) { return colOf(r).Type().Name(), nil },
			column.WithType(column.String),
			column.WithSetter(func(r *row.Row, v any) error {
				t, err := column.LookupType(column.ToString(v))
				if err != nil {
					return err
				}
				colOf(r).SetType(t)
				return nil
			})),
		column.New("fmtstr", func(r *row.Row) (any, error) { return colOf(r).Format(), nil },
			column.WithType(column.String),
			column.WithSetter(func(r *row.Row, v any) error {
				colOf(r).SetFormat(column.ToString(v))
				return nil
			})),
		column.New("aggregator", func(r *row.Row) (any, error) {
			if a := colOf(r).Aggregator(); a != nil {
				return a.Name(), nil
			}
			return "", nil
		},
			column.WithType(column.String),
			column.WithSetter(func(r *row.Row, v any) error {
				name := column.ToString(v)
				if name == "" {
					colOf(r).SetAggregator(nil)
					return nil
				}
				a, err := column.LookupAggregator(name)
				if err != nil {
					return err
				}
				colOf(r).SetAggregator(a)
				return nil
			})),
		column.New("value", func(r *row.Row) (any, error) {
			cur := src.CursorRow()
			if cur == nil {
				return nil, nil
			}
			return colOf(r).DisplayValue(cur, 0).Text, nil
		}),
	}

	sh := sheet.New(src.Name()+"_columns",
		sheet.WithKind(sheet.KindColumns),
		sheet.WithSources(src),
		sheet.WithColumns(cols...),
		sheet.WithKeys(1),
		sheet.WithLoader(func(_ context.Context, sh *sheet.Sheet) error {
			srcCols := src.Columns()
			rows := make([]*row.Row, len(srcCols))
			for i, c := range srcCols {
				rows[i] = row.New(c)
			}
			sh.SetRows(rows)
			return nil
		}),
	)
	sh.Colorizers.Add(style.ScopeRow, 8, func(t sheet.Target) string {
		if t.Row != nil && src.IsKey(colOf(t.Row)) {
			return sheet.CurrentTheme().KeyCol
		}
		return ""
	})
	return sh
}

func sheetOf(r *row.Row) *sheet.Sheet {
	return r.Data.(*sheet.Sheet)
}

// NewSheets creates a sheet listing the sheets returned by list, which is
// consulted on every reload.
func NewSheets(list func() []*sheet.Sheet) *sheet.Sheet {
	intCol := func(name string, fn func(*sheet.Sheet) int) *column.Column {
		return column.New(name, func(r *row.Row) (any, error) { return int64(fn(sheetOf(r))), nil },
			column.WithType(column.Int))
	}
	cols := []*column.Column{
		column.New("name", func(r *row.Row) (any, error) { return sheetOf(r).Name(), nil }),
		intCol("nRows", (*sheet.Sheet).NRows),
		intCol("nCols", (*sheet.Sheet).NColumns),
		intCol("nVisibleCols", func(s *sheet.Sheet) int { return len(s.VisibleColumns()) }),
		column.New("cursorValue", func(r *row.Row) (any, error) { return sheetOf(r).CursorDisplay().Text, nil }),
		column.New("keyColNames", func(r *row.Row) (any, error) {
			var names []string
			for _, c := range sheetOf(r).KeyColumns() {
				names = append(names, c.Name())
			}
			return strings.Join(names, " "), nil
		}),
		column.New("source", func(r *row.Row) (any, error) { return describeSource(sheetOf(r).Source()), nil }),
	}
	return sheet.New("sheets",
		sheet.WithKind(sheet.KindSheets),
		sheet.WithColumns(cols...),
		sheet.WithKeys(1),
		sheet.WithLoader(func(_ context.Context, sh *sheet.Sheet) error {
			all := list()
			rows := make([]*row.Row, 0, len(all))
			for _, s := range all {
				if s != sh {
					rows = append(rows, row.New(s))
				}
			}
			sh.SetRows(rows)
			return nil
		}),
	)
}

// SheetAt returns the sheet listed in row r of a sheets sheet.
func SheetAt(r *row.Row) (*sheet.Sheet, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.Data.(*sheet.Sheet)
	return s, ok
}

// ColumnAt returns the column listed in row r of a columns sheet.
func ColumnAt(r *row.Row) (*column.Column, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.Data.(*column.Column)
	return c, ok
}

func describeSource(src any) string {
	switch s := src.(type) {
	case nil:
		return ""
	case *sheet.Sheet:
		return s.Name()
	case string:
		return s
	case interface{ String() string }:
		return s.String()
	case []string:
		return strconv.Itoa(len(s)) + " lines"
	default:
		return ""
	}
}
