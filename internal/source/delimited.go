package source

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Record is one row of delimited text.
type Record []string

func fieldGetter(i int) column.Getter {
	return func(r *row.Row) (any, error) {
		rec := *r.Data.(*Record)
		if i >= len(rec) {
			return nil, nil
		}
		return rec[i], nil
	}
}

func fieldSetter(i int) column.Setter {
	return func(r *row.Row, v any) error {
		rec := r.Data.(*Record)
		for len(*rec) <= i {
			*rec = append(*rec, "")
		}
		(*rec)[i] = column.ToString(v)
		return nil
	}
}

// newDelimited creates a sheet whose first record names the columns.
func newDelimited(name, path string, op opener, delim rune) *sheet.Sheet {
	return sheet.New(name,
		sheet.WithSources(path),
		sheet.WithLoader(func(ctx context.Context, sh *sheet.Sheet) error {
			r, c, err := openTracked(sh, op)
			if err != nil {
				return &LoadError{Path: path, Err: err}
			}
			defer c.Close()
			if err := loadDelimited(ctx, sh, r, delim); err != nil {
				if abort.Is(err) {
					return err
				}
				return &LoadError{Path: path, Err: err}
			}
			return nil
		}),
	)
}

func loadDelimited(ctx context.Context, sh *sheet.Sheet, r io.Reader, delim rune) error {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		sh.SetColumns(nil, 0)
		sh.SetRows(nil)
		return nil
	}
	if err != nil {
		return err
	}
	header[0] = trimBOM(header[0])

	var rows []*row.Row
	width := len(header)
	for {
		if err := abort.Check(ctx); err != nil {
			return err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		width = max(width, len(rec))
		data := Record(rec)
		rows = append(rows, row.New(&data))
	}

	cols := make([]*column.Column, width)
	for i := range cols {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if name == "" {
			name = column.DefaultName(i)
		}
		cols[i] = column.New(name, fieldGetter(i), column.WithSetter(fieldSetter(i)))
	}
	setColumns(sh, cols)
	sh.SetRows(rows)
	sh.CompleteProgress()
	return nil
}

func trimBOM(s string) string {
	const bom = "\ufeff"
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}
