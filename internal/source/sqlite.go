package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Database is a SQLite file opened read-only. Each load opens and closes
// its own connection.
type Database struct {
	path string
}

// Table describes one table or view.
type Table struct {
	Name string
	Type string
	Cols int
	Rows int64
}

// NewDatabase returns a database handle for path.
func NewDatabase(path string) *Database {
	return &Database{path: path}
}

// String returns the database path.
func (d *Database) String() string {
	return d.path
}

func (d *Database) open() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", d.path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &LoadError{Path: d.path, Err: err}
	}
	return db, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func tableOf(r *row.Row) *Table {
	return r.Data.(*Table)
}

// Sheet returns the tables sheet of the database.
func (d *Database) Sheet(name string) *sheet.Sheet {
	cols := []*column.Column{
		column.New("name", func(r *row.Row) (any, error) { return tableOf(r).Name, nil }),
		column.New("type", func(r *row.Row) (any, error) { return tableOf(r).Type, nil }),
		column.New("ncols", func(r *row.Row) (any, error) { return int64(tableOf(r).Cols), nil },
			column.WithType(column.Int)),
		column.New("nrows", func(r *row.Row) (any, error) { return tableOf(r).Rows, nil },
			column.WithType(column.Int)),
	}
	return sheet.New(name,
		sheet.WithKind(sheet.KindDB),
		sheet.WithSources(d),
		sheet.WithColumns(cols...),
		sheet.WithKeys(1),
		sheet.WithLoader(func(ctx context.Context, sh *sheet.Sheet) error {
			tables, err := d.Tables(ctx)
			if err != nil {
				return err
			}
			rows := make([]*row.Row, len(tables))
			for i := range tables {
				rows[i] = row.New(&tables[i])
			}
			sh.SetRows(rows)
			return nil
		}),
	)
}

// Tables lists the tables and views with their sizes.
func (d *Database) Tables(ctx context.Context) ([]Table, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rs, err := db.QueryContext(ctx,
		`SELECT name, type FROM sqlite_master WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, &LoadError{Path: d.path, Err: err}
	}
	var tables []Table
	for rs.Next() {
		var t Table
		if err := rs.Scan(&t.Name, &t.Type); err != nil {
			rs.Close()
			return nil, &LoadError{Path: d.path, Err: err}
		}
		tables = append(tables, t)
	}
	rs.Close()
	if err := rs.Err(); err != nil {
		return nil, &LoadError{Path: d.path, Err: err}
	}

	for i := range tables {
		if err := abort.Check(ctx); err != nil {
			return nil, err
		}
		t := &tables[i]
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(t.Name)).Scan(&t.Rows); err != nil {
			return nil, &LoadError{Path: d.path, Err: err}
		}
		if err := db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM pragma_table_info(?)", t.Name).Scan(&t.Cols); err != nil {
			return nil, &LoadError{Path: d.path, Err: err}
		}
	}
	return tables, nil
}

// Open implements table diving for the tables sheet: it returns a sheet of
// the table listed in r.
func (d *Database) Open(r *row.Row) (*sheet.Sheet, error) {
	t, ok := r.Data.(*Table)
	if !ok {
		return nil, fmt.Errorf("source: row is not a table")
	}
	return d.TableSheet(t.Name), nil
}

// TableSheet returns an unloaded sheet of every row of table.
func (d *Database) TableSheet(table string) *sheet.Sheet {
	return sheet.New(table,
		sheet.WithSources(d),
		sheet.WithLoader(func(ctx context.Context, sh *sheet.Sheet) error {
			return d.loadTable(ctx, sh, table)
		}),
	)
}

func columnType(decl string) *column.Type {
	decl = strings.ToUpper(decl)
	switch {
	case strings.Contains(decl, "INT"):
		return column.Int
	case strings.Contains(decl, "REAL"), strings.Contains(decl, "FLOA"),
		strings.Contains(decl, "DOUB"), strings.Contains(decl, "NUMERIC"),
		strings.Contains(decl, "DECIMAL"):
		return column.Float
	}
	return column.Any
}

func (d *Database) loadTable(ctx context.Context, sh *sheet.Sheet, table string) error {
	db, err := d.open()
	if err != nil {
		return err
	}
	defer db.Close()

	var total int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(table)).Scan(&total); err == nil {
		sh.SetProgress(total)
	}

	rs, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return &LoadError{Path: d.path, Err: err}
	}
	defer rs.Close()

	types, err := rs.ColumnTypes()
	if err != nil {
		return &LoadError{Path: d.path, Err: err}
	}
	cols := make([]*column.Column, len(types))
	for i, ct := range types {
		cols[i] = column.New(ct.Name(), func(r *row.Row) (any, error) {
			return r.Data.([]any)[i], nil
		}, column.WithType(columnType(ct.DatabaseTypeName())))
	}

	var rows []*row.Row
	for rs.Next() {
		if err := abort.Check(ctx); err != nil {
			return err
		}
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return &LoadError{Path: d.path, Err: err}
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		rows = append(rows, row.New(vals))
		sh.AddProgress(1)
	}
	if err := rs.Err(); err != nil {
		return &LoadError{Path: d.path, Err: err}
	}
	setColumns(sh, cols)
	sh.SetRows(rows)
	sh.CompleteProgress()
	return nil
}
