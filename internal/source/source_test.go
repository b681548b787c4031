package source

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/sheet"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func load(t *testing.T, sh *sheet.Sheet) {
	t.Helper()
	if err := sh.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
}

func names(sh *sheet.Sheet) string {
	var out []string
	for _, c := range sh.Columns() {
		out = append(out, c.Name())
	}
	return strings.Join(out, ",")
}

func cell(sh *sheet.Sheet, r, c int) string {
	return sh.Column(c).DisplayValue(sh.Row(r), 0).Text
}

func TestFiletype(t *testing.T) {
	tests := []struct {
		path string
		opts Options
		want string
	}{
		{"a.csv", Options{}, "csv"},
		{"a.TSV", Options{}, "tsv"},
		{"a.ndjson", Options{}, "jsonl"},
		{"a.yml", Options{}, "yaml"},
		{"a.db", Options{}, "sqlite"},
		{"README", Options{}, "txt"},
		{"a.csv", Options{Filetype: "JSON"}, "json"},
	}
	for _, tt := range tests {
		if got := Filetype(tt.path, tt.opts); got != tt.want {
			t.Errorf("Filetype(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDelimited(t *testing.T) {
	path := writeFile(t, "people.csv", "\ufeffname,,age\nann,x,31\nbob,y,27,extra\n")
	sh, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if sh.Name() != "people" {
		t.Errorf("Name() = %q, want %q", sh.Name(), "people")
	}
	if got := names(sh); got != "name,B,age,D" {
		t.Errorf("columns = %q, want %q", got, "name,B,age,D")
	}
	if sh.NRows() != 2 {
		t.Fatalf("NRows() = %d, want 2", sh.NRows())
	}
	if got := cell(sh, 1, 3); got != "extra" {
		t.Errorf("cell(1,3) = %q, want %q", got, "extra")
	}
	if got := cell(sh, 0, 3); got != "" {
		t.Errorf("short record cell = %q, want empty", got)
	}
	if err := sh.Column(3).SetValue(sh.Row(0), "filled"); err != nil {
		t.Fatal(err)
	}
	if got := cell(sh, 0, 3); got != "filled" {
		t.Errorf("after set = %q, want %q", got, "filled")
	}
}

func TestDelimiterOption(t *testing.T) {
	path := writeFile(t, "data.txt", "a;b\n1;2\n")
	sh, err := Open(path, Options{Filetype: "csv", Delimiter: ";"})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if got := names(sh); got != "a,b" {
		t.Errorf("columns = %q, want %q", got, "a,b")
	}
	if got := cell(sh, 0, 1); got != "2" {
		t.Errorf("cell = %q, want %q", got, "2")
	}
}

func TestReloadKeepsColumnTypes(t *testing.T) {
	path := writeFile(t, "n.tsv", "n\n1\n2\n")
	sh, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	sh.Column(0).SetType(column.Int)
	if err := os.WriteFile(path, []byte("n\n1\n2\n3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if sh.NRows() != 3 {
		t.Errorf("NRows() = %d, want 3", sh.NRows())
	}
	if sh.Column(0).Type() != column.Int {
		t.Errorf("type after reload = %q, want int", sh.Column(0).Type().Name())
	}
}

func TestJSON(t *testing.T) {
	path := writeFile(t, "items.json", `[{"id": 1, "a.b": "dot"}, {"id": 2, "tags": ["x"]}]`)
	sh, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if got := names(sh); got != "id,a.b,tags" {
		t.Errorf("columns = %q, want %q", got, "id,a.b,tags")
	}
	if got := cell(sh, 0, 1); got != "dot" {
		t.Errorf("escaped key cell = %q, want %q", got, "dot")
	}
	if v, _ := sh.Column(2).Raw(sh.Row(0)); v != nil {
		t.Errorf("missing key = %v, want nil", v)
	}
	if err := sh.Column(1).SetValue(sh.Row(1), "set"); err != nil {
		t.Fatal(err)
	}
	doc := sh.Row(1).Data.(*Document)
	if !strings.Contains(doc.Raw, `"a.b":"set"`) {
		t.Errorf("Raw = %s, want a.b set", doc.Raw)
	}
}

func TestJSONScalars(t *testing.T) {
	sh, err := FromReader("nums", strings.NewReader(`[1, 2, 3]`), Options{Filetype: "json"})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if got := names(sh); got != "nums" {
		t.Errorf("columns = %q, want %q", got, "nums")
	}
	if got := cell(sh, 2, 0); got != "3" {
		t.Errorf("cell = %q, want %q", got, "3")
	}
}

func TestJSONInvalid(t *testing.T) {
	path := writeFile(t, "bad.json", `[{"id": 1},`)
	sh, _ := Open(path, Options{})
	err := sh.Reload(context.Background())
	var lerr *LoadError
	if !errors.As(err, &lerr) || !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("Reload() error = %v, want LoadError wrapping ErrInvalidJSON", err)
	}
}

func TestJSONLines(t *testing.T) {
	path := writeFile(t, "log.jsonl", "{\"lvl\":\"info\"}\n\n{\"lvl\":\"warn\",\"n\":2}\n")
	sh, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if sh.NRows() != 2 {
		t.Fatalf("NRows() = %d, want 2", sh.NRows())
	}
	if got := names(sh); got != "lvl,n" {
		t.Errorf("columns = %q, want %q", got, "lvl,n")
	}

	bad := writeFile(t, "bad.jsonl", "{\"a\":1}\n{oops\n")
	sh, _ = Open(bad, Options{})
	err = sh.Reload(context.Background())
	var lerr *LoadError
	if !errors.As(err, &lerr) || lerr.Line != 2 {
		t.Errorf("Reload() error = %v, want LoadError at line 2", err)
	}
}

func TestYAML(t *testing.T) {
	path := writeFile(t, "hosts.yaml", "- host: a\n  port: 22\n- host: b\n  user: root\n---\nhost: c\n")
	sh, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if sh.NRows() != 3 {
		t.Fatalf("NRows() = %d, want 3", sh.NRows())
	}
	if got := names(sh); got != "host,port,user" {
		t.Errorf("columns = %q, want %q", got, "host,port,user")
	}
	if got := cell(sh, 0, 1); got != "22" {
		t.Errorf("port = %q, want %q", got, "22")
	}
	if got := cell(sh, 2, 0); got != "c" {
		t.Errorf("host = %q, want %q", got, "c")
	}
}

func TestText(t *testing.T) {
	path := writeFile(t, "notes", "first\nsecond\n")
	sh, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if sh.Kind() != sheet.KindText || sh.NRows() != 2 {
		t.Errorf("kind %v rows %d, want text sheet with 2 rows", sh.Kind(), sh.NRows())
	}
}

func TestEncoding(t *testing.T) {
	path := writeFile(t, "l1.csv", "name\ncaf\xe9\n")
	sh, err := Open(path, Options{Encoding: "latin1"})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if got := cell(sh, 0, 0); got != "café" {
		t.Errorf("cell = %q, want %q", got, "café")
	}
	if _, err := Open(path, Options{Encoding: "klingon"}); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("Open() error = %v, want %v", err, ErrUnknownEncoding)
	}
}

func TestUnknownFiletype(t *testing.T) {
	if _, err := Open("x.parquet", Options{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Open() error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, stmt := range []string{
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, item TEXT, price REAL)`,
		`INSERT INTO orders (item, price) VALUES ('pen', 1.5), ('ink', 3.25)`,
		`CREATE TABLE "odd ""name""" (x TEXT)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}
	db.Close()

	sh, err := Open(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	load(t, sh)
	if sh.Kind() != sheet.KindDB {
		t.Errorf("Kind() = %v, want %v", sh.Kind(), sheet.KindDB)
	}
	if sh.NRows() != 2 {
		t.Fatalf("tables = %d, want 2", sh.NRows())
	}
	orders := -1
	for i, r := range sh.Rows() {
		if r.Data.(*Table).Name == "orders" {
			orders = i
		}
	}
	if orders < 0 {
		t.Fatal("orders table not listed")
	}
	tbl := sh.Row(orders).Data.(*Table)
	if tbl.Rows != 2 || tbl.Cols != 3 {
		t.Errorf("orders = %+v, want 2 rows 3 cols", tbl)
	}

	db2 := sh.Source().(*Database)
	ts, err := db2.Open(sh.Row(orders))
	if err != nil {
		t.Fatal(err)
	}
	load(t, ts)
	if got := names(ts); got != "id,item,price" {
		t.Errorf("columns = %q, want %q", got, "id,item,price")
	}
	if ts.Column(2).Type() != column.Float {
		t.Errorf("price type = %q, want float", ts.Column(2).Type().Name())
	}
	if got := cell(ts, 1, 1); got != "ink" {
		t.Errorf("item = %q, want %q", got, "ink")
	}
}
