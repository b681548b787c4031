package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// ErrInvalidJSON indicates a document or line that does not parse.
var ErrInvalidJSON = errors.New("source: invalid json")

// Document is one JSON value backing a row.
type Document struct {
	Raw string
}

const thisPath = "@this"

// escapePath quotes gjson path metacharacters in a single object key.
func escapePath(key string) string {
	var b strings.Builder
	for i, c := range key {
		switch c {
		case '.', '*', '?', '|', '#', '\\':
			b.WriteByte('\\')
		case '@', '!', '=', '<', '>', '%':
			if i == 0 {
				b.WriteByte('\\')
			}
		}
		b.WriteRune(c)
	}
	return b.String()
}

func jsonColumn(name, path string) *column.Column {
	getter := func(r *row.Row) (any, error) {
		res := gjson.Get(r.Data.(*Document).Raw, path)
		if !res.Exists() {
			return nil, nil
		}
		return res.Value(), nil
	}
	setter := func(r *row.Row, v any) error {
		doc := r.Data.(*Document)
		if path == thisPath {
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			doc.Raw = string(b)
			return nil
		}
		raw, err := sjson.Set(doc.Raw, path, v)
		if err != nil {
			return err
		}
		doc.Raw = raw
		return nil
	}
	return column.New(name, getter, column.WithSetter(setter))
}

// keySet collects object keys in order of first appearance.
type keySet struct {
	seen    map[string]bool
	keys    []string
	scalars bool
}

func (k *keySet) add(raw string) {
	res := gjson.Parse(raw)
	if !res.IsObject() {
		k.scalars = true
		return
	}
	res.ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		if !k.seen[name] {
			k.seen[name] = true
			k.keys = append(k.keys, name)
		}
		return true
	})
}

// columns builds one column per key. Non-object documents add a leading
// column over the whole value.
func (k *keySet) columns(name string) []*column.Column {
	var cols []*column.Column
	if k.scalars || len(k.keys) == 0 {
		cols = append(cols, jsonColumn(name, thisPath))
	}
	for _, key := range k.keys {
		cols = append(cols, jsonColumn(key, escapePath(key)))
	}
	return cols
}

func newJSON(name, path string, op opener) *sheet.Sheet {
	return sheet.New(name,
		sheet.WithSources(path),
		sheet.WithLoader(func(ctx context.Context, sh *sheet.Sheet) error {
			r, c, err := openTracked(sh, op)
			if err != nil {
				return &LoadError{Path: path, Err: err}
			}
			defer c.Close()
			data, err := io.ReadAll(r)
			if err != nil {
				return &LoadError{Path: path, Err: err}
			}
			if !gjson.ValidBytes(data) {
				return &LoadError{Path: path, Err: ErrInvalidJSON}
			}
			return loadDocuments(ctx, sh, name, gjson.ParseBytes(data))
		}),
	)
}

func loadDocuments(ctx context.Context, sh *sheet.Sheet, name string, doc gjson.Result) error {
	keys := keySet{seen: make(map[string]bool)}
	var rows []*row.Row
	add := func(raw string) {
		keys.add(raw)
		rows = append(rows, row.New(&Document{Raw: raw}))
	}
	if doc.IsArray() {
		var err error
		doc.ForEach(func(_, v gjson.Result) bool {
			if err = abort.Check(ctx); err != nil {
				return false
			}
			add(v.Raw)
			return true
		})
		if err != nil {
			return err
		}
	} else {
		add(doc.Raw)
	}
	setColumns(sh, keys.columns(name))
	sh.SetRows(rows)
	sh.CompleteProgress()
	return nil
}

func newJSONLines(name, path string, op opener) *sheet.Sheet {
	return sheet.New(name,
		sheet.WithSources(path),
		sheet.WithLoader(func(ctx context.Context, sh *sheet.Sheet) error {
			r, c, err := openTracked(sh, op)
			if err != nil {
				return &LoadError{Path: path, Err: err}
			}
			defer c.Close()

			keys := keySet{seen: make(map[string]bool)}
			var rows []*row.Row
			sc := bufio.NewScanner(r)
			sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
			for n := 1; sc.Scan(); n++ {
				if err := abort.Check(ctx); err != nil {
					return err
				}
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					continue
				}
				if !json.Valid([]byte(line)) {
					return &LoadError{Path: path, Line: n, Err: ErrInvalidJSON}
				}
				keys.add(line)
				rows = append(rows, row.New(&Document{Raw: line}))
			}
			if err := sc.Err(); err != nil {
				return &LoadError{Path: path, Err: fmt.Errorf("read: %w", err)}
			}
			setColumns(sh, keys.columns(name))
			sh.SetRows(rows)
			sh.CompleteProgress()
			return nil
		}),
	)
}
