package source

import (
	"context"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Mapping is one YAML mapping backing a row. Scalars and sequences are
// stored under the empty key.
type Mapping struct {
	Values map[string]any
	Keys   []string
}

func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		m.Values = map[string]any{"": v}
		return nil
	}
	m.Values = make(map[string]any, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		var v any
		if err := node.Content[i+1].Decode(&v); err != nil {
			return err
		}
		m.Keys = append(m.Keys, key)
		m.Values[key] = v
	}
	return nil
}

func yamlColumn(name, key string) *column.Column {
	return column.New(name,
		func(r *row.Row) (any, error) { return r.Data.(*Mapping).Values[key], nil },
		column.WithSetter(func(r *row.Row, v any) error {
			r.Data.(*Mapping).Values[key] = v
			return nil
		}))
}

func newYAML(name, path string, op opener) *sheet.Sheet {
	return sheet.New(name,
		sheet.WithSources(path),
		sheet.WithLoader(func(ctx context.Context, sh *sheet.Sheet) error {
			r, c, err := openTracked(sh, op)
			if err != nil {
				return &LoadError{Path: path, Err: err}
			}
			defer c.Close()
			if err := loadYAML(ctx, sh, name, r); err != nil {
				if abort.Is(err) {
					return err
				}
				return &LoadError{Path: path, Err: err}
			}
			return nil
		}),
	)
}

// loadYAML reads every document in r. A sequence contributes one row per
// element; any other document is a single row.
func loadYAML(ctx context.Context, sh *sheet.Sheet, name string, r io.Reader) error {
	dec := yaml.NewDecoder(r)
	var items []*Mapping
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if len(node.Content) == 0 {
			continue
		}
		doc := node.Content[0]
		elems := []*yaml.Node{doc}
		if doc.Kind == yaml.SequenceNode {
			elems = doc.Content
		}
		for _, e := range elems {
			if err := abort.Check(ctx); err != nil {
				return err
			}
			m := new(Mapping)
			if err := e.Decode(m); err != nil {
				return err
			}
			items = append(items, m)
		}
	}

	seen := make(map[string]bool)
	var cols []*column.Column
	var rows []*row.Row
	for _, m := range items {
		if _, ok := m.Values[""]; ok && !seen[""] {
			seen[""] = true
			cols = append([]*column.Column{yamlColumn(name, "")}, cols...)
		}
		for _, k := range m.Keys {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, yamlColumn(k, k))
			}
		}
		rows = append(rows, row.New(m))
	}
	setColumns(sh, cols)
	sh.SetRows(rows)
	sh.CompleteProgress()
	return nil
}
