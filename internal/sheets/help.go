package sheets

import (
	"context"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/input/keymap"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

func bindingOf(r *row.Row) keymap.Binding {
	return r.Data.(keymap.Binding)
}

// NewHelp creates a sheet listing the bindings in effect for src.
func NewHelp(km *keymap.Keymap, src *sheet.Sheet) *sheet.Sheet {
	kind := src.Kind()
	cols := []*column.Column{
		column.New("keystrokes", func(r *row.Row) (any, error) { return bindingOf(r).Name(), nil }),
		column.New("help", func(r *row.Row) (any, error) { return bindingOf(r).Help, nil }),
		column.New("with_g_prefix", func(r *row.Row) (any, error) {
			b := bindingOf(r)
			if len(b.Keys) != 1 {
				return "", nil
			}
			if g, ok := km.Lookup(kind, keymap.Seq(keymap.PrefixGlobal, b.Keys[0])); ok {
				return g.Help, nil
			}
			return "-", nil
		}),
		column.New("command", func(r *row.Row) (any, error) { return bindingOf(r).Command.String(), nil }),
	}
	return sheet.New(src.Name()+"_help",
		sheet.WithKind(sheet.KindHelp),
		sheet.WithSources(src),
		sheet.WithColumns(cols...),
		sheet.WithKeys(1),
		sheet.WithLoader(func(_ context.Context, sh *sheet.Sheet) error {
			bindings := km.Bindings(kind)
			rows := make([]*row.Row, len(bindings))
			for i, b := range bindings {
				rows[i] = row.New(b)
			}
			sh.SetRows(rows)
			return nil
		}),
	)
}
