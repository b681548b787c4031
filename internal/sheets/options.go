package sheets

import (
	"context"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/config"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

func infoOf(r *row.Row) config.Info {
	return r.Data.(config.Info)
}

// NewOptions creates a sheet listing every option in store. Setting the
// value column changes the option; rows are refreshed on reload.
func NewOptions(store *config.Store) *sheet.Sheet {
	cols := []*column.Column{
		column.New("option", func(r *row.Row) (any, error) { return infoOf(r).Name, nil }),
		column.New("value", func(r *row.Row) (any, error) {
			return store.Get().Get(infoOf(r).Name)
		},
			column.WithType(column.String),
			column.WithSetter(func(r *row.Row, v any) error {
				return store.Set(infoOf(r).Name, column.ToString(v))
			})),
		column.New("default", func(r *row.Row) (any, error) { return infoOf(r).Default, nil }),
		column.New("description", func(r *row.Row) (any, error) { return infoOf(r).Help, nil }),
	}
	return sheet.New("options",
		sheet.WithKind(sheet.KindOptions),
		sheet.WithSources(store),
		sheet.WithColumns(cols...),
		sheet.WithKeys(1),
		sheet.WithLoader(func(_ context.Context, sh *sheet.Sheet) error {
			list := store.Get().List()
			rows := make([]*row.Row, len(list))
			for i, info := range list {
				rows[i] = row.New(info)
			}
			sh.SetRows(rows)
			return nil
		}),
	)
}

// OptionAt returns the option name listed in row r of an options sheet.
func OptionAt(r *row.Row) (string, bool) {
	if r == nil {
		return "", false
	}
	info, ok := r.Data.(config.Info)
	return info.Name, ok
}
