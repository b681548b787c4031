package sheets

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/dshills/sheetstorm/internal/abort"
	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/row"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Line is one row of a text sheet.
type Line struct {
	N    int
	Text string
}

// TextOption configures a text sheet.
type TextOption func(*textConfig)

type textConfig struct {
	wrap int
}

// WithWrap wraps lines longer than width. Zero disables wrapping.
func WithWrap(width int) TextOption {
	return func(c *textConfig) { c.wrap = width }
}

// Opener returns a fresh reader each time a text sheet is loaded.
type Opener func() (io.ReadCloser, error)

// NewText creates a sheet with one row per line of source, which may be a
// string, a []string, an error, a []error, an Opener or an io.Reader.
func NewText(name string, source any, opts ...TextOption) *sheet.Sheet {
	var cfg textConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	textCol := column.New(name, func(r *row.Row) (any, error) {
		return r.Data.(Line).Text, nil
	})
	return sheet.New(name,
		sheet.WithKind(sheet.KindText),
		sheet.WithSources(source),
		sheet.WithColumns(textCol),
		sheet.WithLoader(func(ctx context.Context, sh *sheet.Sheet) error {
			return loadText(ctx, sh, source, cfg)
		}),
	)
}

func loadText(ctx context.Context, sh *sheet.Sheet, source any, cfg textConfig) error {
	var rows []*row.Row
	add := func(text string) {
		if cfg.wrap > 0 && len(text) > cfg.wrap {
			for _, l := range strings.Split(wordwrap.String(text, cfg.wrap), "\n") {
				rows = append(rows, row.New(Line{N: len(rows), Text: l}))
			}
			return
		}
		rows = append(rows, row.New(Line{N: len(rows), Text: text}))
	}

	var lines []string
	switch src := source.(type) {
	case string:
		lines = strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	case []string:
		lines = src
	case error:
		lines = strings.Split(src.Error(), "\n")
	case []error:
		for _, err := range src {
			lines = append(lines, strings.Split(err.Error(), "\n")...)
			lines = append(lines, "")
		}
	case Opener:
		rc, err := src()
		if err != nil {
			return err
		}
		defer rc.Close()
		return loadText(ctx, sh, io.Reader(rc), cfg)
	case io.Reader:
		sc := bufio.NewScanner(src)
		sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
		for sc.Scan() {
			if err := abort.Check(ctx); err != nil {
				return err
			}
			add(sc.Text())
			sh.AddProgress(1)
		}
		if err := sc.Err(); err != nil {
			return err
		}
		sh.SetRows(rows)
		return nil
	default:
		return fmt.Errorf("unknown text type %T", source)
	}

	sh.SetProgress(int64(len(lines)))
	for _, l := range lines {
		if err := abort.Check(ctx); err != nil {
			return err
		}
		add(l)
		sh.AddProgress(1)
	}
	sh.SetRows(rows)
	return nil
}
