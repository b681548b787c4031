package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/dshills/sheetstorm/internal/sheet"
	"github.com/dshills/sheetstorm/internal/source"
)

// stdinName names the sheet read from standard input.
const stdinName = "stdin"

// openSources creates one sheet per argument, in argument order. "-" reads
// stdin, which is also read when there are no arguments and it is not a
// terminal. Sheets load lazily; only stdin is consumed here.
func openSources(ctx context.Context, args []string, stdin *os.File, opts source.Options) ([]*sheet.Sheet, error) {
	if len(args) == 0 && stdin != nil && !term.IsTerminal(int(stdin.Fd())) {
		args = []string{"-"}
	}

	sheets := make([]*sheet.Sheet, len(args))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sh, err := openSource(path, stdin, opts)
			if err != nil {
				return err
			}
			sheets[i] = sh
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sheets, nil
}

func openSource(path string, stdin *os.File, opts source.Options) (*sheet.Sheet, error) {
	if path == "-" {
		if stdin == nil {
			return nil, fmt.Errorf("%s: no standard input", stdinName)
		}
		return source.FromReader(stdinName, stdin, opts)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	return source.Open(path, opts)
}
