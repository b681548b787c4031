package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/dshills/sheetstorm/internal/column"
	"github.com/dshills/sheetstorm/internal/sheet"
	"github.com/dshills/sheetstorm/internal/sheets"
)

// Options controls how sources are parsed.
type Options struct {
	// Filetype overrides the extension-derived format.
	Filetype string
	// Delimiter overrides the field separator of delimited text.
	Delimiter string
	// Encoding names the character set of text sources.
	Encoding string
	// Wrap wraps plain text lines wider than this.
	Wrap int
}

// opener yields the raw bytes of a source and their size, or -1 when the
// size is unknown.
type opener func() (io.ReadCloser, int64, error)

func fileOpener(path string) opener {
	return func() (io.ReadCloser, int64, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, err
		}
		size := int64(-1)
		if fi, err := f.Stat(); err == nil {
			size = fi.Size()
		}
		return f, size, nil
	}
}

func bytesOpener(data []byte) opener {
	return func() (io.ReadCloser, int64, error) {
		return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
	}
}

// Filetype returns the format name Open would use for path.
func Filetype(path string, opts Options) string {
	if opts.Filetype != "" {
		return strings.ToLower(opts.Filetype)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "ndjson", "ldjson":
		return "jsonl"
	case "yml":
		return "yaml"
	case "db", "sqlite3":
		return "sqlite"
	case "tab":
		return "tsv"
	case "":
		return "txt"
	}
	return ext
}

// Open creates a sheet for the file at path.
func Open(path string, opts Options) (*sheet.Sheet, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ft := Filetype(path, opts)
	if ft == "sqlite" {
		return NewDatabase(path).Sheet(name), nil
	}
	return open(name, path, ft, fileOpener(path), opts)
}

// FromReader reads r fully and creates a sheet over its contents. It is
// used for standard input, which cannot be reread.
func FromReader(name string, r io.Reader, opts Options) (*sheet.Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	ft := opts.Filetype
	if ft == "" {
		ft = "txt"
		if opts.Delimiter != "" {
			ft = "tsv"
		}
	}
	if ft == "sqlite" {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("%w: sqlite from a stream", ErrUnknownFormat)}
	}
	return open(name, name, ft, bytesOpener(data), opts)
}

func open(name, path, ft string, op opener, opts Options) (*sheet.Sheet, error) {
	dec, err := decoder(opts.Encoding)
	if err != nil {
		return nil, err
	}
	op = dec(op)
	switch ft {
	case "csv", "tsv":
		delim := opts.Delimiter
		if delim == "" {
			delim = ","
			if ft == "tsv" {
				delim = "\t"
			}
		}
		return newDelimited(name, path, op, []rune(unescape(delim))[0]), nil
	case "json":
		return newJSON(name, path, op), nil
	case "jsonl":
		return newJSONLines(name, path, op), nil
	case "yaml":
		return newYAML(name, path, op), nil
	case "txt", "text", "log", "md":
		text := sheets.Opener(func() (io.ReadCloser, error) {
			rc, _, err := op()
			return rc, err
		})
		sh := sheets.NewText(name, text, sheets.WithWrap(opts.Wrap))
		return sh, nil
	}
	return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %s", ErrUnknownFormat, ft)}
}

func unescape(delim string) string {
	switch delim {
	case `\t`, "tab":
		return "\t"
	case "":
		return ","
	}
	return delim
}

// decoder wraps openers to transcode from the named charset to UTF-8.
func decoder(name string) (func(opener) opener, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return func(op opener) opener { return op }, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	return func(op opener) opener {
		return func() (io.ReadCloser, int64, error) {
			rc, size, err := op()
			if err != nil {
				return nil, 0, err
			}
			return readCloser{transform.NewReader(rc, enc.NewDecoder()), rc}, size, nil
		}
	}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

// progressReader counts consumed bytes into the sheet's progress.
type progressReader struct {
	r  io.Reader
	sh *sheet.Sheet
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sh.AddProgress(int64(n))
	}
	return n, err
}

// openTracked opens op and reports its bytes as progress on sh.
func openTracked(sh *sheet.Sheet, op opener) (io.Reader, io.Closer, error) {
	rc, size, err := op()
	if err != nil {
		return nil, nil, err
	}
	if size > 0 {
		sh.SetProgress(size)
	}
	return &progressReader{r: rc, sh: sh}, rc, nil
}

// setColumns installs cols on the first load. Reloads keep the existing
// columns, and their types and widths, when the shape is unchanged.
func setColumns(sh *sheet.Sheet, cols []*column.Column) {
	if sh.Loaded() && sh.NColumns() == len(cols) {
		return
	}
	sh.SetColumns(cols, 0)
}
