package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads the TOML file at path over the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func Load(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(path, data, &opts); err != nil {
		return DefaultOptions(), err
	}
	return opts, nil
}

// Decode unmarshals TOML data into opts. Keys not present in data keep the
// values already in opts.
func Decode(path string, data []byte, opts *Options) error {
	if err := toml.Unmarshal(data, opts); err != nil {
		perr := &ParseError{Path: path, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// Write encodes opts as TOML.
func Write(w io.Writer, opts Options) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(opts); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}
