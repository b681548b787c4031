package keymap

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// keymapFile is the TOML layout of a key override file:
//
//	[global]
//	"g ^E" = "all-errors"
//	"Space" = "toggle-row"
//
//	[kind.freq]
//	"^J" = "push-bin"
type keymapFile struct {
	Global map[string]string            `toml:"global"`
	Kind   map[string]map[string]string `toml:"kind"`
}

// ParseSeq splits a space-separated sequence. "Space" names the space key.
func ParseSeq(s string) ([]string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.New("keymap: empty key sequence")
	}
	for i, f := range fields {
		if f == "Space" {
			fields[i] = " "
		}
	}
	return fields, nil
}

// LoadFile applies the overrides in the TOML file at path. A missing file
// is not an error.
func (k *Keymap) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("keymap: read %s: %w", path, err)
	}
	return k.Load(data)
}

// Load applies the overrides in TOML data.
func (k *Keymap) Load(data []byte) error {
	var f keymapFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("keymap: decode: %w", err)
	}
	for keys, name := range f.Global {
		seq, cmd, err := resolve(keys, name)
		if err != nil {
			return err
		}
		k.Bind(seq, cmd, "")
	}
	for kind, table := range f.Kind {
		for keys, name := range table {
			seq, cmd, err := resolve(keys, name)
			if err != nil {
				return err
			}
			k.BindKind(sheet.Kind(kind), seq, cmd, "")
		}
	}
	return nil
}

func resolve(keys, name string) ([]string, dispatcher.Command, error) {
	seq, err := ParseSeq(keys)
	if err != nil {
		return nil, dispatcher.CmdNone, err
	}
	cmd, ok := dispatcher.LookupCommand(name)
	if !ok {
		return nil, dispatcher.CmdNone, fmt.Errorf("keymap: unknown command %q for %q", name, keys)
	}
	return seq, cmd, nil
}
