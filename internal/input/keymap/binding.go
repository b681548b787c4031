package keymap

import (
	"strings"

	"github.com/dshills/sheetstorm/internal/dispatcher"
)

// Binding maps a key sequence to a command.
type Binding struct {
	// Keys is the key sequence, one key name per element.
	Keys []string

	// Command is the command to execute.
	Command dispatcher.Command

	// Help describes the binding.
	Help string
}

// Seq builds a key sequence.
func Seq(keys ...string) []string {
	return keys
}

// Name returns the sequence as typed, e.g. "g^E".
func (b Binding) Name() string {
	return strings.Join(b.Keys, "")
}

func seqKey(keys []string) string {
	return strings.Join(keys, "\x00")
}
