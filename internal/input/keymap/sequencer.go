package keymap

import (
	"fmt"
	"slices"

	"github.com/dshills/sheetstorm/internal/sheet"
)

// State is the outcome of feeding one key.
type State uint8

const (
	// Pending means the keys so far are a prefix; more are needed.
	Pending State = iota
	// Matched means a binding was found.
	Matched
	// Unbound means the keys resolve to nothing. The buffer is reset.
	Unbound
)

// Sequencer accumulates keystrokes into bindings.
type Sequencer struct {
	km  *Keymap
	buf []string
}

// NewSequencer creates a sequencer over km.
func NewSequencer(km *Keymap) *Sequencer {
	return &Sequencer{km: km}
}

// Feed appends name to the buffer and resolves it for a sheet of kind. On
// Unbound the returned binding carries the rejected keys.
func (s *Sequencer) Feed(kind sheet.Kind, name string) (Binding, State) {
	s.buf = append(s.buf, name)
	if b, ok := s.km.Lookup(kind, s.buf); ok {
		s.Reset()
		return b, Matched
	}
	if s.km.IsPrefix(s.buf) {
		return Binding{}, Pending
	}
	b := Binding{Keys: slices.Clone(s.buf)}
	s.Reset()
	return b, Unbound
}

// Pending returns the keys accumulated so far.
func (s *Sequencer) Pending() []string {
	return slices.Clone(s.buf)
}

// Reset clears the buffer.
func (s *Sequencer) Reset() {
	s.buf = s.buf[:0]
}

// UnboundError describes keys with no command.
func UnboundError(b Binding) error {
	return fmt.Errorf("no command for \"%s\"", b.Name())
}
