package keymap

import (
	"slices"
	"sync"

	"github.com/dshills/sheetstorm/internal/dispatcher"
	"github.com/dshills/sheetstorm/internal/sheet"
)

// Prefix keys.
const (
	PrefixGlobal = "g"
	PrefixScroll = "z"
)

// table is an ordered set of bindings.
type table struct {
	bindings map[string]Binding
	order    []string
}

func newTable() *table {
	return &table{bindings: make(map[string]Binding)}
}

func (t *table) add(b Binding) {
	k := seqKey(b.Keys)
	if _, ok := t.bindings[k]; !ok {
		t.order = append(t.order, k)
	}
	t.bindings[k] = b
}

func (t *table) list() []Binding {
	out := make([]Binding, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.bindings[k])
	}
	return out
}

// Keymap holds the global table and per-kind overrides.
type Keymap struct {
	mu       sync.RWMutex
	global   *table
	kinds    map[sheet.Kind]*table
	prefixes map[string]bool
}

// New creates an empty keymap with the two reserved prefixes.
func New() *Keymap {
	return &Keymap{
		global:   newTable(),
		kinds:    make(map[sheet.Kind]*table),
		prefixes: map[string]bool{PrefixGlobal: true, PrefixScroll: true},
	}
}

// Bind adds a global binding, replacing any binding for the same keys.
func (k *Keymap) Bind(keys []string, cmd dispatcher.Command, help string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.global.add(Binding{Keys: slices.Clone(keys), Command: cmd, Help: help})
}

// BindKind adds a binding that applies only to sheets of kind.
func (k *Keymap) BindKind(kind sheet.Kind, keys []string, cmd dispatcher.Command, help string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	t := k.kinds[kind]
	if t == nil {
		t = newTable()
		k.kinds[kind] = t
	}
	t.add(Binding{Keys: slices.Clone(keys), Command: cmd, Help: help})
}

// Lookup resolves keys for a sheet of kind: the kind table first, then the
// global table.
func (k *Keymap) Lookup(kind sheet.Kind, keys []string) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	key := seqKey(keys)
	if t := k.kinds[kind]; t != nil {
		if b, ok := t.bindings[key]; ok {
			return b, true
		}
	}
	b, ok := k.global.bindings[key]
	return b, ok
}

// IsPrefix reports whether keys may be extended into a binding.
func (k *Keymap) IsPrefix(keys []string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(keys) == 1 && k.prefixes[keys[0]]
}

// Bindings returns the bindings in effect for kind: kind overrides first,
// then the global bindings they do not shadow, each in registration order.
func (k *Keymap) Bindings(kind sheet.Kind) []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()
	var out []Binding
	shadow := make(map[string]bool)
	if t := k.kinds[kind]; t != nil {
		for _, b := range t.list() {
			out = append(out, b)
			shadow[seqKey(b.Keys)] = true
		}
	}
	for _, b := range k.global.list() {
		if !shadow[seqKey(b.Keys)] {
			out = append(out, b)
		}
	}
	return out
}

// KeysFor returns the key sequences bound to cmd for kind.
func (k *Keymap) KeysFor(kind sheet.Kind, cmd dispatcher.Command) []string {
	var out []string
	for _, b := range k.Bindings(kind) {
		if b.Command == cmd {
			out = append(out, b.Name())
		}
	}
	return out
}
