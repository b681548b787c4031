package lineedit

import (
	"slices"
	"sync"
)

// historySize bounds the entries kept per kind.
const historySize = 100

// History holds accepted inputs per input kind ("regex", "edit", ...).
type History struct {
	mu    sync.Mutex
	kinds map[string][]string
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{kinds: make(map[string][]string)}
}

// Add appends s to the entries of kind. Empty strings and repeats of the
// newest entry are skipped.
func (h *History) Add(kind, s string) {
	if s == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.kinds[kind]
	if n := len(list); n > 0 && list[n-1] == s {
		return
	}
	list = append(list, s)
	if over := len(list) - historySize; over > 0 {
		list = slices.Delete(list, 0, over)
	}
	h.kinds[kind] = list
}

// Entries returns the entries of kind, oldest first.
func (h *History) Entries(kind string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.kinds[kind])
}
