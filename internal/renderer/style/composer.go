// Package style composes terminal attributes from precedence-ranked color
// rules.
//
// A color string names colors and attributes ("215 yellow", "bold
// underline"). When several rules apply to one cell, a color replaces the
// current one only if its rule has strictly higher precedence, while
// attributes always accumulate.
package style

import (
	"slices"
	"sync"

	"github.com/dshills/sheetstorm/internal/renderer/core"
)

// Attr is a style under composition along with the precedence of the rule
// that set its color.
type Attr struct {
	Style      core.Style
	Precedence int
	colored    bool
}

// NewAttr returns an empty attribute.
func NewAttr() Attr {
	return Attr{Style: core.DefaultStyle()}
}

// Update applies a color string at the given precedence.
func (a Attr) Update(colors string, precedence int) Attr {
	if colors == "" {
		return a
	}
	spec := Parse(colors)
	for _, c := range spec.Colors {
		if !a.colored || precedence > a.Precedence {
			a.Style.Foreground = c
			a.Precedence = precedence
			a.colored = true
		}
	}
	a.Style.Attributes |= spec.Attributes
	return a
}

// Colored reports whether any rule has set a color.
func (a Attr) Colored() bool {
	return a.colored
}

// Scope selects which rules apply when resolving.
type Scope uint8

const (
	// ScopeRow rules receive the row.
	ScopeRow Scope = iota
	// ScopeCol rules receive the column.
	ScopeCol
	// ScopeHdr rules decorate column headers.
	ScopeHdr
	// ScopeCell rules receive the column, row and value.
	ScopeCell
)

// String returns the string representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeRow:
		return "row"
	case ScopeCol:
		return "col"
	case ScopeHdr:
		return "hdr"
	case ScopeCell:
		return "cell"
	default:
		return "unknown"
	}
}

// Rule yields a color string for a target, or "" when it does not apply.
type Rule[T any] struct {
	Scope      Scope
	Precedence int
	Color      func(target T) string
}

// Composer holds color rules over targets of type T.
type Composer[T any] struct {
	mu    sync.RWMutex
	rules []Rule[T]
}

// NewComposer creates an empty composer.
func NewComposer[T any]() *Composer[T] {
	return &Composer[T]{}
}

// Add registers a rule.
func (c *Composer[T]) Add(scope Scope, precedence int, color func(target T) string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, Rule[T]{Scope: scope, Precedence: precedence, Color: color})
}

// Rules returns a copy of the registered rules.
func (c *Composer[T]) Rules() []Rule[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.rules)
}

// Clone returns a composer with the same rules.
func (c *Composer[T]) Clone() *Composer[T] {
	return &Composer[T]{rules: c.Rules()}
}

// Resolve evaluates the rules of the given scopes in ascending precedence
// and returns the composed attribute.
func (c *Composer[T]) Resolve(target T, scopes ...Scope) Attr {
	var applicable []Rule[T]
	for _, r := range c.Rules() {
		if slices.Contains(scopes, r.Scope) {
			applicable = append(applicable, r)
		}
	}
	slices.SortStableFunc(applicable, func(a, b Rule[T]) int {
		return a.Precedence - b.Precedence
	})

	attr := NewAttr()
	for _, r := range applicable {
		attr = attr.Update(r.Color(target), r.Precedence)
	}
	return attr
}
