// Package row provides the row store element used by sheets.
//
// Every row carries a surrogate ID assigned when it is created. Selection and
// display caches key on the ID, so two rows holding equal data remain
// distinct.
package row

import "sync/atomic"

// ID identifies a row for the lifetime of the process.
type ID uint64

var nextID atomic.Uint64

// Row wraps an opaque data value with its surrogate ID.
type Row struct {
	id   ID
	Data any
}

// New creates a row for data with a fresh ID.
func New(data any) *Row {
	return &Row{id: ID(nextID.Add(1)), Data: data}
}

// FromSlice creates one row per element of data.
func FromSlice[T any](data []T) []*Row {
	rows := make([]*Row, len(data))
	for i, d := range data {
		rows[i] = New(d)
	}
	return rows
}

// ID returns the row's surrogate ID.
func (r *Row) ID() ID {
	return r.id
}
