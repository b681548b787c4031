package config

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Store holds the active options. Reads return an immutable snapshot;
// writes replace the snapshot and notify subscribers.
type Store struct {
	current atomic.Pointer[Options]

	mu        sync.Mutex
	listeners []func(Options)
}

// NewStore creates a store holding opts.
func NewStore(opts Options) *Store {
	s := &Store{}
	s.current.Store(&opts)
	return s
}

// Get returns the current options.
func (s *Store) Get() Options {
	return *s.current.Load()
}

// Replace installs opts and notifies subscribers.
func (s *Store) Replace(opts Options) {
	s.current.Store(&opts)
	s.notify(opts)
}

// Set changes a single option by name.
func (s *Store) Set(name, value string) error {
	s.mu.Lock()
	opts := *s.current.Load()
	if err := opts.Set(name, value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current.Store(&opts)
	s.mu.Unlock()
	s.notify(opts)
	return nil
}

// OnChange registers fn to run after every change.
func (s *Store) OnChange(fn func(Options)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify(opts Options) {
	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(opts)
	}
}
