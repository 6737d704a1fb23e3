package catalog

import "sync"

// Store holds the current pattern list for an app. Replacement is a
// single reference swap: readers see either the old complete list or the
// new one, never a partial state. On fetch failure the owner calls Reset
// so suggestions degrade to "no matches" instead of surfacing stale data.
type Store struct {
	mu       sync.RWMutex
	patterns []string
}

func NewStore() *Store {
	return &Store{}
}

// Replace installs a new complete pattern list.
func (s *Store) Replace(patterns []string) {
	s.mu.Lock()
	s.patterns = patterns
	s.mu.Unlock()
}

// Reset clears the catalog.
func (s *Store) Reset() {
	s.Replace(nil)
}

// Patterns returns the current list. Callers must not mutate it.
func (s *Store) Patterns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patterns
}
