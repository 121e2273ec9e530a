package store

import (
	"errors"
	"sync"

	"github.com/i474232898/bike-weather-regression/internal/dataset"
)

var (
	// ErrNotLoaded is returned before the first successful load.
	ErrNotLoaded = errors.New("datasets not loaded")
)

// MemoryStore holds the current combined-table snapshot. A snapshot is never
// mutated; Set swaps in a whole new one so readers always see a consistent table.
type MemoryStore struct {
	mu      sync.RWMutex
	current *dataset.Combined
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Set replaces the snapshot. A nil table is ignored.
func (s *MemoryStore) Set(table *dataset.Combined) {
	if table == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = table
}

// Current returns the latest snapshot.
func (s *MemoryStore) Current() (*dataset.Combined, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}
