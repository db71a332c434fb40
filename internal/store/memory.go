package store

import (
	"fmt"
	"sync"

	"cathode/internal/display"
)

// MemoryStore is an in-memory ModeStore, useful for testing.
// This implementation is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	modes Collection
}

// NewMemoryStore creates a store holding the given modes.
func NewMemoryStore(modes ...display.TimingMode) *MemoryStore {
	s := &MemoryStore{}
	for _, m := range modes {
		s.modes.Put(m)
	}
	return s
}

func (s *MemoryStore) Find(name string) (display.TimingMode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.modes.Find(name)
	if !ok {
		return display.TimingMode{}, fmt.Errorf("%w: %s", display.ErrNotFound, name)
	}
	return m, nil
}

func (s *MemoryStore) Save(mode display.TimingMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.modes.Put(mode)
	return nil
}

func (s *MemoryStore) List() ([]display.TimingMode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]display.TimingMode(nil), s.modes.Modes...), nil
}

var _ display.ModeStore = (*MemoryStore)(nil)
