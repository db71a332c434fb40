package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryRemote is an in-memory implementation of the Remote interface.
// This implementation is safe for concurrent use.
type MemoryRemote struct {
	name    string
	objects map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryRemote creates a new in-memory remote with the given name.
func NewMemoryRemote(name string) *MemoryRemote {
	return &MemoryRemote{
		name:    name,
		objects: make(map[string][]byte),
	}
}

func (m *MemoryRemote) Name() string { return m.name }

func (m *MemoryRemote) Put(_ context.Context, key string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read object: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *MemoryRemote) Get(_ context.Context, key string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// ValidateSetup always succeeds for an in-memory remote.
func (m *MemoryRemote) ValidateSetup(context.Context) error { return nil }

var _ Remote = (*MemoryRemote)(nil)
