package store

import (
	"context"
	"slices"
	"sync"

	"github.com/mlindgren/wirecut/pkg/graphio"
)

// MemoryStore is an in-memory Store for development and testing.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]graphio.Graph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]graphio.Graph)}
}

// Save stores a snapshot under the given name.
func (s *MemoryStore) Save(ctx context.Context, name string, g graphio.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[name] = g
	return nil
}

// Load retrieves a snapshot by name.
func (s *MemoryStore) Load(ctx context.Context, name string) (graphio.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[name]
	if !ok {
		return graphio.Graph{}, ErrNotFound
	}
	return g, nil
}

// List returns all snapshot names, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.graphs))
	for name := range s.graphs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a snapshot.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graphs[name]; !ok {
		return ErrNotFound
	}
	delete(s.graphs, name)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
