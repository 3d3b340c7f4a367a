// Package memstore provides an in-memory store.Store, mostly for tests and
// throwaway sessions.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/etnz/wealth/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps values in a map. The zero value is not usable, use New.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = slices.Clone(value)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *Store) Close() error { return nil }
