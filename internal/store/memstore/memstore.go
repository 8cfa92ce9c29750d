// Package memstore is an in-memory store.Store, used by tests and by
// ephemeral runs that must not touch disk.
package memstore

import (
	"context"
	"sync"

	"github.com/Makepad-fr/shopfront/internal/store"
)

type Store struct {
	mu   sync.RWMutex
	data map[string]string

	// FailSet, when set, is returned by every Set.
	FailSet error
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{data: map[string]string{}}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSet != nil {
		return s.FailSet
	}
	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
