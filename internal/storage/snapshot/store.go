// Package snapshot keeps the most recent value of something sampled in
// the background so readers never wait for a collection.
package snapshot

import (
	"sync"
	"time"
)

type Store[T any] struct {
	mu        sync.RWMutex
	data      T
	updatedAt time.Time
	set       bool
}

func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.data = v
	s.updatedAt = time.Now()
	s.set = true
	s.mu.Unlock()
}

func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Latest returns the value and whether one was ever stored.
func (s *Store[T]) Latest() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.set
}

func (s *Store[T]) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
