// Package cache holds the relay's single in-memory snapshot of sensor readings.
package cache

import (
	"sync"

	"sensor_relay/internal/models"
)

// Store is a thread-safe single-slot cache. Writers replace the whole
// snapshot; readers see either the previous or the next one, never a mix.
type Store struct {
	mu       sync.RWMutex
	snapshot models.Snapshot
	version  uint64
}

func NewStore() *Store {
	return &Store{}
}

// Load returns the installed snapshot. Callers must not mutate its slices.
func (s *Store) Load() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Swap installs snap and returns the snapshot it replaced.
func (s *Store) Swap(snap models.Snapshot) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot
	s.snapshot = snap
	s.version++
	return prev
}

// Version counts installed snapshots; 0 means never refreshed.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
