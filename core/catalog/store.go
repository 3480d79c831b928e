// Package catalog - Snapshot store
package catalog

import (
	"sync"

	"go.uber.org/zap"

	"sodacraft/internal/logging"
)

// Store holds the current catalog snapshot. Readers always see a
// complete catalog; reloads swap the whole snapshot atomically.
type Store struct {
	mu      sync.RWMutex
	current *Catalog
	dir     string
}

// NewStore creates a store around an initial snapshot
func NewStore(dir string, initial *Catalog) *Store {
	return &Store{
		current: initial,
		dir:     dir,
	}
}

// Current returns the active catalog snapshot
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a new snapshot
func (s *Store) Replace(c *Catalog) {
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
}

// Dir returns the directory the store loads from
func (s *Store) Dir() string {
	return s.dir
}

// Reload loads a fresh snapshot from the store's directory. On load
// failure the previous snapshot stays active.
func (s *Store) Reload() error {
	fresh, err := LoadDir(s.dir)
	if err != nil {
		logging.Error("catalog reload failed, keeping previous snapshot",
			zap.String("dir", s.dir), zap.Error(err))
		return err
	}

	s.Replace(fresh)
	logging.Info("catalog reloaded",
		zap.String("dir", s.dir),
		zap.Int("bases", len(fresh.bases)),
		zap.Int("flavors", len(fresh.flavors)))
	return nil
}
