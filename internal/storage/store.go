// Package storage implements Storage (C10): a TTL-bound, in-memory
// file_id -> Table map, grounded on the same RWMutex-guarded map plus
// background sweep pattern used elsewhere in this codebase for
// session-scoped state.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourorg/hr-field-resolver/internal/ingest"
)

// ErrNotFound is returned by Retrieve for an unknown or expired
// file_id, per spec §6 FILE_NOT_FOUND.
var ErrNotFound = errors.New("storage: file not found")

type entry struct {
	mu         sync.RWMutex
	table      *ingest.Table
	meta       *ingest.ParseMetadata
	lastAccess time.Time
}

// Store is the process-wide, thread-safe Table store. Readers of
// different entries never block each other; writers are exclusive per
// entry, per spec §5.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
}

// New builds a Store whose entries expire ttl after their last access.
func New(ttl time.Duration) *Store {
	return &Store{entries: make(map[string]*entry), ttl: ttl}
}

// Run starts the periodic expiry sweep; it blocks until ctx is
// cancelled, so callers should invoke it in its own goroutine.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupExpired()
		}
	}
}

// Store persists a Table under a freshly generated file_id.
func (s *Store) Store(table *ingest.Table, meta *ingest.ParseMetadata) string {
	id := uuid.NewString()
	e := &entry{table: table, meta: meta, lastAccess: time.Now()}

	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()

	return id
}

// Retrieve returns the Table and metadata for file_id, touching its
// last-access time, or ErrNotFound.
func (s *Store) Retrieve(fileID string) (*ingest.Table, *ingest.ParseMetadata, error) {
	s.mu.RLock()
	e, ok := s.entries[fileID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrNotFound
	}

	e.mu.Lock()
	e.lastAccess = time.Now()
	table, meta := e.table, e.meta
	e.mu.Unlock()

	return table, meta, nil
}

// Delete removes an entry immediately, if present.
func (s *Store) Delete(fileID string) {
	s.mu.Lock()
	delete(s.entries, fileID)
	s.mu.Unlock()
}

// Count reports the number of live entries, for metrics.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) cleanupExpired() {
	now := time.Now()

	s.mu.RLock()
	expired := make([]string, 0)
	for id, e := range s.entries {
		e.mu.RLock()
		stale := now.Sub(e.lastAccess) >= s.ttl
		e.mu.RUnlock()
		if stale {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	if len(expired) == 0 {
		return
	}

	s.mu.Lock()
	for _, id := range expired {
		delete(s.entries, id)
	}
	s.mu.Unlock()
}
