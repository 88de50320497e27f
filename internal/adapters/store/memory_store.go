package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/core"
)

// MemoryStore is an in-memory implementation of the ScanStore interface,
// suitable for the CLI and for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]core.ScanRecord
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory scan store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]core.ScanRecord),
		logger:  logger,
	}
}

// RecordScan persists the outcome of one scan.
func (s *MemoryStore) RecordScan(ctx context.Context, rec *core.ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.CallerID] = append(s.records[rec.CallerID], *rec)
	return nil
}

// ScanCount returns how many scans the caller has recorded since the given
// time.
func (s *MemoryStore) ScanCount(ctx context.Context, callerID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rec := range s.records[callerID] {
		if !rec.ScannedAt.Before(since) {
			count++
		}
	}
	return count, nil
}
