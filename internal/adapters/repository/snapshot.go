package repository

import (
	"context"
	"sync"

	"github.com/okian/alpe/internal/domain/model"
	"github.com/okian/alpe/pkg/logger"
	"github.com/okian/alpe/pkg/metrics"
)

// SnapshotStore is an in-memory Store. The snapshot is immutable after Put.
type SnapshotStore struct {
	mu      sync.RWMutex
	records []model.EnrichedRecord
	loaded  bool
	logger  logger.Logger
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put implements Store.
func (s *SnapshotStore) Put(ctx context.Context, records []model.EnrichedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		if s.logger != nil {
			s.logger.Warn(ctx, "rejecting second dataset write", logger.Int("records", len(records)))
		}
		return ErrAlreadyLoaded
	}
	s.records = make([]model.EnrichedRecord, len(records))
	copy(s.records, records)
	s.loaded = true

	c := model.CountDoping(s.records)
	metrics.UpdateDataset(len(s.records), c.Doped, c.Clean)
	return nil
}

// All implements Store.
func (s *SnapshotStore) All(_ context.Context) ([]model.EnrichedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, ErrNotLoaded
	}
	out := make([]model.EnrichedRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Count implements Store.
func (s *SnapshotStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Loaded implements Store.
func (s *SnapshotStore) Loaded(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
