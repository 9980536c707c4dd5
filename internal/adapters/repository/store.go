// Package repository holds the loaded dataset as a write-once snapshot.
package repository

import (
	"context"

	"github.com/okian/alpe/internal/domain/model"
)

// Store provides access to the dataset of the current process.
type Store interface {
	// Put stores the dataset. It succeeds once; later calls return
	// ErrAlreadyLoaded and leave the snapshot untouched.
	Put(ctx context.Context, records []model.EnrichedRecord) error

	// All returns a copy of the records in load order. It returns
	// ErrNotLoaded before the first Put.
	All(ctx context.Context) ([]model.EnrichedRecord, error)

	// Count returns the number of stored records, 0 before the first Put.
	Count(ctx context.Context) int

	// Loaded reports whether Put has succeeded.
	Loaded(ctx context.Context) bool
}
