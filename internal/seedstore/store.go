// Package seedstore persists Vigil seed documents into a search store.
//
// The primary backend is Elasticsearch, matching the indices the platform
// queries at runtime. A SQLite backend stores the same documents locally for
// offline development, mirroring how pseudo-vectors stand in for hosted
// embedding providers.
package seedstore

import (
	"context"
	"errors"
)

// ErrInvalidConfig indicates unusable store configuration.
var ErrInvalidConfig = errors.New("invalid store configuration")

// Document is one seed document destined for an index. An empty ID lets the
// backend assign one; seed datasets normally carry explicit IDs so re-seeding
// overwrites instead of duplicating.
type Document struct {
	ID     string
	Source map[string]any
}

// ItemError describes a single document that failed to index.
type ItemError struct {
	ID     string `json:"id,omitempty"`
	Status int    `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// BulkResult summarizes one bulk indexing call. Item-level failures are
// collected rather than aborting the run.
type BulkResult struct {
	Indexed int
	Failed  []ItemError
}

// Store writes seed documents and reports index sizes.
type Store interface {
	// BulkIndex writes docs into the named index.
	BulkIndex(ctx context.Context, index string, docs []Document) (BulkResult, error)

	// Count returns the number of documents in the named index.
	Count(ctx context.Context, index string) (int, error)

	// Close releases any underlying resources.
	Close() error
}
