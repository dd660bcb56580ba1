package listing

import (
	"context"
	"time"
)

// Snapshot is a cached copy of the full listing set. Readers render it
// immediately while a fresh fetch runs behind it.
type Snapshot struct {
	Jobs       []*Job    `json:"jobs"`
	Total      int64     `json:"total"`
	Generation uint64    `json:"generation"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// SnapshotCache stores the listing snapshot shared by all readers.
type SnapshotCache interface {
	// Get returns the cached snapshot, or shared.ErrNotFound when the
	// cache is cold or the entry expired.
	Get(ctx context.Context) (*Snapshot, error)

	// Set replaces the cached snapshot with a TTL.
	Set(ctx context.Context, snapshot *Snapshot, ttl time.Duration) error

	// Invalidate drops the cached snapshot.
	Invalidate(ctx context.Context) error
}
