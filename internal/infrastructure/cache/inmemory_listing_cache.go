package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jobseeker/backend/internal/domain/listing"
	"github.com/jobseeker/backend/internal/domain/shared"
)

// InMemoryListingCache implements SnapshotCache using process memory.
// This is suitable for single-instance deployments and testing.
type InMemoryListingCache struct {
	mu        sync.RWMutex
	snapshot  *listing.Snapshot
	expiresAt time.Time
}

// NewInMemoryListingCache creates a new in-memory listing cache
func NewInMemoryListingCache() *InMemoryListingCache {
	return &InMemoryListingCache{}
}

// Get returns the cached snapshot, or shared.ErrNotFound when cold or expired
func (c *InMemoryListingCache) Get(ctx context.Context) (*listing.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil || time.Now().After(c.expiresAt) {
		return nil, shared.ErrNotFound
	}
	return c.snapshot, nil
}

// Set replaces the cached snapshot with a TTL
func (c *InMemoryListingCache) Set(ctx context.Context, snapshot *listing.Snapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = snapshot
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

// Invalidate drops the cached snapshot
func (c *InMemoryListingCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	return nil
}

// Ensure InMemoryListingCache implements SnapshotCache
var _ listing.SnapshotCache = (*InMemoryListingCache)(nil)
