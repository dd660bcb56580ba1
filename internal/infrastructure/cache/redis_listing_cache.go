package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jobseeker/backend/internal/domain/listing"
	"github.com/jobseeker/backend/internal/domain/shared"
	"github.com/jobseeker/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const listingSnapshotKey = "listing:snapshot"

// RedisListingCache implements SnapshotCache using Redis.
// This is suitable for distributed deployments where multiple instances
// should serve the same cached listing set.
type RedisListingCache struct {
	client *redis.Client
	key    string
}

// NewRedisListingCache creates a new Redis-based listing cache
func NewRedisListingCache(cfg config.RedisConfig) (*RedisListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisListingCache{
		client: client,
		key:    listingSnapshotKey,
	}, nil
}

// NewRedisListingCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisListingCacheWithClient(client *redis.Client, key string) *RedisListingCache {
	if key == "" {
		key = listingSnapshotKey
	}
	return &RedisListingCache{
		client: client,
		key:    key,
	}
}

// Get returns the cached snapshot, or shared.ErrNotFound when the cache is cold
func (c *RedisListingCache) Get(ctx context.Context) (*listing.Snapshot, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read listing snapshot: %w", err)
	}

	var snapshot listing.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// A corrupt entry behaves like a miss so the next fetch repairs it
		return nil, shared.ErrNotFound
	}
	return &snapshot, nil
}

// Set replaces the cached snapshot with a TTL
func (c *RedisListingCache) Set(ctx context.Context, snapshot *listing.Snapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode listing snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write listing snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot
func (c *RedisListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listing snapshot: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisListingCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisListingCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisListingCache implements SnapshotCache
var _ listing.SnapshotCache = (*RedisListingCache)(nil)
