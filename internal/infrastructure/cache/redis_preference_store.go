package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobseeker/backend/internal/domain/identity"
	"github.com/jobseeker/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const themeKeyPrefix = "user:preference:theme:"

// RedisPreferenceStore implements PreferenceStore using Redis.
// Preferences carry no TTL; a lost entry falls back to the default theme.
type RedisPreferenceStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisPreferenceStore creates a new Redis-based preference store
func NewRedisPreferenceStore(cfg config.RedisConfig) (*RedisPreferenceStore, error) {
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

	return &RedisPreferenceStore{
		client:    client,
		keyPrefix: themeKeyPrefix,
	}, nil
}

// NewRedisPreferenceStoreWithClient creates a store with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisPreferenceStoreWithClient(client *redis.Client, keyPrefix string) *RedisPreferenceStore {
	if keyPrefix == "" {
		keyPrefix = themeKeyPrefix
	}
	return &RedisPreferenceStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// GetTheme returns the user's theme, ThemeLight when unset
func (s *RedisPreferenceStore) GetTheme(ctx context.Context, userID uuid.UUID) (identity.Theme, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+userID.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return identity.ThemeLight, nil
		}
		return "", fmt.Errorf("failed to read theme preference: %w", err)
	}

	theme, err := identity.ParseTheme(value)
	if err != nil {
		// A corrupt entry behaves like an unset one
		return identity.ThemeLight, nil
	}
	return theme, nil
}

// SetTheme stores the user's theme
func (s *RedisPreferenceStore) SetTheme(ctx context.Context, userID uuid.UUID, theme identity.Theme) error {
	if err := s.client.Set(ctx, s.keyPrefix+userID.String(), string(theme), 0).Err(); err != nil {
		return fmt.Errorf("failed to store theme preference: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisPreferenceStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisPreferenceStore) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisPreferenceStore implements PreferenceStore
var _ identity.PreferenceStore = (*RedisPreferenceStore)(nil)
