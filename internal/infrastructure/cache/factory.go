package cache

import (
	"fmt"

	"github.com/jobseeker/backend/internal/domain/identity"
	"github.com/jobseeker/backend/internal/domain/listing"
	"github.com/jobseeker/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory creates cache-backed stores based on configuration
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new cache factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateListingCache creates a listing snapshot cache based on whether Redis
// is available. It tries Redis first and falls back to in-memory if Redis is
// not available and fallback is allowed.
func (f *Factory) CreateListingCache() (listing.SnapshotCache, error) {
	cache, err := NewRedisListingCache(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis listing cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for listing cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory listing cache. "+
		"Instances will fetch and cache listings independently.",
		zap.Error(err),
	)
	return NewInMemoryListingCache(), nil
}

// CreatePreferenceStore creates a preference store based on whether Redis is
// available. It tries Redis first and falls back to in-memory if Redis is not
// available and fallback is allowed.
func (f *Factory) CreatePreferenceStore() (identity.PreferenceStore, error) {
	store, err := NewRedisPreferenceStore(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis preference store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for preferences but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory preference store. "+
		"Preferences will reset on process restart.",
		zap.Error(err),
	)
	return NewInMemoryPreferenceStore(), nil
}
