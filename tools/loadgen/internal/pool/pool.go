package pool

import (
	"context"
	"time"
)

// EvictionPolicy selects which value leaves a full pool first.
type EvictionPolicy int

const (
	// EvictionFIFO drops the oldest value first.
	EvictionFIFO EvictionPolicy = iota

	// EvictionLRU drops the value that has gone longest without a read.
	EvictionLRU

	// EvictionRandom drops a uniformly random value.
	EvictionRandom
)

func (e EvictionPolicy) String() string {
	switch e {
	case EvictionFIFO:
		return "FIFO"
	case EvictionLRU:
		return "LRU"
	case EvictionRandom:
		return "Random"
	default:
		return "Unknown"
	}
}

// ParseEvictionPolicy maps a config string to a policy, defaulting to FIFO.
func ParseEvictionPolicy(s string) EvictionPolicy {
	switch s {
	case "LRU", "lru":
		return EvictionLRU
	case "Random", "random", "RANDOM":
		return EvictionRandom
	default:
		return EvictionFIFO
	}
}

// Stats is a point-in-time snapshot of pool counters.
type Stats struct {
	TotalValues   int64
	ValuesByType  map[SemanticType]int64
	HitCount      int64
	MissCount     int64
	EvictionCount int64
	ExpiredCount  int64
	AddCount      int64
	Uptime        time.Duration
}

// HitRate returns the fraction of Gets that found a value, as a percentage.
func (s Stats) HitRate() float64 {
	total := s.HitCount + s.MissCount
	if total == 0 {
		return 0
	}
	return float64(s.HitCount) / float64(total) * 100
}

// ParameterPool stores values harvested from API responses — user IDs, job
// IDs, tokens — keyed by semantic type, for substitution into later requests.
// A nil value with a nil error from the Get methods means the pool simply has
// nothing live for that type.
type ParameterPool interface {
	// Add stores a value, returning how many values were evicted to make
	// room.
	Add(ctx context.Context, value *ParameterValue) (evicted int, err error)

	// Get returns the oldest live value of the given type.
	Get(ctx context.Context, semanticType SemanticType) (*ParameterValue, error)

	// GetRandom returns a random live value of the given type.
	GetRandom(ctx context.Context, semanticType SemanticType) (*ParameterValue, error)

	// GetAll returns every live value of the given type.
	GetAll(ctx context.Context, semanticType SemanticType) ([]*ParameterValue, error)

	// Count returns how many values of the given type are stored.
	Count(ctx context.Context, semanticType SemanticType) (int, error)

	// Remove deletes a specific value, reporting whether it was present.
	Remove(ctx context.Context, value *ParameterValue) (bool, error)

	// Clear drops all values of one type, returning how many were removed.
	Clear(ctx context.Context, semanticType SemanticType) (int, error)

	// ClearAll empties the pool.
	ClearAll(ctx context.Context) error

	// Cleanup drops expired values, returning how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Stats returns a snapshot of pool counters.
	Stats(ctx context.Context) (Stats, error)

	// Types lists the semantic types currently holding values.
	Types(ctx context.Context) ([]SemanticType, error)

	// Close releases pool resources.
	Close() error
}

// PoolConfig holds tuning options shared by the pool implementations.
type PoolConfig struct {
	// DefaultTTL bounds how long a harvested value stays usable
	// (0 means no expiration).
	DefaultTTL time.Duration

	// MaxValuesPerType caps storage per semantic type (0 means unlimited).
	MaxValuesPerType int

	// EvictionPolicy selects the victim when a type is at its cap.
	EvictionPolicy EvictionPolicy

	// CleanupInterval is the period of the expired-value sweep
	// (0 disables the sweep).
	CleanupInterval time.Duration

	// ShardCount is the shard count for ShardedParameterPool; rounded up
	// to a power of 2.
	ShardCount int
}

// DefaultPoolConfig matches a moderate load test against a local backend.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		DefaultTTL:       5 * time.Minute,
		MaxValuesPerType: 1000,
		EvictionPolicy:   EvictionFIFO,
		CleanupInterval:  1 * time.Minute,
		ShardCount:       16,
	}
}
