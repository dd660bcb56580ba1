package pool

import (
	"context"
	"hash/fnv"
	"math/bits"
	"sync"
	"sync/atomic"
	"time"
)

// shard owns the ring buffers for the semantic types that hash into it.
type shard struct {
	mu      sync.RWMutex
	buffers map[SemanticType]*RingBuffer

	hitCount    atomic.Int64
	missCount   atomic.Int64
	addCount    atomic.Int64
	expireCount atomic.Int64
}

// ShardedParameterPool spreads semantic types over independently locked
// shards so concurrent load-test workers harvesting and consuming values do
// not serialize on one mutex.
type ShardedParameterPool struct {
	shards    []*shard
	shardMask uint64 // shardCount-1; selects a shard from the type hash

	config  PoolConfig
	startAt time.Time

	evictionCount atomic.Int64

	cleanupTicker *time.Ticker
	cleanupDone   chan struct{}
	closed        atomic.Bool
}

// NewShardedParameterPool builds a pool with the configured shard count,
// rounded up to a power of 2 so shard selection is a mask.
func NewShardedParameterPool(config PoolConfig) *ShardedParameterPool {
	shardCount := config.ShardCount
	if shardCount <= 0 {
		shardCount = 16
	}
	shardCount = nextPowerOfTwo(shardCount)

	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = &shard{buffers: make(map[SemanticType]*RingBuffer)}
	}

	pool := &ShardedParameterPool{
		shards:      shards,
		shardMask:   uint64(shardCount - 1),
		config:      config,
		startAt:     time.Now(),
		cleanupDone: make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		pool.cleanupTicker = time.NewTicker(config.CleanupInterval)
		go pool.cleanupLoop()
	}

	return pool
}

// nextPowerOfTwo returns the smallest power of 2 >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func (p *ShardedParameterPool) getShard(semanticType SemanticType) *shard {
	h := fnv.New64a()
	h.Write([]byte(semanticType))
	return p.shards[h.Sum64()&p.shardMask]
}

// getOrCreateBuffer lazily builds the ring buffer for a semantic type.
// Shard write lock must be held.
func (s *shard) getOrCreateBuffer(semanticType SemanticType, maxValues int, policy EvictionPolicy) *RingBuffer {
	rb, ok := s.buffers[semanticType]
	if !ok {
		if maxValues <= 0 {
			maxValues = 1000
		}
		rb = NewRingBuffer(maxValues, policy)
		s.buffers[semanticType] = rb
	}
	return rb
}

// Add stores a value in its type's ring buffer, reporting any eviction the
// buffer performed to make room.
func (p *ShardedParameterPool) Add(ctx context.Context, value *ParameterValue) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	s := p.getShard(value.SemanticType)

	s.mu.Lock()
	rb := s.getOrCreateBuffer(value.SemanticType, p.config.MaxValuesPerType, p.config.EvictionPolicy)
	evicted := rb.Add(value)
	s.addCount.Add(1)
	s.mu.Unlock()

	if evicted > 0 {
		p.evictionCount.Add(int64(evicted))
	}

	return evicted, nil
}

// buffer looks up the ring buffer for a semantic type, or nil.
func (p *ShardedParameterPool) buffer(s *shard, semanticType SemanticType) *RingBuffer {
	s.mu.RLock()
	rb := s.buffers[semanticType]
	s.mu.RUnlock()
	return rb
}

// Get returns the oldest live value of the given type, or nil.
func (p *ShardedParameterPool) Get(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	s := p.getShard(semanticType)
	rb := p.buffer(s, semanticType)
	if rb == nil {
		s.missCount.Add(1)
		return nil, nil
	}

	value := rb.Get()
	if value == nil || value.IsExpired() {
		s.missCount.Add(1)
		return nil, nil
	}

	s.hitCount.Add(1)
	return value, nil
}

// GetRandom returns a random live value of the given type, or nil.
func (p *ShardedParameterPool) GetRandom(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	s := p.getShard(semanticType)
	rb := p.buffer(s, semanticType)
	if rb == nil {
		s.missCount.Add(1)
		return nil, nil
	}

	value := rb.GetRandom()
	if value == nil || value.IsExpired() {
		s.missCount.Add(1)
		return nil, nil
	}

	s.hitCount.Add(1)
	return value, nil
}

// GetAll returns every live value of the given type.
func (p *ShardedParameterPool) GetAll(ctx context.Context, semanticType SemanticType) ([]*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	rb := p.buffer(p.getShard(semanticType), semanticType)
	if rb == nil {
		return nil, nil
	}

	values := rb.GetAll()
	result := make([]*ParameterValue, 0, len(values))
	for _, v := range values {
		if !v.IsExpired() {
			result = append(result, v)
		}
	}
	return result, nil
}

// Count returns how many values of the given type are stored.
func (p *ShardedParameterPool) Count(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	rb := p.buffer(p.getShard(semanticType), semanticType)
	if rb == nil {
		return 0, nil
	}
	return rb.Count(), nil
}

// Remove deletes a specific value. Returns false when it is not present.
func (p *ShardedParameterPool) Remove(ctx context.Context, value *ParameterValue) (bool, error) {
	if p.closed.Load() {
		return false, ErrPoolClosed
	}

	s := p.getShard(value.SemanticType)

	s.mu.Lock()
	defer s.mu.Unlock()

	rb, ok := s.buffers[value.SemanticType]
	if !ok {
		return false, nil
	}
	return rb.Remove(value), nil
}

// Clear drops the buffer for a semantic type, returning how many values it
// held.
func (p *ShardedParameterPool) Clear(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	s := p.getShard(semanticType)

	s.mu.Lock()
	defer s.mu.Unlock()

	rb, ok := s.buffers[semanticType]
	if !ok {
		return 0, nil
	}
	cleared := rb.Clear()
	delete(s.buffers, semanticType)
	return cleared, nil
}

// ClearAll empties every shard.
func (p *ShardedParameterPool) ClearAll(ctx context.Context) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	for _, s := range p.shards {
		s.mu.Lock()
		for st, rb := range s.buffers {
			rb.Clear()
			delete(s.buffers, st)
		}
		s.mu.Unlock()
	}
	return nil
}

// Cleanup drops expired values across all shards, returning how many.
func (p *ShardedParameterPool) Cleanup(ctx context.Context) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	total := 0
	for _, s := range p.shards {
		s.mu.Lock()
		for _, rb := range s.buffers {
			removed := rb.RemoveExpired()
			total += removed
			s.expireCount.Add(int64(removed))
		}
		s.mu.Unlock()
	}
	return total, nil
}

func (p *ShardedParameterPool) cleanupLoop() {
	for {
		select {
		case <-p.cleanupTicker.C:
			_, _ = p.Cleanup(context.Background())
		case <-p.cleanupDone:
			return
		}
	}
}

// Stats aggregates the per-shard counters into one snapshot.
func (p *ShardedParameterPool) Stats(ctx context.Context) (Stats, error) {
	if p.closed.Load() {
		return Stats{}, ErrPoolClosed
	}

	stats := Stats{
		ValuesByType:  make(map[SemanticType]int64),
		EvictionCount: p.evictionCount.Load(),
		Uptime:        time.Since(p.startAt),
	}

	for _, s := range p.shards {
		s.mu.RLock()
		stats.HitCount += s.hitCount.Load()
		stats.MissCount += s.missCount.Load()
		stats.AddCount += s.addCount.Load()
		stats.ExpiredCount += s.expireCount.Load()

		for st, rb := range s.buffers {
			count := int64(rb.Count())
			stats.TotalValues += count
			stats.ValuesByType[st] += count
		}
		s.mu.RUnlock()
	}

	return stats, nil
}

// Types lists the semantic types currently holding values, across shards.
func (p *ShardedParameterPool) Types(ctx context.Context) ([]SemanticType, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	types := make([]SemanticType, 0)
	seen := make(map[SemanticType]bool)

	for _, s := range p.shards {
		s.mu.RLock()
		for st, rb := range s.buffers {
			if rb.Count() > 0 && !seen[st] {
				types = append(types, st)
				seen[st] = true
			}
		}
		s.mu.RUnlock()
	}

	return types, nil
}

// Close stops the cleanup loop. Further operations return ErrPoolClosed.
func (p *ShardedParameterPool) Close() error {
	if p.closed.Swap(true) {
		return ErrPoolClosed
	}

	if p.cleanupTicker != nil {
		p.cleanupTicker.Stop()
		close(p.cleanupDone)
	}
	return nil
}

func (p *ShardedParameterPool) ShardCount() int {
	return len(p.shards)
}

func (p *ShardedParameterPool) EvictionCount() int64 {
	return p.evictionCount.Load()
}
