package pool

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// SimpleParameterPool guards all semantic types with one lock. It is the
// easy-to-reason-about implementation for single-worker runs; drive many
// workers through ShardedParameterPool instead.
type SimpleParameterPool struct {
	mu      sync.RWMutex
	values  map[SemanticType][]*ParameterValue
	config  PoolConfig
	startAt time.Time

	hitCount      atomic.Int64
	missCount     atomic.Int64
	addCount      atomic.Int64
	evictionCount atomic.Int64
	expireCount   atomic.Int64

	cleanupTicker *time.Ticker
	cleanupDone   chan struct{}
	closed        atomic.Bool
}

func NewSimpleParameterPool(config PoolConfig) *SimpleParameterPool {
	pool := &SimpleParameterPool{
		values:      make(map[SemanticType][]*ParameterValue),
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

// Add stores a value, evicting one of the same semantic type first when that
// type is at its cap.
func (p *SimpleParameterPool) Add(ctx context.Context, value *ParameterValue) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.addCount.Add(1)

	evicted := 0
	if p.config.MaxValuesPerType > 0 && len(p.values[value.SemanticType]) >= p.config.MaxValuesPerType {
		evicted = p.evictOne(value.SemanticType)
	}
	p.values[value.SemanticType] = append(p.values[value.SemanticType], value)

	return evicted, nil
}

// evictOne drops one value of the given type per the eviction policy.
// Lock must be held.
func (p *SimpleParameterPool) evictOne(semanticType SemanticType) int {
	values := p.values[semanticType]
	if len(values) == 0 {
		return 0
	}

	evictIdx := 0
	switch p.config.EvictionPolicy {
	case EvictionLRU:
		oldestAccess := values[0].LastAccessedAt()
		for i, v := range values {
			if v.LastAccessedAt().Before(oldestAccess) {
				oldestAccess = v.LastAccessedAt()
				evictIdx = i
			}
		}
	case EvictionRandom:
		evictIdx = rand.IntN(len(values))
	default: // EvictionFIFO keeps evictIdx at the oldest entry
	}

	p.values[semanticType] = append(values[:evictIdx], values[evictIdx+1:]...)
	p.evictionCount.Add(1)
	return 1
}

// Get returns the oldest live value of the given type, or nil when none
// remain unexpired.
func (p *SimpleParameterPool) Get(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range p.values[semanticType] {
		if !v.IsExpired() {
			v.Touch()
			p.hitCount.Add(1)
			return v, nil
		}
	}

	p.missCount.Add(1)
	return nil, nil
}

// GetRandom returns a uniformly random live value of the given type, or nil
// when none remain unexpired.
func (p *SimpleParameterPool) GetRandom(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	values := p.values[semanticType]
	live := make([]*ParameterValue, 0, len(values))
	for _, v := range values {
		if !v.IsExpired() {
			live = append(live, v)
		}
	}
	if len(live) == 0 {
		p.missCount.Add(1)
		return nil, nil
	}

	v := live[rand.IntN(len(live))]
	v.Touch()
	p.hitCount.Add(1)
	return v, nil
}

// GetAll returns every live value of the given type.
func (p *SimpleParameterPool) GetAll(ctx context.Context, semanticType SemanticType) ([]*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	values := p.values[semanticType]
	result := make([]*ParameterValue, 0, len(values))
	for _, v := range values {
		if !v.IsExpired() {
			result = append(result, v)
		}
	}
	return result, nil
}

// Count returns how many values of the given type are stored, expired or not.
func (p *SimpleParameterPool) Count(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.values[semanticType]), nil
}

// Remove deletes a specific value. Returns false when it is not present.
func (p *SimpleParameterPool) Remove(ctx context.Context, value *ParameterValue) (bool, error) {
	if p.closed.Load() {
		return false, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	values := p.values[value.SemanticType]
	for i, v := range values {
		if v == value {
			p.values[value.SemanticType] = append(values[:i], values[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Clear drops every value of the given type and returns how many there were.
func (p *SimpleParameterPool) Clear(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	count := len(p.values[semanticType])
	delete(p.values, semanticType)
	return count, nil
}

// ClearAll empties the pool.
func (p *SimpleParameterPool) ClearAll(ctx context.Context) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.values = make(map[SemanticType][]*ParameterValue)
	return nil
}

// Cleanup drops expired values across all types, returning how many.
func (p *SimpleParameterPool) Cleanup(ctx context.Context) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0
	for st, values := range p.values {
		live := make([]*ParameterValue, 0, len(values))
		for _, v := range values {
			if v.IsExpired() {
				total++
			} else {
				live = append(live, v)
			}
		}
		if len(live) != len(values) {
			p.values[st] = live
		}
	}

	p.expireCount.Add(int64(total))
	return total, nil
}

func (p *SimpleParameterPool) cleanupLoop() {
	for {
		select {
		case <-p.cleanupTicker.C:
			_, _ = p.Cleanup(context.Background())
		case <-p.cleanupDone:
			return
		}
	}
}

// Stats returns a snapshot of pool counters and per-type sizes.
func (p *SimpleParameterPool) Stats(ctx context.Context) (Stats, error) {
	if p.closed.Load() {
		return Stats{}, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := Stats{
		ValuesByType:  make(map[SemanticType]int64),
		HitCount:      p.hitCount.Load(),
		MissCount:     p.missCount.Load(),
		EvictionCount: p.evictionCount.Load(),
		ExpiredCount:  p.expireCount.Load(),
		AddCount:      p.addCount.Load(),
		Uptime:        time.Since(p.startAt),
	}

	for st, values := range p.values {
		count := int64(len(values))
		stats.TotalValues += count
		stats.ValuesByType[st] = count
	}

	return stats, nil
}

// Types lists the semantic types currently holding values.
func (p *SimpleParameterPool) Types(ctx context.Context) ([]SemanticType, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	types := make([]SemanticType, 0, len(p.values))
	for st, values := range p.values {
		if len(values) > 0 {
			types = append(types, st)
		}
	}
	return types, nil
}

// Close stops the cleanup loop. Further operations return ErrPoolClosed.
func (p *SimpleParameterPool) Close() error {
	if p.closed.Swap(true) {
		return ErrPoolClosed
	}

	if p.cleanupTicker != nil {
		p.cleanupTicker.Stop()
		close(p.cleanupDone)
	}
	return nil
}

func (p *SimpleParameterPool) EvictionCount() int64 {
	return p.evictionCount.Load()
}
