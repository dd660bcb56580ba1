package pool

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

// RingBuffer is a fixed-capacity circular store for harvested values of one
// semantic type. When full, adding evicts according to the configured policy
// so a long soak test keeps recycling fresh job IDs and tokens instead of
// growing without bound.
type RingBuffer struct {
	mu       sync.RWMutex
	items    []*ParameterValue
	head     int // next write position
	tail     int // oldest value, for FIFO reads and eviction
	count    int
	capacity int

	evictionPolicy EvictionPolicy
	evictionCount  atomic.Int64

	// accessOrder holds occupied indices from least to most recently read.
	// Maintained only under the LRU policy.
	accessOrder []int
}

func NewRingBuffer(capacity int, policy EvictionPolicy) *RingBuffer {
	if capacity <= 0 {
		capacity = 1000
	}
	return &RingBuffer{
		items:          make([]*ParameterValue, capacity),
		capacity:       capacity,
		evictionPolicy: policy,
		accessOrder:    make([]int, 0, capacity),
	}
}

// Add stores a value, evicting one first when the buffer is full.
// Returns the number of values evicted.
func (rb *RingBuffer) Add(value *ParameterValue) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	evicted := 0
	if rb.count >= rb.capacity {
		evicted = rb.evictOne()
	}

	rb.items[rb.head] = value
	if rb.evictionPolicy == EvictionLRU {
		rb.accessOrder = append(rb.accessOrder, rb.head)
	}
	rb.head = (rb.head + 1) % rb.capacity
	rb.count++

	return evicted
}

// evictOne frees one slot per the eviction policy. Lock must be held.
func (rb *RingBuffer) evictOne() int {
	if rb.count == 0 {
		return 0
	}

	var evictIdx int
	switch rb.evictionPolicy {
	case EvictionLRU:
		if len(rb.accessOrder) > 0 {
			evictIdx = rb.accessOrder[0]
			rb.accessOrder = rb.accessOrder[1:]
		} else {
			evictIdx = rb.tail
		}
		if evictIdx == rb.tail {
			rb.tail = (rb.tail + 1) % rb.capacity
		}

	case EvictionRandom:
		evictIdx = rb.randomOccupiedIndex()
		if evictIdx == rb.tail {
			rb.tail = (rb.tail + 1) % rb.capacity
		}

	default: // EvictionFIFO
		evictIdx = rb.tail
		rb.tail = (rb.tail + 1) % rb.capacity
	}

	rb.items[evictIdx] = nil
	rb.count--
	rb.evictionCount.Add(1)
	return 1
}

// randomOccupiedIndex picks a random occupied slot. Lock must be held and
// count must be positive.
func (rb *RingBuffer) randomOccupiedIndex() int {
	idx := (rb.tail + rand.IntN(rb.count)) % rb.capacity
	for i := 0; i < rb.capacity; i++ {
		checkIdx := (idx + i) % rb.capacity
		if rb.items[checkIdx] != nil {
			return checkIdx
		}
	}
	return rb.tail
}

// Get returns the oldest value without removing it, or nil when empty.
func (rb *RingBuffer) Get() *ParameterValue {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.count == 0 {
		return nil
	}
	return rb.readAt(rb.tail)
}

// GetRandom returns a random value without removing it, or nil when empty.
func (rb *RingBuffer) GetRandom() *ParameterValue {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.count == 0 {
		return nil
	}
	return rb.readAt(rand.IntN(rb.capacity))
}

// readAt scans forward from start for an occupied slot, touches the value,
// and refreshes its LRU position. Lock must be held.
func (rb *RingBuffer) readAt(start int) *ParameterValue {
	for i := 0; i < rb.capacity; i++ {
		idx := (start + i) % rb.capacity
		if rb.items[idx] != nil {
			value := rb.items[idx]
			value.Touch()
			rb.markAccessed(idx)
			return value
		}
	}
	return nil
}

// markAccessed moves idx to the most-recently-used end of the access order.
// Lock must be held.
func (rb *RingBuffer) markAccessed(idx int) {
	if rb.evictionPolicy != EvictionLRU {
		return
	}
	rb.dropAccess(idx)
	rb.accessOrder = append(rb.accessOrder, idx)
}

// dropAccess removes idx from the access order. Lock must be held.
func (rb *RingBuffer) dropAccess(idx int) {
	for i, accessIdx := range rb.accessOrder {
		if accessIdx == idx {
			rb.accessOrder = append(rb.accessOrder[:i], rb.accessOrder[i+1:]...)
			return
		}
	}
}

// GetAll returns every stored value.
func (rb *RingBuffer) GetAll() []*ParameterValue {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	result := make([]*ParameterValue, 0, rb.count)
	for _, item := range rb.items {
		if item != nil {
			result = append(result, item)
		}
	}
	return result
}

func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

func (rb *RingBuffer) EvictionCount() int64 {
	return rb.evictionCount.Load()
}

// Remove deletes the given value. Returns false when it is not present.
func (rb *RingBuffer) Remove(value *ParameterValue) bool {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for i, item := range rb.items {
		if item == value {
			rb.items[i] = nil
			rb.count--
			if rb.evictionPolicy == EvictionLRU {
				rb.dropAccess(i)
			}
			return true
		}
	}
	return false
}

// Clear empties the buffer and returns the number of values removed.
func (rb *RingBuffer) Clear() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	removed := rb.count
	for i := range rb.items {
		rb.items[i] = nil
	}
	rb.head = 0
	rb.tail = 0
	rb.count = 0
	rb.accessOrder = rb.accessOrder[:0]

	return removed
}

// RemoveExpired drops values past their TTL and returns how many were
// removed. Stale tokens and deleted job IDs leave the rotation here.
func (rb *RingBuffer) RemoveExpired() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	removed := 0
	for i, item := range rb.items {
		if item != nil && item.IsExpired() {
			rb.items[i] = nil
			rb.count--
			removed++
			if rb.evictionPolicy == EvictionLRU {
				rb.dropAccess(i)
			}
		}
	}
	return removed
}

func (rb *RingBuffer) IsFull() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count >= rb.capacity
}

func (rb *RingBuffer) IsEmpty() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count == 0
}
