// Package container implements container data structures.
package container

import (
	"sync"
	"sync/atomic"
)

// DefaultSegmentBits determines the default size of each segment.
// 12 bits = 4096 items per segment.
const DefaultSegmentBits = 12

// SegmentedArray is a segmented array with lock-free reads.
// It supports growth and random access. Items never move in memory while
// their segment is allocated, so pointers returned by Ref stay valid until
// Truncate drops the segment.
type SegmentedArray[T any] struct {
	segments atomic.Pointer[[]*Segment[T]]
	mu       sync.Mutex // Protects growth
	bits     uint
	mask     uint32
}

// Segment is a fixed-size array of items.
type Segment[T any] struct {
	items []T
}

// NewSegmentedArray creates a new SegmentedArray with 1<<bits items per
// segment. bits is clamped to [1, 20]; 0 selects DefaultSegmentBits.
func NewSegmentedArray[T any](bits uint) *SegmentedArray[T] {
	if bits == 0 {
		bits = DefaultSegmentBits
	}
	bits = min(max(bits, 1), 20)
	sa := &SegmentedArray[T]{bits: bits, mask: 1<<bits - 1}
	// Initialize with empty segments slice
	segments := make([]*Segment[T], 0)
	sa.segments.Store(&segments)
	return sa
}

// SegmentSize returns the number of items per segment.
func (sa *SegmentedArray[T]) SegmentSize() int { return 1 << sa.bits }

// SegmentOf returns the segment number holding index.
func (sa *SegmentedArray[T]) SegmentOf(index uint32) int { return int(index >> sa.bits) }

// Get returns the item at the given index.
// Returns zero value if index is out of bounds or segment not allocated.
func (sa *SegmentedArray[T]) Get(index uint32) (T, bool) {
	if p := sa.Ref(index); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Ref returns a pointer to the item at the given index, or nil if the
// segment is not allocated.
func (sa *SegmentedArray[T]) Ref(index uint32) *T {
	segments := sa.segments.Load()
	segIdx := int(index >> sa.bits)
	if segIdx >= len(*segments) {
		return nil
	}
	seg := (*segments)[segIdx]
	if seg == nil {
		return nil
	}
	return &seg.items[index&sa.mask]
}

// Set sets the item at the given index.
// It grows the array if necessary.
func (sa *SegmentedArray[T]) Set(index uint32, value T) {
	// Fast path: check if segment exists
	if p := sa.Ref(index); p != nil {
		*p = value
		return
	}

	// Slow path: grow
	sa.mu.Lock()
	defer sa.mu.Unlock()

	segIdx := int(index >> sa.bits)
	currentSegments := *sa.segments.Load()

	// Check again
	if segIdx < len(currentSegments) && currentSegments[segIdx] != nil {
		currentSegments[segIdx].items[index&sa.mask] = value
		return
	}

	// Grow slice if needed
	newSegments := currentSegments
	if segIdx >= len(newSegments) {
		grown := make([]*Segment[T], segIdx+1)
		copy(grown, newSegments)
		newSegments = grown
	}

	// Allocate segment if needed
	if newSegments[segIdx] == nil {
		newSegments[segIdx] = &Segment[T]{items: make([]T, 1<<sa.bits)}
	}

	newSegments[segIdx].items[index&sa.mask] = value

	// Publish new segments
	sa.segments.Store(&newSegments)
}

// Truncate drops every segment past the one holding index n-1 and clears
// the items at and after n inside the last kept segment.
func (sa *SegmentedArray[T]) Truncate(n uint32) {
	sa.mu.Lock()
	defer sa.mu.Unlock()

	current := *sa.segments.Load()
	keep := 0
	if n > 0 {
		keep = int((n-1)>>sa.bits) + 1
	}
	if keep > len(current) {
		keep = len(current)
	}
	trimmed := make([]*Segment[T], keep)
	copy(trimmed, current[:keep])
	if keep > 0 && trimmed[keep-1] != nil {
		var zero T
		items := trimmed[keep-1].items
		for i := int(n & sa.mask); n&sa.mask != 0 && i < len(items); i++ {
			items[i] = zero
		}
	}
	sa.segments.Store(&trimmed)
}
