package prioritydeque

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// MaxPriority is the widest priority a Bounded deque can be configured to
// hold. The non-empty index is one uint32 with bit i set iff priority i has
// elements, so the range must fit a machine word; a wider range is rejected
// at construction rather than silently truncated.
const MaxPriority = 31

// Bounded is a priority deque over the fixed range [0, maxPriority], with
// maxPriority at most 31. Buckets sit in an array indexed directly by
// priority and the highest non-empty priority is found with a single
// "highest set bit" instruction, so Add and Poll are O(1). This is the
// classic constant-time priority-runqueue trade: a fixed, small priority
// range buys guaranteed O(1) scheduling decisions.
//
// Bounded is not safe for concurrent use; wrap it in RWLocked or Blocking.
// Use MakeBounded or MakeBoundedWithMax; a zero-valued Bounded panics.
type Bounded[P constraints.Signed, V comparable] struct {
	core[P, V]
	buckets []*bucket[V]
	mask    uint32
	max     int
}

// MakeBounded allocates a Bounded deque spanning the full [0, MaxPriority]
// range with the FIFO policy.
func MakeBounded[P constraints.Signed, V comparable]() *Bounded[P, V] {
	b, _ := MakeBoundedWithMax[P, V](MaxPriority)
	return b
}

// MakeBoundedWithMax allocates a Bounded deque spanning [0, maxPriority].
// It returns ErrNegativePriority if maxPriority is negative and
// ErrPriorityRangeTooWide if it exceeds MaxPriority.
func MakeBoundedWithMax[P constraints.Signed, V comparable](maxPriority P) (*Bounded[P, V], error) {
	if maxPriority < 0 {
		return nil, ErrNegativePriority
	}
	if maxPriority > MaxPriority {
		return nil, ErrPriorityRangeTooWide
	}
	b := &Bounded[P, V]{
		buckets: make([]*bucket[V], int(maxPriority)+1),
		max:     int(maxPriority),
	}
	b.st = b
	return b, nil
}

// MaxConfiguredPriority returns the inclusive upper end of the accepted
// priority range.
func (b *Bounded[P, V]) MaxConfiguredPriority() P { return P(b.max) }

/*****************************************************************************
 * STORE
 *****************************************************************************/

func (b *Bounded[P, V]) bucketFor(p P) *bucket[V] { return b.buckets[int(p)] }

func (b *Bounded[P, V]) ensureBucket(p P) *bucket[V] {
	i := int(p)
	if b.buckets[i] == nil {
		b.buckets[i] = &bucket[V]{}
		b.mask |= 1 << uint(i)
	}
	return b.buckets[i]
}

func (b *Bounded[P, V]) dropIfEmpty(p P) {
	i := int(p)
	if b.buckets[i] != nil && b.buckets[i].len() == 0 {
		b.buckets[i] = nil
		b.mask &^= 1 << uint(i)
	}
}

func (b *Bounded[P, V]) highest() (p P, ok bool) {
	if b.mask == 0 {
		return
	}
	return P(bits.Len32(b.mask) - 1), true
}

func (b *Bounded[P, V]) below(p P) (next P, ok bool) {
	low := b.mask & (1<<uint(p) - 1)
	if low == 0 {
		return
	}
	return P(bits.Len32(low) - 1), true
}

func (b *Bounded[P, V]) priorities() []P {
	out := make([]P, 0, bits.OnesCount32(b.mask))
	for m := b.mask; m != 0; {
		i := bits.Len32(m) - 1
		out = append(out, P(i))
		m &^= 1 << uint(i)
	}
	return out
}

func (b *Bounded[P, V]) clearAll() {
	clear(b.buckets)
	b.mask = 0
}

func (b *Bounded[P, V]) checkPriority(p P) {
	if p < 0 || int(p) > b.max {
		panic(fmt.Sprintf("prioritydeque: priority %d outside configured range [0, %d]", p, b.max))
	}
}
