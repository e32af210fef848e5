package prioritydeque

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// store is the part of a strategy the shared operation surface needs: bucket
// lookup and lifecycle plus the non-empty index. Bounded backs it with a
// bit-indexed array, Sparse with an ordered tree. Every bucket reachable
// through a store is non-empty; dropIfEmpty upholds that invariant after
// each removal.
type store[P constraints.Signed, V comparable] interface {
	// bucketFor returns the bucket holding priority p, or nil if absent.
	bucketFor(p P) *bucket[V]
	// ensureBucket returns p's bucket, creating and indexing it if absent.
	ensureBucket(p P) *bucket[V]
	// dropIfEmpty removes p's bucket from the index if it has drained.
	dropIfEmpty(p P)
	// highest returns the highest non-empty priority.
	highest() (P, bool)
	// below returns the next non-empty priority strictly under p.
	below(p P) (P, bool)
	// priorities returns the non-empty priorities in descending order,
	// detached from the index so buckets may be mutated during the walk.
	priorities() []P
	// clearAll discards every bucket and resets the index.
	clearAll()
	// checkPriority panics if p is outside the strategy's accepted range.
	checkPriority(p P)
}

// core carries the policy and the incrementally tracked size, and implements
// the whole Deque contract on top of a store. Both strategies embed it.
type core[P constraints.Signed, V comparable] struct {
	st   store[P, V]
	pol  Policy
	size int
}

func (c *core[P, V]) Policy() Policy       { return c.pol }
func (c *core[P, V]) SetPolicy(pol Policy) { c.pol = pol }

/*****************************************************************************
 * ADD
 *****************************************************************************/

func (c *core[P, V]) Add(v V, priority P) {
	c.st.checkPriority(priority)
	c.st.ensureBucket(priority).add(v)
	c.size++
}

/*****************************************************************************
 * PEEK / POLL / REMOVE
 *****************************************************************************/

func (c *core[P, V]) Peek() (V, bool)     { return c.peek(c.pol) }
func (c *core[P, V]) PeekFIFO() (V, bool) { return c.peek(FIFO) }
func (c *core[P, V]) PeekLIFO() (V, bool) { return c.peek(LIFO) }

func (c *core[P, V]) PeekAt(priority P) (V, bool)     { return c.peekAt(priority, c.pol) }
func (c *core[P, V]) PeekFIFOAt(priority P) (V, bool) { return c.peekAt(priority, FIFO) }
func (c *core[P, V]) PeekLIFOAt(priority P) (V, bool) { return c.peekAt(priority, LIFO) }

func (c *core[P, V]) Poll() (V, bool)     { return c.poll(c.pol) }
func (c *core[P, V]) PollFIFO() (V, bool) { return c.poll(FIFO) }
func (c *core[P, V]) PollLIFO() (V, bool) { return c.poll(LIFO) }

func (c *core[P, V]) PollAt(priority P) (V, bool)     { return c.pollAt(priority, c.pol) }
func (c *core[P, V]) PollFIFOAt(priority P) (V, bool) { return c.pollAt(priority, FIFO) }
func (c *core[P, V]) PollLIFOAt(priority P) (V, bool) { return c.pollAt(priority, LIFO) }

func (c *core[P, V]) peek(pol Policy) (v V, ok bool) {
	p, ok := c.st.highest()
	if !ok {
		return
	}
	return c.st.bucketFor(p).peek(pol), true
}

func (c *core[P, V]) peekAt(p P, pol Policy) (v V, ok bool) {
	c.st.checkPriority(p)
	b := c.st.bucketFor(p)
	if b == nil {
		return
	}
	return b.peek(pol), true
}

func (c *core[P, V]) poll(pol Policy) (v V, ok bool) {
	p, ok := c.st.highest()
	if !ok {
		return
	}
	v = c.st.bucketFor(p).pop(pol)
	c.size--
	c.st.dropIfEmpty(p)
	return v, true
}

func (c *core[P, V]) pollAt(p P, pol Policy) (v V, ok bool) {
	c.st.checkPriority(p)
	b := c.st.bucketFor(p)
	if b == nil {
		return
	}
	v = b.pop(pol)
	c.size--
	c.st.dropIfEmpty(p)
	return v, true
}

func (c *core[P, V]) Remove() (V, error) {
	v, ok := c.poll(c.pol)
	if !ok {
		return v, ErrNoElement
	}
	return v, nil
}

/*****************************************************************************
 * REMOVAL AND RETENTION BY VALUE
 *****************************************************************************/

func (c *core[P, V]) RemoveValue(v V) bool {
	for _, p := range c.st.priorities() {
		if c.RemoveValueAt(v, p) {
			return true
		}
	}
	return false
}

func (c *core[P, V]) RemoveValueAt(v V, priority P) bool {
	c.st.checkPriority(priority)
	b := c.st.bucketFor(priority)
	if b == nil || !b.removeValue(v) {
		return false
	}
	c.size--
	c.st.dropIfEmpty(priority)
	return true
}

func (c *core[P, V]) RemoveAll(vs []V) bool {
	if len(vs) == 0 {
		return false
	}
	set := memberSet(vs)
	return c.ClearFunc(func(v V) bool { _, hit := set[v]; return hit })
}

func (c *core[P, V]) RemoveAllAt(vs []V, priority P) bool {
	if len(vs) == 0 {
		c.st.checkPriority(priority)
		return false
	}
	set := memberSet(vs)
	return c.ClearFuncAt(func(v V) bool { _, hit := set[v]; return hit }, priority)
}

func (c *core[P, V]) RetainAll(vs []V) bool {
	set := memberSet(vs)
	return c.ClearFunc(func(v V) bool { _, hit := set[v]; return !hit })
}

func (c *core[P, V]) RetainAllAt(vs []V, priority P) bool {
	set := memberSet(vs)
	return c.ClearFuncAt(func(v V) bool { _, hit := set[v]; return !hit }, priority)
}

/*****************************************************************************
 * QUERIES
 *****************************************************************************/

func (c *core[P, V]) Contains(v V) bool {
	for _, p := range c.st.priorities() {
		if c.st.bucketFor(p).contains(v) {
			return true
		}
	}
	return false
}

func (c *core[P, V]) ContainsAt(v V, priority P) bool {
	c.st.checkPriority(priority)
	b := c.st.bucketFor(priority)
	return b != nil && b.contains(v)
}

func (c *core[P, V]) ContainsAll(vs []V) bool {
	missing := memberSet(vs)
	if len(missing) == 0 {
		return true
	}
	for _, p := range c.st.priorities() {
		b := c.st.bucketFor(p)
		for i := 0; i < b.len(); i++ {
			delete(missing, b.at(i))
			if len(missing) == 0 {
				return true
			}
		}
	}
	return false
}

func (c *core[P, V]) ContainsAllAt(vs []V, priority P) bool {
	c.st.checkPriority(priority)
	missing := memberSet(vs)
	if len(missing) == 0 {
		return true
	}
	b := c.st.bucketFor(priority)
	if b == nil {
		return false
	}
	for i := 0; i < b.len(); i++ {
		delete(missing, b.at(i))
		if len(missing) == 0 {
			return true
		}
	}
	return false
}

func (c *core[P, V]) Len() int { return c.size }

func (c *core[P, V]) LenAt(priority P) int {
	c.st.checkPriority(priority)
	b := c.st.bucketFor(priority)
	if b == nil {
		return 0
	}
	return b.len()
}

func (c *core[P, V]) Empty() bool { return c.size == 0 }

func (c *core[P, V]) EmptyAt(priority P) bool { return c.LenAt(priority) == 0 }

func (c *core[P, V]) HighestPriority() (P, bool) { return c.st.highest() }

/*****************************************************************************
 * CLEARING
 *****************************************************************************/

func (c *core[P, V]) Clear() {
	c.st.clearAll()
	c.size = 0
}

func (c *core[P, V]) ClearAt(priority P) {
	c.ClearFuncAt(func(V) bool { return true }, priority)
}

func (c *core[P, V]) ClearFunc(drop func(V) bool) bool {
	changed := false
	for _, p := range c.st.priorities() {
		if c.ClearFuncAt(drop, p) {
			changed = true
		}
	}
	return changed
}

func (c *core[P, V]) ClearFuncAt(drop func(V) bool, priority P) bool {
	c.st.checkPriority(priority)
	b := c.st.bucketFor(priority)
	if b == nil {
		return false
	}
	removed := b.removeFunc(drop)
	c.size -= removed
	c.st.dropIfEmpty(priority)
	return removed > 0
}

/*****************************************************************************
 * SNAPSHOTS AND ITERATION
 *****************************************************************************/

func (c *core[P, V]) ToSlice() []V {
	out := make([]V, 0, c.size)
	for _, p := range c.st.priorities() {
		out = c.st.bucketFor(p).appendPolicy(out, c.pol)
	}
	return out
}

func (c *core[P, V]) ToSliceAt(priority P) []V {
	c.st.checkPriority(priority)
	b := c.st.bucketFor(priority)
	if b == nil {
		return nil
	}
	return b.slice()
}

// All walks the live structure lazily; mutating the deque through anything
// other than the sequence's own consumption is the caller's risk, exactly as
// with a map range.
func (c *core[P, V]) All() iter.Seq2[P, V] {
	return func(yield func(P, V) bool) {
		pol := c.pol
		for p, ok := c.st.highest(); ok; p, ok = c.st.below(p) {
			b := c.st.bucketFor(p)
			if !yieldBucket(b, p, pol, yield) {
				return
			}
		}
	}
}

func (c *core[P, V]) Iter() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range c.All() {
			if !yield(v) {
				return
			}
		}
	}
}

func (c *core[P, V]) IterAt(priority P) iter.Seq[V] {
	c.st.checkPriority(priority)
	return func(yield func(V) bool) {
		b := c.st.bucketFor(priority)
		if b == nil {
			return
		}
		yieldBucket(b, priority, c.pol, func(_ P, v V) bool { return yield(v) })
	}
}

func yieldBucket[P constraints.Signed, V comparable](b *bucket[V], p P, pol Policy, yield func(P, V) bool) bool {
	n := b.len()
	if pol == LIFO {
		for i := n - 1; i >= 0; i-- {
			if !yield(p, b.at(i)) {
				return false
			}
		}
		return true
	}
	for i := 0; i < n; i++ {
		if !yield(p, b.at(i)) {
			return false
		}
	}
	return true
}

func (c *core[P, V]) Iterator() Iterator[P, V] {
	return &liveIterator[P, V]{c: c, pol: c.pol}
}

func (c *core[P, V]) IteratorAt(priority P) Iterator[P, V] {
	c.st.checkPriority(priority)
	return &liveIterator[P, V]{c: c, pol: c.pol, single: true, cur: priority}
}
