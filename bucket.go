package prioritydeque

import "github.com/gammazero/deque"

// bucket owns the elements of one priority value in insertion order. FIFO
// serving reads the front, LIFO serving reads the back. Buckets are created
// lazily on first insertion and must be dropped from the owning index the
// moment they drain: both per-priority emptiness queries and the global size
// are derived from bucket presence.
type bucket[V comparable] struct {
	els deque.Deque[V]
}

func (b *bucket[V]) add(v V) { b.els.PushBack(v) }

func (b *bucket[V]) len() int { return b.els.Len() }

func (b *bucket[V]) at(i int) V { return b.els.At(i) }

func (b *bucket[V]) peek(pol Policy) V {
	if pol == LIFO {
		return b.els.Back()
	}
	return b.els.Front()
}

func (b *bucket[V]) pop(pol Policy) V {
	if pol == LIFO {
		return b.els.PopBack()
	}
	return b.els.PopFront()
}

// index returns the insertion-order position of the first element equal to
// v, or -1 if absent.
func (b *bucket[V]) index(v V) int {
	return b.els.Index(func(e V) bool { return e == v })
}

func (b *bucket[V]) contains(v V) bool { return b.index(v) >= 0 }

func (b *bucket[V]) removeAt(i int) V { return b.els.Remove(i) }

// removeValue deletes the first element equal to v and reports whether one
// was found.
func (b *bucket[V]) removeValue(v V) bool {
	i := b.index(v)
	if i < 0 {
		return false
	}
	b.els.Remove(i)
	return true
}

// removeFunc deletes every element for which drop returns true and returns
// the number removed.
func (b *bucket[V]) removeFunc(drop func(V) bool) int {
	var removed int
	for i := 0; i < b.els.Len(); {
		if drop(b.els.At(i)) {
			b.els.Remove(i)
			removed++
		} else {
			i++
		}
	}
	return removed
}

// slice copies the bucket in insertion order.
func (b *bucket[V]) slice() []V {
	out := make([]V, b.els.Len())
	for i := range out {
		out[i] = b.els.At(i)
	}
	return out
}

// appendPolicy appends the bucket's elements to dst in serving order for
// pol: insertion order under FIFO, reversed under LIFO.
func (b *bucket[V]) appendPolicy(dst []V, pol Policy) []V {
	n := b.els.Len()
	if pol == LIFO {
		for i := n - 1; i >= 0; i-- {
			dst = append(dst, b.els.At(i))
		}
		return dst
	}
	for i := 0; i < n; i++ {
		dst = append(dst, b.els.At(i))
	}
	return dst
}

// memberSet builds a set view of vs for O(1) membership tests during bulk
// scans.
func memberSet[V comparable](vs []V) map[V]struct{} {
	set := make(map[V]struct{}, len(vs))
	for _, v := range vs {
		set[v] = struct{}{}
	}
	return set
}
