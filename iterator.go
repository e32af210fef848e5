package prioritydeque

import (
	"golang.org/x/exp/constraints"
)

/*****************************************************************************
 * LIVE ITERATOR (plain strategies)
 *****************************************************************************/

// liveIterator walks a strategy's buckets in place, priorities descending,
// serving each bucket in the policy direction captured when the iterator was
// created. Remove deletes exactly the current element and reconciles the
// bucket, the size counter, and the non-empty index in one step. External
// mutation of the deque during traversal is undefined, matching the
// strategies' single-threaded contract.
type liveIterator[P constraints.Signed, V comparable] struct {
	c      *core[P, V]
	pol    Policy
	single bool // confined to the bucket at cur
	begun  bool
	done   bool
	cur    P   // priority of the bucket being served
	pos    int // insertion-order index of the element last returned
	can    bool
}

func (it *liveIterator[P, V]) Next() bool {
	if it.done {
		return false
	}
	it.can = false
	if !it.begun {
		it.begun = true
		if !it.single {
			p, ok := it.c.st.highest()
			if !ok {
				it.done = true
				return false
			}
			it.cur = p
		}
		it.enter()
	}
	for {
		if b := it.c.st.bucketFor(it.cur); b != nil && it.step(b) {
			it.can = true
			return true
		}
		if it.single {
			it.done = true
			return false
		}
		p, ok := it.c.st.below(it.cur)
		if !ok {
			it.done = true
			return false
		}
		it.cur = p
		it.enter()
	}
}

// enter positions pos just before the first element of the bucket at cur in
// the iterator's policy direction.
func (it *liveIterator[P, V]) enter() {
	if it.pol == LIFO {
		if b := it.c.st.bucketFor(it.cur); b != nil {
			it.pos = b.len()
		}
		return
	}
	it.pos = -1
}

// step advances pos by one element within b, reporting false when b is
// exhausted.
func (it *liveIterator[P, V]) step(b *bucket[V]) bool {
	if it.pol == LIFO {
		if it.pos == 0 {
			return false
		}
		it.pos--
		return true
	}
	if it.pos+1 >= b.len() {
		return false
	}
	it.pos++
	return true
}

func (it *liveIterator[P, V]) Value() V {
	if !it.can {
		panic("prioritydeque: iterator Value without a successful Next")
	}
	return it.c.st.bucketFor(it.cur).at(it.pos)
}

func (it *liveIterator[P, V]) Priority() P {
	if !it.can {
		panic("prioritydeque: iterator Priority without a successful Next")
	}
	return it.cur
}

func (it *liveIterator[P, V]) Remove() bool {
	if !it.can {
		panic("prioritydeque: iterator Remove without a successful Next")
	}
	it.can = false
	it.c.st.bucketFor(it.cur).removeAt(it.pos)
	it.c.size--
	it.c.st.dropIfEmpty(it.cur)
	if it.pol != LIFO {
		// Later elements shifted down; back up so Next lands on the one that
		// followed the removed element.
		it.pos--
	}
	return true
}

/*****************************************************************************
 * SNAPSHOT ITERATOR (concurrency adapters)
 *****************************************************************************/

// snapshotIterator walks a copied sequence taken under the owning adapter's
// lock, so a traversal never blocks other users of the deque. Remove is a
// targeted second operation against the live structure, performed by
// removeFn under a brief exclusive lock; it deletes the first live element
// equal to the current one, which under value equality is indistinguishable
// from the element that was snapshotted.
type snapshotIterator[P constraints.Signed, V comparable] struct {
	priorities []P
	values     []V
	i          int
	can        bool
	removeFn   func(v V, p P) bool
}

func takeSnapshot[P constraints.Signed, V comparable](d Deque[P, V], removeFn func(v V, p P) bool) *snapshotIterator[P, V] {
	it := &snapshotIterator[P, V]{i: -1, removeFn: removeFn}
	for p, v := range d.All() {
		it.priorities = append(it.priorities, p)
		it.values = append(it.values, v)
	}
	return it
}

func takeSnapshotAt[P constraints.Signed, V comparable](d Deque[P, V], priority P, removeFn func(v V, p P) bool) *snapshotIterator[P, V] {
	it := &snapshotIterator[P, V]{i: -1, removeFn: removeFn}
	for v := range d.IterAt(priority) {
		it.priorities = append(it.priorities, priority)
		it.values = append(it.values, v)
	}
	return it
}

func (it *snapshotIterator[P, V]) Next() bool {
	if it.i+1 >= len(it.values) {
		it.can = false
		return false
	}
	it.i++
	it.can = true
	return true
}

func (it *snapshotIterator[P, V]) Value() V {
	if !it.can {
		panic("prioritydeque: iterator Value without a successful Next")
	}
	return it.values[it.i]
}

func (it *snapshotIterator[P, V]) Priority() P {
	if !it.can {
		panic("prioritydeque: iterator Priority without a successful Next")
	}
	return it.priorities[it.i]
}

func (it *snapshotIterator[P, V]) Remove() bool {
	if !it.can {
		panic("prioritydeque: iterator Remove without a successful Next")
	}
	it.can = false
	return it.removeFn(it.values[it.i], it.priorities[it.i])
}
