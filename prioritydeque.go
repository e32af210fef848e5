// Package prioritydeque provides double-ended queues whose elements carry an
// integer priority. Elements always come out highest-priority-first; within a
// single priority, the serving order is governed by a runtime-switchable
// Policy, either FIFO or LIFO.
//
// Two storage strategies implement the same Deque contract. Bounded keeps a
// fixed, small priority range [0, 31] and finds the highest non-empty
// priority in O(1) through a single-word bit index. Sparse accepts any
// integer priority and pays O(log P) per operation, where P is the number of
// distinct priorities currently populated. Pick Bounded for a small, known
// priority domain; Sparse for an open-ended one.
//
// Neither strategy is safe for concurrent use. Thread safety is added by
// composition: RWLocked serializes a deque behind a read/write lock, and
// Blocking adds suspend-until-available semantics suitable as the task queue
// of a worker pool. The adapters may be layered independently.
package prioritydeque

import (
	"errors"
	"iter"

	"golang.org/x/exp/constraints"
)

// Policy selects the serving order among elements that share one priority.
// It never affects cross-priority ordering, which is always
// highest-priority-first, and switching it on a live deque never reshapes
// stored data: buckets keep insertion order and are simply read from the
// other end.
type Policy uint8

const (
	// FIFO serves the oldest element of a bucket first.
	FIFO Policy = iota
	// LIFO serves the newest element of a bucket first.
	LIFO
)

// String returns "FIFO" or "LIFO".
func (p Policy) String() string {
	if p == LIFO {
		return "LIFO"
	}
	return "FIFO"
}

// Deque is the contract shared by both storage strategies and both
// concurrency adapters. P is the priority type (any signed integer type,
// larger value served first) and V the element type, compared with ==.
//
// To obtain an implementation use one of the constructors: MakeBounded,
// MakeBoundedWithMax, MakeSparse, MakeRWLocked, or MakeBlocking. Zero-valued
// strategy structs panic when called.
//
// Operations come in global and per-priority pairs; the ...At forms act on a
// single bucket and treat an absent bucket as empty. On the Bounded strategy
// every ...At form (and Add) panics if handed a priority outside the
// configured range; Sparse accepts any priority.
//
// Peek and Poll report emptiness through their ok result rather than an
// error, because querying an empty deque is a normal, frequent outcome.
// Remove is the deliberate fail-fast counterpart: callers using it are
// asserting non-emptiness and get ErrNoElement otherwise.
type Deque[P constraints.Signed, V comparable] interface {
	// Policy returns the current within-priority serving order.
	Policy() Policy
	// SetPolicy switches the serving order. It takes effect on the next
	// operation; stored data is not touched.
	SetPolicy(Policy)

	// Add inserts v at the tail of priority's bucket, creating the bucket if
	// absent. The deque is logically unbounded, so Add never rejects an
	// element for capacity.
	Add(v V, priority P)

	// Peek returns the next element under the current Policy without
	// removing it. PeekFIFO and PeekLIFO force the respective order.
	Peek() (V, bool)
	PeekFIFO() (V, bool)
	PeekLIFO() (V, bool)
	PeekAt(priority P) (V, bool)
	PeekFIFOAt(priority P) (V, bool)
	PeekLIFOAt(priority P) (V, bool)

	// Poll removes and returns the next element under the current Policy.
	// PollFIFO and PollLIFO force the respective order.
	Poll() (V, bool)
	PollFIFO() (V, bool)
	PollLIFO() (V, bool)
	PollAt(priority P) (V, bool)
	PollFIFOAt(priority P) (V, bool)
	PollLIFOAt(priority P) (V, bool)

	// Remove pops like Poll but returns ErrNoElement when the deque is
	// empty.
	Remove() (V, error)

	// RemoveValue deletes the first element equal to v, scanning priorities
	// from highest to lowest. It reports whether an element was removed.
	RemoveValue(v V) bool
	RemoveValueAt(v V, priority P) bool
	// RemoveAll deletes every element equal to any member of vs and reports
	// whether the deque changed.
	RemoveAll(vs []V) bool
	RemoveAllAt(vs []V, priority P) bool
	// RetainAll deletes every element NOT equal to a member of vs and
	// reports whether the deque changed.
	RetainAll(vs []V) bool
	RetainAllAt(vs []V, priority P) bool

	Contains(v V) bool
	ContainsAt(v V, priority P) bool
	ContainsAll(vs []V) bool
	ContainsAllAt(vs []V, priority P) bool

	// Len is O(1): the element count is tracked incrementally, never
	// recomputed.
	Len() int
	LenAt(priority P) int
	Empty() bool
	EmptyAt(priority P) bool

	// Clear resets the deque to its initial empty state.
	Clear()
	ClearAt(priority P)
	// ClearFunc removes every element for which drop returns true and
	// reports whether the deque changed.
	ClearFunc(drop func(V) bool) bool
	ClearFuncAt(drop func(V) bool, priority P) bool

	// ToSlice snapshots the deque from highest to lowest priority, honoring
	// the current Policy within each priority. ToSliceAt returns one
	// bucket's elements in raw insertion order, regardless of Policy.
	ToSlice() []V
	ToSliceAt(priority P) []V

	// HighestPriority returns the priority of the highest non-empty bucket.
	// ok is false when the deque is empty.
	HighestPriority() (P, bool)

	// All iterates priority/element pairs from highest to lowest priority,
	// honoring the current Policy within each bucket. Iter is the same
	// without priorities; IterAt walks a single bucket.
	All() iter.Seq2[P, V]
	Iter() iter.Seq[V]
	IterAt(priority P) iter.Seq[V]

	// Iterator returns a cursor over the same sequence as All that
	// additionally supports removing the current element mid-traversal.
	Iterator() Iterator[P, V]
	IteratorAt(priority P) Iterator[P, V]
}

// Iterator is a lazy, finite, non-restartable cursor over a deque. Call Next
// to advance; Value, Priority, and Remove are valid only after Next returned
// true and before the next call to Next or Remove, and panic otherwise.
//
// Iterators obtained from Bounded or Sparse walk the live structure and
// Remove deletes exactly the current element, updating size and the
// non-empty index together with the bucket. Iterators obtained from RWLocked
// or Blocking walk a point-in-time snapshot instead, and Remove re-acquires
// the lock briefly to delete the first live element equal to the current
// one, reporting false if it is already gone. The snapshot variant never
// holds the adapter's lock across a caller's traversal.
type Iterator[P constraints.Signed, V comparable] interface {
	Next() bool
	Value() V
	Priority() P
	Remove() bool
}

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

// ErrNoElement is returned by Remove when the deque holds no elements.
var ErrNoElement = errors.New("no element to remove")

// ErrNegativePriority is returned when constructing a Bounded deque with a
// negative maximum priority.
var ErrNegativePriority = errors.New("maximum priority cannot be negative")

// ErrPriorityRangeTooWide is returned when constructing a Bounded deque with
// a maximum priority above MaxPriority, which would overflow the machine
// word used as the non-empty bit index.
var ErrPriorityRangeTooWide = errors.New("priority range does not fit the bit index")
