package prioritydeque

import (
	"iter"
	"sync"

	"golang.org/x/exp/constraints"
)

// RWLocked makes any Deque safe for multi-goroutine use by serializing
// access behind a sync.RWMutex: read-only operations share the lock,
// mutating operations hold it exclusively. The delegate's algorithmic
// behavior is untouched, and no field of the wrapped deque is reached
// outside the lock once wrapped.
//
// Readers may run concurrently with each other but never with a mutation;
// between two waiting writers there is no ordering guarantee beyond the
// fairness of sync.RWMutex itself.
//
// All, Iter, IterAt, and Iterator traverse a snapshot copied under the read
// lock rather than holding any lock across the caller's traversal; see
// Iterator for how removal works on a snapshot.
type RWLocked[P constraints.Signed, V comparable] struct {
	mu sync.RWMutex
	d  Deque[P, V]
}

// MakeRWLocked wraps delegate. The delegate must not be used directly
// afterwards.
func MakeRWLocked[P constraints.Signed, V comparable](delegate Deque[P, V]) *RWLocked[P, V] {
	return &RWLocked[P, V]{d: delegate}
}

func (r *RWLocked[P, V]) Policy() Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.Policy()
}

func (r *RWLocked[P, V]) SetPolicy(pol Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.d.SetPolicy(pol)
}

/*****************************************************************************
 * MUTATIONS (EXCLUSIVE LOCK)
 *****************************************************************************/

func (r *RWLocked[P, V]) Add(v V, priority P) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.d.Add(v, priority)
}

func (r *RWLocked[P, V]) Poll() (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.Poll()
}

func (r *RWLocked[P, V]) PollFIFO() (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.PollFIFO()
}

func (r *RWLocked[P, V]) PollLIFO() (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.PollLIFO()
}

func (r *RWLocked[P, V]) PollAt(priority P) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.PollAt(priority)
}

func (r *RWLocked[P, V]) PollFIFOAt(priority P) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.PollFIFOAt(priority)
}

func (r *RWLocked[P, V]) PollLIFOAt(priority P) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.PollLIFOAt(priority)
}

func (r *RWLocked[P, V]) Remove() (V, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.Remove()
}

func (r *RWLocked[P, V]) RemoveValue(v V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.RemoveValue(v)
}

func (r *RWLocked[P, V]) RemoveValueAt(v V, priority P) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.RemoveValueAt(v, priority)
}

func (r *RWLocked[P, V]) RemoveAll(vs []V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.RemoveAll(vs)
}

func (r *RWLocked[P, V]) RemoveAllAt(vs []V, priority P) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.RemoveAllAt(vs, priority)
}

func (r *RWLocked[P, V]) RetainAll(vs []V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.RetainAll(vs)
}

func (r *RWLocked[P, V]) RetainAllAt(vs []V, priority P) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.RetainAllAt(vs, priority)
}

func (r *RWLocked[P, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.d.Clear()
}

func (r *RWLocked[P, V]) ClearAt(priority P) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.d.ClearAt(priority)
}

func (r *RWLocked[P, V]) ClearFunc(drop func(V) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.ClearFunc(drop)
}

func (r *RWLocked[P, V]) ClearFuncAt(drop func(V) bool, priority P) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.ClearFuncAt(drop, priority)
}

/*****************************************************************************
 * READS (SHARED LOCK)
 *****************************************************************************/

func (r *RWLocked[P, V]) Peek() (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.Peek()
}

func (r *RWLocked[P, V]) PeekFIFO() (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.PeekFIFO()
}

func (r *RWLocked[P, V]) PeekLIFO() (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.PeekLIFO()
}

func (r *RWLocked[P, V]) PeekAt(priority P) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.PeekAt(priority)
}

func (r *RWLocked[P, V]) PeekFIFOAt(priority P) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.PeekFIFOAt(priority)
}

func (r *RWLocked[P, V]) PeekLIFOAt(priority P) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.PeekLIFOAt(priority)
}

func (r *RWLocked[P, V]) Contains(v V) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.Contains(v)
}

func (r *RWLocked[P, V]) ContainsAt(v V, priority P) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.ContainsAt(v, priority)
}

func (r *RWLocked[P, V]) ContainsAll(vs []V) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.ContainsAll(vs)
}

func (r *RWLocked[P, V]) ContainsAllAt(vs []V, priority P) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.ContainsAllAt(vs, priority)
}

func (r *RWLocked[P, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.Len()
}

func (r *RWLocked[P, V]) LenAt(priority P) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.LenAt(priority)
}

func (r *RWLocked[P, V]) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.Empty()
}

func (r *RWLocked[P, V]) EmptyAt(priority P) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.EmptyAt(priority)
}

func (r *RWLocked[P, V]) ToSlice() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.ToSlice()
}

func (r *RWLocked[P, V]) ToSliceAt(priority P) []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.ToSliceAt(priority)
}

func (r *RWLocked[P, V]) HighestPriority() (P, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.d.HighestPriority()
}

/*****************************************************************************
 * SNAPSHOT ITERATION
 *****************************************************************************/

func (r *RWLocked[P, V]) All() iter.Seq2[P, V] {
	return func(yield func(P, V) bool) {
		it := r.snapshot()
		for i := range it.values {
			if !yield(it.priorities[i], it.values[i]) {
				return
			}
		}
	}
}

func (r *RWLocked[P, V]) Iter() iter.Seq[V] {
	return func(yield func(V) bool) {
		it := r.snapshot()
		for _, v := range it.values {
			if !yield(v) {
				return
			}
		}
	}
}

func (r *RWLocked[P, V]) IterAt(priority P) iter.Seq[V] {
	return func(yield func(V) bool) {
		it := r.snapshotAt(priority)
		for _, v := range it.values {
			if !yield(v) {
				return
			}
		}
	}
}

func (r *RWLocked[P, V]) Iterator() Iterator[P, V] {
	return r.snapshot()
}

func (r *RWLocked[P, V]) IteratorAt(priority P) Iterator[P, V] {
	return r.snapshotAt(priority)
}

func (r *RWLocked[P, V]) snapshot() *snapshotIterator[P, V] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return takeSnapshot(r.d, r.removeEntry)
}

// snapshotAt defers the unlock so a range-check panic from the delegate
// cannot escape with the lock held.
func (r *RWLocked[P, V]) snapshotAt(priority P) *snapshotIterator[P, V] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return takeSnapshotAt(r.d, priority, r.removeEntry)
}

// removeEntry is the snapshot iterator's removal hook: a brief exclusive
// critical section deleting the first live element equal to v at priority p.
func (r *RWLocked[P, V]) removeEntry(v V, p P) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.d.RemoveValueAt(v, p)
}
