package prioritydeque

import (
	"context"
	"iter"
	"sync"
	"time"

	"golang.org/x/exp/constraints"
)

// Blocking makes any Deque safe for multi-producer/multi-consumer use and
// adds suspend-until-available consumption, the shape a worker pool expects
// from its task queue. All access is serialized through one mutex; a single
// not-empty condition variable wakes consumers parked in Take or
// PollTimeout whenever an insertion lands.
//
// The deque is logically unbounded, so Put and Add never block on capacity.
// A default priority supplied at construction lets Blocking pose as an
// ordinary unprioritized queue: producers call Put, consumers call Take,
// and nobody mentions priorities at all.
//
// Blocking also satisfies the full Deque contract; every forwarded
// operation runs inside the mutex. All, Iter, IterAt, and Iterator traverse
// a snapshot, as on RWLocked.
type Blocking[P constraints.Signed, V comparable] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	d        Deque[P, V]
	def      P
}

// MakeBlocking wraps delegate. Elements added through Put carry
// defaultPriority. The delegate must not be used directly afterwards.
func MakeBlocking[P constraints.Signed, V comparable](delegate Deque[P, V], defaultPriority P) *Blocking[P, V] {
	b := &Blocking[P, V]{d: delegate, def: defaultPriority}
	b.notEmpty = sync.NewCond(&b.mu)
	return b
}

// DefaultPriority returns the priority Put inserts at.
func (b *Blocking[P, V]) DefaultPriority() P { return b.def }

/*****************************************************************************
 * QUEUE SURFACE
 *****************************************************************************/

// Put inserts v at the adapter's default priority. It never blocks.
func (b *Blocking[P, V]) Put(v V) { b.Add(v, b.def) }

// Take removes and returns the next element in priority order, suspending
// the calling goroutine until one is available. Cancelling ctx aborts the
// wait and returns ctx.Err(); an aborted wait leaves the deque untouched,
// so no element is popped on the cancellation path.
func (b *Blocking[P, V]) Take(ctx context.Context) (V, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.d.Empty() {
		if err := ctx.Err(); err != nil {
			var zero V
			return zero, err
		}
		stop := context.AfterFunc(ctx, b.wake)
		b.notEmpty.Wait()
		stop()
	}
	v, _ := b.d.Poll()
	return v, nil
}

// PollTimeout is Take with a bounded wait. The remaining time is recomputed
// after every wakeup, spurious ones included, and the no-value sentinel is
// returned once it runs out while the deque is still empty. A zero or
// negative timeout makes PollTimeout a non-blocking probe: it returns
// immediately either way.
func (b *Blocking[P, V]) PollTimeout(timeout time.Duration) (V, bool) {
	deadline := time.Now().Add(timeout)
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.d.Empty() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			var zero V
			return zero, false
		}
		t := time.AfterFunc(remaining, b.wake)
		b.notEmpty.Wait()
		t.Stop()
	}
	return b.d.Poll()
}

// wake broadcasts under the mutex so a waiter parked between its deadline
// check and Wait cannot miss the signal.
func (b *Blocking[P, V]) wake() {
	b.mu.Lock()
	b.notEmpty.Broadcast()
	b.mu.Unlock()
}

// Drain pops every element in priority order within a single critical
// section.
func (b *Blocking[P, V]) Drain() []V { return b.drain(-1) }

// DrainN pops up to max elements in priority order within a single critical
// section, one lock acquisition instead of a poll loop.
func (b *Blocking[P, V]) DrainN(max int) []V { return b.drain(max) }

func (b *Blocking[P, V]) drain(max int) []V {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []V
	for max < 0 || len(out) < max {
		v, ok := b.d.Poll()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

/*****************************************************************************
 * DEQUE CONTRACT
 *****************************************************************************/

func (b *Blocking[P, V]) Policy() Policy {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.Policy()
}

func (b *Blocking[P, V]) SetPolicy(pol Policy) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.d.SetPolicy(pol)
}

func (b *Blocking[P, V]) Add(v V, priority P) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.d.Add(v, priority)
	b.notEmpty.Broadcast()
}

func (b *Blocking[P, V]) Peek() (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.Peek()
}

func (b *Blocking[P, V]) PeekFIFO() (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PeekFIFO()
}

func (b *Blocking[P, V]) PeekLIFO() (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PeekLIFO()
}

func (b *Blocking[P, V]) PeekAt(priority P) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PeekAt(priority)
}

func (b *Blocking[P, V]) PeekFIFOAt(priority P) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PeekFIFOAt(priority)
}

func (b *Blocking[P, V]) PeekLIFOAt(priority P) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PeekLIFOAt(priority)
}

func (b *Blocking[P, V]) Poll() (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.Poll()
}

func (b *Blocking[P, V]) PollFIFO() (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PollFIFO()
}

func (b *Blocking[P, V]) PollLIFO() (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PollLIFO()
}

func (b *Blocking[P, V]) PollAt(priority P) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PollAt(priority)
}

func (b *Blocking[P, V]) PollFIFOAt(priority P) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PollFIFOAt(priority)
}

func (b *Blocking[P, V]) PollLIFOAt(priority P) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.PollLIFOAt(priority)
}

func (b *Blocking[P, V]) Remove() (V, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.Remove()
}

func (b *Blocking[P, V]) RemoveValue(v V) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.RemoveValue(v)
}

func (b *Blocking[P, V]) RemoveValueAt(v V, priority P) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.RemoveValueAt(v, priority)
}

func (b *Blocking[P, V]) RemoveAll(vs []V) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.RemoveAll(vs)
}

func (b *Blocking[P, V]) RemoveAllAt(vs []V, priority P) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.RemoveAllAt(vs, priority)
}

func (b *Blocking[P, V]) RetainAll(vs []V) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.RetainAll(vs)
}

func (b *Blocking[P, V]) RetainAllAt(vs []V, priority P) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.RetainAllAt(vs, priority)
}

func (b *Blocking[P, V]) Contains(v V) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.Contains(v)
}

func (b *Blocking[P, V]) ContainsAt(v V, priority P) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.ContainsAt(v, priority)
}

func (b *Blocking[P, V]) ContainsAll(vs []V) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.ContainsAll(vs)
}

func (b *Blocking[P, V]) ContainsAllAt(vs []V, priority P) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.ContainsAllAt(vs, priority)
}

func (b *Blocking[P, V]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.Len()
}

func (b *Blocking[P, V]) LenAt(priority P) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.LenAt(priority)
}

func (b *Blocking[P, V]) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.Empty()
}

func (b *Blocking[P, V]) EmptyAt(priority P) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.EmptyAt(priority)
}

func (b *Blocking[P, V]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.d.Clear()
}

func (b *Blocking[P, V]) ClearAt(priority P) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.d.ClearAt(priority)
}

func (b *Blocking[P, V]) ClearFunc(drop func(V) bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.ClearFunc(drop)
}

func (b *Blocking[P, V]) ClearFuncAt(drop func(V) bool, priority P) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.ClearFuncAt(drop, priority)
}

func (b *Blocking[P, V]) ToSlice() []V {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.ToSlice()
}

func (b *Blocking[P, V]) ToSliceAt(priority P) []V {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.ToSliceAt(priority)
}

func (b *Blocking[P, V]) HighestPriority() (P, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.HighestPriority()
}

/*****************************************************************************
 * SNAPSHOT ITERATION
 *****************************************************************************/

func (b *Blocking[P, V]) All() iter.Seq2[P, V] {
	return func(yield func(P, V) bool) {
		it := b.snapshot()
		for i := range it.values {
			if !yield(it.priorities[i], it.values[i]) {
				return
			}
		}
	}
}

func (b *Blocking[P, V]) Iter() iter.Seq[V] {
	return func(yield func(V) bool) {
		it := b.snapshot()
		for _, v := range it.values {
			if !yield(v) {
				return
			}
		}
	}
}

func (b *Blocking[P, V]) IterAt(priority P) iter.Seq[V] {
	return func(yield func(V) bool) {
		it := b.snapshotAt(priority)
		for _, v := range it.values {
			if !yield(v) {
				return
			}
		}
	}
}

func (b *Blocking[P, V]) Iterator() Iterator[P, V] {
	return b.snapshot()
}

func (b *Blocking[P, V]) IteratorAt(priority P) Iterator[P, V] {
	return b.snapshotAt(priority)
}

func (b *Blocking[P, V]) snapshot() *snapshotIterator[P, V] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return takeSnapshot(b.d, b.removeEntry)
}

// snapshotAt defers the unlock so a range-check panic from the delegate
// cannot escape with the mutex held.
func (b *Blocking[P, V]) snapshotAt(priority P) *snapshotIterator[P, V] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return takeSnapshotAt(b.d, priority, b.removeEntry)
}

func (b *Blocking[P, V]) removeEntry(v V, p P) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d.RemoveValueAt(v, p)
}
