package prioritydeque

import (
	"github.com/petar/GoLLRB/llrb"
	"golang.org/x/exp/constraints"
)

// Sparse is a priority deque over arbitrary, possibly negative priorities.
// Buckets live in an ordered tree keyed by priority, so Add and Poll cost
// O(log P) where P is the number of distinct priorities currently populated,
// not the priority magnitude. The tree doubles as the non-empty index: the
// highest non-empty priority is simply its maximum key, and a drained
// bucket's entry is deleted on the spot.
//
// Sparse trades the Bounded strategy's O(1) operations for an unbounded
// priority domain. It is not safe for concurrent use; wrap it in RWLocked
// or Blocking. Use MakeSparse; a zero-valued Sparse panics.
type Sparse[P constraints.Signed, V comparable] struct {
	core[P, V]
	tree *llrb.LLRB
}

// sparseEntry is a tree item pairing a priority with its bucket. The bucket
// sits inline so one allocation covers the entry for its whole lifetime.
type sparseEntry[P constraints.Signed, V comparable] struct {
	priority P
	b        bucket[V]
}

func (e *sparseEntry[P, V]) Less(than llrb.Item) bool {
	return e.priority < than.(*sparseEntry[P, V]).priority
}

// MakeSparse allocates an empty Sparse deque with the FIFO policy.
func MakeSparse[P constraints.Signed, V comparable]() *Sparse[P, V] {
	s := &Sparse[P, V]{tree: llrb.New()}
	s.st = s
	return s
}

/*****************************************************************************
 * STORE
 *****************************************************************************/

func (s *Sparse[P, V]) bucketFor(p P) *bucket[V] {
	item := s.tree.Get(&sparseEntry[P, V]{priority: p})
	if item == nil {
		return nil
	}
	return &item.(*sparseEntry[P, V]).b
}

func (s *Sparse[P, V]) ensureBucket(p P) *bucket[V] {
	if b := s.bucketFor(p); b != nil {
		return b
	}
	e := &sparseEntry[P, V]{priority: p}
	s.tree.ReplaceOrInsert(e)
	return &e.b
}

func (s *Sparse[P, V]) dropIfEmpty(p P) {
	probe := &sparseEntry[P, V]{priority: p}
	if item := s.tree.Get(probe); item != nil && item.(*sparseEntry[P, V]).b.len() == 0 {
		s.tree.Delete(probe)
	}
}

func (s *Sparse[P, V]) highest() (p P, ok bool) {
	item := s.tree.Max()
	if item == nil {
		return
	}
	return item.(*sparseEntry[P, V]).priority, true
}

// below descends from p itself rather than probing p-1, which would wrap at
// the priority type's minimum value.
func (s *Sparse[P, V]) below(p P) (next P, ok bool) {
	s.tree.DescendLessOrEqual(&sparseEntry[P, V]{priority: p}, func(item llrb.Item) bool {
		e := item.(*sparseEntry[P, V])
		if e.priority == p {
			return true
		}
		next, ok = e.priority, true
		return false
	})
	return next, ok
}

func (s *Sparse[P, V]) priorities() []P {
	out := make([]P, 0, s.tree.Len())
	if s.tree.Len() == 0 {
		return out
	}
	s.tree.DescendLessOrEqual(s.tree.Max(), func(item llrb.Item) bool {
		out = append(out, item.(*sparseEntry[P, V]).priority)
		return true
	})
	return out
}

func (s *Sparse[P, V]) clearAll() { s.tree = llrb.New() }

// checkPriority is a no-op: the sparse strategy accepts any integer and
// never rejects on range.
func (s *Sparse[P, V]) checkPriority(P) {}
