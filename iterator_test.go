package prioritydeque

import (
	"testing"

	"golang.org/x/exp/constraints"
)

func collect[P constraints.Signed, V comparable](it Iterator[P, V]) (ps []P, vs []V) {
	for it.Next() {
		ps = append(ps, it.Priority())
		vs = append(vs, it.Value())
	}
	return ps, vs
}

func TestIteratorTraversalOrder(t *testing.T) {
	d := MakeBounded[int, string]()
	d.Add("a", 1)
	d.Add("b", 5)
	d.Add("c", 5)
	d.Add("d", 2)

	ps, vs := collect[int, string](d.Iterator())
	wantP := []int{5, 5, 2, 1}
	wantV := []string{"b", "c", "d", "a"}
	for i := range wantV {
		if ps[i] != wantP[i] || vs[i] != wantV[i] {
			t.Fatalf("FIFO iterator = %v / %v, want %v / %v", ps, vs, wantP, wantV)
		}
	}

	d.SetPolicy(LIFO)
	_, vs = collect[int, string](d.Iterator())
	wantV = []string{"c", "b", "d", "a"}
	for i := range wantV {
		if vs[i] != wantV[i] {
			t.Fatalf("LIFO iterator = %v, want %v", vs, wantV)
		}
	}
	if d.Len() != 4 {
		t.Errorf("iteration mutated the deque: Len = %d", d.Len())
	}
}

func TestIteratorCapturesPolicyAtCreation(t *testing.T) {
	d := MakeSparse[int, int]()
	d.Add(1, 0)
	d.Add(2, 0)

	it := d.Iterator() // FIFO at creation
	d.SetPolicy(LIFO)
	if !it.Next() || it.Value() != 1 {
		t.Error("iterator did not keep the policy captured at creation")
	}
}

func TestIteratorRemove(t *testing.T) {
	for name, d := range map[string]Deque[int, int]{
		"bounded": MakeBounded[int, int](),
		"sparse":  MakeSparse[int, int](),
	} {
		for v := range 10 {
			d.Add(v, v%3) // priorities 0..2
		}

		it := d.Iterator()
		for it.Next() {
			if it.Value()%2 == 1 {
				if !it.Remove() {
					t.Fatalf("%s: Remove = false mid-traversal", name)
				}
			}
		}
		if d.Len() != 5 {
			t.Errorf("%s: Len = %d after removing odds, want 5", name, d.Len())
		}
		for _, v := range d.ToSlice() {
			if v%2 == 1 {
				t.Errorf("%s: odd value %d survived", name, v)
			}
		}
	}
}

func TestIteratorRemoveDrainsBucketAndIndex(t *testing.T) {
	d := MakeBounded[int, string]()
	d.Add("only", 9)
	d.Add("next", 4)

	it := d.Iterator()
	if !it.Next() || it.Value() != "only" {
		t.Fatal("iterator did not begin at the highest priority")
	}
	it.Remove()
	if p, ok := d.HighestPriority(); !ok || p != 4 {
		t.Errorf("HighestPriority after removing the last element of 9 = %d, %v; want 4", p, ok)
	}
	if !it.Next() || it.Value() != "next" {
		t.Error("iterator did not advance past a drained bucket")
	}
	if it.Next() {
		t.Error("iterator did not terminate")
	}
}

func TestIteratorRemoveLIFO(t *testing.T) {
	d := MakeSparse[int, int]()
	d.SetPolicy(LIFO)
	d.Add(1, 0)
	d.Add(2, 0)
	d.Add(3, 0)

	it := d.Iterator()
	var kept []int
	for it.Next() {
		if it.Value() == 2 {
			it.Remove()
			continue
		}
		kept = append(kept, it.Value())
	}
	if len(kept) != 2 || kept[0] != 3 || kept[1] != 1 {
		t.Errorf("LIFO traversal around a removal = %v, want [3 1]", kept)
	}
	if d.Len() != 2 || d.Contains(2) {
		t.Errorf("Len = %d, Contains(2) = %v after removal", d.Len(), d.Contains(2))
	}
}

func TestIteratorAtConfinedToBucket(t *testing.T) {
	d := MakeBounded[int, string]()
	d.Add("a", 1)
	d.Add("b", 2)
	d.Add("c", 2)

	it := d.IteratorAt(2)
	_, vs := collect[int, string](it)
	if len(vs) != 2 || vs[0] != "b" || vs[1] != "c" {
		t.Errorf("IteratorAt(2) = %v, want [b c]", vs)
	}

	empty := d.IteratorAt(7)
	if empty.Next() {
		t.Error("IteratorAt on an absent bucket yielded an element")
	}
}

func TestIteratorMisusePanics(t *testing.T) {
	d := MakeSparse[int, int]()
	d.Add(1, 0)

	it := d.Iterator()
	mustPanic(t, "Value before Next", func() { it.Value() })
	it.Next()
	it.Remove()
	mustPanic(t, "Remove twice for one element", func() { it.Remove() })
}

func TestSnapshotIteratorRemoveHitsLiveDeque(t *testing.T) {
	r := MakeRWLocked[int, string](MakeSparse[int, string]())
	r.Add("a", 1)
	r.Add("b", 2)

	it := r.Iterator()
	if !it.Next() || it.Value() != "b" {
		t.Fatalf("snapshot head = %q, want b", it.Value())
	}
	if !it.Remove() {
		t.Error("Remove = false for a live element")
	}
	if r.Contains("b") || r.Len() != 1 {
		t.Errorf("live deque after snapshot Remove: Len=%d, Contains(b)=%v", r.Len(), r.Contains("b"))
	}

	// The rest of the snapshot is unaffected by live mutation.
	r.Clear()
	if !it.Next() || it.Value() != "a" {
		t.Error("snapshot did not retain its copied view")
	}
	if it.Remove() {
		t.Error("Remove = true for an element no longer live")
	}
}
