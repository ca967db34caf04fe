package utils

import (
	"slices"
	"testing"
)

func TestCircularQueueOverwritesOldest(t *testing.T) {
	q := NewCircularQueue[int](3)
	for i := 1; i <= 5; i++ {
		if err := q.Append(i); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if !q.Full() || q.Len() != 3 || q.Cap() != 3 {
		t.Fatalf("len = %d cap = %d full = %v", q.Len(), q.Cap(), q.Full())
	}
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []int{3, 4, 5}) {
		t.Fatalf("items = %v, want [3 4 5]", got)
	}
	if v, err := q.Get(0); err != nil || v != 3 {
		t.Fatalf("Get(0) = %d, %v", v, err)
	}
	if _, err := q.Get(3); err == nil {
		t.Fatal("Get(3) should be out of range")
	}
}

func TestCircularQueuePop(t *testing.T) {
	q := NewCircularQueue[string](2)
	if _, ok := q.Pop(); ok {
		t.Fatal("pop on empty queue succeeded")
	}
	_ = q.Append("a")
	_ = q.Append("b")
	_ = q.Append("c")
	if v, ok := q.Pop(); !ok || v != "b" {
		t.Fatalf("pop = %q, %v", v, ok)
	}
	if q.Len() != 1 || q.Full() {
		t.Fatalf("len = %d full = %v", q.Len(), q.Full())
	}
	_ = q.Append("d")
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []string{"c", "d"}) {
		t.Fatalf("items = %v", got)
	}
}

func TestCircularQueueZeroCapacity(t *testing.T) {
	q := NewCircularQueue[int](0)
	if err := q.Append(1); err == nil {
		t.Fatal("append on zero capacity queue succeeded")
	}
}
