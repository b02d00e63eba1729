package bptree

import (
	"testing"

	"github.com/mhcoll/coll/container"
)

func TestBPTreeGetPut(t *testing.T) {
	tree := New[int, string](4)

	if actualValue := tree.Len(); actualValue != 0 {
		t.Errorf("Got %v expected %v", actualValue, 0)
	}

	tree.Put(1, "x")
	tree.Put(2, "b")
	tree.Put(1, "a") // overwrite
	tree.Put(3, "c")
	tree.Put(4, "d")

	if actualValue := tree.Len(); actualValue != 4 {
		t.Errorf("Got %v expected %v", actualValue, 4)
	}

	tests := []struct {
		key   int
		value string
		found bool
	}{
		{1, "a", true},
		{2, "b", true},
		{4, "d", true},
		{5, "", false},
	}

	for _, test := range tests {
		actualValue, actualFound := tree.Get(test.key)
		if actualValue != test.value || actualFound != test.found {
			t.Errorf("Got %v/%v expected %v/%v", actualValue, actualFound, test.value, test.found)
		}
	}

	tree.Validate()
}

func TestBPTreeSplitsAndValidates(t *testing.T) {
	tree := New[int, int](4)

	for i := 0; i < 200; i++ {
		tree.Put(i, i*i)
	}

	tree.Validate()

	if actualValue := tree.Len(); actualValue != 200 {
		t.Errorf("Got %v expected %v", actualValue, 200)
	}

	for i := 0; i < 200; i++ {
		val, ok := tree.Get(i)
		if !ok || val != i*i {
			t.Errorf("Get(%v) = %v, %v; want %v, true", i, val, ok, i*i)
		}
	}
}

func TestBPTreeRemove(t *testing.T) {
	tree := New[int, int](4)

	for i := 0; i < 300; i++ {
		tree.Put(i, i)
	}

	tree.Validate()

	for i := 0; i < 300; i += 2 {
		val, ok := tree.Remove(i)
		if !ok || val != i {
			t.Errorf("Remove(%v) = %v, %v; want %v, true", i, val, ok, i)
		}

		tree.Validate()
	}

	if actualValue := tree.Len(); actualValue != 150 {
		t.Errorf("Got %v expected %v", actualValue, 150)
	}

	for i := 1; i < 300; i += 2 {
		if _, ok := tree.Get(i); !ok {
			t.Errorf("Get(%v) expected found", i)
		}
	}

	for i := 0; i < 300; i += 2 {
		if _, ok := tree.Get(i); ok {
			t.Errorf("Get(%v) expected not found", i)
		}
	}
}

func TestBPTreeIter(t *testing.T) {
	tree := New[int, int](5)

	for _, k := range []int{5, 3, 8, 1, 4, 7, 9, 2, 6} {
		tree.Put(k, k)
	}

	var keys []int

	for k := range tree.Iter() {
		keys = append(keys, k)
	}

	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			t.Errorf("Iter not ascending: %v", keys)

			break
		}
	}

	if len(keys) != 9 {
		t.Errorf("Got %v keys expected %v", len(keys), 9)
	}
}

func TestBPTreeRange(t *testing.T) {
	tree := New[int, int](4)

	for i := 0; i < 50; i++ {
		tree.Put(i, i)
	}

	var got []int

	for k := range tree.Range(container.Lo(10), container.Hi(20)) {
		got = append(got, k)
	}

	if len(got) != 11 {
		t.Fatalf("Got %v keys expected %v", len(got), 11)
	}

	for i, k := range got {
		if k != 10+i {
			t.Errorf("Got %v expected %v", got, "10..20")

			break
		}
	}

	var gotExclusive []int

	for k := range tree.Range(container.LoExclusive(10), container.HiExclusive(20)) {
		gotExclusive = append(gotExclusive, k)
	}

	if len(gotExclusive) != 9 {
		t.Fatalf("Got %v keys expected %v", len(gotExclusive), 9)
	}

	var all []int

	for k := range tree.Range(container.Bound[int]{}, container.Bound[int]{}) {
		all = append(all, k)
	}

	if len(all) != 50 {
		t.Errorf("Got %v keys expected %v", len(all), 50)
	}
}

func TestBPTreeInvalidOrder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for order < 3")
		}
	}()

	New[int, int](2)
}
