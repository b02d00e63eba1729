package bptree2

import (
	"testing"

	"github.com/mhcoll/coll/container"
)

func TestBPTree2GetPut(t *testing.T) {
	tree := New[int, string](4)

	tree.Put(1, "x")
	tree.Put(2, "b")
	tree.Put(1, "a") // overwrite
	tree.Put(3, "c")

	if actualValue := tree.Len(); actualValue != 3 {
		t.Errorf("Got %v expected %v", actualValue, 3)
	}

	val, ok := tree.Get(1)
	if !ok || val != "a" {
		t.Errorf("Got %v/%v expected %v/%v", val, ok, "a", true)
	}

	if _, ok := tree.Get(99); ok {
		t.Errorf("Get(99) expected not found")
	}

	tree.Validate()
}

func TestBPTree2SplitsChunksAndValidates(t *testing.T) {
	tree := New[int, int](4)

	for i := 0; i < 1000; i++ {
		tree.Put(i, i*2)
	}

	tree.Validate()

	if actualValue := tree.Len(); actualValue != 1000 {
		t.Errorf("Got %v expected %v", actualValue, 1000)
	}

	for i := 0; i < 1000; i++ {
		val, ok := tree.Get(i)
		if !ok || val != i*2 {
			t.Errorf("Get(%v) = %v, %v; want %v, true", i, val, ok, i*2)
		}
	}
}

func TestBPTree2Remove(t *testing.T) {
	tree := New[int, int](4)

	for i := 0; i < 500; i++ {
		tree.Put(i, i)
	}

	tree.Validate()

	for i := 0; i < 500; i += 2 {
		val, ok := tree.Remove(i)
		if !ok || val != i {
			t.Errorf("Remove(%v) = %v, %v; want %v, true", i, val, ok, i)
		}
	}

	tree.Validate()

	if actualValue := tree.Len(); actualValue != 250 {
		t.Errorf("Got %v expected %v", actualValue, 250)
	}

	for i := 1; i < 500; i += 2 {
		if _, ok := tree.Get(i); !ok {
			t.Errorf("Get(%v) expected found", i)
		}
	}
}

func TestBPTree2Iter(t *testing.T) {
	tree := New[int, int](4)

	for i := 0; i < 300; i++ {
		tree.Put(299-i, i)
	}

	var keys []int

	for k := range tree.Iter() {
		keys = append(keys, k)
	}

	if len(keys) != 300 {
		t.Fatalf("Got %v keys expected %v", len(keys), 300)
	}

	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			t.Errorf("Iter not ascending at index %v", i)

			break
		}
	}
}

func TestBPTree2Range(t *testing.T) {
	tree := New[int, int](4)

	for i := 0; i < 300; i++ {
		tree.Put(i, i)
	}

	var got []int

	for k := range tree.Range(container.Lo(100), container.Hi(110)) {
		got = append(got, k)
	}

	if len(got) != 11 {
		t.Fatalf("Got %v keys expected %v", len(got), 11)
	}

	for i, k := range got {
		if k != 100+i {
			t.Errorf("Got %v expected ascending from 100", got)

			break
		}
	}
}
