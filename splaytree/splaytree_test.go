package splaytree

import (
	"testing"
)

func TestSplayTreeGet(t *testing.T) {
	tree := New[int, string]()

	tree.Put(1, "x")
	tree.Put(2, "b")
	tree.Put(1, "a") // overwrite
	tree.Put(3, "c")

	if actualValue := tree.Len(); actualValue != 3 {
		t.Errorf("Got %v expected %v", actualValue, 3)
	}

	if val, ok := tree.Get(1); !ok || val != "a" {
		t.Errorf("Got %v/%v expected %v/%v", val, ok, "a", true)
	}

	if val, ok := tree.Get(4); ok {
		t.Errorf("Got %v/%v expected not found", val, ok)
	}

	tree.Validate()
}

func TestSplayTreeSplaysToRoot(t *testing.T) {
	tree := New[int, string]()

	for _, k := range []int{5, 3, 8, 1, 4, 7, 9, 2, 6} {
		tree.Put(k, "x")
	}

	if _, ok := tree.Get(6); !ok {
		t.Fatalf("Get(6) expected true")
	}

	if tree.root.key != 6 {
		t.Errorf("Got root %v expected %v", tree.root.key, 6)
	}

	tree.Validate()
}

func TestSplayTreeRemove(t *testing.T) {
	tree := New[int, int]()

	for i := 0; i < 100; i++ {
		tree.Put(i, i)
	}

	tree.Validate()

	for i := 0; i < 100; i += 3 {
		val, ok := tree.Remove(i)
		if !ok || val != i {
			t.Errorf("Remove(%v) = %v, %v; want %v, true", i, val, ok, i)
		}

		tree.Validate()
	}

	for i := 0; i < 100; i++ {
		_, ok := tree.Get(i)
		want := i%3 != 0

		if ok != want {
			t.Errorf("Get(%v) present=%v, want %v", i, ok, want)
		}
	}
}

func TestSplayTreeIter(t *testing.T) {
	tree := New[int, string]()

	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		tree.Put(k, "x")
	}

	prev := -1

	for k := range tree.Iter() {
		if k <= prev {
			t.Errorf("Iter not ascending: %v after %v", k, prev)
		}

		prev = k
	}
}
