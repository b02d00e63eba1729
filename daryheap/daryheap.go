// Package daryheap provides a generic, addressable D-ary heap: a binary
// heap generalized to an arbitrary branching factor. A larger branching
// factor shortens the tree (fewer levels to sift down through) at the cost
// of more comparisons per level, which suits workloads dominated by
// decrease-key over pop.
//
// The queue uses a map for O(1) value-to-slot lookups and supports custom
// comparators for priority ordering, mirroring the teacher package's
// addressable-priority-queue idiom but with direct slot arithmetic instead
// of container/heap.Interface, since that interface has no notion of
// branching factor.
package daryheap

import (
	"cmp"
	"errors"

	godscmp "github.com/mhcoll/coll/cmp"
)

// Error messages defined as constants.
var (
	// ErrNilComparator indicates the comparator function is nil.
	ErrNilComparator = errors.New("comparator cannot be nil")
	// ErrInvalidBranchFactor indicates a branch factor below the minimum of 2.
	ErrInvalidBranchFactor = errors.New("branch factor must be at least 2")
)

// HeapKind specifies the type of heap: min-heap or max-heap.
type HeapKind int

const (
	// MinHeap yields items with the smallest priority first.
	MinHeap HeapKind = iota
	// MaxHeap yields items with the largest priority first.
	MaxHeap
)

// Item represents an element in the heap with a value and priority.
type Item[T comparable, V any] struct {
	Value    T   // Value identifies the item.
	Priority V   // Priority determines the item's order in the heap.
	index    int // index is this item's current slot.
}

// Heap is a generic, addressable D-ary heap.
type Heap[T comparable, V cmp.Ordered] struct {
	kind   HeapKind
	branch int
	items  []*Item[T, V]
	idxMap map[T]*Item[T, V]
	cmp    godscmp.Comparator[V]
}

// New creates a new D-ary heap with the default comparator for ordered
// types. branch is the branching factor (children per node) and must be at
// least 2; a binary heap is branch == 2.
func New[T comparable, V cmp.Ordered](kind HeapKind, branch int) *Heap[T, V] {
	return NewWith[T](kind, branch, cmp.Compare[V])
}

// NewWith creates a new D-ary heap with a custom comparator for priorities.
func NewWith[T comparable, V cmp.Ordered](kind HeapKind, branch int, comparator godscmp.Comparator[V]) *Heap[T, V] {
	if comparator == nil {
		panic(ErrNilComparator)
	}

	if branch < 2 {
		panic(ErrInvalidBranchFactor)
	}

	return &Heap[T, V]{
		kind:   kind,
		branch: branch,
		items:  make([]*Item[T, V], 0, 16),
		idxMap: make(map[T]*Item[T, V], 16),
		cmp:    comparator,
	}
}

// Len returns the number of items in the heap.
func (h *Heap[T, V]) Len() int { return len(h.items) }

// Empty checks if the heap contains no items.
func (h *Heap[T, V]) Empty() bool { return len(h.items) == 0 }

// less reports whether the item at slot i must come before the item at
// slot j, per the heap's kind.
func (h *Heap[T, V]) less(i, j int) bool {
	c := h.cmp(h.items[i].Priority, h.items[j].Priority)

	return (h.kind == MinHeap && c < 0) || (h.kind == MaxHeap && c > 0)
}

func (h *Heap[T, V]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}

func (h *Heap[T, V]) parent(i int) int { return (i - 1) / h.branch }
func (h *Heap[T, V]) child(i, k int) int { return h.branch*i + 1 + k }

// siftUp moves the item at slot i up while it precedes its parent.
func (h *Heap[T, V]) siftUp(i int) {
	for i > 0 {
		p := h.parent(i)
		if !h.less(i, p) {
			return
		}

		h.swap(i, p)
		i = p
	}
}

// siftDown moves the item at slot i down while a child precedes it.
func (h *Heap[T, V]) siftDown(i int) {
	n := len(h.items)

	for {
		best := i

		for k := 0; k < h.branch; k++ {
			c := h.child(i, k)
			if c >= n {
				break
			}

			if h.less(c, best) {
				best = c
			}
		}

		if best == i {
			return
		}

		h.swap(i, best)
		i = best
	}
}

// Put adds a value with the specified priority to the heap. If the value
// already exists, it updates the priority.
func (h *Heap[T, V]) Put(value T, priority V) {
	if item, exists := h.idxMap[value]; exists {
		item.Priority = priority

		h.siftUp(item.index)
		h.siftDown(item.index)

		return
	}

	item := &Item[T, V]{Value: value, Priority: priority, index: len(h.items)}
	h.items = append(h.items, item)
	h.idxMap[value] = item
	h.siftUp(item.index)
}

// Peek returns the item at the top of the heap without removing it.
func (h *Heap[T, V]) Peek() (*Item[T, V], bool) {
	if h.Empty() {
		return nil, false
	}

	return h.items[0], true
}

// Pop removes and returns the item at the top of the heap.
func (h *Heap[T, V]) Pop() (*Item[T, V], bool) {
	if h.Empty() {
		return nil, false
	}

	top := h.items[0]
	n := len(h.items) - 1
	h.swap(0, n)
	h.items = h.items[:n]
	delete(h.idxMap, top.Value)

	if n > 0 {
		h.siftDown(0)
	}

	return top, true
}

// Remove removes the item with the specified value from the heap. Returns
// true if the item was removed, false otherwise.
func (h *Heap[T, V]) Remove(value T) bool {
	item, exists := h.idxMap[value]
	if !exists {
		return false
	}

	i := item.index
	n := len(h.items) - 1
	h.swap(i, n)
	h.items = h.items[:n]
	delete(h.idxMap, value)

	if i < n {
		h.siftUp(i)
		h.siftDown(i)
	}

	return true
}

// Clear removes all items from the heap and resets its internal state.
func (h *Heap[T, V]) Clear() {
	h.items = h.items[:0]
	h.idxMap = make(map[T]*Item[T, V], 16)
}

// Items returns a copy of the internal slice containing all heap items, in
// heap (not sorted) order.
func (h *Heap[T, V]) Items() []*Item[T, V] {
	result := make([]*Item[T, V], len(h.items))
	copy(result, h.items)

	return result
}
