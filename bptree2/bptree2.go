// Package bptree2 implements a two-level B+Tree: an outer B+Tree whose
// leaves are themselves small B+Trees ("chunks") rather than flat arrays of
// entries.
//
// This trades a larger per-leaf fan-out (each chunk holds up to
// 2*innerOrder entries before it is split, internally as balanced as a
// bptree.Tree) against a
// shallower, cheaper-to-rebalance outer structure: splitting or merging a
// leaf only ever touches one chunk's worth of entries instead of a single
// flat array capped at the overall tree's leaf order. Chunk boundaries are
// promoted into the outer tree exactly as bptree promotes leaf splits.
// Structure is not thread-safe.
package bptree2

import (
	"fmt"
	"iter"

	"github.com/mhcoll/coll/bptree"
	"github.com/mhcoll/coll/cmp"
	"github.com/mhcoll/coll/container"
)

// innerOrder is the order of each leaf-level chunk tree.
const innerOrder = 20

// node is a single node of the outer tree. Internal nodes route via keys
// and children; leaves each own one chunk and link to the next leaf in key
// order.
type node[K comparable, V any] struct {
	leaf     bool
	keys     []K           // internal: routing separators. leaf: unused.
	children []*node[K, V] // internal only
	chunk    *bptree.Tree[K, V]
	next     *node[K, V]
	parent   *node[K, V]
}

var _ container.RangeMap[int, int] = (*Tree[int, int])(nil)

// Tree manages a two-level B+Tree storing key-value pairs.
type Tree[K comparable, V any] struct {
	root         *node[K, V]
	size         int
	outerOrder   int
	maxChunkSize int
	comparator   cmp.Comparator[K]
}

// New instantiates a two-level B+Tree whose outer fan-out is outerOrder,
// using the default comparator for ordered types. outerOrder must be at
// least 3.
func New[K cmp.Ordered, V any](outerOrder int) *Tree[K, V] {
	return NewWith[K, V](outerOrder, cmp.GenericComparator[K])
}

// NewWith instantiates a two-level B+Tree whose outer fan-out is
// outerOrder, using a custom key comparator. outerOrder must be at least 3.
func NewWith[K comparable, V any](outerOrder int, comparator cmp.Comparator[K]) *Tree[K, V] {
	if outerOrder < 3 {
		panic("bptree2: outer order must be at least 3")
	}

	root := &node[K, V]{leaf: true, chunk: bptree.NewWith[K, V](innerOrder, comparator)}

	return &Tree[K, V]{root: root, outerOrder: outerOrder, maxChunkSize: innerOrder * 2, comparator: comparator}
}

// Len returns the number of key-value pairs in the tree.
func (t *Tree[K, V]) Len() int { return t.size }

func (t *Tree[K, V]) minChildren() int { return (t.outerOrder + 1) / 2 }

func (t *Tree[K, V]) findChildIndex(n *node[K, V], key K) int {
	lo, hi := 0, len(n.keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.comparator(key, n.keys[mid]) < 0 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo
}

func (t *Tree[K, V]) findLeaf(key K) *node[K, V] {
	n := t.root
	for !n.leaf {
		n = n.children[t.findChildIndex(n, key)]
	}

	return n
}

// Get returns the value stored under key.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	return t.findLeaf(key).chunk.Get(key)
}

// GetMut returns a pointer to the value stored under key.
func (t *Tree[K, V]) GetMut(key K) (*V, bool) {
	return t.findLeaf(key).chunk.GetMut(key)
}

// Put inserts or updates key/val, returning the previous value if any.
func (t *Tree[K, V]) Put(key K, val V) (old V, replaced bool) {
	leaf := t.findLeaf(key)

	old, replaced = leaf.chunk.Put(key, val)
	if !replaced {
		t.size++
	}

	if leaf.chunk.Len() > t.maxChunkSize {
		t.splitChunk(leaf)
	}

	return old, replaced
}

// splitChunk splits an overflowing chunk into two, each rebuilt fresh from
// half of the sorted entries, and promotes the right half's first key as a
// new separator in the outer tree.
func (t *Tree[K, V]) splitChunk(n *node[K, V]) {
	var keys []K

	var vals []V

	for k, v := range n.chunk.Iter() {
		keys = append(keys, k)
		vals = append(vals, v)
	}

	mid := len(keys) / 2

	left := bptree.NewWith[K, V](innerOrder, t.comparator)
	for i := 0; i < mid; i++ {
		left.Put(keys[i], vals[i])
	}

	right := bptree.NewWith[K, V](innerOrder, t.comparator)
	for i := mid; i < len(keys); i++ {
		right.Put(keys[i], vals[i])
	}

	n.chunk = left

	rightNode := &node[K, V]{leaf: true, chunk: right, next: n.next, parent: n.parent}
	n.next = rightNode

	t.insertIntoParent(n, keys[mid], rightNode)
}

func (t *Tree[K, V]) splitInternal(n *node[K, V]) {
	mid := len(n.keys) / 2
	upKey := n.keys[mid]

	right := &node[K, V]{
		keys:     append([]K(nil), n.keys[mid+1:]...),
		children: append([]*node[K, V](nil), n.children[mid+1:]...),
		parent:   n.parent,
	}

	for _, c := range right.children {
		c.parent = right
	}

	n.keys = n.keys[:mid]
	n.children = n.children[:mid+1]

	t.insertIntoParent(n, upKey, right)
}

func (t *Tree[K, V]) insertIntoParent(left *node[K, V], key K, right *node[K, V]) {
	parent := left.parent
	if parent == nil {
		newRoot := &node[K, V]{keys: []K{key}, children: []*node[K, V]{left, right}}
		left.parent = newRoot
		right.parent = newRoot
		t.root = newRoot

		return
	}

	i := t.findChildIndex(parent, key)
	parent.keys = insertAt(parent.keys, i, key)
	parent.children = insertAt(parent.children, i+1, right)
	right.parent = parent

	if len(parent.keys) > t.outerOrder-1 {
		t.splitInternal(parent)
	}
}

func insertAt[T any](s []T, i int, v T) []T {
	var zero T

	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v

	return s
}

func removeAt[T any](s []T, i int) []T {
	copy(s[i:], s[i+1:])

	var zero T

	s[len(s)-1] = zero

	return s[:len(s)-1]
}

// Remove deletes key, returning its value if present. A chunk left empty by
// the removal is merged into an adjacent sibling chunk.
func (t *Tree[K, V]) Remove(key K) (val V, removed bool) {
	leaf := t.findLeaf(key)

	val, removed = leaf.chunk.Remove(key)
	if !removed {
		return val, false
	}

	t.size--

	if leaf != t.root && leaf.chunk.Len() == 0 {
		t.mergeEmptyChunk(leaf)
	}

	if !t.root.leaf && len(t.root.children) == 1 {
		t.root = t.root.children[0]
		t.root.parent = nil
	}

	return val, true
}

// mergeEmptyChunk folds an emptied chunk's node out of the tree, preferring
// to drop its separator in favor of a surviving sibling on either side.
func (t *Tree[K, V]) mergeEmptyChunk(n *node[K, V]) {
	parent := n.parent

	idx := -1

	for i, c := range parent.children {
		if c == n {
			idx = i

			break
		}
	}

	if idx > 0 {
		parent.children[idx-1].next = n.next
	}

	parent.children = removeAt(parent.children, idx)

	if idx > 0 {
		parent.keys = removeAt(parent.keys, idx-1)
	} else if len(parent.keys) > 0 {
		parent.keys = removeAt(parent.keys, 0)
	}

	if parent == t.root || len(parent.children) >= t.minChildren() {
		return
	}

	t.rebalanceInternal(parent)
}

func siblingIndex[K comparable, V any](n *node[K, V]) int {
	p := n.parent
	for i, c := range p.children {
		if c == n {
			return i
		}
	}

	return -1
}

func (t *Tree[K, V]) rebalanceInternal(n *node[K, V]) {
	if len(n.children) == 0 {
		return
	}

	idx := siblingIndex(n)
	parent := n.parent

	if idx > 0 {
		left := parent.children[idx-1]
		if len(left.children) > t.minChildren() {
			lastChild := left.children[len(left.children)-1]
			n.keys = insertAt(n.keys, 0, parent.keys[idx-1])
			n.children = insertAt(n.children, 0, lastChild)
			lastChild.parent = n
			parent.keys[idx-1] = leftmostKey(left.children[len(left.children)-1])
			left.keys = left.keys[:len(left.keys)-1]
			left.children = left.children[:len(left.children)-1]

			return
		}
	}

	if idx < len(parent.children)-1 {
		right := parent.children[idx+1]
		if len(right.children) > t.minChildren() {
			firstChild := right.children[0]
			n.keys = append(n.keys, parent.keys[idx])
			n.children = append(n.children, firstChild)
			firstChild.parent = n
			parent.keys[idx] = leftmostKey(right.children[1])
			right.keys = removeAt(right.keys, 0)
			right.children = removeAt(right.children, 0)

			return
		}
	}

	if idx > 0 {
		left := parent.children[idx-1]
		left.keys = append(left.keys, parent.keys[idx-1])
		left.keys = append(left.keys, n.keys...)

		for _, c := range n.children {
			c.parent = left
		}

		left.children = append(left.children, n.children...)
		parent.children = removeAt(parent.children, idx)
		parent.keys = removeAt(parent.keys, idx-1)
	} else {
		right := parent.children[idx+1]
		n.keys = append(n.keys, parent.keys[idx])
		n.keys = append(n.keys, right.keys...)

		for _, c := range right.children {
			c.parent = n
		}

		n.children = append(n.children, right.children...)
		parent.children = removeAt(parent.children, idx+1)
		parent.keys = removeAt(parent.keys, idx)
	}

	if parent == t.root || len(parent.children) >= t.minChildren() {
		return
	}

	t.rebalanceInternal(parent)
}

func leftmostKey[K comparable, V any](n *node[K, V]) K {
	for !n.leaf {
		n = n.children[0]
	}

	for k := range n.chunk.Iter() {
		return k
	}

	var zero K

	return zero
}

func (t *Tree[K, V]) firstLeaf() *node[K, V] {
	n := t.root
	for !n.leaf {
		n = n.children[0]
	}

	return n
}

// Iter yields every entry in ascending key order, walking each chunk's own
// in-order iterator in turn.
func (t *Tree[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for n := t.firstLeaf(); n != nil; n = n.next {
			for k, v := range n.chunk.Iter() {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Range yields every entry whose key satisfies lo and hi, in ascending
// order.
func (t *Tree[K, V]) Range(lo, hi container.Bound[K]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var n *node[K, V]

		if lo.Kind == container.Unbounded {
			n = t.firstLeaf()
		} else {
			n = t.findLeaf(lo.Value)
		}

		for n != nil {
			for k, v := range n.chunk.Range(lo, hi) {
				if hi.Kind != container.Unbounded {
					c := t.comparator(k, hi.Value)
					if (hi.Kind == container.Inclusive && c > 0) || (hi.Kind == container.Exclusive && c >= 0) {
						return
					}
				}

				if !yield(k, v) {
					return
				}
			}

			n = n.next
			lo = container.Bound[K]{Kind: container.Unbounded}
		}
	}
}

// Validate panics if the outer routing invariants, a chunk's own
// invariants, or the chunk-chain ordering is violated.
func (t *Tree[K, V]) Validate() {
	t.validateNode(t.root, true)
	t.validateChunkChain()
}

func (t *Tree[K, V]) validateNode(n *node[K, V], isRoot bool) {
	if n.leaf {
		n.chunk.Validate()

		return
	}

	if !isRoot && len(n.children) < t.minChildren() {
		panic(fmt.Sprintf("bptree2: internal underflow, %d children < min %d", len(n.children), t.minChildren()))
	}

	if isRoot && len(n.children) < 2 {
		panic("bptree2: non-leaf root must have at least 2 children")
	}

	if len(n.children) != len(n.keys)+1 {
		panic("bptree2: children count must equal keys count + 1")
	}

	for _, c := range n.children {
		if c.parent != n {
			panic("bptree2: broken parent link")
		}

		t.validateNode(c, false)
	}
}

func (t *Tree[K, V]) validateChunkChain() {
	var prev *K

	for n := t.firstLeaf(); n != nil; n = n.next {
		for k := range n.chunk.Iter() {
			if prev != nil && t.comparator(k, *prev) <= 0 {
				panic("bptree2: chunk chain not strictly ascending")
			}

			kk := k
			prev = &kk
		}
	}
}
