// Package scapegoat implements scapegoat trees for ordered key-value
// storage, in both an eager and a lazily-deleting variant.
//
// A scapegoat tree carries no per-node balance metadata: instead, each
// insert checks whether the depth it reached exceeds a logarithmic bound
// for the tree's size, and if so walks back up to the first ancestor whose
// subtree is not α-weight-balanced (the "scapegoat") and rebuilds that
// entire subtree as a perfectly balanced BST via an in-order flatten and
// recursive midpoint reconstruction. Not thread-safe.
//
// Reference: Galperin & Rivest, "Scapegoat Trees".
package scapegoat

import (
	"fmt"
	"iter"
	"math"

	"github.com/mhcoll/coll/cmp"
	"github.com/mhcoll/coll/container"
)

// Node is a single element of the tree. size is the live-entry count of the
// subtree rooted at this node; it is kept exact in Tree and used loosely
// (as an upper bound including tombstones) in LazyTree.
type Node[K comparable, V any] struct {
	key       K
	value     V
	size      int
	tombstone bool
	parent    *Node[K, V]
	left      *Node[K, V]
	right     *Node[K, V]
}

// Key returns the node's key.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns the node's value.
func (n *Node[K, V]) Value() V { return n.value }

var _ container.OrderedMap[int, int] = (*Tree[int, int])(nil)
var _ container.OrderedMap[int, int] = (*LazyTree[int, int])(nil)

// defaultAlpha is used by New/NewWith when the caller does not need a
// different balance factor.
const defaultAlpha = 2.0 / 3.0

// Tree is the eager variant: Remove performs a standard BST delete and
// triggers a full rebuild only when the live count drops too far below the
// tracked maximum size.
type Tree[K comparable, V any] struct {
	root       *Node[K, V]
	len        int
	maxLen     int
	alpha      float64
	comparator cmp.Comparator[K]
}

// New creates an empty scapegoat tree with α = 2/3 and the default
// comparator for ordered types.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return NewWith[K, V](defaultAlpha, cmp.GenericComparator[K])
}

// NewWith creates an empty scapegoat tree with the given α ∈ (0.5, 1) and
// comparator. Panics if α is out of range.
func NewWith[K comparable, V any](alpha float64, comparator cmp.Comparator[K]) *Tree[K, V] {
	if alpha <= 0.5 || alpha >= 1 {
		panic("scapegoat: alpha must be in (0.5, 1)")
	}

	return &Tree[K, V]{alpha: alpha, comparator: comparator}
}

// Len returns the number of live entries.
func (t *Tree[K, V]) Len() int { return t.len }

func size[K comparable, V any](n *Node[K, V]) int {
	if n == nil {
		return 0
	}

	return n.size
}

func (t *Tree[K, V]) lookup(key K) *Node[K, V] {
	n := t.root
	for n != nil {
		switch c := t.comparator(key, n.key); {
		case c == 0:
			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}

	return nil
}

// Get returns the value stored under key.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	n := t.lookup(key)
	if n == nil {
		var zero V

		return zero, false
	}

	return n.value, true
}

// GetMut returns a pointer to the value stored under key.
func (t *Tree[K, V]) GetMut(key K) (*V, bool) {
	n := t.lookup(key)
	if n == nil {
		return nil, false
	}

	return &n.value, true
}

// depthBound returns ⌈log_{1/α}(size)⌉, the maximum depth a balanced tree of
// this size should ever require.
func depthBound(size int, alpha float64) int {
	if size <= 1 {
		return 0
	}

	return int(math.Ceil(math.Log(float64(size)) / math.Log(1/alpha)))
}

// Put inserts or updates key/val, rebuilding the first unbalanced ancestor
// ("scapegoat") if the insert depth exceeds the α-balance bound.
func (t *Tree[K, V]) Put(key K, val V) (old V, replaced bool) {
	if t.root == nil {
		t.root = &Node[K, V]{key: key, value: val, size: 1}
		t.len++
		t.maxLen++

		var zero V

		return zero, false
	}

	var path []*Node[K, V]

	n, parent := t.root, (*Node[K, V])(nil)

	var c int

	for n != nil {
		parent = n
		path = append(path, n)
		c = t.comparator(key, n.key)

		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			old = n.value
			n.value = val

			return old, true
		}
	}

	newNode := &Node[K, V]{key: key, value: val, size: 1, parent: parent}
	if c < 0 {
		parent.left = newNode
	} else {
		parent.right = newNode
	}

	path = append(path, newNode)

	for _, anc := range path[:len(path)-1] {
		anc.size++
	}

	t.len++
	t.maxLen++

	if len(path)-1 > depthBound(t.len, t.alpha) {
		t.rebuildFromScapegoat(path)
	}

	var zero V

	return zero, false
}

// rebuildFromScapegoat walks the insertion path from the leaf upward,
// finds the first node whose subtree is not α-weight-balanced, and rebuilds
// that subtree as a perfect BST.
func (t *Tree[K, V]) rebuildFromScapegoat(path []*Node[K, V]) {
	for i := len(path) - 1; i > 0; i-- {
		child, node := path[i], path[i-1]
		if float64(size(child)) > t.alpha*float64(size(node)) {
			t.rebuildSubtree(node)

			return
		}
	}
}

// rebuildSubtree flattens the subtree rooted at n into sorted order and
// reconstructs a perfectly balanced BST in its place.
func (t *Tree[K, V]) rebuildSubtree(n *Node[K, V]) {
	flat := flatten(n)
	parent := n.parent

	newRoot := build(flat, parent)

	if parent == nil {
		t.root = newRoot
	} else if parent.left == n {
		parent.left = newRoot
	} else {
		parent.right = newRoot
	}
}

func flatten[K comparable, V any](n *Node[K, V]) []*Node[K, V] {
	if n == nil {
		return nil
	}

	out := flatten(n.left)
	out = append(out, n)
	out = append(out, flatten(n.right)...)

	return out
}

func build[K comparable, V any](nodes []*Node[K, V], parent *Node[K, V]) *Node[K, V] {
	if len(nodes) == 0 {
		return nil
	}

	mid := len(nodes) / 2
	root := nodes[mid]
	root.parent = parent
	root.left = build(nodes[:mid], root)
	root.right = build(nodes[mid+1:], root)
	root.size = len(nodes)

	return root
}

// Remove deletes key via standard BST delete, rebuilding the whole tree
// when the live count drops below α·maxLen, where maxLen is the tracked
// maximum.
func (t *Tree[K, V]) Remove(key K) (val V, removed bool) {
	n := t.lookup(key)
	if n == nil {
		var zero V

		return zero, false
	}

	val = n.value

	t.deleteNode(n)
	t.len--

	if float64(t.len) < t.alpha*float64(t.maxLen) {
		flat := flatten(t.root)
		t.root = build(flat, nil)
		t.maxLen = t.len
	}

	return val, true
}

func (t *Tree[K, V]) deleteNode(n *Node[K, V]) {
	if n.left != nil && n.right != nil {
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}

		n.key, n.value = succ.key, succ.value
		n = succ
	}

	child := n.left
	if child == nil {
		child = n.right
	}

	t.replace(n, child)

	for p := n.parent; p != nil; p = p.parent {
		p.size--
	}
}

func (t *Tree[K, V]) replace(old, newN *Node[K, V]) {
	if old.parent == nil {
		t.root = newN
	} else if old.parent.left == old {
		old.parent.left = newN
	} else {
		old.parent.right = newN
	}

	if newN != nil {
		newN.parent = old.parent
	}
}

// Iter yields every entry in ascending key order.
func (t *Tree[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, n := range flatten(t.root) {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Validate panics if BST ordering or the recorded subtree sizes are
// violated. It does not check α-weight-balance at each node.
func (t *Tree[K, V]) Validate() {
	t.validateNode(t.root, nil, nil)
}

func (t *Tree[K, V]) validateNode(n, lo, hi *Node[K, V]) int {
	if n == nil {
		return 0
	}

	if lo != nil && t.comparator(n.key, lo.key) <= 0 {
		panic(fmt.Sprintf("scapegoat: BST order violated at key %v", n.key))
	}

	if hi != nil && t.comparator(n.key, hi.key) >= 0 {
		panic(fmt.Sprintf("scapegoat: BST order violated at key %v", n.key))
	}

	ls := t.validateNode(n.left, lo, n)
	rs := t.validateNode(n.right, n, hi)
	total := 1 + ls + rs

	if n.size != total {
		panic(fmt.Sprintf("scapegoat: size mismatch at key %v: recorded %d, actual %d", n.key, n.size, total))
	}

	return total
}

// LazyTree defers physical deletion: Remove only sets a tombstone, and a
// full rebuild (rewriting only the live nodes) triggers when the physical
// node count grows too far past the logical entry count.
type LazyTree[K comparable, V any] struct {
	root       *Node[K, V]
	cnt        int // live entries
	maxCnt     int // physical nodes, including tombstones
	alpha      float64
	comparator cmp.Comparator[K]
}

// NewLazy creates an empty lazy scapegoat tree with α = 2/3 and the default
// comparator for ordered types.
func NewLazy[K cmp.Ordered, V any]() *LazyTree[K, V] {
	return NewLazyWith[K, V](defaultAlpha, cmp.GenericComparator[K])
}

// NewLazyWith creates an empty lazy scapegoat tree with the given α ∈
// (0.5, 1) and comparator. Panics if α is out of range.
func NewLazyWith[K comparable, V any](alpha float64, comparator cmp.Comparator[K]) *LazyTree[K, V] {
	if alpha <= 0.5 || alpha >= 1 {
		panic("scapegoat: alpha must be in (0.5, 1)")
	}

	return &LazyTree[K, V]{alpha: alpha, comparator: comparator}
}

// Len returns the number of live (non-tombstoned) entries.
func (t *LazyTree[K, V]) Len() int { return t.cnt }

func (t *LazyTree[K, V]) lookup(key K) *Node[K, V] {
	n := t.root
	for n != nil {
		switch c := t.comparator(key, n.key); {
		case c == 0:
			if n.tombstone {
				return nil
			}

			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}

	return nil
}

// lookupAny finds a node by key regardless of tombstone state, used to
// support insert-resurrects-tombstone semantics.
func (t *LazyTree[K, V]) lookupAny(key K) *Node[K, V] {
	n := t.root
	for n != nil {
		switch c := t.comparator(key, n.key); {
		case c == 0:
			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}

	return nil
}

// Get returns the value stored under key. Tombstoned entries count as absent.
func (t *LazyTree[K, V]) Get(key K) (V, bool) {
	n := t.lookup(key)
	if n == nil {
		var zero V

		return zero, false
	}

	return n.value, true
}

// GetMut returns a pointer to the value stored under key.
func (t *LazyTree[K, V]) GetMut(key K) (*V, bool) {
	n := t.lookup(key)
	if n == nil {
		return nil, false
	}

	return &n.value, true
}

// Put inserts or updates key/val. Inserting over a tombstoned key
// resurrects the existing node instead of allocating a new one.
func (t *LazyTree[K, V]) Put(key K, val V) (old V, replaced bool) {
	if existing := t.lookupAny(key); existing != nil {
		wasLive := !existing.tombstone
		old = existing.value
		existing.value = val

		if existing.tombstone {
			existing.tombstone = false
			t.cnt++
		}

		return old, wasLive
	}

	if t.root == nil {
		t.root = &Node[K, V]{key: key, value: val, size: 1}
		t.cnt++
		t.maxCnt++

		var zero V

		return zero, false
	}

	var path []*Node[K, V]

	n, parent := t.root, (*Node[K, V])(nil)

	var c int

	for n != nil {
		parent = n
		path = append(path, n)
		c = t.comparator(key, n.key)

		if c < 0 {
			n = n.left
		} else {
			n = n.right
		}
	}

	newNode := &Node[K, V]{key: key, value: val, size: 1, parent: parent}
	if c < 0 {
		parent.left = newNode
	} else {
		parent.right = newNode
	}

	path = append(path, newNode)

	for _, anc := range path[:len(path)-1] {
		anc.size++
	}

	t.cnt++
	t.maxCnt++

	if len(path)-1 > depthBound(t.maxCnt, t.alpha) {
		t.rebuildFromScapegoat(path)
	}

	var zero V

	return zero, false
}

func (t *LazyTree[K, V]) rebuildFromScapegoat(path []*Node[K, V]) {
	for i := len(path) - 1; i > 0; i-- {
		child, node := path[i], path[i-1]
		if float64(size(child)) > t.alpha*float64(size(node)) {
			t.rebuildSubtreeLive(node)

			return
		}
	}
}

// rebuildSubtreeLive flattens only the live nodes of the subtree rooted at
// n (dropping tombstones physically) and rebuilds a perfect BST from them.
func (t *LazyTree[K, V]) rebuildSubtreeLive(n *Node[K, V]) {
	all := flatten(n)

	live := make([]*Node[K, V], 0, len(all))

	for _, node := range all {
		if !node.tombstone {
			live = append(live, node)
		}
	}

	parent := n.parent

	newRoot := build(live, parent)

	if parent == nil {
		t.root = newRoot
	} else if parent.left == n {
		parent.left = newRoot
	} else {
		parent.right = newRoot
	}

	t.maxCnt -= len(all) - len(live)
}

// Remove tombstones key's node if it is live. A full rebuild (rewriting
// only live nodes) triggers once the physical count exceeds the logical
// count by more than the α margin.
func (t *LazyTree[K, V]) Remove(key K) (val V, removed bool) {
	n := t.lookup(key)
	if n == nil {
		var zero V

		return zero, false
	}

	val = n.value
	n.tombstone = true
	t.cnt--

	if float64(t.cnt) < t.alpha*float64(t.maxCnt) {
		t.rebuildAllLive()
	}

	return val, true
}

func (t *LazyTree[K, V]) rebuildAllLive() {
	all := flatten(t.root)

	live := make([]*Node[K, V], 0, len(all))

	for _, node := range all {
		if !node.tombstone {
			live = append(live, node)
		}
	}

	t.root = build(live, nil)
	t.maxCnt = len(live)
}

// Iter yields every live entry in ascending key order.
func (t *LazyTree[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, n := range flatten(t.root) {
			if n.tombstone {
				continue
			}

			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Validate panics if BST ordering (over all physical nodes, tombstoned or
// not) is violated.
func (t *LazyTree[K, V]) Validate() {
	t.validateNode(t.root, nil, nil)

	live := 0

	for _, n := range flatten(t.root) {
		if !n.tombstone {
			live++
		}
	}

	if live != t.cnt {
		panic(fmt.Sprintf("scapegoat: lazy tree live count mismatch: recorded %d, actual %d", t.cnt, live))
	}
}

func (t *LazyTree[K, V]) validateNode(n, lo, hi *Node[K, V]) {
	if n == nil {
		return
	}

	if lo != nil && t.comparator(n.key, lo.key) <= 0 {
		panic(fmt.Sprintf("scapegoat: BST order violated at key %v", n.key))
	}

	if hi != nil && t.comparator(n.key, hi.key) >= 0 {
		panic(fmt.Sprintf("scapegoat: BST order violated at key %v", n.key))
	}

	t.validateNode(n.left, lo, n)
	t.validateNode(n.right, n, hi)
}
