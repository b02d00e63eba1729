// Package llrbtree implements a left-leaning red-black tree for ordered
// key-value storage.
//
// An LLRB tree is a red-black tree with the additional invariant that every
// red link leans left, which collapses the red-black case analysis into a
// handful of simple, symmetric fixup steps applied on the way back up from
// an insert or delete. Not thread-safe.
//
// Reference: Sedgewick, "Left-leaning Red-Black Trees".
package llrbtree

import (
	"fmt"
	"iter"

	"github.com/mhcoll/coll/cmp"
	"github.com/mhcoll/coll/container"
)

// color represents the color of the link above a node.
type color bool

const (
	red   color = true
	black color = false
)

// Node is a single element of the tree.
type Node[K comparable, V any] struct {
	key    K
	value  V
	color  color
	parent *Node[K, V]
	left   *Node[K, V]
	right  *Node[K, V]
}

// Key returns the node's key.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns the node's value.
func (n *Node[K, V]) Value() V { return n.value }

var _ container.OrderedMap[int, int] = (*Tree[int, int])(nil)

// Tree manages a left-leaning red-black tree storing key-value pairs.
type Tree[K comparable, V any] struct {
	root       *Node[K, V]
	len        int
	comparator cmp.Comparator[K]
}

// New creates an empty tree using the default comparator for ordered types.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{comparator: cmp.GenericComparator[K]}
}

// NewWith creates an empty tree using a custom comparator.
func NewWith[K comparable, V any](comparator cmp.Comparator[K]) *Tree[K, V] {
	return &Tree[K, V]{comparator: comparator}
}

// Len returns the number of live entries.
func (t *Tree[K, V]) Len() int { return t.len }

// isRed reports whether the link above n is red. A nil node is black.
func isRed[K comparable, V any](n *Node[K, V]) bool {
	return n != nil && n.color == red
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

// Put inserts or updates key/val, returning the previous value if any.
func (t *Tree[K, V]) Put(key K, val V) (old V, replaced bool) {
	var foundOld V

	var found bool

	t.root = t.insert(t.root, nil, key, val, &foundOld, &found)
	t.root.color = black

	if !found {
		t.len++
	}

	return foundOld, found
}

func (t *Tree[K, V]) insert(n, parent *Node[K, V], key K, val V, old *V, found *bool) *Node[K, V] {
	if n == nil {
		return &Node[K, V]{key: key, value: val, color: red, parent: parent}
	}

	switch c := t.comparator(key, n.key); {
	case c < 0:
		n.left = t.insert(n.left, n, key, val, old, found)
	case c > 0:
		n.right = t.insert(n.right, n, key, val, old, found)
	default:
		*old = n.value
		*found = true
		n.value = val
	}

	return t.fixUp(n)
}

// fixUp restores the lean-left, no-double-red, balanced-4-node invariants at n.
func (t *Tree[K, V]) fixUp(n *Node[K, V]) *Node[K, V] {
	if isRed(n.right) && !isRed(n.left) {
		n = t.rotateLeft(n)
	}

	if isRed(n.left) && isRed(n.left.left) {
		n = t.rotateRight(n)
	}

	if isRed(n.left) && isRed(n.right) {
		t.flipColors(n)
	}

	return n
}

func (t *Tree[K, V]) rotateLeft(n *Node[K, V]) *Node[K, V] {
	r := n.right
	n.right = r.left

	if n.right != nil {
		n.right.parent = n
	}

	r.left = n
	r.color = n.color
	n.color = red
	r.parent = n.parent
	n.parent = r

	return r
}

func (t *Tree[K, V]) rotateRight(n *Node[K, V]) *Node[K, V] {
	l := n.left
	n.left = l.right

	if n.left != nil {
		n.left.parent = n
	}

	l.right = n
	l.color = n.color
	n.color = red
	l.parent = n.parent
	n.parent = l

	return l
}

func (t *Tree[K, V]) flipColors(n *Node[K, V]) {
	n.color = !n.color
	n.left.color = !n.left.color
	n.right.color = !n.right.color
}

func moveRedLeft[K comparable, V any](t *Tree[K, V], n *Node[K, V]) *Node[K, V] {
	t.flipColors(n)

	if isRed(n.right.left) {
		n.right = t.rotateRight(n.right)
		n = t.rotateLeft(n)
		t.flipColors(n)
	}

	return n
}

func moveRedRight[K comparable, V any](t *Tree[K, V], n *Node[K, V]) *Node[K, V] {
	t.flipColors(n)

	if isRed(n.left.left) {
		n = t.rotateRight(n)
		t.flipColors(n)
	}

	return n
}

func (t *Tree[K, V]) min(n *Node[K, V]) *Node[K, V] {
	for n.left != nil {
		n = n.left
	}

	return n
}

// Remove deletes key, returning its value if present.
func (t *Tree[K, V]) Remove(key K) (val V, removed bool) {
	if t.lookup(key) == nil {
		var zero V

		return zero, false
	}

	if t.root != nil && !isRed(t.root.left) && !isRed(t.root.right) {
		t.root.color = red
	}

	var removedVal V

	t.root = t.remove(t.root, key, &removedVal)
	if t.root != nil {
		t.root.color = black
		t.root.parent = nil
	}

	t.len--

	return removedVal, true
}

func (t *Tree[K, V]) remove(n *Node[K, V], key K, out *V) *Node[K, V] {
	if t.comparator(key, n.key) < 0 {
		if !isRed(n.left) && !isRed(n.left.left) {
			n = moveRedLeft(t, n)
		}

		n.left = t.remove(n.left, key, out)
		if n.left != nil {
			n.left.parent = n
		}
	} else {
		if isRed(n.left) {
			n = t.rotateRight(n)
		}

		if t.comparator(key, n.key) == 0 && n.right == nil {
			*out = n.value

			return nil
		}

		if !isRed(n.right) && !isRed(n.right.left) {
			n = moveRedRight(t, n)
		}

		if t.comparator(key, n.key) == 0 {
			*out = n.value
			succ := t.min(n.right)
			n.key, n.value = succ.key, succ.value
			n.right = t.removeMin(n.right)
		} else {
			n.right = t.remove(n.right, key, out)
		}

		if n.right != nil {
			n.right.parent = n
		}
	}

	return t.fixUp(n)
}

func (t *Tree[K, V]) removeMin(n *Node[K, V]) *Node[K, V] {
	if n.left == nil {
		return nil
	}

	if !isRed(n.left) && !isRed(n.left.left) {
		n = moveRedLeft(t, n)
	}

	n.left = t.removeMin(n.left)
	if n.left != nil {
		n.left.parent = n
	}

	return t.fixUp(n)
}

// Iter yields every entry in ascending key order.
func (t *Tree[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var walk func(*Node[K, V]) bool

		walk = func(n *Node[K, V]) bool {
			if n == nil {
				return true
			}

			if !walk(n.left) {
				return false
			}

			if !yield(n.key, n.value) {
				return false
			}

			return walk(n.right)
		}

		walk(t.root)
	}
}

// Validate panics if BST ordering, the lean-left invariant, or equal
// black-height is violated anywhere in the tree.
func (t *Tree[K, V]) Validate() {
	if t.root != nil && t.root.color != black {
		panic("llrbtree: root link must be black")
	}

	t.validateNode(t.root, nil, nil)
}

func (t *Tree[K, V]) validateNode(n, lo, hi *Node[K, V]) int {
	if n == nil {
		return 0
	}

	if lo != nil && t.comparator(n.key, lo.key) <= 0 {
		panic(fmt.Sprintf("llrbtree: BST order violated at key %v", n.key))
	}

	if hi != nil && t.comparator(n.key, hi.key) >= 0 {
		panic(fmt.Sprintf("llrbtree: BST order violated at key %v", n.key))
	}

	if isRed(n.right) && !isRed(n.left) {
		panic(fmt.Sprintf("llrbtree: red link leans right at key %v", n.key))
	}

	if isRed(n.left) && isRed(n.left.left) {
		panic(fmt.Sprintf("llrbtree: two consecutive red links at key %v", n.key))
	}

	lbh := t.validateNode(n.left, lo, n)
	rbh := t.validateNode(n.right, n, hi)

	if lbh != rbh {
		panic(fmt.Sprintf("llrbtree: unequal black-height at key %v", n.key))
	}

	if !isRed(n) {
		return lbh + 1
	}

	return lbh
}
