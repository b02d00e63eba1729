// Package treap implements a treap for ordered key-value storage.
//
// A treap is a randomized BST: every node carries a random priority drawn
// at creation, and the tree maintains min-heap order on that priority in
// addition to BST order on the key, which makes the expected height
// logarithmic without any explicit rebalancing case analysis. Not
// thread-safe.
//
// Reference: Seidel & Aragon, "Randomized Search Trees".
package treap

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/mhcoll/coll/cmp"
	"github.com/mhcoll/coll/container"
)

// Node is a single element of the tree.
type Node[K comparable, V any] struct {
	key      K
	value    V
	priority uint64
	parent   *Node[K, V]
	left     *Node[K, V]
	right    *Node[K, V]
}

// Key returns the node's key.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns the node's value.
func (n *Node[K, V]) Value() V { return n.value }

// Priority returns the node's randomly drawn heap priority.
func (n *Node[K, V]) Priority() uint64 { return n.priority }

var _ container.OrderedMap[int, int] = (*Tree[int, int])(nil)

// Tree manages a treap storing key-value pairs.
//
// Randomness is caller-seedable: New/NewWith accept no global state, and
// SeedWith lets a caller plug in a deterministic source for reproducible
// tests, per this module's policy of never touching process-wide globals
// silently.
type Tree[K comparable, V any] struct {
	root       *Node[K, V]
	len        int
	comparator cmp.Comparator[K]
	rnd        *rand.Rand
}

// New creates an empty treap using the default comparator for ordered types
// and a process-seeded random source.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return NewWith[K, V](cmp.GenericComparator[K])
}

// NewWith creates an empty treap using a custom comparator and a
// process-seeded random source.
func NewWith[K comparable, V any](comparator cmp.Comparator[K]) *Tree[K, V] {
	return &Tree[K, V]{comparator: comparator, rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// SeedWith creates an empty treap whose priorities are drawn from the given
// caller-supplied random source, for reproducible tests.
func SeedWith[K comparable, V any](comparator cmp.Comparator[K], rnd *rand.Rand) *Tree[K, V] {
	return &Tree[K, V]{comparator: comparator, rnd: rnd}
}

// Len returns the number of live entries.
func (t *Tree[K, V]) Len() int { return t.len }

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

func (t *Tree[K, V]) rotateLeft(n *Node[K, V]) *Node[K, V] {
	r := n.right
	n.right = r.left

	if n.right != nil {
		n.right.parent = n
	}

	r.left = n
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
	l.parent = n.parent
	n.parent = l

	return l
}

// Put inserts key as a BST leaf, then rotates it upward while its priority
// is less than its parent's, restoring heap order.
func (t *Tree[K, V]) Put(key K, val V) (old V, replaced bool) {
	var foundOld V

	var found bool

	t.root = t.insert(t.root, nil, key, val, &foundOld, &found)

	if !found {
		t.len++
	}

	return foundOld, found
}

func (t *Tree[K, V]) insert(n, parent *Node[K, V], key K, val V, old *V, found *bool) *Node[K, V] {
	if n == nil {
		return &Node[K, V]{key: key, value: val, priority: t.rnd.Uint64(), parent: parent}
	}

	switch c := t.comparator(key, n.key); {
	case c < 0:
		n.left = t.insert(n.left, n, key, val, old, found)

		if n.left.priority < n.priority {
			n = t.rotateRight(n)
		}
	case c > 0:
		n.right = t.insert(n.right, n, key, val, old, found)

		if n.right.priority < n.priority {
			n = t.rotateLeft(n)
		}
	default:
		*old = n.value
		*found = true
		n.value = val
	}

	return n
}

// Remove deletes key by rotating it downward toward its higher-priority
// (numerically smaller) child until it becomes a leaf, then snipping it off.
func (t *Tree[K, V]) Remove(key K) (val V, removed bool) {
	var out V

	var ok bool

	t.root = t.remove(t.root, key, &out, &ok)

	if ok {
		t.len--
	}

	return out, ok
}

func (t *Tree[K, V]) remove(n *Node[K, V], key K, out *V, ok *bool) *Node[K, V] {
	if n == nil {
		return nil
	}

	switch c := t.comparator(key, n.key); {
	case c < 0:
		n.left = t.remove(n.left, key, out, ok)

		return n
	case c > 0:
		n.right = t.remove(n.right, key, out, ok)

		return n
	}

	*out = n.value
	*ok = true

	return t.removeNode(n)
}

// removeNode removes n, which has already been located, by sinking it until
// it is a leaf.
func (t *Tree[K, V]) removeNode(n *Node[K, V]) *Node[K, V] {
	if n.left != nil && n.right != nil {
		if n.left.priority < n.right.priority {
			n = t.rotateRight(n)
			n.right = t.removeNode(n.right)
		} else {
			n = t.rotateLeft(n)
			n.left = t.removeNode(n.left)
		}

		return n
	}

	if n.left != nil {
		n.left.parent = n.parent

		return n.left
	}

	if n.right != nil {
		n.right.parent = n.parent

		return n.right
	}

	return nil
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

// Validate panics if BST ordering or min-heap priority order is violated.
func (t *Tree[K, V]) Validate() {
	t.validateNode(t.root, nil, nil)
}

func (t *Tree[K, V]) validateNode(n, lo, hi *Node[K, V]) {
	if n == nil {
		return
	}

	if lo != nil && t.comparator(n.key, lo.key) <= 0 {
		panic(fmt.Sprintf("treap: BST order violated at key %v", n.key))
	}

	if hi != nil && t.comparator(n.key, hi.key) >= 0 {
		panic(fmt.Sprintf("treap: BST order violated at key %v", n.key))
	}

	if n.left != nil && n.left.priority < n.priority {
		panic(fmt.Sprintf("treap: heap order violated at key %v", n.key))
	}

	if n.right != nil && n.right.priority < n.priority {
		panic(fmt.Sprintf("treap: heap order violated at key %v", n.key))
	}

	t.validateNode(n.left, lo, n)
	t.validateNode(n.right, n, hi)
}
