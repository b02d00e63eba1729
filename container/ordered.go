package container

import "iter"

// OrderedMap is the shared capability set every key-ordered container in this
// module exposes: a single-valued map keyed by a totally ordered (or
// comparator-ordered) key, with in-order iteration and a validation hook.
//
// Every tree family in this module (avltree, rbtree, llrbtree, aatree,
// splaytree, treap, scapegoat, btree, bptree, bptree2) implements this
// interface. The test interpreter in package interp is generic over it.
type OrderedMap[K any, V any] interface {
	// Len returns the number of live entries. Lazily-deleted tombstones,
	// where applicable, are excluded.
	Len() int

	// Get returns the value stored for k, if any.
	Get(k K) (V, bool)

	// GetMut returns a pointer to the stored value for k, allowing in-place
	// mutation without a remove/insert round-trip.
	GetMut(k K) (*V, bool)

	// Put inserts k/v, or replaces the value of an existing k. It returns
	// the previous value and whether one existed.
	Put(k K, v V) (old V, replaced bool)

	// Remove deletes k, returning its value if it was present.
	Remove(k K) (V, bool)

	// Iter yields every live entry in ascending key order.
	Iter() iter.Seq2[K, V]

	// Validate panics if any structural invariant of the concrete
	// implementation is violated. Intended for tests only.
	Validate()
}

// BoundKind classifies one side of a Range query.
type BoundKind int

const (
	// Unbounded means the range is open on this side.
	Unbounded BoundKind = iota
	// Inclusive means the bound value itself is included in the range.
	Inclusive
	// Exclusive means the bound value itself is excluded from the range.
	Exclusive
)

// Bound describes one endpoint of a range scan. The zero value is Unbounded.
type Bound[K any] struct {
	Kind  BoundKind
	Value K
}

// Lo builds an inclusive lower bound.
func Lo[K any](v K) Bound[K] { return Bound[K]{Kind: Inclusive, Value: v} }

// Hi builds an inclusive upper bound.
func Hi[K any](v K) Bound[K] { return Bound[K]{Kind: Inclusive, Value: v} }

// LoExclusive builds an exclusive lower bound.
func LoExclusive[K any](v K) Bound[K] { return Bound[K]{Kind: Exclusive, Value: v} }

// HiExclusive builds an exclusive upper bound.
func HiExclusive[K any](v K) Bound[K] { return Bound[K]{Kind: Exclusive, Value: v} }

// RangeMap is implemented by the B+ tree family, which links its leaves and
// can therefore answer ordered range scans without visiting internal nodes.
type RangeMap[K any, V any] interface {
	OrderedMap[K, V]

	// Range yields every live entry whose key falls within [lo, hi]
	// (subject to each bound's Kind), in ascending key order.
	Range(lo, hi Bound[K]) iter.Seq2[K, V]
}
