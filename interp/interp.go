// Package interp runs a scripted stream of map operations against any
// container.OrderedMap[int, int] (or container.RangeMap[int, int], for
// range queries), cross-checking every result against a plain Go map kept
// as a reference. Scripts are plain data — either hand-written TOML or
// produced by GenerateScript — which keeps a single op stream replayable
// across every tree and heap-adjacent map type this module provides.
//
// Operation vocabulary: Q (query), A (add/put), D (delete), V (validate),
// R (range).
package interp

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/mhcoll/coll/container"
)

// Op is a single scripted operation. Lo/Hi are only meaningful for R and
// are pointers so an absent bound can be told apart from an explicit zero.
type Op struct {
	Kind  string `toml:"kind"`
	Key   int    `toml:"key"`
	Value int    `toml:"value,omitempty"`
	Lo    *int   `toml:"lo,omitempty"`
	Hi    *int   `toml:"hi,omitempty"`
}

// Script is a TOML document of the form:
//
//	[[ops]]
//	kind = "A"
//	key = 1
//	value = 10
type Script struct {
	Ops []Op `toml:"ops"`
}

// Parse decodes a TOML-encoded operation script.
func Parse(data []byte) (*Script, error) {
	var s Script

	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("interp: parse script: %w", err)
	}

	return &s, nil
}

// Encode serializes a script back to TOML, mainly useful for persisting a
// GenerateScript run that reproduced a failure.
func Encode(s *Script) ([]byte, error) {
	return toml.Marshal(s)
}

// Interp replays a script against subject, maintaining a Go map as the
// ground truth to check every result against.
type Interp struct {
	subject   container.OrderedMap[int, int]
	ranged    container.RangeMap[int, int] // nil if subject does not support Range
	reference map[int]int
}

// New wraps subject for scripted replay. If subject also implements
// container.RangeMap[int, int], R operations are honored; otherwise an R
// operation fails with an error rather than silently skipping.
func New(subject container.OrderedMap[int, int]) *Interp {
	ranged, _ := subject.(container.RangeMap[int, int])

	return &Interp{subject: subject, ranged: ranged, reference: make(map[int]int)}
}

// Run replays every operation in order, stopping at the first mismatch.
func (ip *Interp) Run(ops []Op) error {
	for i, op := range ops {
		if err := ip.step(op); err != nil {
			return fmt.Errorf("interp: op %d (%s key=%d): %w", i, op.Kind, op.Key, err)
		}
	}

	return nil
}

func (ip *Interp) step(op Op) error {
	switch op.Kind {
	case "Q":
		return ip.query(op)
	case "A":
		return ip.add(op)
	case "D":
		return ip.delete(op)
	case "V":
		return ip.validate()
	case "R":
		return ip.rangeQuery(op)
	default:
		return fmt.Errorf("unknown op kind %q", op.Kind)
	}
}

func (ip *Interp) query(op Op) error {
	val, found := ip.subject.Get(op.Key)
	refVal, refFound := ip.reference[op.Key]

	if found != refFound {
		return fmt.Errorf("Get found=%v, want %v", found, refFound)
	}

	if found && val != refVal {
		return fmt.Errorf("Get = %v, want %v", val, refVal)
	}

	return nil
}

func (ip *Interp) add(op Op) error {
	refOld, hadBefore := ip.reference[op.Key]

	old, replaced := ip.subject.Put(op.Key, op.Value)
	if replaced != hadBefore {
		return fmt.Errorf("Put replaced=%v, want %v", replaced, hadBefore)
	}

	if replaced && old != refOld {
		return fmt.Errorf("Put returned old=%v, want %v", old, refOld)
	}

	ip.reference[op.Key] = op.Value

	return nil
}

func (ip *Interp) delete(op Op) error {
	refOld, hadBefore := ip.reference[op.Key]

	val, removed := ip.subject.Remove(op.Key)
	if removed != hadBefore {
		return fmt.Errorf("Remove removed=%v, want %v", removed, hadBefore)
	}

	if removed && val != refOld {
		return fmt.Errorf("Remove returned val=%v, want %v", val, refOld)
	}

	delete(ip.reference, op.Key)

	return nil
}

func (ip *Interp) validate() error {
	ip.subject.Validate()

	if ip.subject.Len() != len(ip.reference) {
		return fmt.Errorf("Len = %d, want %d", ip.subject.Len(), len(ip.reference))
	}

	return nil
}

func (ip *Interp) rangeQuery(op Op) error {
	if ip.ranged == nil {
		return fmt.Errorf("subject does not implement container.RangeMap")
	}

	lo := container.Bound[int]{Kind: container.Unbounded}
	if op.Lo != nil {
		lo = container.Lo(*op.Lo)
	}

	hi := container.Bound[int]{Kind: container.Unbounded}
	if op.Hi != nil {
		hi = container.Hi(*op.Hi)
	}

	var got []int

	for k := range ip.ranged.Range(lo, hi) {
		got = append(got, k)
	}

	want := ip.referenceKeysInRange(op.Lo, op.Hi)

	if !slices.Equal(got, want) {
		return fmt.Errorf("Range = %v, want %v", got, want)
	}

	return nil
}

func (ip *Interp) referenceKeysInRange(lo, hi *int) []int {
	var keys []int

	for k := range ip.reference {
		if lo != nil && k < *lo {
			continue
		}

		if hi != nil && k > *hi {
			continue
		}

		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// GenerateScript produces a randomized, reproducible operation script of
// length n over keys in [0, keyMax): an increment-biased first half that
// grows the key set (mixing in duplicate inserts and queries for keys that
// were never inserted), followed by a decrement-biased second half that
// shrinks it back down, with the occasional range query and validate pass
// mixed into both halves.
func GenerateScript(seed uint64, n int, keyMax int) []Op {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	ops := make([]Op, 0, n)

	var live []int

	present := make(map[int]bool)

	pickLive := func() (int, bool) {
		if len(live) == 0 {
			return 0, false
		}

		return live[rnd.IntN(len(live))], true
	}

	removeLive := func(key int) {
		for i, k := range live {
			if k == key {
				live = append(live[:i], live[i+1:]...)

				break
			}
		}

		delete(present, key)
	}

	half := n / 2

	for i := 0; i < n; i++ {
		incrementPhase := i < half

		roll := rnd.IntN(20)

		switch {
		case incrementPhase && roll < 12, !incrementPhase && roll < 4:
			key := rnd.IntN(keyMax)
			if len(live) > 0 && rnd.IntN(5) == 0 {
				key, _ = pickLive() // duplicate insert
			}

			if !present[key] {
				present[key] = true

				live = append(live, key)
			}

			ops = append(ops, Op{Kind: "A", Key: key, Value: rnd.IntN(1 << 20)})
		case incrementPhase && roll < 16, !incrementPhase && roll < 14:
			key := rnd.IntN(keyMax) // may or may not be present

			if len(live) > 0 && rnd.IntN(3) != 0 {
				key, _ = pickLive()
			}

			ops = append(ops, Op{Kind: "Q", Key: key})
		case !incrementPhase && roll < 18:
			if key, ok := pickLive(); ok {
				removeLive(key)
				ops = append(ops, Op{Kind: "D", Key: key})
			} else {
				ops = append(ops, Op{Kind: "D", Key: rnd.IntN(keyMax)})
			}
		case roll == 18:
			lo := rnd.IntN(keyMax)
			hi := lo + rnd.IntN(keyMax/4+1)
			ops = append(ops, Op{Kind: "R", Lo: &lo, Hi: &hi})
		default:
			ops = append(ops, Op{Kind: "V"})
		}
	}

	return ops
}
