package interp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhcoll/coll/avltree"
	"github.com/mhcoll/coll/bptree"
	"github.com/mhcoll/coll/llrbtree"
)

func TestInterpBasicOps(t *testing.T) {
	tree := avltree.New[int, int]()
	ip := New(tree)

	val := 42

	ops := []Op{
		{Kind: "A", Key: 1, Value: 10},
		{Kind: "A", Key: 2, Value: 20},
		{Kind: "A", Key: 1, Value: 11}, // overwrite
		{Kind: "Q", Key: 1},
		{Kind: "Q", Key: 3}, // missing
		{Kind: "V"},
		{Kind: "D", Key: 2},
		{Kind: "Q", Key: 2},
		{Kind: "V"},
		{Kind: "A", Key: val, Value: val},
	}

	require.NoError(t, ip.Run(ops))
}

func TestInterpDetectsMismatch(t *testing.T) {
	tree := avltree.New[int, int]()
	ip := New(tree)

	require.NoError(t, ip.Run([]Op{{Kind: "A", Key: 1, Value: 10}}))

	tree.Put(1, 999) // bypass the interpreter, desyncing the reference

	err := ip.Run([]Op{{Kind: "Q", Key: 1}})
	require.Error(t, err)
}

func TestInterpParseEncodeRoundTrip(t *testing.T) {
	lo, hi := 5, 15

	script := &Script{Ops: []Op{
		{Kind: "A", Key: 1, Value: 2},
		{Kind: "R", Lo: &lo, Hi: &hi},
		{Kind: "V"},
	}}

	data, err := Encode(script)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Ops, 3)
	require.Equal(t, "A", parsed.Ops[0].Kind)
	require.Equal(t, "R", parsed.Ops[1].Kind)
	require.NotNil(t, parsed.Ops[1].Lo)
	require.Equal(t, 5, *parsed.Ops[1].Lo)
}

func TestInterpRangeRequiresRangeMap(t *testing.T) {
	tree := llrbtree.New[int, int]()
	ip := New(tree)

	err := ip.Run([]Op{{Kind: "R", Key: 0}})
	require.Error(t, err)
}

func TestInterpGeneratedScriptAgainstBPTree(t *testing.T) {
	tree := bptree.New[int, int](8)
	ip := New(tree)

	ops := GenerateScript(12345, 2000, 500)

	require.NoError(t, ip.Run(ops))
}

func TestInterpGenerateScriptDeterministic(t *testing.T) {
	a := GenerateScript(7, 100, 50)
	b := GenerateScript(7, 100, 50)

	require.Equal(t, a, b)
}
