package sample

import (
	"errors"
	"math"
	"testing"

	"github.com/csm-adapt/karon"
	"github.com/csm-adapt/karon/attribute"
	"github.com/csm-adapt/karon/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	idKey     = "Sample Name"
	parentKey = "Parent Sample Name"
)

func mustSample(t *testing.T, fields map[string]any, opts ...Option) *Sample {
	s, err := New(fields, opts...)
	require.NoError(t, err)
	return s
}

// lineage:
//
//	A (x=1, site=Mines)
//	├── B (x=2, site=CMU)
//	│   └── D (x=4)
//	└── C (x="n/a", unreadable)
//	    └── E (x=10)
func lineage(t *testing.T) map[string]*Node {
	samples := []*Sample{
		mustSample(t, map[string]any{idKey: "A", "x": 1, "site": "Mines"}),
		mustSample(t, map[string]any{idKey: "B", parentKey: "A", "x": 2, "site": "CMU"}),
		mustSample(t, map[string]any{idKey: "C", parentKey: "A", "x": "n/a"}, Access(false, true)),
		mustSample(t, map[string]any{idKey: "D", parentKey: "B", "x": 4}),
		mustSample(t, map[string]any{idKey: "E", parentKey: "C", "x": 10}),
	}
	nodes := Nodes(samples)
	roots, err := Builder(idKey, parentKey, nil).Build(nodes)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	m := make(map[string]*Node)
	for _, n := range nodes {
		m[n.Payload.Fields[idKey].(string)] = n
	}
	return m
}

func TestNewSample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.sample")
	defer teardown()
	//
	record := map[string]any{idKey: "G181030a"}
	_, err := New(record, Requires(idKey, parentKey))
	if !errors.Is(err, karon.ErrRequirement) {
		t.Errorf("expected requirement error, got %v", err)
	}
	s, err := New(record, Requires(idKey, parentKey), Defaults(map[string]any{parentKey: ""}))
	require.NoError(t, err)
	assert.Equal(t, "", s.Fields[parentKey])
	assert.True(t, s.Readable() && s.Writeable())
	// expectations only warn
	s, err = New(record, Expects("Contact"), Access(true, false))
	require.NoError(t, err)
	assert.True(t, s.Readable())
	assert.False(t, s.Writeable())
	record["late"] = 1
	assert.NotContains(t, s.Fields, "late", "record is copied")
	assert.Equal(t, "{Sample Name: G181030a}", s.String())
}

func TestGetAndPut(t *testing.T) {
	n := tree.NewNode(mustSample(t, map[string]any{"a": 1}))
	assert.Equal(t, 1, Get("a")(n))
	assert.Nil(t, Get("b")(n))
	assert.Nil(t, Get("a")(nil))
	Put("a", false)(n, 2)
	assert.Equal(t, 1, Get("a")(n))
	Put("a", true)(n, 2)
	assert.Equal(t, 2, Get("a")(n))
	Put("b", false)(n, "x")
	assert.Equal(t, "x", Get("b")(n))
}

func TestAggregateMasksUnreadable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.sample")
	defer teardown()
	//
	n := lineage(t)
	values := Aggregate(n["A"], "x", MeanReducer("x"))
	assert.Equal(t, []any{4, 2}, values)
	assert.Equal(t, 3.0, n["A"].Payload.Fields["mean x"])
	// the unreadable node's own subtree is readable from the node itself
	values = Aggregate(n["C"], "x", Median("x").Reducer())
	assert.Equal(t, []any{10}, values)
	assert.Equal(t, 10.0, n["C"].Payload.Fields["median x"])
	// non-numeric values are skipped, no numbers means no result
	Aggregate(n["A"], "site", MeanReducer("site"))
	assert.NotContains(t, n["A"].Payload.Fields, "mean site")
}

func TestPropagateKey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.sample")
	defer teardown()
	//
	n := lineage(t)
	count := PropagateKey(n["A"], "site", "", false)
	assert.Equal(t, 3, count)
	assert.Equal(t, "CMU", n["B"].Payload.Fields["site"], "existing value is kept")
	assert.Equal(t, "CMU", n["D"].Payload.Fields["site"])
	assert.Equal(t, "Mines", n["C"].Payload.Fields["site"])
	assert.Equal(t, "Mines", n["E"].Payload.Fields["site"])
	//
	count = PropagateKey(n["A"], "site", "origin", false)
	assert.Equal(t, 4, count)
	assert.Equal(t, "CMU", n["D"].Payload.Fields["origin"])
	assert.NotContains(t, n["A"].Payload.Fields, "origin")
	//
	n["B"].Payload.SetWriteable(false)
	count = PropagateKey(n["A"], "x", "x", true)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, n["C"].Payload.Fields["x"])
	assert.Equal(t, 4, n["D"].Payload.Fields["x"], "masked by B")
}

func TestStrCmp(t *testing.T) {
	cmp := StrCmp(Lower, Trim)
	assert.True(t, cmp(" Sample A", "sample a "))
	assert.False(t, cmp("", ""))
	assert.False(t, cmp("a", "b"))
	assert.True(t, StrCmp()("a", "a"))
	assert.False(t, StrCmp()("a", "A"))
}

func TestBuilderWithNullParents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.sample")
	defer teardown()
	//
	samples := []*Sample{
		mustSample(t, map[string]any{idKey: "G181030a", parentKey: math.NaN()}),
		mustSample(t, map[string]any{idKey: "MH181210a", parentKey: " g181030A"}),
		mustSample(t, map[string]any{idKey: "G181030b", parentKey: ""}),
		mustSample(t, map[string]any{idKey: 42, parentKey: "G181030b"}),
	}
	nodes := Nodes(samples)
	roots, err := Builder(idKey, parentKey, StrCmp(Lower, Trim)).Build(nodes)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, nodes[0], nodes[1].Parent())
	assert.Equal(t, nodes[2], nodes[3].Parent())
	id, ok := Field(idKey)(nodes[3])
	assert.True(t, ok)
	assert.Equal(t, "42", id)
}

func TestKeysAndProcess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.sample")
	defer teardown()
	//
	n := lineage(t)
	keys := Keys(n["A"], idKey, parentKey)
	assert.Equal(t, []string{"site", "x"}, keys)
	Process(n["A"], []string{"x"}, Mean)
	assert.Equal(t, 3.0, n["A"].Payload.Fields["mean x"])
	assert.Equal(t, 3.0, n["D"].Payload.Fields["mean x"])
	assert.Equal(t, 3.0, n["E"].Payload.Fields["mean x"])
	//
	attrs := ToAttributes(n["D"].Payload)
	assert.Equal(t, []any{3.0}, attrs.Values(attribute.Name("mean x")))
	assert.Equal(t, 0, ToAttributes(nil).Len())
}
