package attribute

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/csm-adapt/karon"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSetCreation(t *testing.T) {
	assert.Equal(t, 0, NewSet().Len())
	assert.Equal(t, 0, (&Set{}).Len())
	s := SetFromNames("foo", "bar", "baz")
	assert.Equal(t, 3, s.Len())
	for _, a := range s.All() {
		assert.Nil(t, a.Value())
		assert.Equal(t, 1, a.NameCount())
	}
	m := SetFromMap(map[string]any{"foo": 1.234, "bar": 5.678})
	require.Len(t, m.Get(Name("foo")), 1)
	assert.Equal(t, 1.234, m.Get(Name("foo"))[0].Value())
	a := New(1)
	assert.Equal(t, 1, NewSet(a, a, a).Len(), "duplicates collapse on construction")
}

func TestSetAddDuplicateIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.attribute")
	defer teardown()
	//
	s := NewSet()
	a := New(1, "foo")
	_, err := s.Add(a)
	require.NoError(t, err)
	_, err = s.Add(a)
	if !errors.Is(err, karon.ErrDuplicateIdentity) || !errors.Is(err, karon.ErrStructural) {
		t.Errorf("expected duplicate identity error, got %v", err)
	}
	_, err = s.Add(WithUID(a.UID(), 2, "other"))
	assert.ErrorIs(t, err, karon.ErrDuplicateIdentity, "same identity, different instance")
	_, err = s.Add(New(1, "foo"))
	assert.NoError(t, err, "same name and value, different identity")
	assert.Equal(t, 2, s.Len())
}

func TestSetGetByNameIsAmbiguous(t *testing.T) {
	s := NewSet(New(1, "foo"), New(2, "foo"), New(3, "bar"))
	assert.Len(t, s.Get(Name("foo")), 2)
	assert.Len(t, s.Get(Name("nope")), 0)
	a := s.Get(Name("bar"))[0]
	assert.Equal(t, []*Attribute{a}, s.Get(ID(a.UID())))
	assert.Equal(t, []*Attribute{a}, s.Get(a))
	assert.Equal(t, []any{1, 2}, s.Values(Name("foo")))
	found, ok := s.Lookup(a.UID())
	assert.True(t, ok)
	assert.Same(t, a, found)
}

func TestSetUnnamedAttributeMatchesOnlyByIdentity(t *testing.T) {
	anon := New(7)
	s := NewSet(anon, New(1, ""))
	assert.True(t, s.Contains(anon))
	assert.True(t, s.Contains(ID(anon.UID())))
	assert.Len(t, s.Get(Name("")), 1, "only the attribute explicitly named \"\"")
}

func TestSetAmbiguousSet(t *testing.T) {
	s := NewSet(New(1, "foo"), New(2, "foo"))
	err := s.Set("foo", 3, false)
	if !errors.Is(err, karon.ErrAmbiguousKey) {
		t.Fatalf("expected ambiguous key error, got %v", err)
	}
	assert.Equal(t, []any{1, 2}, s.Values(Name("foo")), "failed Set must not modify")
	require.NoError(t, s.Set("foo", 3, true))
	assert.Equal(t, []any{3, 3}, s.Values(Name("foo")))
	require.NoError(t, s.Set("bar", 4, false))
	assert.Equal(t, []any{4}, s.Values(Name("bar")), "Set creates missing attribute")
	require.NoError(t, s.Set("bar", 5, false))
	assert.Equal(t, []any{5}, s.Values(Name("bar")), "Set mutates single match")
	assert.Equal(t, 3, s.Len())
}

func TestSetRemoveAllMatches(t *testing.T) {
	keep := New(3, "bar")
	s := NewSet(New(1, "foo"), keep, New(2, "foo"))
	assert.Equal(t, 2, s.Remove(Name("foo")))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(keep))
	assert.Equal(t, 0, s.Remove(Name("foo")))
	assert.Equal(t, 1, s.Remove(keep))
	assert.Equal(t, 0, s.Len())
	_, err := s.Add(keep)
	assert.NoError(t, err, "removed identity may be added again")
}

func TestSetUnionDeduplicatesByIdentity(t *testing.T) {
	foo, bar, baz := New(1.234, "foo"), New(5.678, "bar"), New(9.012, "baz")
	expected := NewSet(foo, bar, baz)
	a := NewSet(foo, bar)
	b := NewSet(baz)
	c := a.Union(b)
	assert.True(t, expected.Equal(c))
	assert.NotSame(t, expected, c)
	assert.Equal(t, 2, a.Len(), "union must not modify its receiver")
	//
	twice := a.Union(a).Union(a)
	assert.Equal(t, 2, twice.Len())
	assert.Len(t, twice.Get(foo), 1)
	//
	lookalike := New(1.234, "foo")
	d := a.Union(NewSet(lookalike))
	assert.Equal(t, 3, d.Len())
	assert.Len(t, d.Get(Name("foo")), 2)
}

func TestSetMergeIsIdempotent(t *testing.T) {
	a := NewSet(New(1, "a"))
	b := NewSet(New(2, "b"), New(3, "c"))
	assert.Equal(t, 2, a.Merge(b))
	assert.Equal(t, 0, a.Merge(b))
	assert.Equal(t, 0, a.Merge(a))
	assert.Equal(t, 3, a.Len())
}

func TestSetJSONRoundTrip(t *testing.T) {
	s := NewSet(New(1.234, "foo"), New(5.678, "bar"), New(9.012, "baz"))
	data, err := json.Marshal(s)
	require.NoError(t, err)
	dupl := &Set{}
	require.NoError(t, json.Unmarshal(data, dupl))
	assert.True(t, s.Equal(dupl))
	assert.Equal(t, s.Len(), dupl.Len())
	for _, a := range s.All() {
		d, ok := dupl.Lookup(a.UID())
		require.True(t, ok)
		assert.Equal(t, a.Value(), d.Value())
		assert.Equal(t, a.Names(), d.Names())
	}
}

func TestSetRoundTripKeepsNumberKinds(t *testing.T) {
	big := int64(9007199254740993)
	s := NewSet(New(50, "Node 4"), New(big, "big"), New(3.0, "mean x"), New([]any{1, 2.5}, "list"))
	data, err := json.Marshal(s)
	require.NoError(t, err)
	t.Logf("set = %s", data)
	dupl := &Set{}
	require.NoError(t, json.Unmarshal(data, dupl))
	assert.Equal(t, []any{50}, dupl.Values(Name("Node 4")))
	assert.EqualValues(t, big, dupl.Values(Name("big"))[0])
	assert.Equal(t, []any{3.0}, dupl.Values(Name("mean x")))
	assert.Equal(t, []any{[]any{1, 2.5}}, dupl.Values(Name("list")))
	//
	out, err := yaml.Marshal(s.ToPortable())
	require.NoError(t, err)
	var ps []Portable
	require.NoError(t, yaml.Unmarshal(out, &ps))
	y := SetFromPortable(ps)
	assert.Equal(t, []any{50}, y.Values(Name("Node 4")))
	assert.EqualValues(t, big, y.Values(Name("big"))[0])
	assert.Equal(t, []any{3.0}, y.Values(Name("mean x")))
}

// --- State functions -------------------------------------------------------

func stateFixture() *Set {
	s := NewSet()
	for _, kv := range []struct {
		name  string
		value any
	}{{"foo", 1}, {"bar", 2}, {"baz", 3}, {"goo", 4}, {"ber", "a"}, {"goober", 3}} {
		s.Add(New(kv.value, kv.name))
	}
	for _, a := range s.Get(Name("foo")) {
		a.AddName("foobar", "foobaz", "foobarbaz")
	}
	for _, a := range s.Get(Name("bar")) {
		a.AddName("foobar", "foobarbaz")
	}
	for _, a := range s.Get(Name("baz")) {
		a.AddName("foobaz", "foobarbaz")
	}
	for _, a := range s.Get(Name("goo")) {
		a.AddName("goober")
	}
	for _, a := range s.Get(Name("ber")) {
		a.AddName("goober")
	}
	return s
}

func TestStateFunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.attribute")
	defer teardown()
	//
	mymin := func(args ...[]*Attribute) any {
		m := math.Inf(1)
		for _, a := range args[0] {
			if f, ok := a.Value().(int); ok {
				m = math.Min(m, float64(f))
			}
		}
		return m
	}
	for _, c := range []struct {
		key string
		min float64
	}{{"foo", 1}, {"bar", 2}, {"baz", 3}, {"foobar", 1}, {"foobaz", 1}, {"foobarbaz", 1}, {"goober", 3}} {
		s := stateFixture()
		dest := "min " + c.key
		r := State(dest, mymin, c.key)(s)
		assert.Same(t, s, r)
		values := r.Values(Name(dest))
		require.Len(t, values, 1)
		assert.Equal(t, c.min, values[0], "min(%s)", c.key)
	}
	s := stateFixture()
	n := s.Len()
	State("min nope", mymin, "nope")(s)
	assert.Equal(t, n, s.Len(), "missing arguments leave the set unchanged")
}

func TestMeanIgnoresNonNumeric(t *testing.T) {
	s := Mean("goober")(stateFixture())
	values := s.Values(Name("mean goober"))
	require.Len(t, values, 1)
	assert.Equal(t, 3.5, values[0])
	s = Median("foobarbaz")(s)
	assert.Equal(t, []any{2.0}, s.Values(Name("median foobarbaz")))
	s = Std("foobar")(s)
	assert.Equal(t, []any{0.5}, s.Values(Name("std foobar")))
}
