package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/csm-adapt/karon/attribute"
	"github.com/csm-adapt/karon/graph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates an in-memory store for testing
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func diamond(t *testing.T) *graph.Graph {
	g := graph.New()
	top := graph.NewNode("top", attribute.New(1, "a"))
	left := graph.NewNode("left", attribute.New(2.5, "b"))
	right := graph.NewNode("", attribute.New("x", "c", "synonym"))
	bottom := graph.NewNode("bottom")
	require.NoError(t, g.AddEdge(top, left))
	require.NoError(t, g.AddEdge(top, right))
	require.NoError(t, g.AddEdge(left, bottom))
	require.NoError(t, g.AddEdge(right, bottom))
	return g
}

func TestSaveAndLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "karon.store")
	defer teardown()
	//
	ctx := context.Background()
	s := newTestStore(t)
	g := graph.Disseminate(diamond(t))
	require.NoError(t, s.Save(ctx, "diamond", g))
	r, err := s.Load(ctx, "diamond")
	require.NoError(t, err)
	assert.Equal(t, g.Len(), r.Len())
	assert.Equal(t, g.EdgeCount(), r.EdgeCount())
	for _, n := range g.Nodes() {
		m, ok := r.Node(n.UID())
		require.True(t, ok)
		assert.Equal(t, n.Name, m.Name)
		assert.True(t, n.Attrs.Equal(m.Attrs), "attributes of %v", n)
	}
}

func TestLoadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "nothing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Save(ctx, "b", diamond(t)))
	require.NoError(t, s.Save(ctx, "a", graph.New()))
	require.NoError(t, s.Save(ctx, "b", diamond(t)), "saving again replaces")
	assert.Error(t, s.Save(ctx, "", graph.New()))
	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"a", 0, 0}, {"b", 4, 4}}, entries)
	ok, err := s.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	entries, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
