package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphkeep/core"
)

func TestGraph(t *testing.T) {
	rng := NewRNG(4711)

	edges := rng.Graph(50, 3)

	require.Len(t, edges, 50)
	assert.Empty(t, edges[0])
	assert.Len(t, edges[1], 1)
	for i, out := range edges[3:] {
		node := i + 3
		assert.Len(t, out, 3)
		for _, j := range out {
			assert.Less(t, j, node)
		}
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	first := rng.Graph(20, 2)
	rng.Reset()
	assert.Equal(t, first, rng.Graph(20, 2))
	assert.Equal(t, int64(42), rng.Seed())
}

func TestZipf(t *testing.T) {
	rng := NewRNG(7)
	for range 100 {
		v := rng.Zipf(10, 1.5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
	}
	assert.Equal(t, 0, rng.Zipf(1, 2))
}

func TestSparse(t *testing.T) {
	rng := NewRNG(7)
	assert.NotContains(t, rng.Sparse(20, 0), true)
	assert.NotContains(t, rng.Sparse(20, 1), false)
}

func TestNodeDropsRemovedLink(t *testing.T) {
	a, b := core.KeyAt[Node](1), core.KeyAt[Node](2)
	n := NewNode("c", a, b)

	assert.True(t, n.ItemRemoved(3, a.Any()))
	assert.False(t, n.LinksTo(a))
	assert.True(t, n.LinksTo(b))
	assert.Equal(t, []core.AnyKey{a.Any()}, n.Removed)
}

func TestNodeMoved(t *testing.T) {
	n := NewNode("x", core.KeyAt[Node](5))
	n.ItemMoved(core.KeyAt[Node](5).Any(), core.KeyAt[Node](2).Any())
	assert.True(t, n.LinksTo(core.KeyAt[Node](2)))
	assert.Len(t, n.Moved, 1)
}

func TestNodeClone(t *testing.T) {
	a, b := core.KeyAt[Node](1), core.KeyAt[Node](2)
	n := NewNode("x", a)
	c := n.Clone()
	c.Links[0] = core.BiTo(b)
	assert.True(t, n.LinksTo(a))
	assert.True(t, c.LinksTo(b))
}

func TestOwnedCascades(t *testing.T) {
	owner := core.KeyAt[Node](1)
	o := OwnedBy(owner, "tag")
	assert.False(t, o.ItemRemoved(2, owner.Any()))
	assert.True(t, o.ItemRemoved(2, core.KeyAt[Node](9).Any()))
}
