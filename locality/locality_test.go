package locality

import (
	"testing"

	"github.com/hupe1980/graphkeep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionContains(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		in     []uint64
		out    []uint64
	}{
		{"any", Any(), []uint64{0, 1, 1 << 40}, nil},
		{"id range", IDRange(3, 5), []uint64{3, 4, 5}, []uint64{2, 6}},
		{"index range", IndexRange(0, 0), []uint64{0}, []uint64{1}},
		{"single", Single(9), []uint64{9}, []uint64{8, 10}},
		{"swapped bounds", IDRange(5, 3), []uint64{3, 5}, []uint64{6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, i := range tt.in {
				assert.True(t, tt.region.Contains(i), "%s should contain %d", tt.region, i)
			}
			for _, i := range tt.out {
				assert.False(t, tt.region.Contains(i), "%s should not contain %d", tt.region, i)
			}
		})
	}
}

func TestRegionOverlaps(t *testing.T) {
	assert.True(t, Any().Overlaps(IDRange(1, 2)))
	assert.True(t, IDRange(1, 5).Overlaps(IDRange(5, 9)))
	assert.False(t, IDRange(1, 4).Overlaps(IDRange(5, 9)))
	assert.False(t, Single(3).Overlaps(IDRange(4, 9)))
	assert.True(t, Single(4).Overlaps(IDRange(4, 9)))
	// different dimensions cannot be shown disjoint
	assert.True(t, IndexRange(1, 2).Overlaps(IDRange(8, 9)))
}

func TestRegionWithin(t *testing.T) {
	assert.True(t, IDRange(2, 3).Within(Any()))
	assert.True(t, IDRange(2, 3).Within(IDRange(1, 3)))
	assert.False(t, IDRange(0, 3).Within(IDRange(1, 3)))
	assert.False(t, Any().Within(IDRange(1, 3)))
	assert.False(t, IndexRange(1, 2).Within(IDRange(1, 3)))
	assert.True(t, Single(2).Within(IDRange(1, 3)))
}

func TestUnitPath(t *testing.T) {
	for _, d := range []Dim{DimID, DimChunk, DimShard} {
		r, ok := Unit{}.Map(d)
		require.True(t, ok)
		assert.True(t, r.IsAny())
	}
}

func TestLeafPathMap(t *testing.T) {
	p := LeafPath{}.Child(DimShard, Single(2)).Child(DimID, IDRange(10, 20))
	inner := p.Child(DimID, IDRange(12, 14))

	r, ok := inner.Map(DimID)
	require.True(t, ok)
	assert.Equal(t, IDRange(12, 14), r)

	r, ok = p.Map(DimID)
	require.True(t, ok)
	assert.Equal(t, IDRange(10, 20), r, "Child must not modify its receiver")

	_, ok = p.Map(DimChunk)
	assert.False(t, ok)
}

type cell struct{}

func TestNewKey(t *testing.T) {
	p := LeafPath{{Dim: DimID, Region: IDRange(10, 20)}}

	k, err := NewKey(p, core.KeyAt[cell](11).Any())
	require.NoError(t, err)
	assert.Equal(t, core.Index(11), k.Key().Index)
	r, ok := k.Map(DimID)
	require.True(t, ok)
	assert.Equal(t, IDRange(10, 20), r)

	_, err = NewKey(p, core.KeyAt[cell](21).Any())
	assert.Error(t, err)

	_, err = NewKey(LeafPath{}, core.KeyAt[cell](21).Any())
	assert.NoError(t, err)
}
