package container

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentedArrayGetSet(t *testing.T) {
	sa := NewSegmentedArray[int](2)
	assert.Equal(t, 4, sa.SegmentSize())

	_, ok := sa.Get(0)
	assert.False(t, ok)
	assert.Nil(t, sa.Ref(9))

	for i := uint32(0); i < 10; i++ {
		sa.Set(i, int(i)*10)
	}
	for i := uint32(0); i < 10; i++ {
		v, ok := sa.Get(i)
		require.True(t, ok)
		assert.Equal(t, int(i)*10, v)
	}
	assert.Equal(t, 0, sa.SegmentOf(3))
	assert.Equal(t, 1, sa.SegmentOf(4))

	p := sa.Ref(5)
	require.NotNil(t, p)
	*p = 7
	v, _ := sa.Get(5)
	assert.Equal(t, 7, v)
}

func TestSegmentedArraySparse(t *testing.T) {
	sa := NewSegmentedArray[string](2)
	sa.Set(13, "x")

	v, ok := sa.Get(13)
	require.True(t, ok)
	assert.Equal(t, "x", v)
	_, ok = sa.Get(1)
	assert.False(t, ok, "untouched segment stays unallocated")
}

func TestSegmentedArrayTruncate(t *testing.T) {
	sa := NewSegmentedArray[int](2)
	for i := uint32(0); i < 12; i++ {
		sa.Set(i, 1)
	}

	sa.Truncate(6)
	v, ok := sa.Get(5)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = sa.Get(6)
	require.True(t, ok)
	assert.Equal(t, 0, v, "tail of the kept segment is cleared")
	_, ok = sa.Get(8)
	assert.False(t, ok)

	sa.Truncate(0)
	_, ok = sa.Get(0)
	assert.False(t, ok)
}

func TestSegmentedArrayDefaults(t *testing.T) {
	assert.Equal(t, 1<<DefaultSegmentBits, NewSegmentedArray[int](0).SegmentSize())
	assert.Equal(t, 1<<20, NewSegmentedArray[byte](40).SegmentSize())
}

func TestSegmentedArrayConcurrentGrowth(t *testing.T) {
	sa := NewSegmentedArray[int](3)
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < 400; i += 4 {
				sa.Set(uint32(i), i)
			}
		}(w)
	}
	wg.Wait()
	for i := 0; i < 400; i++ {
		v, ok := sa.Get(uint32(i))
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}
