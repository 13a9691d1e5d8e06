package shell

import (
	"slices"
	"testing"

	"github.com/hupe1980/graphkeep/core"
	"github.com/stretchr/testify/assert"
)

type author struct{}
type book struct{}

func TestShellLinks(t *testing.T) {
	var s Shell
	assert.False(t, s.Referenced())
	assert.Empty(t, s.FromKeys())

	b5 := core.KeyAt[book](5).Any()
	a2 := core.KeyAt[author](2).Any()
	b1 := core.KeyAt[book](1).Any()

	assert.True(t, s.Link(b5))
	assert.False(t, s.Link(b5), "links are a set")
	assert.True(t, s.Link(a2))
	assert.True(t, s.Link(b1))

	assert.True(t, s.Referenced())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(a2))
	assert.False(t, s.Contains(core.KeyAt[author](5).Any()))
	assert.Equal(t, []core.AnyKey{b1, a2, b5}, s.FromKeys())
	assert.Equal(t, []core.AnyKey{b1, a2, b5}, slices.Collect(s.From()))

	c := s.Clone()
	assert.True(t, s.Unlink(a2))
	assert.False(t, s.Unlink(a2))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 3, c.Len(), "clone is independent")

	s.Reset()
	assert.False(t, s.Referenced())
	assert.False(t, s.Unlink(b1))
}
