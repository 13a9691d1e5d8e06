package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/graphkeep/core"
)

type (
	alpha struct{}
	beta  struct{}
	gamma struct{}
)

var (
	tA = core.TypeOf[alpha]()
	tB = core.TypeOf[beta]()
	tC = core.TypeOf[gamma]()
)

func TestTypeStateAllows(t *testing.T) {
	tests := []struct {
		name  string
		state TypeState
		want  map[core.TypeID]bool
	}{
		{"all", AllTypes(), map[core.TypeID]bool{tA: true, tB: true, tC: true}},
		{"single", SingleType(tA), map[core.TypeID]bool{tA: true, tB: false}},
		{"allow", Only(tA, tB), map[core.TypeID]bool{tA: true, tB: true, tC: false}},
		{"deny", Except(tA), map[core.TypeID]bool{tA: false, tB: true, tC: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for id, want := range tt.want {
				assert.Equal(t, want, tt.state.Allows(id), id.String())
			}
		})
	}
}

func TestTypeStateWithout(t *testing.T) {
	s := AllTypes().Without(tA)
	assert.False(t, s.Allows(tA))
	assert.True(t, s.Allows(tB))
	assert.False(t, s.IsAll())

	s = s.With(tA)
	assert.True(t, s.IsAll())

	allow := Only(tA, tB).Without(tA)
	id, ok := allow.Single()
	assert.True(t, ok)
	assert.Equal(t, tB, id)

	empty := SingleType(tA).Without(tA)
	assert.True(t, empty.IsEmpty())
	assert.True(t, empty.With(tA).Allows(tA))
}

func TestTypeStateImmutable(t *testing.T) {
	base := Except(tA)
	_ = base.Without(tB)
	assert.True(t, base.Allows(tB))

	allow := Only(tA)
	_ = allow.With(tB)
	assert.False(t, allow.Allows(tB))
}

func TestTypeStateDisjoint(t *testing.T) {
	assert.True(t, SingleType(tA).Disjoint(SingleType(tB)))
	assert.False(t, SingleType(tA).Disjoint(Only(tA, tB)))
	assert.True(t, SingleType(tA).Disjoint(Except(tA)))
	assert.False(t, Except(tA).Disjoint(Except(tB)))
	assert.False(t, AllTypes().Disjoint(SingleType(tA)))
	assert.True(t, AllTypes().Disjoint(Only()))
}

func TestTypeStateString(t *testing.T) {
	assert.Equal(t, "all", AllTypes().String())
	assert.Equal(t, "access.alpha", SingleType(tA).String())
	assert.Equal(t, "{access.alpha,access.beta}", Only(tB, tA).String())
	assert.Equal(t, "!{access.alpha}", Except(tA).String())
	assert.Equal(t, "mut", Mut.String())
	assert.Equal(t, "ref", Ref.String())
}
