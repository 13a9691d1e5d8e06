package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planet struct{ name string }
type moon struct{ name string }

func TestKeyOrdering(t *testing.T) {
	a, b := KeyAt[planet](1), KeyAt[planet](2)

	assert.True(t, a.Less(b))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(KeyAt[planet](1)))
	assert.Equal(t, a, KeyAt[planet](1))
	assert.True(t, Key[planet]{}.IsZero())

	set := map[Key[planet]]bool{a: true}
	assert.True(t, set[KeyAt[planet](1)])
}

func TestDowncast(t *testing.T) {
	k := KeyAt[planet](7)
	erased := k.Any()

	assert.Equal(t, TypeOf[planet](), erased.Type)
	assert.Equal(t, Index(7), erased.Index)

	back, ok := Downcast[planet](erased)
	require.True(t, ok)
	assert.Equal(t, k, back)

	_, ok = Downcast[moon](erased)
	assert.False(t, ok)
}

func TestAnyKeyCompare(t *testing.T) {
	p := KeyAt[planet](3).Any()
	m := KeyAt[moon](3).Any()

	assert.Equal(t, -1, KeyAt[planet](2).Any().Compare(p))
	assert.NotEqual(t, 0, p.Compare(m))
	assert.Equal(t, -p.Compare(m), m.Compare(p))
}

func TestTypeID(t *testing.T) {
	assert.Equal(t, TypeOf[planet](), TypeOf[planet]())
	assert.NotEqual(t, TypeOf[planet](), TypeOf[moon]())
	assert.NotEqual(t, TypeOf[planet](), TypeOf[*planet]())
	assert.Equal(t, "core.planet", TypeOf[planet]().String())
	assert.True(t, TypeID{}.IsZero())
}

func TestRefs(t *testing.T) {
	k := KeyAt[planet](4)

	u := UniTo(k).Any()
	assert.Equal(t, Uni, u.Dir)
	assert.False(t, u.IsBi())
	assert.Equal(t, k.Any(), u.Key)

	b := BiTo(k).Any()
	assert.True(t, b.IsBi())
	assert.Equal(t, "bi", b.Dir.String())
}

func TestBiRefMoved(t *testing.T) {
	r := BiTo(KeyAt[planet](4))

	assert.False(t, r.Moved(KeyAt[planet](5).Any(), KeyAt[planet](1).Any()))
	assert.True(t, r.Moved(KeyAt[planet](4).Any(), KeyAt[planet](2).Any()))
	assert.Equal(t, KeyAt[planet](2), r.Key)

	assert.PanicsWithError(t,
		"integrity violation during move of AnyKey[core.planet](2): expected core.planet, got core.moon",
		func() { r.Moved(KeyAt[planet](2).Any(), KeyAt[moon](1).Any()) })
}

func TestSide(t *testing.T) {
	assert.Equal(t, Drain, Source.Complement())
	assert.Equal(t, Source, Drain.Complement())
	assert.Equal(t, "drain", Drain.String())
}

func TestEdge(t *testing.T) {
	e := Edge[string, int]{Source: "a", Drain: 1}
	r := e.Reverse()
	assert.Equal(t, 1, r.Source)
	assert.Equal(t, "a", r.Drain)

	sym := Edge[int, int]{Source: 1, Drain: 2}
	p := Partial(sym, Drain)
	assert.Equal(t, PartialEdge[int]{Side: Drain, Value: 2}, p)
	assert.Equal(t, Source, p.Reverse().Side)
	assert.Equal(t, sym, p.Complete(1))

	doubled := MapPartial(p, func(v int) string { return string(rune('a' + v)) })
	assert.Equal(t, Drain, doubled.Side)
	assert.Equal(t, "c", doubled.Value)
}
