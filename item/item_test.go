package item

import (
	"testing"

	"github.com/hupe1980/graphkeep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type city struct {
	Name string
}

type road struct {
	To   core.BiRef[city]
	Hint core.UniRef[city]
}

func (r *road) References(core.Index) []core.AnyRef {
	return []core.AnyRef{r.To.Any(), r.Hint.Any(), r.To.Any()}
}

type plain struct{}

func TestAnyDowncast(t *testing.T) {
	c := &city{Name: "Oslo"}
	a := Erase(c)

	assert.Equal(t, core.TypeOf[city](), a.Type())
	got, ok := Downcast[city](a)
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = Downcast[road](a)
	assert.False(t, ok)
	assert.True(t, Any{}.IsZero())
}

func TestAnyReferences(t *testing.T) {
	r := &road{To: core.BiTo(core.KeyAt[city](2)), Hint: core.UniTo(core.KeyAt[city](3))}
	a := Erase(r)

	assert.Len(t, a.References(1), 3)
	assert.Equal(t, []core.AnyKey{core.KeyAt[city](2).Any()}, a.BiReferences(1))
	assert.Empty(t, Erase(&plain{}).References(1))
}

func TestAnyDefaults(t *testing.T) {
	a := Erase(&road{})

	assert.False(t, a.ItemRemoved(1, core.KeyAt[city](2).Any()), "unaware items are invalidated")
	assert.False(t, a.Pins(core.KeyAt[city](2).Any()))
	assert.False(t, a.CanMove())
	assert.Panics(t, func() { a.ItemMoved(core.KeyAt[city](2).Any(), core.KeyAt[city](1).Any()) })
}

func TestImplements(t *testing.T) {
	assert.True(t, Implements[road]())
	assert.True(t, Implements[Edge[int]]())
	assert.True(t, Erase(&Edge[int]{}).CanMove())
	assert.False(t, Implements[plain]())
}

func TestEdge(t *testing.T) {
	a, b := core.KeyAt[city](1), core.KeyAt[city](2)
	e := NewEdge(a, b, 42.0)

	refs := e.References(3)
	require.Len(t, refs, 2)
	assert.Equal(t, core.BiTo(a).Any(), refs[0])
	assert.Equal(t, core.BiTo(b).Any(), refs[1])
	assert.Equal(t, b.Any(), e.End(core.Drain).Key)

	e.ItemMoved(b.Any(), core.KeyAt[city](9).Any())
	assert.Equal(t, core.Index(9), e.End(core.Drain).Key.Index)
	assert.Equal(t, a.Any(), e.End(core.Source).Key)

	assert.True(t, e.ItemRemoved(3, core.KeyAt[city](5).Any()))
	assert.False(t, e.ItemRemoved(3, a.Any()))

	assert.Panics(t, func() { e.ItemMoved(a.Any(), core.KeyAt[road](1).Any()) })
}

type tags struct{ names []string }

func (t *tags) Clone() *tags { return &tags{names: append([]string(nil), t.names...)} }

func TestEdgeClone(t *testing.T) {
	e := NewEdge(core.KeyAt[city](1), core.KeyAt[city](2), tags{names: []string{"a"}})
	c := e.Clone()
	c.Data.names[0] = "b"
	c.Ends.Source.Key = core.KeyAt[city](7).Any()

	assert.Equal(t, []string{"a"}, e.Data.names)
	assert.Equal(t, core.Index(1), e.End(core.Source).Key.Index)
	_, ok := any(&e).(Cloner[Edge[tags]])
	assert.True(t, ok)
}

func TestVariant(t *testing.T) {
	orig := core.KeyAt[city](4)
	v := VariantOf(orig, "night")

	assert.Equal(t, []core.AnyRef{core.BiTo(orig).Any()}, v.References(5))
	assert.True(t, v.Pins(orig.Any()))
	assert.False(t, v.Pins(core.KeyAt[city](5).Any()))

	assert.True(t, v.ItemRemoved(5, core.KeyAt[city](1).Any()))
	assert.False(t, v.ItemRemoved(5, orig.Any()), "removing the original cascades")

	v.ItemMoved(orig.Any(), core.KeyAt[city](2).Any())
	assert.Equal(t, core.KeyAt[city](2), v.Original.Key)

	var ierr *core.IntegrityError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			var ok bool
			ierr, ok = r.(*core.IntegrityError)
			require.True(t, ok)
		}()
		v.ItemMoved(core.KeyAt[city](2).Any(), core.KeyAt[road](1).Any())
	}()
	assert.Equal(t, core.TypeOf[city](), ierr.Want)
	assert.Equal(t, core.TypeOf[road](), ierr.Got)
}
