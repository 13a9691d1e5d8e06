package item

import "github.com/hupe1980/graphkeep/core"

// Edge is an item that relates two stored items and carries a payload.
// It references exactly its two endpoints.
type Edge[D any] struct {
	Ends core.Edge[core.AnyRef, core.AnyRef]
	Data D
}

// NewEdge relates source to drain with bidirectional references.
func NewEdge[S, T, D any](source core.Key[S], drain core.Key[T], data D) Edge[D] {
	return Edge[D]{
		Ends: core.Edge[core.AnyRef, core.AnyRef]{
			Source: core.BiTo(source).Any(),
			Drain:  core.BiTo(drain).Any(),
		},
		Data: data,
	}
}

// References implements Item.
func (e *Edge[D]) References(core.Index) []core.AnyRef {
	return []core.AnyRef{e.Ends.Source, e.Ends.Drain}
}

// End returns the endpoint on side s.
func (e *Edge[D]) End(s core.Side) core.AnyRef {
	if s == core.Source {
		return e.Ends.Source
	}
	return e.Ends.Drain
}

// ItemRemoved implements RemovalAware. An edge without both endpoints is
// meaningless, so removing either one invalidates it.
func (e *Edge[D]) ItemRemoved(_ core.Index, removed core.AnyKey) bool {
	return e.Ends.Source.Key != removed && e.Ends.Drain.Key != removed
}

// ItemMoved implements MoveAware.
func (e *Edge[D]) ItemMoved(old, next core.AnyKey) {
	if old.Type != next.Type {
		panic(&core.IntegrityError{Op: "move", Key: old, Want: old.Type, Got: next.Type})
	}
	if e.Ends.Source.Key == old {
		e.Ends.Source.Key = next
	}
	if e.Ends.Drain.Key == old {
		e.Ends.Drain.Key = next
	}
}

// Clone implements Cloner. Data is copied with its own Clone method when it
// has one returning D or *D, and shallowly otherwise.
func (e *Edge[D]) Clone() Edge[D] {
	c := *e
	switch d := any(&e.Data).(type) {
	case interface{ Clone() D }:
		c.Data = d.Clone()
	case interface{ Clone() *D }:
		c.Data = *d.Clone()
	}
	return c
}
