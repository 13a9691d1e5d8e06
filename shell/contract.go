package shell

import (
	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/item"
)

// Chunk is a maximal run of keys that are contiguous in memory.
// First and Last are inclusive.
type Chunk struct {
	First core.AnyKey
	Last  core.AnyKey
}

// AnyCollection is the read side of the container contract, in erased form.
// It may host items of several types.
type AnyCollection interface {
	// Hosts reports whether items of the given type can be stored.
	Hosts(ty core.TypeID) bool

	// Len returns the number of live items.
	Len() int

	// FirstKeyAny returns the smallest live key.
	FirstKeyAny() (core.AnyKey, bool)

	// NextKeyAny returns the smallest live key greater than k.
	NextKeyAny(k core.AnyKey) (core.AnyKey, bool)

	// GetAny looks up a live entry.
	GetAny(k core.AnyKey) (AnyEntry, error)

	// ChunksAny reports runs of contiguous keys.
	ChunksAny() []Chunk
}

// MutCollection is the write side of the container contract.
type MutCollection interface {
	AnyCollection

	// AddAny stores the value ptr points to and returns its fresh key.
	// ptr must be a *T for a hosted T. Every bidirectional target of the new
	// item must be live.
	AddAny(ptr item.Any) (core.AnyKey, error)

	// RemoveAny removes k, drives ItemRemoved on every bidirectional referrer
	// and cascades invalid referrers. It returns every removed key, k first.
	RemoveAny(k core.AnyKey) ([]core.AnyKey, error)

	// MutateAny runs fn on the stored item. If relink is false and fn changes
	// the item's bidirectional references, the item is restored and
	// ErrRelinkForbidden is returned.
	MutateAny(k core.AnyKey, relink bool, fn func(item.Any) error) error

	// Compact renumbers live keys to a dense ascending range and drives
	// ItemMoved for every renumbered key. It returns the old->new mapping of
	// the keys that moved.
	Compact() (map[core.AnyKey]core.AnyKey, error)
}

// Layer is implemented by composite containers that expose an adjusted view
// on top of a base container. Raw keys do not necessarily transfer unchanged
// across a layer boundary.
type Layer interface {
	Down() AnyCollection
}

// Down returns the base layer of c. A container that does not implement Layer
// is its own base layer.
func Down(c AnyCollection) AnyCollection {
	if l, ok := c.(Layer); ok {
		return l.Down()
	}
	return c
}
