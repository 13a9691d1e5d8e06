package shell

import (
	"iter"

	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/item"
)

// AnyEntry is a read view of one stored item in erased form.
type AnyEntry struct {
	Key   core.AnyKey
	Item  item.Any
	Shell *Shell
}

// From returns the bidirectional referrers.
func (e AnyEntry) From() iter.Seq[core.AnyKey] {
	if e.Shell == nil {
		return func(func(core.AnyKey) bool) {}
	}
	return e.Shell.From()
}

// Referenced reports whether anything references the entry bidirectionally.
// The answer may change between lookups as the graph mutates.
func (e AnyEntry) Referenced() bool {
	return e.Shell != nil && e.Shell.Referenced()
}

// References enumerates the entry's outgoing references.
func (e AnyEntry) References() []core.AnyRef {
	return e.Item.References(e.Key.Index)
}

// RefEntry is a typed read view of one stored item.
//
// Item points at the stored value. Holders of a RefEntry must not write
// through it; mutation goes through MutCollection.MutateAny.
type RefEntry[T any] struct {
	Key   core.Key[T]
	Item  *T
	Shell *Shell
}

// From returns the bidirectional referrers.
func (e RefEntry[T]) From() iter.Seq[core.AnyKey] {
	return e.Any().From()
}

// Referenced reports whether anything references the entry bidirectionally.
func (e RefEntry[T]) Referenced() bool {
	return e.Shell != nil && e.Shell.Referenced()
}

// Any erases the entry.
func (e RefEntry[T]) Any() AnyEntry {
	return AnyEntry{Key: e.Key.Any(), Item: item.Erase(e.Item), Shell: e.Shell}
}

// DowncastEntry narrows an erased entry. It fails if the entry holds another type.
func DowncastEntry[T any](e AnyEntry) (RefEntry[T], bool) {
	k, ok := core.Downcast[T](e.Key)
	if !ok {
		return RefEntry[T]{}, false
	}
	p, ok := item.Downcast[T](e.Item)
	if !ok {
		return RefEntry[T]{}, false
	}
	return RefEntry[T]{Key: k, Item: p, Shell: e.Shell}, true
}

// MutEntry is a typed writable view of one stored item, handed to mutation
// callbacks. The shell stays read-only: only the container links and unlinks.
type MutEntry[T any] struct {
	Key   core.Key[T]
	Item  *T
	shell *Shell
}

// From returns the bidirectional referrers.
func (e MutEntry[T]) From() iter.Seq[core.AnyKey] {
	if e.shell == nil {
		return func(func(core.AnyKey) bool) {}
	}
	return e.shell.From()
}

// Referenced reports whether anything references the entry bidirectionally.
func (e MutEntry[T]) Referenced() bool {
	return e.shell != nil && e.shell.Referenced()
}

// NewMutEntry builds a writable view. Container and access implementations
// use it inside mutation callbacks.
func NewMutEntry[T any](k core.Key[T], p *T, s *Shell) MutEntry[T] {
	return MutEntry[T]{Key: k, Item: p, shell: s}
}
