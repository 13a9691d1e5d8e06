// Package item defines what a stored item is and the integrity protocol a
// container drives to keep the reference graph consistent.
//
// An item's only obligation is to enumerate its outgoing references. Items
// that hold bidirectional references also implement RemovalAware and
// MoveAware so the container can tell them when a target disappears or is
// renumbered.
package item

import "github.com/hupe1980/graphkeep/core"

// Item is any value that can appear in a container.
//
// References returns every key the item currently points to, given its own
// index. The result may change between calls. Containers call methods on a
// pointer to the stored value, so pointer receivers are fine.
type Item interface {
	References(self core.Index) []core.AnyRef
}

// RemovalAware is implemented by items that can react to the removal of a
// key they reference bidirectionally.
//
// ItemRemoved reports whether the item remains valid. Returning false asks
// the container to remove the item too (cascade). Returning true promises the
// item no longer yields removed from References.
type RemovalAware interface {
	ItemRemoved(self core.Index, removed core.AnyKey) bool
}

// MoveAware is implemented by items that can rewrite a reference when
// compaction renumbers its target.
//
// ItemMoved must replace every reference to old with next. A type mismatch
// between old and the item's expected reference type is a fatal invariant
// violation and must panic with *core.IntegrityError.
type MoveAware interface {
	ItemMoved(old, next core.AnyKey)
}

// Cloner is implemented by items whose references live in memory a shallow
// copy would share, such as slices. Clone returns a copy sharing no mutable
// memory with the receiver. Containers use it to undo rejected mutations.
type Cloner[T any] interface {
	Clone() T
}

// Pinner is implemented by items that forbid structural replacement of a
// target they reference. Payload updates of the target stay allowed.
type Pinner interface {
	Pins(target core.AnyKey) bool
}

// Any is a type-erased item: a runtime type tag plus a pointer to the stored
// value. The tag is checked on every downcast.
type Any struct {
	ty  core.TypeID
	ptr any
}

// Erase wraps a pointer to a stored T.
func Erase[T any](p *T) Any {
	return Any{ty: core.TypeOf[T](), ptr: p}
}

// EraseAs wraps ptr under an explicit tag. Container implementations use it
// after checking that ptr is a *T for the TypeID.
func EraseAs(ty core.TypeID, ptr any) Any {
	return Any{ty: ty, ptr: ptr}
}

// Type returns the runtime type tag.
func (a Any) Type() core.TypeID { return a.ty }

// Ptr returns the stored pointer.
func (a Any) Ptr() any { return a.ptr }

// IsZero reports whether a wraps nothing.
func (a Any) IsZero() bool { return a.ptr == nil }

// Downcast narrows an erased item. It fails if the tag names another type.
func Downcast[T any](a Any) (*T, bool) {
	if a.ty != core.TypeOf[T]() {
		return nil, false
	}
	p, ok := a.ptr.(*T)
	return p, ok
}

// References is the erased reference enumerator. Values that do not
// implement Item reference nothing.
func (a Any) References(self core.Index) []core.AnyRef {
	if it, ok := a.ptr.(Item); ok {
		return it.References(self)
	}
	return nil
}

// BiReferences returns the distinct bidirectional targets, in enumeration order.
func (a Any) BiReferences(self core.Index) []core.AnyKey {
	refs := a.References(self)
	if len(refs) == 0 {
		return nil
	}
	out := make([]core.AnyKey, 0, len(refs))
	seen := make(map[core.AnyKey]struct{}, len(refs))
	for _, r := range refs {
		if r.Dir != core.Bi {
			continue
		}
		if _, dup := seen[r.Key]; dup {
			continue
		}
		seen[r.Key] = struct{}{}
		out = append(out, r.Key)
	}
	return out
}

// ItemRemoved drives the removal callback. Items that cannot react are
// reported invalid so they never keep a dangling reference.
func (a Any) ItemRemoved(self core.Index, removed core.AnyKey) bool {
	if ra, ok := a.ptr.(RemovalAware); ok {
		return ra.ItemRemoved(self, removed)
	}
	return false
}

// ItemMoved drives the move callback. An item that holds a bidirectional
// reference but cannot rewrite it breaks the protocol.
func (a Any) ItemMoved(old, next core.AnyKey) {
	if ma, ok := a.ptr.(MoveAware); ok {
		ma.ItemMoved(old, next)
		return
	}
	panic(&core.IntegrityError{Op: "move", Key: old, Detail: a.ty.String() + " does not implement item.MoveAware"})
}

// CanMove reports whether the item can rewrite references on compaction.
func (a Any) CanMove() bool {
	_, ok := a.ptr.(MoveAware)
	return ok
}

// Pins reports whether the item pins target.
func (a Any) Pins(target core.AnyKey) bool {
	if p, ok := a.ptr.(Pinner); ok {
		return p.Pins(target)
	}
	return false
}

// Implements reports whether *T satisfies Item.
func Implements[T any]() bool {
	_, ok := any((*T)(nil)).(Item)
	return ok
}
