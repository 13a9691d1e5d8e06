package access

import (
	"fmt"

	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/item"
	"github.com/hupe1980/graphkeep/shell"
)

// RefItemSlot is a read view of one item together with the allocator
// (container) it lives in.
type RefItemSlot[T, A any] struct {
	Key   core.Key[T]
	Item  *T
	Alloc A
}

// RefShellSlot is a read view of one item's shell together with its
// allocator.
type RefShellSlot[T, A any] struct {
	Key   core.Key[T]
	Shell *shell.Shell
	Alloc A
}

// AnyItemSlot is an erased RefItemSlot. It remembers the runtime type of its
// allocator so it can be downcast again.
type AnyItemSlot struct {
	Key       core.AnyKey
	Item      item.Any
	Alloc     any
	allocType core.TypeID
}

// AnyShellSlot is an erased RefShellSlot.
type AnyShellSlot struct {
	Key       core.AnyKey
	Shell     *shell.Shell
	Alloc     any
	allocType core.TypeID
}

// NewAnyItemSlot builds an erased item slot whose allocator is tagged with
// allocType.
func NewAnyItemSlot(k core.AnyKey, it item.Any, alloc any, allocType core.TypeID) AnyItemSlot {
	return AnyItemSlot{Key: k, Item: it, Alloc: alloc, allocType: allocType}
}

// NewAnyShellSlot builds an erased shell slot whose allocator is tagged with
// allocType.
func NewAnyShellSlot(k core.AnyKey, s *shell.Shell, alloc any, allocType core.TypeID) AnyShellSlot {
	return AnyShellSlot{Key: k, Shell: s, Alloc: alloc, allocType: allocType}
}

// AllocType returns the allocator's runtime type tag.
func (s AnyItemSlot) AllocType() core.TypeID { return s.allocType }

// AllocType returns the allocator's runtime type tag.
func (s AnyShellSlot) AllocType() core.TypeID { return s.allocType }

// Upcast erases the slot. It always succeeds.
func (s RefItemSlot[T, A]) Upcast() AnyItemSlot {
	return NewAnyItemSlot(s.Key.Any(), item.Erase(s.Item), s.Alloc, core.TypeOf[A]())
}

// Upcast erases the slot. It always succeeds.
func (s RefShellSlot[T, A]) Upcast() AnyShellSlot {
	return NewAnyShellSlot(s.Key.Any(), s.Shell, s.Alloc, core.TypeOf[A]())
}

// DowncastItem recovers a typed item slot. It fails if either the item's or
// the allocator's runtime type tag does not match.
func DowncastItem[T, A any](s AnyItemSlot) (RefItemSlot[T, A], bool) {
	if s.allocType != core.TypeOf[A]() || !s.Key.Is(core.TypeOf[T]()) {
		return RefItemSlot[T, A]{}, false
	}
	p, ok := item.Downcast[T](s.Item)
	if !ok {
		return RefItemSlot[T, A]{}, false
	}
	alloc, ok := s.Alloc.(A)
	if !ok {
		return RefItemSlot[T, A]{}, false
	}
	return RefItemSlot[T, A]{Key: core.KeyAt[T](s.Key.Index), Item: p, Alloc: alloc}, true
}

// DowncastShell recovers a typed shell slot. It fails if either the key's or
// the allocator's runtime type tag does not match.
func DowncastShell[T, A any](s AnyShellSlot) (RefShellSlot[T, A], bool) {
	if s.allocType != core.TypeOf[A]() || !s.Key.Is(core.TypeOf[T]()) {
		return RefShellSlot[T, A]{}, false
	}
	alloc, ok := s.Alloc.(A)
	if !ok {
		return RefShellSlot[T, A]{}, false
	}
	return RefShellSlot[T, A]{Key: core.KeyAt[T](s.Key.Index), Shell: s.Shell, Alloc: alloc}, true
}

func (a Access[C]) single(id core.TypeID) error {
	got, ok := a.Types().Single()
	if !ok || got != id {
		return fmt.Errorf("%w: %s is not narrowed to %s", ErrCoverage, a, id)
	}
	return nil
}

// ItemSlot returns the item slot for k. a must be narrowed to T.
func ItemSlot[T any, C shell.AnyCollection](a Access[C], k core.Key[T]) (RefItemSlot[T, C], error) {
	if err := a.single(core.TypeOf[T]()); err != nil {
		return RefItemSlot[T, C]{}, err
	}
	e, err := Get(a, k)
	if err != nil {
		return RefItemSlot[T, C]{}, err
	}
	return RefItemSlot[T, C]{Key: k, Item: e.Item, Alloc: a.c}, nil
}

// ShellSlot returns the shell slot for k. a must be narrowed to T.
func ShellSlot[T any, C shell.AnyCollection](a Access[C], k core.Key[T]) (RefShellSlot[T, C], error) {
	if err := a.single(core.TypeOf[T]()); err != nil {
		return RefShellSlot[T, C]{}, err
	}
	e, err := Get(a, k)
	if err != nil {
		return RefShellSlot[T, C]{}, err
	}
	return RefShellSlot[T, C]{Key: k, Shell: e.Shell, Alloc: a.c}, nil
}
