package access

import (
	"iter"

	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/item"
	"github.com/hupe1980/graphkeep/shell"
)

// GetAny looks up k if the token covers it.
func (a Access[C]) GetAny(k core.AnyKey) (shell.AnyEntry, error) {
	if err := a.readable(k); err != nil {
		return shell.AnyEntry{}, err
	}
	return a.c.GetAny(k)
}

// IterAny walks the covered entries in ascending key order.
func (a Access[C]) IterAny() iter.Seq2[core.AnyKey, shell.AnyEntry] {
	return func(yield func(core.AnyKey, shell.AnyEntry) bool) {
		for k, e := range shell.IterAny(a.c) {
			if a.readable(k) != nil {
				continue
			}
			if !yield(k, e) {
				return
			}
		}
	}
}

// Keys collects the covered keys in ascending order.
func (a Access[C]) Keys() []core.AnyKey {
	var out []core.AnyKey
	for k, ok := a.c.FirstKeyAny(); ok; k, ok = a.c.NextKeyAny(k) {
		if a.readable(k) == nil {
			out = append(out, k)
		}
	}
	return out
}

// Get looks up k through a.
func Get[T any, C shell.AnyCollection](a Access[C], k core.Key[T]) (shell.RefEntry[T], error) {
	if err := a.readable(k.Any()); err != nil {
		return shell.RefEntry[T]{}, err
	}
	return shell.Get(a.c, k)
}

// Iter walks the covered entries of type T in ascending key order.
func Iter[T any, C shell.AnyCollection](a Access[C]) iter.Seq2[core.Key[T], shell.RefEntry[T]] {
	return func(yield func(core.Key[T], shell.RefEntry[T]) bool) {
		if !a.Types().Allows(core.TypeOf[T]()) {
			return
		}
		for k, e := range shell.Iter[T](a.c) {
			if a.readable(k.Any()) != nil {
				continue
			}
			if !yield(k, e) {
				return
			}
		}
	}
}

// Mutate runs fn on the item under k. Changing the item's bidirectional
// references touches other items' shells, so it is only allowed through a
// token that holds the whole container; otherwise the change is undone and
// shell.ErrRelinkForbidden is returned.
func Mutate[T any, C shell.AnyCollection](a Access[C], k core.Key[T], fn func(shell.MutEntry[T]) error) error {
	if err := a.writable(k.Any()); err != nil {
		return err
	}
	mc, err := a.mut()
	if err != nil {
		return err
	}
	return shell.Mutate(mc, k, a.whole(), fn)
}

// MutateAny is the erased form of Mutate.
func (a Access[C]) MutateAny(k core.AnyKey, fn func(item.Any) error) error {
	if err := a.writable(k); err != nil {
		return err
	}
	mc, err := a.mut()
	if err != nil {
		return err
	}
	return mc.MutateAny(k, a.whole(), fn)
}

// Add stores v. It needs a token that holds the whole container.
func Add[T any, C shell.AnyCollection](a Access[C], v T) (core.Key[T], error) {
	if err := a.structural(); err != nil {
		return core.Key[T]{}, err
	}
	mc, err := a.mut()
	if err != nil {
		return core.Key[T]{}, err
	}
	return shell.Add(mc, v)
}

// AddAny is the erased form of Add.
func (a Access[C]) AddAny(v item.Any) (core.AnyKey, error) {
	if err := a.structural(); err != nil {
		return core.AnyKey{}, err
	}
	mc, err := a.mut()
	if err != nil {
		return core.AnyKey{}, err
	}
	return mc.AddAny(v)
}

// Remove removes k and everything that cascades from it. It needs a token
// that holds the whole container.
func (a Access[C]) Remove(k core.AnyKey) ([]core.AnyKey, error) {
	if err := a.structural(); err != nil {
		return nil, err
	}
	mc, err := a.mut()
	if err != nil {
		return nil, err
	}
	return mc.RemoveAny(k)
}

// Compact renumbers the container. It needs a token that holds the whole
// container.
func (a Access[C]) Compact() (map[core.AnyKey]core.AnyKey, error) {
	if err := a.structural(); err != nil {
		return nil, err
	}
	mc, err := a.mut()
	if err != nil {
		return nil, err
	}
	return mc.Compact()
}
