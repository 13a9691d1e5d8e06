package shell

import (
	"fmt"
	"iter"

	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/item"
)

// Collection is the typed view of a container for items of type T: append by
// key and lookup by key.
type Collection[T any] struct {
	c AnyCollection
}

// Of returns the typed view of c for T.
func Of[T any](c AnyCollection) Collection[T] {
	return Collection[T]{c: c}
}

// Get returns the entry for k.
func (col Collection[T]) Get(k core.Key[T]) (RefEntry[T], error) {
	return Get(col.c, k)
}

// Add stores v and returns its key.
// The view must be backed by a MutCollection.
func (col Collection[T]) Add(v T) (core.Key[T], error) {
	mc, ok := col.c.(MutCollection)
	if !ok {
		return core.Key[T]{}, fmt.Errorf("shell: %T is read-only", col.c)
	}
	return Add(mc, v)
}

// AddClone stores a shallow copy of *v and returns its key.
func (col Collection[T]) AddClone(v *T) (core.Key[T], error) {
	return col.Add(*v)
}

// Iter walks the items of type T in container order.
func (col Collection[T]) Iter() iter.Seq2[core.Key[T], RefEntry[T]] {
	return Iter[T](col.c)
}

// Add stores v in c and returns its key.
func Add[T any](c MutCollection, v T) (core.Key[T], error) {
	p := new(T)
	*p = v
	k, err := c.AddAny(item.Erase(p))
	if err != nil {
		return core.Key[T]{}, err
	}
	return core.KeyAt[T](k.Index), nil
}

// AddClone stores a shallow copy of *v in c and returns its key.
func AddClone[T any](c MutCollection, v *T) (core.Key[T], error) {
	return Add(c, *v)
}

// Get looks up k in c.
func Get[T any](c AnyCollection, k core.Key[T]) (RefEntry[T], error) {
	e, err := c.GetAny(k.Any())
	if err != nil {
		return RefEntry[T]{}, err
	}
	re, ok := DowncastEntry[T](e)
	if !ok {
		return RefEntry[T]{}, fmt.Errorf("%w: %s holds %s", ErrKeyIsNotInUse, k, e.Item.Type())
	}
	return re, nil
}

// Mutate runs fn on the item stored under k. See MutCollection.MutateAny for
// the meaning of relink.
func Mutate[T any](c MutCollection, k core.Key[T], relink bool, fn func(MutEntry[T]) error) error {
	e, err := c.GetAny(k.Any())
	if err != nil {
		return err
	}
	return c.MutateAny(k.Any(), relink, func(a item.Any) error {
		p, ok := item.Downcast[T](a)
		if !ok {
			return fmt.Errorf("%w: %s holds %s", ErrKeyIsNotInUse, k, a.Type())
		}
		return fn(NewMutEntry(k, p, e.Shell))
	})
}

// IterAny walks every live entry of c in ascending key order. Entries that
// vanish during the walk are skipped.
func IterAny(c AnyCollection) iter.Seq2[core.AnyKey, AnyEntry] {
	return func(yield func(core.AnyKey, AnyEntry) bool) {
		for k, ok := c.FirstKeyAny(); ok; k, ok = c.NextKeyAny(k) {
			e, err := c.GetAny(k)
			if err != nil {
				continue
			}
			if !yield(k, e) {
				return
			}
		}
	}
}

// Iter walks the entries of type T in ascending key order.
func Iter[T any](c AnyCollection) iter.Seq2[core.Key[T], RefEntry[T]] {
	return func(yield func(core.Key[T], RefEntry[T]) bool) {
		for _, e := range IterAny(c) {
			re, ok := DowncastEntry[T](e)
			if !ok {
				continue
			}
			if !yield(re.Key, re) {
				return
			}
		}
	}
}

// Keys collects every live key of c in ascending order.
func Keys(c AnyCollection) []core.AnyKey {
	out := make([]core.AnyKey, 0, c.Len())
	for k, ok := c.FirstKeyAny(); ok; k, ok = c.NextKeyAny(k) {
		out = append(out, k)
	}
	return out
}
