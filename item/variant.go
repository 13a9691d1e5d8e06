package item

import "github.com/hupe1980/graphkeep/core"

// Variant is a derived item that points at an original and carries its own
// payload. It pins the original, and it cannot outlive it.
type Variant[T, V any] struct {
	Original core.BiRef[T]
	Value    V
}

// VariantOf returns a variant of original.
func VariantOf[T, V any](original core.Key[T], value V) Variant[T, V] {
	return Variant[T, V]{Original: core.BiTo(original), Value: value}
}

// References implements Item.
func (v *Variant[T, V]) References(core.Index) []core.AnyRef {
	return []core.AnyRef{v.Original.Any()}
}

// ItemRemoved implements RemovalAware. A variant is defined by its
// original: removing the original removes the variant.
func (v *Variant[T, V]) ItemRemoved(_ core.Index, removed core.AnyKey) bool {
	return removed != v.Original.Key.Any()
}

// ItemMoved implements MoveAware.
func (v *Variant[T, V]) ItemMoved(old, next core.AnyKey) {
	v.Original.Moved(old, next)
}

// Pins implements Pinner.
func (v *Variant[T, V]) Pins(target core.AnyKey) bool {
	return target == v.Original.Key.Any()
}
