package core

import (
	"cmp"
	"fmt"
)

// Key identifies one stored item of type T.
// Equality and ordering are driven solely by the index.
type Key[T any] struct {
	idx Index
}

// KeyAt returns the key of T at the given index.
// Callers outside a container implementation should only use keys handed out
// by a container.
func KeyAt[T any](idx Index) Key[T] {
	return Key[T]{idx: idx}
}

// Index returns the raw index.
func (k Key[T]) Index() Index { return k.idx }

// IsZero reports whether the key is unset.
func (k Key[T]) IsZero() bool { return k.idx == 0 }

// Compare orders keys by index.
func (k Key[T]) Compare(other Key[T]) int { return cmp.Compare(k.idx, other.idx) }

// Less reports whether k sorts before other.
func (k Key[T]) Less(other Key[T]) bool { return k.idx < other.idx }

// Any erases the static type.
func (k Key[T]) Any() AnyKey {
	return AnyKey{Type: TypeOf[T](), Index: k.idx}
}

// String returns a string representation of the key.
func (k Key[T]) String() string {
	return fmt.Sprintf("Key[%s](%d)", TypeOf[T](), k.idx)
}

// AnyKey is the type-erased form of Key. It carries the runtime type tag
// alongside the index.
type AnyKey struct {
	Type  TypeID
	Index Index
}

// IsZero reports whether the key is unset.
func (k AnyKey) IsZero() bool { return k.Index == 0 }

// Is reports whether the key is tagged with T.
func (k AnyKey) Is(id TypeID) bool { return k.Type == id }

// Compare orders erased keys by index, breaking ties by type name.
func (k AnyKey) Compare(other AnyKey) int {
	if c := cmp.Compare(k.Index, other.Index); c != 0 {
		return c
	}
	return k.Type.Compare(other.Type)
}

// String returns a string representation of the key.
func (k AnyKey) String() string {
	return fmt.Sprintf("AnyKey[%s](%d)", k.Type, k.Index)
}

// Downcast narrows an erased key to Key[T]. It fails if the tag names a
// different type.
func Downcast[T any](k AnyKey) (Key[T], bool) {
	if k.Type != TypeOf[T]() {
		return Key[T]{}, false
	}
	return Key[T]{idx: k.Index}, true
}
