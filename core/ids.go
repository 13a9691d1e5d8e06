// Package core defines the identifiers shared by every layer of graphkeep:
// typed keys, their erased form, references and edge shapes.
package core

import (
	"fmt"
	"reflect"
)

// Index is a dense identifier for a stored item within one container.
// It is strictly 32-bit. Zero is never issued and marks an unset key.
// Indices may be renumbered by compaction; every renumbering is broadcast
// to the holders of bidirectional references.
type Index uint32

// MaxIndex is the maximum possible value for an Index.
const MaxIndex = ^Index(0)

// IsZero reports whether the index is unset.
func (i Index) IsZero() bool { return i == 0 }

// TypeID is the runtime identity of a Go item type.
// Two TypeIDs are equal iff they name the same type.
type TypeID struct {
	t reflect.Type
}

// TypeOf returns the TypeID of T.
func TypeOf[T any]() TypeID {
	return TypeID{t: reflect.TypeFor[T]()}
}

// IsZero reports whether the TypeID names no type.
func (id TypeID) IsZero() bool { return id.t == nil }

// String returns the Go type name.
func (id TypeID) String() string {
	if id.t == nil {
		return "<none>"
	}
	return id.t.String()
}

// Compare orders TypeIDs by their type name. It is total for the types of one
// program but carries no meaning beyond a stable tie-break.
func (id TypeID) Compare(other TypeID) int {
	a, b := id.String(), other.String()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// GoString implements fmt.GoStringer.
func (id TypeID) GoString() string {
	return fmt.Sprintf("core.TypeID(%s)", id.String())
}
