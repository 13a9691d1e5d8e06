// Package locality maps hierarchical paths onto address regions used to
// partition a container.
package locality

import "fmt"

// Kind identifies the form of a Region.
type Kind uint8

const (
	// KindAny is the unconstrained region.
	KindAny Kind = iota
	// KindIDRange is an inclusive range over key indices.
	KindIDRange
	// KindIndexRange is an inclusive range over positions in a region dimension.
	KindIndexRange
	// KindIndex is a single position.
	KindIndex
)

// Region is an address-space constraint.
// The zero value is Any.
type Region struct {
	kind     Kind
	from, to uint64
}

// Any returns the unconstrained region.
func Any() Region { return Region{} }

// IDRange returns the inclusive id range [from, to].
func IDRange(from, to uint64) Region {
	if from > to {
		from, to = to, from
	}
	return Region{kind: KindIDRange, from: from, to: to}
}

// IndexRange returns the inclusive index range [from, to].
func IndexRange(from, to uint64) Region {
	if from > to {
		from, to = to, from
	}
	return Region{kind: KindIndexRange, from: from, to: to}
}

// Single returns the region holding exactly one index.
func Single(i uint64) Region {
	return Region{kind: KindIndex, from: i, to: i}
}

// Kind returns the form of the region.
func (r Region) Kind() Kind { return r.kind }

// Bounds returns the inclusive bounds. ok is false for Any.
func (r Region) Bounds() (from, to uint64, ok bool) {
	if r.kind == KindAny {
		return 0, 0, false
	}
	return r.from, r.to, true
}

// IsAny reports whether the region is unconstrained.
func (r Region) IsAny() bool { return r.kind == KindAny }

// Contains reports whether i lies in the region. Any contains everything.
func (r Region) Contains(i uint64) bool {
	if r.kind == KindAny {
		return true
	}
	return i >= r.from && i <= r.to
}

// Overlaps reports whether r and other may share an address.
// Id forms and index forms live in different dimensions, so disjointness
// between them cannot be shown and they are treated as overlapping.
func (r Region) Overlaps(other Region) bool {
	if r.kind == KindAny || other.kind == KindAny {
		return true
	}
	if r.isID() != other.isID() {
		return true
	}
	return r.from <= other.to && other.from <= r.to
}

// Within reports whether r is fully covered by outer.
func (r Region) Within(outer Region) bool {
	if outer.kind == KindAny {
		return true
	}
	if r.kind == KindAny || r.isID() != outer.isID() {
		return false
	}
	return r.from >= outer.from && r.to <= outer.to
}

// isID reports whether the region addresses key ids. Single indices are
// shared by both dimensions and count as ids.
func (r Region) isID() bool {
	return r.kind == KindIDRange || r.kind == KindIndex
}

// String returns a string representation of the region.
func (r Region) String() string {
	switch r.kind {
	case KindAny:
		return "any"
	case KindIDRange:
		return fmt.Sprintf("id[%d..=%d]", r.from, r.to)
	case KindIndexRange:
		return fmt.Sprintf("index[%d..=%d]", r.from, r.to)
	default:
		return fmt.Sprintf("index(%d)", r.from)
	}
}
