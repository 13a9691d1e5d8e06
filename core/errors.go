package core

import "fmt"

// IntegrityError describes a broken referential-integrity invariant.
//
// It is raised with panic, never returned: it indicates a bug in an item's own
// reference bookkeeping or in a container's dispatch, and continuing would
// leave shells inconsistent.
type IntegrityError struct {
	// Op is the protocol step that detected the violation ("move", "remove", ...).
	Op string
	// Key is the key the violation concerns.
	Key AnyKey
	// Want and Got are set for type mismatches.
	Want TypeID
	Got  TypeID
	// Detail is free-form context.
	Detail string
}

func (e *IntegrityError) Error() string {
	if !e.Want.IsZero() || !e.Got.IsZero() {
		return fmt.Sprintf("integrity violation during %s of %s: expected %s, got %s", e.Op, e.Key, e.Want, e.Got)
	}
	if e.Detail != "" {
		return fmt.Sprintf("integrity violation during %s of %s: %s", e.Op, e.Key, e.Detail)
	}
	return fmt.Sprintf("integrity violation during %s of %s", e.Op, e.Key)
}
