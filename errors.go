package graphkeep

import (
	"errors"
	"fmt"

	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/shell"
)

var (
	// ErrKeyIsNotInUse is returned for keys that do not name a live item.
	ErrKeyIsNotInUse = shell.ErrKeyIsNotInUse

	// ErrUnsupportedType is returned for item types the store does not host.
	ErrUnsupportedType = shell.ErrUnsupportedType

	// ErrRelinkForbidden is returned when a mutation that may not relink
	// changes the item's bidirectional references.
	ErrRelinkForbidden = shell.ErrRelinkForbidden

	// ErrPinned is returned when a mutation would drop a bidirectional
	// reference that a referrer pins.
	ErrPinned = errors.New("graphkeep: reference is pinned by a referrer")

	// ErrAccessOutstanding is returned when a root token is requested while a
	// conflicting root token is still live.
	ErrAccessOutstanding = errors.New("graphkeep: conflicting access token outstanding")
)

// ErrNotAnItem indicates that a type was hosted that does not implement
// item.Item through its pointer.
type ErrNotAnItem struct {
	Type core.TypeID
}

func (e *ErrNotAnItem) Error() string {
	return fmt.Sprintf("graphkeep: *%s does not implement item.Item", e.Type)
}

// Unwrap allows errors.Is(err, ErrUnsupportedType).
func (e *ErrNotAnItem) Unwrap() error { return ErrUnsupportedType }

// ErrDanglingReference indicates that an item names a bidirectional target
// that is not live.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrDanglingReference struct {
	From   core.AnyKey
	Target core.AnyKey
	cause  error
}

func (e *ErrDanglingReference) Error() string {
	if e.From.IsZero() {
		return fmt.Sprintf("graphkeep: new item references %s that is not live", e.Target)
	}
	return fmt.Sprintf("graphkeep: %s references %s that is not live", e.From, e.Target)
}

func (e *ErrDanglingReference) Unwrap() error { return e.cause }
