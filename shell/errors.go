package shell

import "errors"

var (
	// ErrKeyIsNotInUse is returned for keys that were never issued, have been
	// removed, or are stale after compaction. Treat it as "not found".
	ErrKeyIsNotInUse = errors.New("key is not in use")

	// ErrUnsupportedType is returned when a lookup names an item type the
	// container does not host.
	ErrUnsupportedType = errors.New("unsupported item type")
)

// ErrRelinkForbidden is returned by MutateAny when a payload-only mutation
// changed the item's bidirectional references.
var ErrRelinkForbidden = errors.New("mutation changed bidirectional references")
