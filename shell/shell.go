package shell

import (
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphkeep/core"
)

// Shell is the container-side state of one item: the set of keys that
// reference it bidirectionally. It is independent of the item's payload and is
// mutated only by the container.
//
// Referrers are kept in one roaring bitmap per referrer type.
// The zero value is an empty shell.
type Shell struct {
	from map[core.TypeID]*roaring.Bitmap
}

// Link records that referrer holds a bidirectional reference to this item.
// It reports whether the link is new.
func (s *Shell) Link(referrer core.AnyKey) bool {
	if s.from == nil {
		s.from = make(map[core.TypeID]*roaring.Bitmap, 1)
	}
	bm, ok := s.from[referrer.Type]
	if !ok {
		bm = roaring.New()
		s.from[referrer.Type] = bm
	}
	return bm.CheckedAdd(uint32(referrer.Index))
}

// Unlink drops the link from referrer. It reports whether a link existed.
func (s *Shell) Unlink(referrer core.AnyKey) bool {
	bm, ok := s.from[referrer.Type]
	if !ok {
		return false
	}
	removed := bm.CheckedRemove(uint32(referrer.Index))
	if bm.IsEmpty() {
		delete(s.from, referrer.Type)
	}
	return removed
}

// Reset drops every link.
func (s *Shell) Reset() {
	s.from = nil
}

// Contains reports whether referrer is linked.
func (s *Shell) Contains(referrer core.AnyKey) bool {
	bm, ok := s.from[referrer.Type]
	return ok && bm.Contains(uint32(referrer.Index))
}

// Len returns the number of referrers.
func (s *Shell) Len() int {
	n := 0
	for _, bm := range s.from {
		n += int(bm.GetCardinality())
	}
	return n
}

// Referenced reports whether anything references the item bidirectionally.
func (s *Shell) Referenced() bool {
	return len(s.from) > 0
}

// From returns the referrers in ascending key order.
func (s *Shell) From() iter.Seq[core.AnyKey] {
	return func(yield func(core.AnyKey) bool) {
		for _, k := range s.FromKeys() {
			if !yield(k) {
				return
			}
		}
	}
}

// FromKeys returns the referrers in ascending key order as a slice.
func (s *Shell) FromKeys() []core.AnyKey {
	if len(s.from) == 0 {
		return nil
	}
	out := make([]core.AnyKey, 0, s.Len())
	for ty, bm := range s.from {
		it := bm.Iterator()
		for it.HasNext() {
			out = append(out, core.AnyKey{Type: ty, Index: core.Index(it.Next())})
		}
	}
	slices.SortFunc(out, core.AnyKey.Compare)
	return out
}

// Clone returns a deep copy.
func (s *Shell) Clone() Shell {
	if len(s.from) == 0 {
		return Shell{}
	}
	out := Shell{from: make(map[core.TypeID]*roaring.Bitmap, len(s.from))}
	for ty, bm := range s.from {
		out.from[ty] = bm.Clone()
	}
	return out
}
