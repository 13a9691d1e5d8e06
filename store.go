package graphkeep

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/graphkeep/access"
	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/internal/container"
	"github.com/hupe1980/graphkeep/item"
	"github.com/hupe1980/graphkeep/shell"
)

// ErrFull is returned when every key index has been issued. Compact frees
// the indices of removed items.
var ErrFull = errors.New("graphkeep: key space exhausted")

type typeInfo struct {
	id core.TypeID
	// snapshot copies the value behind ptr and returns a func restoring it.
	// The copy is shallow unless *T implements item.Cloner.
	snapshot func(ptr any) func()
}

type slot struct {
	info  *typeInfo
	item  item.Any
	shell shell.Shell
	out   []core.AnyKey // bidirectional targets as last linked
}

// Store is an in-memory container hosting items of several types. It
// implements shell.MutCollection.
//
// Keys are issued from one index space shared by every hosted type, starting
// at 1, so ascending iteration visits items in insertion order until the
// store is compacted.
//
// Store methods are not safe for concurrent use on their own. Concurrent
// workers go through tokens obtained from Access or Read and split with the
// access package; disjoint tokens never touch the same item.
type Store struct {
	opts  options
	types map[core.TypeID]*typeInfo
	slots *container.SegmentedArray[slot]
	live  *roaring.Bitmap
	next  core.Index // zero once the index space is exhausted

	mu    sync.Mutex
	roots int // -1 while a Mut root is out, else the number of Ref roots
}

// New creates an empty store.
func New(optFns ...Option) *Store {
	o := applyOptions(optFns)
	s := &Store{
		opts:  o,
		types: make(map[core.TypeID]*typeInfo),
		slots: container.NewSegmentedArray[slot](o.segmentBits),
		live:  roaring.New(),
		next:  1,
	}
	if o.initialCapacity > 0 {
		// Touching the last slot allocates every segment up to it.
		s.slots.Set(uint32(o.initialCapacity), slot{})
	}
	return s
}

// Host registers T as an item type of s. *T must implement item.Item.
// Hosting a type twice is a no-op. Host must not run concurrently with
// other use of s.
func Host[T any](s *Store) error {
	id := core.TypeOf[T]()
	if _, ok := s.types[id]; ok {
		return nil
	}
	if !item.Implements[T]() {
		return &ErrNotAnItem{Type: id}
	}
	s.types[id] = &typeInfo{
		id: id,
		snapshot: func(ptr any) func() {
			p := ptr.(*T)
			saved := *p
			if c, ok := any(p).(item.Cloner[T]); ok {
				saved = c.Clone()
			}
			return func() { *p = saved }
		},
	}
	s.opts.logger.Debug("type hosted", "type", id.String())
	return nil
}

// MustHost is like Host but panics on error.
func MustHost[T any](s *Store) {
	if err := Host[T](s); err != nil {
		panic(err)
	}
}

// Hosts implements shell.AnyCollection.
func (s *Store) Hosts(ty core.TypeID) bool {
	_, ok := s.types[ty]
	return ok
}

// Len implements shell.AnyCollection.
func (s *Store) Len() int { return int(s.live.GetCardinality()) }

func (s *Store) keyAt(idx uint32) core.AnyKey {
	return core.AnyKey{Type: s.slots.Ref(idx).info.id, Index: core.Index(idx)}
}

func (s *Store) lookup(k core.AnyKey) *slot {
	if k.IsZero() || !s.live.Contains(uint32(k.Index)) {
		return nil
	}
	sl := s.slots.Ref(uint32(k.Index))
	if sl == nil || sl.info == nil || sl.info.id != k.Type {
		return nil
	}
	return sl
}

// FirstKeyAny implements shell.AnyCollection.
func (s *Store) FirstKeyAny() (core.AnyKey, bool) {
	if s.live.IsEmpty() {
		return core.AnyKey{}, false
	}
	return s.keyAt(s.live.Minimum()), true
}

// NextKeyAny implements shell.AnyCollection. k itself need not be live.
func (s *Store) NextKeyAny(k core.AnyKey) (core.AnyKey, bool) {
	if k.Index >= core.MaxIndex {
		return core.AnyKey{}, false
	}
	it := s.live.Iterator()
	it.AdvanceIfNeeded(uint32(k.Index) + 1)
	if !it.HasNext() {
		return core.AnyKey{}, false
	}
	return s.keyAt(it.Next()), true
}

// GetAny implements shell.AnyCollection.
func (s *Store) GetAny(k core.AnyKey) (shell.AnyEntry, error) {
	if !s.Hosts(k.Type) {
		return shell.AnyEntry{}, fmt.Errorf("%w: %s", ErrUnsupportedType, k.Type)
	}
	sl := s.lookup(k)
	if sl == nil {
		return shell.AnyEntry{}, fmt.Errorf("%w: %s", ErrKeyIsNotInUse, k)
	}
	return shell.AnyEntry{Key: k, Item: sl.item, Shell: &sl.shell}, nil
}

// ChunksAny implements shell.AnyCollection. A chunk is a maximal run of
// consecutive live indices inside one storage segment.
func (s *Store) ChunksAny() []shell.Chunk {
	var (
		out         []shell.Chunk
		first, prev uint32
		open        bool
	)
	it := s.live.Iterator()
	for it.HasNext() {
		idx := it.Next()
		if open && idx == prev+1 && s.slots.SegmentOf(idx) == s.slots.SegmentOf(prev) {
			prev = idx
			continue
		}
		if open {
			out = append(out, shell.Chunk{First: s.keyAt(first), Last: s.keyAt(prev)})
		}
		first, prev, open = idx, idx, true
	}
	if open {
		out = append(out, shell.Chunk{First: s.keyAt(first), Last: s.keyAt(prev)})
	}
	return out
}

// AddAny implements shell.MutCollection. The store keeps v's pointer.
func (s *Store) AddAny(v item.Any) (k core.AnyKey, err error) {
	start := time.Now()
	var links int
	defer func() {
		s.opts.metricsCollector.RecordAdd(time.Since(start), err)
		s.opts.logger.LogAdd(v.Type(), k, links, err)
	}()

	info, ok := s.types[v.Type()]
	if !ok {
		return core.AnyKey{}, fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
	if v.IsZero() {
		return core.AnyKey{}, fmt.Errorf("graphkeep: nil %s", v.Type())
	}
	if s.next == 0 {
		// Wrapped after issuing MaxIndex.
		return core.AnyKey{}, ErrFull
	}
	key := core.AnyKey{Type: info.id, Index: s.next}
	targets := v.BiReferences(key.Index)
	for _, t := range targets {
		if t != key && s.lookup(t) == nil {
			return core.AnyKey{}, &ErrDanglingReference{Target: t, cause: ErrKeyIsNotInUse}
		}
	}

	s.slots.Set(uint32(key.Index), slot{info: info, item: v, out: targets})
	s.live.Add(uint32(key.Index))
	s.next++
	for _, t := range targets {
		s.lookup(t).shell.Link(key)
	}
	links = len(targets)
	return key, nil
}

// RemoveAny implements shell.MutCollection.
//
// Every live bidirectional referrer of a removed item receives exactly one
// ItemRemoved call naming it. Referrers that report themselves invalid are
// removed in turn. A referrer that reports itself valid must have stopped
// referencing every removed key. The store is only changed once all
// surviving referrers have been checked.
func (s *Store) RemoveAny(k core.AnyKey) (removed []core.AnyKey, err error) {
	start := time.Now()
	var notified int
	defer func() {
		s.opts.metricsCollector.RecordRemove(len(removed), notified, time.Since(start), err)
		s.opts.logger.LogRemove(k, len(removed), notified, err)
	}()
	defer s.logViolation()

	if !s.Hosts(k.Type) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, k.Type)
	}
	if s.lookup(k) == nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyIsNotInUse, k)
	}

	queue := []core.AnyKey{k}
	doomed := map[core.AnyKey]struct{}{k: {}}
	gone := make(map[core.AnyKey]struct{})
	var survivors []core.AnyKey
	kept := make(map[core.AnyKey]struct{})
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		gone[cur] = struct{}{}
		removed = append(removed, cur)

		for _, r := range s.lookup(cur).shell.FromKeys() {
			if _, done := gone[r]; done {
				continue
			}
			rs := s.lookup(r)
			if rs == nil {
				continue
			}
			notified++
			valid := rs.item.ItemRemoved(r.Index, cur)
			if _, lost := doomed[r]; lost {
				continue
			}
			if !valid {
				doomed[r] = struct{}{}
				queue = append(queue, r)
				continue
			}
			if _, ok := kept[r]; !ok {
				kept[r] = struct{}{}
				survivors = append(survivors, r)
			}
		}
	}

	next := make([][]core.AnyKey, len(survivors))
	for i, r := range survivors {
		if _, lost := doomed[r]; lost {
			continue
		}
		next[i] = s.checkSurvivor(r, doomed)
	}

	for _, cur := range removed {
		for _, t := range s.lookup(cur).out {
			if _, lost := doomed[t]; lost {
				continue
			}
			if ts := s.lookup(t); ts != nil {
				ts.shell.Unlink(cur)
			}
		}
	}
	for _, cur := range removed {
		*s.slots.Ref(uint32(cur.Index)) = slot{}
		s.live.Remove(uint32(cur.Index))
	}
	for i, r := range survivors {
		if _, lost := doomed[r]; lost {
			continue
		}
		rs := s.lookup(r)
		s.relink(r, rs.out, next[i])
		rs.out = next[i]
	}
	return removed, nil
}

// checkSurvivor returns the bidirectional targets of r after it accepted a
// removal. It panics if r still references a doomed key or picked up a dead
// one.
func (s *Store) checkSurvivor(r core.AnyKey, doomed map[core.AnyKey]struct{}) []core.AnyKey {
	rs := s.lookup(r)
	next := rs.item.BiReferences(r.Index)
	for _, t := range next {
		if _, lost := doomed[t]; lost {
			s.violate(&core.IntegrityError{Op: "remove", Key: r, Detail: "still references removed " + t.String()})
		}
		if t != r && !slices.Contains(rs.out, t) && s.lookup(t) == nil {
			s.violate(&core.IntegrityError{Op: "remove", Key: r, Detail: "relinked to dead " + t.String()})
		}
	}
	return next
}

// relink applies the difference between two target lists of k.
func (s *Store) relink(k core.AnyKey, before, after []core.AnyKey) {
	for _, t := range before {
		if !slices.Contains(after, t) {
			if ts := s.lookup(t); ts != nil {
				ts.shell.Unlink(k)
			}
		}
	}
	for _, t := range after {
		if !slices.Contains(before, t) {
			s.lookup(t).shell.Link(k)
		}
	}
}

func sameTargets(a, b []core.AnyKey) bool {
	if len(a) != len(b) {
		return false
	}
	for _, t := range a {
		if !slices.Contains(b, t) {
			return false
		}
	}
	return true
}

// MutateAny implements shell.MutCollection.
//
// fn works on the stored value in place. If fn fails, or its change is
// rejected, the value is restored from a copy taken beforehand. Dropping a
// target the item pins is rejected with ErrPinned.
//
// The copy is shallow unless the item implements item.Cloner. A restore that
// leaves the bidirectional references changed panics with
// *core.IntegrityError, since the shells no longer describe the item.
func (s *Store) MutateAny(k core.AnyKey, relink bool, fn func(item.Any) error) (err error) {
	start := time.Now()
	var relinked bool
	defer func() {
		s.opts.metricsCollector.RecordMutate(time.Since(start), err)
		s.opts.logger.LogMutate(k, relinked, err)
	}()
	defer s.logViolation()

	if !s.Hosts(k.Type) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, k.Type)
	}
	sl := s.lookup(k)
	if sl == nil {
		return fmt.Errorf("%w: %s", ErrKeyIsNotInUse, k)
	}

	var pinned []core.AnyKey
	for _, t := range sl.out {
		if sl.item.Pins(t) {
			pinned = append(pinned, t)
		}
	}
	restore := sl.info.snapshot(sl.item.Ptr())
	rollback := func() {
		restore()
		if !sameTargets(sl.out, sl.item.BiReferences(k.Index)) {
			s.violate(&core.IntegrityError{Op: "mutate", Key: k, Detail: "rollback left references changed; implement item.Cloner"})
		}
	}
	if err := fn(sl.item); err != nil {
		rollback()
		return err
	}

	after := sl.item.BiReferences(k.Index)
	if sameTargets(sl.out, after) {
		return nil
	}
	if !relink {
		rollback()
		return fmt.Errorf("%w: %s", ErrRelinkForbidden, k)
	}
	for _, t := range pinned {
		if !slices.Contains(after, t) {
			rollback()
			return fmt.Errorf("%w: %s pins %s", ErrPinned, k, t)
		}
	}
	for _, t := range after {
		if t != k && !slices.Contains(sl.out, t) && s.lookup(t) == nil {
			rollback()
			return &ErrDanglingReference{From: k, Target: t, cause: ErrKeyIsNotInUse}
		}
	}
	s.relink(k, sl.out, after)
	sl.out = after
	relinked = true
	return nil
}

// Compact implements shell.MutCollection.
//
// Live items keep their relative order and are renumbered to 1..Len. Every
// bidirectional referrer of a moved item, including the item itself for a
// self reference, receives exactly one ItemMoved call for it. Referrers are
// checked for MoveAware before the first call, and the rewritten references
// are checked before any item changes position. Shells are then rebuilt.
func (s *Store) Compact() (map[core.AnyKey]core.AnyKey, error) {
	start := time.Now()
	defer s.logViolation()

	indices := s.live.ToArray()
	moved := make(map[core.AnyKey]core.AnyKey)
	order := make([]core.AnyKey, 0)
	for i, idx := range indices {
		if idx == uint32(i+1) {
			continue
		}
		old := s.keyAt(idx)
		moved[old] = core.AnyKey{Type: old.Type, Index: core.Index(i + 1)}
		order = append(order, old)
	}
	if len(moved) == 0 {
		s.next = core.Index(len(indices) + 1)
		return moved, nil
	}

	for _, old := range order {
		for _, r := range s.lookup(old).shell.FromKeys() {
			if !s.lookup(r).item.CanMove() {
				s.violate(&core.IntegrityError{Op: "compact", Key: r, Detail: "cannot follow the move of " + old.String() + ": not item.MoveAware"})
			}
		}
	}

	notified := 0
	for _, old := range order {
		for _, r := range s.lookup(old).shell.FromKeys() {
			s.lookup(r).item.ItemMoved(old, moved[old])
			notified++
		}
	}

	remap := func(k core.AnyKey) core.AnyKey {
		if next, ok := moved[k]; ok {
			return next
		}
		return k
	}
	outs := make([][]core.AnyKey, len(indices))
	for i, idx := range indices {
		sl := s.slots.Ref(idx)
		want := make([]core.AnyKey, len(sl.out))
		for j, t := range sl.out {
			want[j] = remap(t)
		}
		to := core.Index(i + 1)
		if !sameTargets(want, sl.item.BiReferences(to)) {
			s.violate(&core.IntegrityError{Op: "compact", Key: s.keyAt(idx), Detail: "references diverged from the renumbering"})
		}
		outs[i] = want
	}

	for i, idx := range indices {
		to := uint32(i + 1)
		sl := s.slots.Ref(idx)
		if idx != to {
			*s.slots.Ref(to) = *sl
			*sl = slot{}
			sl = s.slots.Ref(to)
		}
		sl.shell = shell.Shell{}
		sl.out = outs[i]
	}
	n := uint32(len(indices))
	s.live.Clear()
	s.live.AddRange(1, uint64(n)+1)
	s.next = core.Index(n + 1)
	s.slots.Truncate(n + 1)

	for idx := uint32(1); idx <= n; idx++ {
		sl := s.slots.Ref(idx)
		k := core.AnyKey{Type: sl.info.id, Index: core.Index(idx)}
		for _, t := range sl.out {
			s.lookup(t).shell.Link(k)
		}
	}

	s.opts.metricsCollector.RecordCompact(len(moved), notified, time.Since(start))
	s.opts.logger.LogCompact(int(n), len(moved), notified)
	return moved, nil
}

func (s *Store) violate(err *core.IntegrityError) {
	panic(err)
}

// logViolation logs an integrity panic on its way out.
func (s *Store) logViolation() {
	if r := recover(); r != nil {
		if ie, ok := r.(*core.IntegrityError); ok {
			s.opts.logger.LogIntegrity(ie)
		}
		panic(r)
	}
}

// Access issues the exclusive root token. It fails while any other root
// token is live. Release the token to give the store back.
func (s *Store) Access() (access.Access[*Store], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roots != 0 {
		return access.Access[*Store]{}, ErrAccessOutstanding
	}
	s.roots = -1
	return access.NewGuardedRoot(s, access.Mut, func() {
		s.mu.Lock()
		s.roots = 0
		s.mu.Unlock()
	}), nil
}

// Read issues a shared root token. Any number of them may be live at once,
// but not together with the exclusive one.
func (s *Store) Read() (access.Access[*Store], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roots < 0 {
		return access.Access[*Store]{}, ErrAccessOutstanding
	}
	s.roots++
	return access.NewGuardedRoot(s, access.Ref, func() {
		s.mu.Lock()
		s.roots--
		s.mu.Unlock()
	}), nil
}

var _ shell.MutCollection = (*Store)(nil)
