package shell

import (
	"cmp"
	"iter"
	"slices"

	"github.com/hupe1980/graphkeep/core"
)

// Start is a frontier of seed keys for traversal algorithms.
type Start interface {
	// Pop removes and returns the next seed.
	Pop() (core.AnyKey, bool)
	// Iter yields the remaining seeds in pop order without consuming them.
	Iter() iter.Seq[core.AnyKey]
	// Len returns the number of remaining seeds.
	Len() int
}

// Root holds at most one seed and yields it once.
type Root struct {
	key  core.AnyKey
	full bool
}

// RootAt returns a Root seeded with k.
func RootAt(k core.AnyKey) *Root {
	return &Root{key: k, full: true}
}

// Pop implements Start.
func (r *Root) Pop() (core.AnyKey, bool) {
	if !r.full {
		return core.AnyKey{}, false
	}
	r.full = false
	return r.key, true
}

// Iter implements Start.
func (r *Root) Iter() iter.Seq[core.AnyKey] {
	return func(yield func(core.AnyKey) bool) {
		if r.full {
			yield(r.key)
		}
	}
}

// Len implements Start.
func (r *Root) Len() int {
	if r.full {
		return 1
	}
	return 0
}

// Seed is one (priority, key) entry of a Subset.
type Seed[P cmp.Ordered] struct {
	Priority P
	Key      core.AnyKey
	seq      uint64
}

// Subset is a min-priority queue of seeds. Seeds of equal priority pop in
// insertion order.
type Subset[P cmp.Ordered] struct {
	items []Seed[P]
	seq   uint64
}

// NewSubset creates an empty Subset with the given capacity.
func NewSubset[P cmp.Ordered](capacity int) *Subset[P] {
	return &Subset[P]{items: make([]Seed[P], 0, capacity)}
}

// Push inserts a seed while maintaining the heap invariant.
func (s *Subset[P]) Push(priority P, k core.AnyKey) {
	s.items = append(s.items, Seed[P]{Priority: priority, Key: k, seq: s.seq})
	s.seq++
	s.siftUp(len(s.items) - 1)
}

// PopSeed removes and returns the top seed while maintaining the heap invariant.
func (s *Subset[P]) PopSeed() (Seed[P], bool) {
	n := len(s.items)
	if n == 0 {
		return Seed[P]{}, false
	}
	root := s.items[0]
	last := s.items[n-1]
	s.items[n-1] = Seed[P]{}
	s.items = s.items[:n-1]
	if n-1 > 0 {
		s.items[0] = last
		s.siftDown(0)
	}
	return root, true
}

// Pop implements Start.
func (s *Subset[P]) Pop() (core.AnyKey, bool) {
	seed, ok := s.PopSeed()
	return seed.Key, ok
}

// Iter implements Start.
func (s *Subset[P]) Iter() iter.Seq[core.AnyKey] {
	sorted := slices.Clone(s.items)
	slices.SortFunc(sorted, func(a, b Seed[P]) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return func(yield func(core.AnyKey) bool) {
		for _, seed := range sorted {
			if !yield(seed.Key) {
				return
			}
		}
	}
}

// Len implements Start.
func (s *Subset[P]) Len() int { return len(s.items) }

func (s *Subset[P]) less(i, j int) bool {
	a, b := s.items[i], s.items[j]
	if a.Priority != b.Priority {
		return cmp.Less(a.Priority, b.Priority)
	}
	return a.seq < b.seq
}

func (s *Subset[P]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !s.less(i, p) {
			return
		}
		s.items[i], s.items[p] = s.items[p], s.items[i]
		i = p
	}
}

func (s *Subset[P]) siftDown(i int) {
	n := len(s.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && s.less(r, l) {
			best = r
		}
		if !s.less(best, i) {
			return
		}
		s.items[i], s.items[best] = s.items[best], s.items[i]
		i = best
	}
}
