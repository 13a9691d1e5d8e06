package access

import (
	"maps"
	"slices"
	"strings"

	"github.com/hupe1980/graphkeep/core"
)

type typeMode uint8

const (
	modeAll typeMode = iota
	modeSingle
	modeAllow
	modeDeny
)

// TypeState is the set of item types a token covers: a single type, an
// allow-set, a deny-set (everything but), or all types.
// TypeStates are immutable values.
type TypeState struct {
	mode typeMode
	set  map[core.TypeID]struct{}
}

// AllTypes covers every type.
func AllTypes() TypeState { return TypeState{mode: modeAll} }

// SingleType covers exactly id.
func SingleType(id core.TypeID) TypeState {
	return TypeState{mode: modeSingle, set: map[core.TypeID]struct{}{id: {}}}
}

// Only covers the listed types.
func Only(ids ...core.TypeID) TypeState {
	return TypeState{mode: modeAllow, set: setOf(ids)}
}

// Except covers every type but the listed ones.
func Except(ids ...core.TypeID) TypeState {
	if len(ids) == 0 {
		return AllTypes()
	}
	return TypeState{mode: modeDeny, set: setOf(ids)}
}

func setOf(ids []core.TypeID) map[core.TypeID]struct{} {
	set := make(map[core.TypeID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Allows reports whether id is covered.
func (s TypeState) Allows(id core.TypeID) bool {
	_, in := s.set[id]
	switch s.mode {
	case modeAll:
		return true
	case modeDeny:
		return !in
	default:
		return in
	}
}

// IsAll reports whether every type is covered.
func (s TypeState) IsAll() bool { return s.mode == modeAll }

// Single returns the covered type if exactly one type is covered.
func (s TypeState) Single() (core.TypeID, bool) {
	if (s.mode != modeSingle && s.mode != modeAllow) || len(s.set) != 1 {
		return core.TypeID{}, false
	}
	for id := range s.set {
		return id, true
	}
	return core.TypeID{}, false
}

// IsEmpty reports whether nothing is covered.
func (s TypeState) IsEmpty() bool {
	return (s.mode == modeSingle || s.mode == modeAllow) && len(s.set) == 0
}

// Without returns the state minus id.
func (s TypeState) Without(id core.TypeID) TypeState {
	switch s.mode {
	case modeAll:
		return Except(id)
	case modeDeny:
		set := maps.Clone(s.set)
		set[id] = struct{}{}
		return TypeState{mode: modeDeny, set: set}
	default:
		set := maps.Clone(s.set)
		delete(set, id)
		return TypeState{mode: modeAllow, set: set}
	}
}

// With returns the state plus id.
func (s TypeState) With(id core.TypeID) TypeState {
	switch s.mode {
	case modeAll:
		return s
	case modeDeny:
		set := maps.Clone(s.set)
		delete(set, id)
		if len(set) == 0 {
			return AllTypes()
		}
		return TypeState{mode: modeDeny, set: set}
	default:
		set := maps.Clone(s.set)
		if set == nil {
			set = make(map[core.TypeID]struct{}, 1)
		}
		set[id] = struct{}{}
		return TypeState{mode: modeAllow, set: set}
	}
}

// Disjoint reports whether s and other can be shown to share no type.
func (s TypeState) Disjoint(other TypeState) bool {
	switch {
	case s.mode == modeAll || other.mode == modeAll:
		return s.IsEmpty() || other.IsEmpty()
	case s.mode == modeDeny && other.mode == modeDeny:
		return false
	case s.mode == modeDeny:
		return other.subsetOfSet(s.set)
	case other.mode == modeDeny:
		return s.subsetOfSet(other.set)
	default:
		for id := range s.set {
			if _, in := other.set[id]; in {
				return false
			}
		}
		return true
	}
}

func (s TypeState) subsetOfSet(set map[core.TypeID]struct{}) bool {
	for id := range s.set {
		if _, in := set[id]; !in {
			return false
		}
	}
	return true
}

// String returns a string representation of the state.
func (s TypeState) String() string {
	names := make([]string, 0, len(s.set))
	for id := range s.set {
		names = append(names, id.String())
	}
	slices.Sort(names)
	list := strings.Join(names, ",")
	switch s.mode {
	case modeAll:
		return "all"
	case modeSingle:
		return list
	case modeDeny:
		return "!{" + list + "}"
	default:
		return "{" + list + "}"
	}
}
