package access

import (
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/locality"
	"github.com/hupe1980/graphkeep/shell"
)

// coverage is an immutable snapshot of what a node covers and what it has
// handed out. Nodes swap snapshots with compare-and-swap.
type coverage struct {
	types     TypeState
	region    locality.Region
	inherited []locality.Region // claimed by siblings of an ancestor
	claims    []locality.Region // claimed by direct region children
	lent      bool              // a Ty child narrows the whole node
	shared    int               // outstanding Shared children
	children  int               // outstanding Mut children of any kind
	released  bool
}

func (c *coverage) clone() *coverage {
	next := *c
	next.claims = append([]locality.Region(nil), c.claims...)
	return &next
}

func (c *coverage) excludes(i uint64) bool {
	for _, r := range c.inherited {
		if r.Contains(i) {
			return true
		}
	}
	for _, r := range c.claims {
		if r.Contains(i) {
			return true
		}
	}
	return false
}

func (c *coverage) exclusions() []locality.Region {
	out := make([]locality.Region, 0, len(c.inherited)+len(c.claims))
	out = append(out, c.inherited...)
	return append(out, c.claims...)
}

type originKind uint8

const (
	originRoot originKind = iota
	originAlias
	originTy
	originTake
	originRegion
	originShared
)

type node struct {
	perm      Permission
	parent    *node
	origin    originKind
	ty        core.TypeID
	region    locality.Region
	cov       atomic.Pointer[coverage]
	onRelease func()
}

func newNode(perm Permission, parent *node, origin originKind, cov *coverage) *node {
	n := &node{perm: perm, parent: parent, origin: origin}
	n.cov.Store(cov)
	return n
}

// update applies fn to the current snapshot until the swap succeeds. fn must
// not retain its argument; it returns the replacement or an error.
func (n *node) update(fn func(cur *coverage) (*coverage, error)) error {
	for {
		cur := n.cov.Load()
		if cur.released {
			return ErrReleased
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		if n.cov.CompareAndSwap(cur, next) {
			return nil
		}
	}
}

// Access is a capability token over a container of type C.
// Copies of an Access share the same token.
type Access[C shell.AnyCollection] struct {
	c C
	n *node
}

// NewRoot returns a root token with the given permission covering every type
// and every key of c.
func NewRoot[C shell.AnyCollection](c C, perm Permission) Access[C] {
	return NewGuardedRoot(c, perm, nil)
}

// NewGuardedRoot is like NewRoot but calls onRelease once the root is
// released. Containers use it to track which roots they have issued.
func NewGuardedRoot[C shell.AnyCollection](c C, perm Permission, onRelease func()) Access[C] {
	n := newNode(perm, nil, originRoot, &coverage{types: AllTypes(), region: locality.Any()})
	n.onRelease = onRelease
	return Access[C]{c: c, n: n}
}

// Collection returns the container the token covers.
func (a Access[C]) Collection() C { return a.c }

// Permission returns the token's permission.
func (a Access[C]) Permission() Permission { return a.n.perm }

// Types returns the types the token currently covers.
func (a Access[C]) Types() TypeState { return a.n.cov.Load().types }

// Region returns the key region the token covers.
func (a Access[C]) Region() locality.Region { return a.n.cov.Load().region }

// Released reports whether the token has been released.
func (a Access[C]) Released() bool { return a.n.cov.Load().released }

// IsRoot reports whether the token was issued by a container.
func (a Access[C]) IsRoot() bool { return a.n.parent == nil }

// Covers reports whether the token can currently read k.
func (a Access[C]) Covers(k core.AnyKey) bool {
	return a.readable(k) == nil
}

// String returns a string representation of the token.
func (a Access[C]) String() string {
	cov := a.n.cov.Load()
	return fmt.Sprintf("%s(%s @ %s)", a.n.perm, cov.types, cov.region)
}

func (a Access[C]) readable(k core.AnyKey) error {
	cov := a.n.cov.Load()
	switch {
	case cov.released:
		return ErrReleased
	case a.n.perm == Mut && cov.lent:
		return fmt.Errorf("%w: %s is lent out", ErrCoverage, a)
	case !cov.types.Allows(k.Type):
		return fmt.Errorf("%w: type %s not in %s", ErrCoverage, k.Type, cov.types)
	case !cov.region.Contains(uint64(k.Index)) || cov.excludes(uint64(k.Index)):
		return fmt.Errorf("%w: %s outside region", ErrCoverage, k)
	}
	return nil
}

func (a Access[C]) writable(k core.AnyKey) error {
	if a.n.perm != Mut {
		return ErrReadOnly
	}
	if err := a.readable(k); err != nil {
		return err
	}
	if a.n.cov.Load().shared > 0 {
		return fmt.Errorf("%w: %s has shared readers", ErrCoverage, a)
	}
	return nil
}

// whole reports whether the token holds the entire container with nothing
// handed out. Structural changes need it.
func (a Access[C]) whole() bool {
	cov := a.n.cov.Load()
	return a.n.perm == Mut && !cov.released && cov.types.IsAll() && cov.region.IsAny() &&
		len(cov.inherited) == 0 && len(cov.claims) == 0 && !cov.lent &&
		cov.shared == 0 && cov.children == 0
}

func (a Access[C]) structural() error {
	if a.n.perm != Mut {
		return ErrReadOnly
	}
	if a.n.cov.Load().released {
		return ErrReleased
	}
	if !a.whole() {
		return fmt.Errorf("%w: %s does not hold the whole container", ErrCoverage, a)
	}
	return nil
}

func (a Access[C]) mut() (shell.MutCollection, error) {
	mc, ok := any(a.c).(shell.MutCollection)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrReadOnly, a.c)
	}
	return mc, nil
}
