package access

import (
	"fmt"

	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/locality"
	"github.com/hupe1980/graphkeep/shell"
)

// TypesSplit relabels a token that covers all types as one covering only T.
// It always succeeds; a token that is already narrower is returned as is.
// A released token is returned as is too, and every operation through it
// fails with ErrReleased.
func TypesSplit[T any, C shell.AnyCollection](a Access[C]) Access[C] {
	id := core.TypeOf[T]()
	_ = a.n.update(func(cur *coverage) (*coverage, error) {
		if !cur.types.IsAll() {
			return cur, nil
		}
		next := cur.clone()
		next.types = Only(id)
		return next, nil
	})
	return a
}

// Ty narrows a to exactly type D. It reports false if D is not covered or,
// for a Mut token, if the token is already lent or shared.
func Ty[D any, C shell.AnyCollection](a Access[C]) (Access[C], bool) {
	child, err := a.narrow(core.TypeOf[D]())
	return child, err == nil
}

// TyTry is like Ty but explains a refusal. The error wraps ErrRefused or
// ErrReleased.
func TyTry[D any, C shell.AnyCollection](a Access[C]) (Access[C], error) {
	return a.narrow(core.TypeOf[D]())
}

// TakeTy moves type T out of the Mut token a into a new Mut token. A second
// TakeTy for the same T is refused until the first child is released.
func TakeTy[T any, C shell.AnyCollection](a Access[C]) (Access[C], error) {
	return a.TakeType(core.TypeOf[T]())
}

func (a Access[C]) narrow(id core.TypeID) (Access[C], error) {
	var child *coverage
	err := a.n.update(func(cur *coverage) (*coverage, error) {
		if !cur.types.Allows(id) {
			return nil, fmt.Errorf("%w: %s not in %s", ErrRefused, id, cur.types)
		}
		child = &coverage{
			types:     SingleType(id),
			region:    cur.region,
			inherited: cur.exclusions(),
		}
		next := cur.clone()
		if a.n.perm == Mut {
			if cur.lent || cur.shared > 0 {
				return nil, fmt.Errorf("%w: %s is in use", ErrRefused, a)
			}
			next.lent = true
		}
		next.children++
		return next, nil
	})
	if err != nil {
		return Access[C]{}, err
	}
	origin := originAlias
	if a.n.perm == Mut {
		origin = originTy
	}
	n := newNode(a.n.perm, a.n, origin, child)
	n.ty = id
	return Access[C]{c: a.c, n: n}, nil
}

// TakeType moves type id out of the Mut token a into a new Mut token.
func (a Access[C]) TakeType(id core.TypeID) (Access[C], error) {
	if a.n.perm != Mut {
		return Access[C]{}, ErrReadOnly
	}
	var child *coverage
	err := a.n.update(func(cur *coverage) (*coverage, error) {
		switch {
		case cur.lent || cur.shared > 0:
			return nil, fmt.Errorf("%w: %s is in use", ErrRefused, a)
		case !cur.types.Allows(id):
			return nil, fmt.Errorf("%w: %s already taken from %s", ErrRefused, id, a)
		}
		child = &coverage{
			types:     SingleType(id),
			region:    cur.region,
			inherited: cur.exclusions(),
		}
		next := cur.clone()
		next.types = cur.types.Without(id)
		next.children++
		return next, nil
	})
	if err != nil {
		return Access[C]{}, err
	}
	n := newNode(Mut, a.n, originTake, child)
	n.ty = id
	return Access[C]{c: a.c, n: n}, nil
}

// TakeRegion moves the keys in r out of the Mut token a into a new Mut token
// that covers the same types. r must lie within a's region and must not
// overlap any region already claimed.
func (a Access[C]) TakeRegion(r locality.Region) (Access[C], error) {
	if a.n.perm != Mut {
		return Access[C]{}, ErrReadOnly
	}
	if r.IsAny() {
		return Access[C]{}, fmt.Errorf("%w: cannot take the unbounded region", ErrRefused)
	}
	var child *coverage
	err := a.n.update(func(cur *coverage) (*coverage, error) {
		switch {
		case cur.lent || cur.shared > 0:
			return nil, fmt.Errorf("%w: %s is in use", ErrRefused, a)
		case !r.Within(cur.region):
			return nil, fmt.Errorf("%w: %s not within %s", ErrRefused, r, cur.region)
		}
		for _, claimed := range cur.exclusions() {
			if r.Overlaps(claimed) {
				return nil, fmt.Errorf("%w: %s overlaps %s", ErrRefused, r, claimed)
			}
		}
		child = &coverage{
			types:     cur.types,
			region:    r,
			inherited: append([]locality.Region(nil), cur.inherited...),
		}
		next := cur.clone()
		next.claims = append(next.claims, r)
		next.children++
		return next, nil
	})
	if err != nil {
		return Access[C]{}, err
	}
	n := newNode(Mut, a.n, originRegion, child)
	n.region = r
	return Access[C]{c: a.c, n: n}, nil
}

// Shared returns a Ref token over a's current coverage. A Mut parent cannot
// write until the shared token is released.
func (a Access[C]) Shared() (Access[C], error) {
	var child *coverage
	err := a.n.update(func(cur *coverage) (*coverage, error) {
		if a.n.perm == Mut && cur.lent {
			return nil, fmt.Errorf("%w: %s is lent out", ErrRefused, a)
		}
		child = &coverage{
			types:     cur.types,
			region:    cur.region,
			inherited: cur.exclusions(),
		}
		next := cur.clone()
		if a.n.perm == Mut {
			next.shared++
		} else {
			next.children++
		}
		return next, nil
	})
	if err != nil {
		return Access[C]{}, err
	}
	origin := originAlias
	if a.n.perm == Mut {
		origin = originShared
	}
	return Access[C]{c: a.c, n: newNode(Ref, a.n, origin, child)}, nil
}

// Release gives the token's coverage back to its parent, or to the container
// for a root. A token with outstanding children cannot be released.
func (a Access[C]) Release() error {
	err := a.n.update(func(cur *coverage) (*coverage, error) {
		if cur.children > 0 || cur.shared > 0 || cur.lent || len(cur.claims) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrBusy, a)
		}
		next := cur.clone()
		next.released = true
		return next, nil
	})
	if err != nil {
		return err
	}
	if a.n.parent == nil {
		if a.n.onRelease != nil {
			a.n.onRelease()
		}
		return nil
	}
	return a.n.parent.update(func(cur *coverage) (*coverage, error) {
		next := cur.clone()
		switch a.n.origin {
		case originShared:
			next.shared--
			return next, nil
		case originTy:
			next.lent = false
		case originTake:
			next.types = cur.types.With(a.n.ty)
		case originRegion:
			for i, r := range next.claims {
				if r == a.n.region {
					next.claims = append(next.claims[:i], next.claims[i+1:]...)
					break
				}
			}
		}
		next.children--
		return next, nil
	})
}

// Merge releases child back into a. child must have been split from a.
func (a Access[C]) Merge(child Access[C]) error {
	if child.n == nil || child.n.parent != a.n {
		return ErrForeign
	}
	return child.Release()
}
