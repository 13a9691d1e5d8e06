package access

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/locality"
	"github.com/hupe1980/graphkeep/shell"
)

// SplitTypes takes one Mut child per type out of a. On refusal every child
// taken so far is merged back.
func SplitTypes[C shell.AnyCollection](a Access[C], ids ...core.TypeID) ([]Access[C], error) {
	parts := make([]Access[C], 0, len(ids))
	for _, id := range ids {
		child, err := a.TakeType(id)
		if err != nil {
			return nil, errors.Join(err, mergeAll(a, parts))
		}
		parts = append(parts, child)
	}
	return parts, nil
}

// SplitChunks takes one Mut child per memory chunk of the container out of a.
// On refusal every child taken so far is merged back.
func SplitChunks[C shell.AnyCollection](a Access[C]) ([]Access[C], error) {
	chunks := a.c.ChunksAny()
	parts := make([]Access[C], 0, len(chunks))
	for _, ch := range chunks {
		r := locality.IDRange(uint64(ch.First.Index), uint64(ch.Last.Index))
		child, err := a.TakeRegion(r)
		if err != nil {
			return nil, errors.Join(err, mergeAll(a, parts))
		}
		parts = append(parts, child)
	}
	return parts, nil
}

func mergeAll[C shell.AnyCollection](a Access[C], parts []Access[C]) error {
	var errs []error
	for _, p := range parts {
		if err := a.Merge(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run runs fn on every part concurrently, at most limit at a time (no limit
// if limit <= 0), and merges every part back into parent once all have
// returned. The first error cancels the context passed to the other parts.
func Run[C shell.AnyCollection](ctx context.Context, parent Access[C], parts []Access[C], limit int, fn func(context.Context, Access[C]) error) error {
	for i, p := range parts {
		if p.n == nil || p.n.parent != parent.n {
			return fmt.Errorf("part %d: %w", i, ErrForeign)
		}
	}
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, p := range parts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, p)
		})
	}
	err := g.Wait()
	return errors.Join(err, mergeAll(parent, parts))
}
