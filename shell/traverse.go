package shell

import "github.com/hupe1980/graphkeep/core"

// Reachable walks c from the seeds of start along outgoing references and
// returns every live key reached, in visit order. Seeds are visited in
// their own order, then targets breadth-first by hop count.
// Dangling targets are skipped.
func Reachable(c AnyCollection, start Start) []core.AnyKey {
	frontier := NewSubset[int](start.Len())
	for {
		k, ok := start.Pop()
		if !ok {
			break
		}
		frontier.Push(0, k)
	}

	var out []core.AnyKey
	seen := make(map[core.AnyKey]struct{})
	for {
		seed, ok := frontier.PopSeed()
		if !ok {
			return out
		}
		if _, dup := seen[seed.Key]; dup {
			continue
		}
		e, err := c.GetAny(seed.Key)
		if err != nil {
			continue
		}
		seen[seed.Key] = struct{}{}
		out = append(out, seed.Key)
		for _, r := range e.References() {
			if _, dup := seen[r.Key]; !dup {
				frontier.Push(seed.Priority+1, r.Key)
			}
		}
	}
}

// Referrers returns the bidirectional referrers of k that are still live.
func Referrers(c AnyCollection, k core.AnyKey) ([]core.AnyKey, error) {
	e, err := c.GetAny(k)
	if err != nil {
		return nil, err
	}
	var out []core.AnyKey
	for r := range e.From() {
		if _, err := c.GetAny(r); err == nil {
			out = append(out, r)
		}
	}
	return out, nil
}
