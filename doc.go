// Package graphkeep provides an embedded store for graphs of typed items.
//
// Items of any number of Go types live in one Store and reference each
// other by typed keys. A bidirectional reference is mirrored in the target's
// shell, so the store can tell every referrer when its target is removed or
// renumbered, without a tracing collector.
//
// # Quick Start
//
//	s := graphkeep.New()
//	graphkeep.MustHost[City](s)
//	graphkeep.MustHost[Road](s)
//
//	a, _ := shell.Add(s, City{Name: "A"})
//	b, _ := shell.Add(s, City{Name: "B"})
//	road, _ := shell.Add(s, item.NewEdge(a, b, "A1"))
//
// # Integrity Protocol
//
// Removing a key calls ItemRemoved once on every item that references it
// bidirectionally. An item that answers false is removed as well, so removal
// cascades through dependents:
//
//	removed, _ := s.RemoveAny(a.Any()) // a, then road
//
// Compact renumbers the live keys densely and calls ItemMoved once per
// (referrer, moved key) pair before any item changes position. Keys held
// outside the store are stale after compaction.
//
// # Parallel Access
//
// Store.Access hands out the exclusive root token. Split it with the access
// package and give the parts to workers; the split bookkeeping guarantees
// that no two parts can write the same item:
//
//	root, _ := s.Access()
//	cities, _ := access.TakeTy[City](root)
//	roads, _ := access.TakeTy[Road](root)
//	// ... use cities and roads concurrently ...
//	_ = root.Merge(cities)
//	_ = root.Merge(roads)
//	_ = root.Release()
//
// # Observability
//
// Logging goes through a slog based Logger (WithLogger, WithLogLevel) and
// operation counts through a MetricsCollector (WithMetricsCollector).
package graphkeep
