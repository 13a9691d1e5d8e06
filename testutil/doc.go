// Package testutil provides testing utilities for graphkeep.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG for random graph shapes and a handful of item
// types with well-known integrity behavior.
//
// # Random Graphs
//
//	rng := testutil.NewRNG(seed)
//	edges := rng.Graph(100, 3) // edges[i] lists the targets of node i
//
// # Fixture Items
//
//   - Node drops a removed link and stays valid.
//   - Owned cascades when its owner is removed.
//   - Leaf references nothing.
package testutil
