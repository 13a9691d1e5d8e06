// Package shell defines the storage contract every backing container
// satisfies, and the per-item shell state that tracks incoming
// bidirectional references.
//
// A container stores items under keys. For each bidirectional reference
// A -> B the container links A into B's shell, so back-traversal from B costs
// O(in-degree) instead of a scan. Removal and compaction walk those shells to
// drive the integrity protocol of package item.
//
// # Contract
//
//   - GetAny fails with ErrKeyIsNotInUse for keys never issued, removed or
//     stale, and with ErrUnsupportedType for types the container does not host.
//   - FirstKeyAny/NextKeyAny walk all keys in strictly ascending order. The order
//     is stable while the container is not mutated.
//   - ChunksAny reports maximal runs of keys that are contiguous in memory. It is
//     a hint for bulk processing, not a correctness guarantee.
//   - RemoveAny notifies every bidirectional referrer exactly once and cascades
//     referrers that report themselves invalid.
//   - Compact renumbers keys and broadcasts each renumbering to referrers.
package shell
