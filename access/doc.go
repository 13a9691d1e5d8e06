// Package access provides capability tokens that subdivide the rights to a
// container without locks.
//
// An Access covers a set of item types and an address region with either
// read (Ref) or write (Mut) permission. Tokens are split, not locked: every
// split of a Mut token is accounted on its parent so that no two live Mut
// tokens derived from one root ever cover the same (type, region). Two such
// tokens can be handed to goroutines that run without further
// synchronization, because by construction they cannot reach the same item.
//
// # Splitting
//
//   - TypesSplit relabels an all-types token as a single-type allow-set.
//   - Ty and TyTry narrow a token to exactly one type after checking that the
//     type is covered. On a Mut token the parent is lent to the child until the
//     child is released.
//   - TakeTy moves one type out of a Mut token into a new Mut token. A second
//     TakeTy for the same type fails until the first child is released.
//   - TakeRegion moves an address region out of a Mut token.
//   - Shared reborrows a Mut token for reading. The parent cannot write until
//     every shared child is released.
//
// Refusal is a normal negative result (false or ErrRefused), not a failure.
//
// # Safety-critical check
//
// Coverage is held in an immutable snapshot swapped with compare-and-swap.
// Every narrower token is minted only after the runtime type-identity check
// (core.TypeID) and region check pass against the current snapshot; this
// bookkeeping is the entire disjointness proof.
package access
