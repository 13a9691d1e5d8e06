// Package property stores typed item properties.
//
// A property is identified by a small numeric ID. Scalar properties are kept
// as fixed-width little-endian bytes, blobs may be compressed with LZ4 or
// ZSTD, and structured values go through a Codec.
//
//	var bag property.Bag
//	property.Set(&bag, units.Tick(3))
//	tick, err := property.Get[units.Tick](&bag)
//
// A Bag is not safe for concurrent use. Items that embed one are mutated
// through the container, which serializes writers.
package property
