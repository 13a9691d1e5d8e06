package locality

import (
	"fmt"

	"github.com/hupe1980/graphkeep/core"
)

// Dim names a region dimension a path can be asked about.
type Dim uint8

const (
	// DimID is the dimension of key indices.
	DimID Dim = iota
	// DimChunk is the dimension of storage chunk positions.
	DimChunk
	// DimShard is the dimension of caller-defined shards.
	DimShard
)

// Path maps itself onto a Region for a requested dimension.
// ok is false if the path does not constrain that dimension; absence is not
// an error.
type Path interface {
	Map(dim Dim) (Region, bool)
}

// Unit is the trivial path. It maps every dimension to Any.
type Unit struct{}

// Map implements Path.
func (Unit) Map(Dim) (Region, bool) { return Any(), true }

// Segment scopes one region to one dimension.
type Segment struct {
	Dim    Dim
	Region Region
}

// LeafPath is a sequence of segments, outermost first.
type LeafPath []Segment

// Map implements Path. The innermost segment for dim wins.
func (p LeafPath) Map(dim Dim) (Region, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Dim == dim {
			return p[i].Region, true
		}
	}
	return Region{}, false
}

// Child appends a segment and returns the extended path.
// The receiver is not modified.
func (p LeafPath) Child(dim Dim, r Region) LeafPath {
	out := make(LeafPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Dim: dim, Region: r})
}

// Key is a key bound to the leaf path it is addressed under.
type Key struct {
	path LeafPath
	key  core.AnyKey
}

// NewKey binds k to path. It fails if the path constrains DimID and k lies
// outside that region, so all keys under one leaf share one addressing context.
func NewKey(path LeafPath, k core.AnyKey) (Key, error) {
	if r, ok := path.Map(DimID); ok && !r.Contains(uint64(k.Index)) {
		return Key{}, fmt.Errorf("locality: key %s outside %s", k, r)
	}
	return Key{path: path, key: k}, nil
}

// Path returns the leaf path.
func (k Key) Path() LeafPath { return k.path }

// Key returns the bound key.
func (k Key) Key() core.AnyKey { return k.key }

// Map implements Path by delegating to the leaf path.
func (k Key) Map(dim Dim) (Region, bool) { return k.path.Map(dim) }
