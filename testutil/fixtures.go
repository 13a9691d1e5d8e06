package testutil

import (
	"slices"

	"github.com/hupe1980/graphkeep/core"
)

// Node links to other nodes bidirectionally and to anything unidirectionally.
// When a linked node is removed, Node drops the link and stays valid.
type Node struct {
	Name  string
	Links []core.BiRef[Node]
	Weak  []core.AnyKey

	// Removed and Moved record the notifications the node received.
	Removed []core.AnyKey
	Moved   [][2]core.AnyKey
}

// NewNode returns a node linking to the given nodes.
func NewNode(name string, links ...core.Key[Node]) Node {
	n := Node{Name: name}
	for _, k := range links {
		n.Links = append(n.Links, core.BiTo(k))
	}
	return n
}

// References implements item.Item.
func (n *Node) References(core.Index) []core.AnyRef {
	refs := make([]core.AnyRef, 0, len(n.Links)+len(n.Weak))
	for _, l := range n.Links {
		refs = append(refs, l.Any())
	}
	for _, w := range n.Weak {
		refs = append(refs, core.AnyRef{Dir: core.Uni, Key: w})
	}
	return refs
}

// ItemRemoved implements item.RemovalAware.
func (n *Node) ItemRemoved(_ core.Index, removed core.AnyKey) bool {
	n.Removed = append(n.Removed, removed)
	n.Links = slices.DeleteFunc(n.Links, func(l core.BiRef[Node]) bool {
		return l.Key.Any() == removed
	})
	return true
}

// ItemMoved implements item.MoveAware.
func (n *Node) ItemMoved(old, next core.AnyKey) {
	n.Moved = append(n.Moved, [2]core.AnyKey{old, next})
	for i := range n.Links {
		n.Links[i].Moved(old, next)
	}
}

// Clone implements item.Cloner.
func (n *Node) Clone() Node {
	return Node{
		Name:    n.Name,
		Links:   slices.Clone(n.Links),
		Weak:    slices.Clone(n.Weak),
		Removed: slices.Clone(n.Removed),
		Moved:   slices.Clone(n.Moved),
	}
}

// LinksTo reports whether n links to k.
func (n *Node) LinksTo(k core.Key[Node]) bool {
	return slices.ContainsFunc(n.Links, func(l core.BiRef[Node]) bool { return l.Key == k })
}

// Owned belongs to a node and is removed together with it.
type Owned struct {
	Owner core.BiRef[Node]
	Label string
}

// OwnedBy returns an item owned by owner.
func OwnedBy(owner core.Key[Node], label string) Owned {
	return Owned{Owner: core.BiTo(owner), Label: label}
}

// References implements item.Item.
func (o *Owned) References(core.Index) []core.AnyRef {
	return []core.AnyRef{o.Owner.Any()}
}

// ItemRemoved implements item.RemovalAware.
func (o *Owned) ItemRemoved(_ core.Index, removed core.AnyKey) bool {
	return removed != o.Owner.Key.Any()
}

// ItemMoved implements item.MoveAware.
func (o *Owned) ItemMoved(old, next core.AnyKey) {
	o.Owner.Moved(old, next)
}

// Leaf holds a value and references nothing.
type Leaf struct {
	Value int
}

// References implements item.Item.
func (*Leaf) References(core.Index) []core.AnyRef { return nil }
