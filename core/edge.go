package core

import "fmt"

// Side names one end of a directed relation.
type Side uint8

const (
	// Source is the end a relation starts at.
	Source Side = iota
	// Drain is the end a relation points to.
	Drain
)

// Complement returns the opposite side.
func (s Side) Complement() Side {
	if s == Source {
		return Drain
	}
	return Source
}

// String returns a string representation of the side.
func (s Side) String() string {
	switch s {
	case Source:
		return "source"
	case Drain:
		return "drain"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// Edge models the directed relation source[data] -> drain.
type Edge[S, D any] struct {
	Source S
	Drain  D
}

// Reverse swaps the ends.
func (e Edge[S, D]) Reverse() Edge[D, S] {
	return Edge[D, S]{Source: e.Drain, Drain: e.Source}
}

// Partial returns the part of the edge seen from side s.
// The value is the end on side s; the other end is implied.
func Partial[T any](e Edge[T, T], s Side) PartialEdge[T] {
	if s == Source {
		return PartialEdge[T]{Side: Source, Value: e.Source}
	}
	return PartialEdge[T]{Side: Drain, Value: e.Drain}
}

// PartialEdge is one end of an edge. Side tells which end Value sits on.
type PartialEdge[T any] struct {
	Side  Side
	Value T
}

// Reverse flips which side is "self".
func (p PartialEdge[T]) Reverse() PartialEdge[T] {
	return PartialEdge[T]{Side: p.Side.Complement(), Value: p.Value}
}

// Complete builds the full edge using other for the implied end.
func (p PartialEdge[T]) Complete(other T) Edge[T, T] {
	if p.Side == Source {
		return Edge[T, T]{Source: p.Value, Drain: other}
	}
	return Edge[T, T]{Source: other, Drain: p.Value}
}

// MapPartial maps the payload of p, keeping its side.
func MapPartial[T, U any](p PartialEdge[T], fn func(T) U) PartialEdge[U] {
	return PartialEdge[U]{Side: p.Side, Value: fn(p.Value)}
}
