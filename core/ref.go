package core

import "fmt"

// Directionality tells a container whether the inverse of a reference is
// tracked in the target's shell.
type Directionality uint8

const (
	// Uni references are fire-and-forget. The target is unaware of them.
	Uni Directionality = iota
	// Bi references are recorded in the target's shell.
	Bi
)

// String returns a string representation of the directionality.
func (d Directionality) String() string {
	switch d {
	case Uni:
		return "uni"
	case Bi:
		return "bi"
	default:
		return fmt.Sprintf("Directionality(%d)", uint8(d))
	}
}

// AnyRef is a type-erased reference.
type AnyRef struct {
	Dir Directionality
	Key AnyKey
}

// String returns a string representation of the reference.
func (r AnyRef) String() string {
	return fmt.Sprintf("%s->%s", r.Dir, r.Key)
}

// IsBi reports whether the reference is bidirectional.
func (r AnyRef) IsBi() bool { return r.Dir == Bi }

// UniRef is a typed unidirectional reference.
type UniRef[T any] struct {
	Key Key[T]
}

// UniTo returns a unidirectional reference to k.
func UniTo[T any](k Key[T]) UniRef[T] { return UniRef[T]{Key: k} }

// Any erases the reference.
func (r UniRef[T]) Any() AnyRef { return AnyRef{Dir: Uni, Key: r.Key.Any()} }

// BiRef is a typed bidirectional reference.
type BiRef[T any] struct {
	Key Key[T]
}

// BiTo returns a bidirectional reference to k.
func BiTo[T any](k Key[T]) BiRef[T] { return BiRef[T]{Key: k} }

// Any erases the reference.
func (r BiRef[T]) Any() AnyRef { return AnyRef{Dir: Bi, Key: r.Key.Any()} }

// Moved rewrites the reference if it points at old. It reports whether the
// reference was rewritten, and panics with *IntegrityError if old matches but
// next names another type.
func (r *BiRef[T]) Moved(old, next AnyKey) bool {
	if old != r.Key.Any() {
		return false
	}
	k, ok := Downcast[T](next)
	if !ok {
		panic(&IntegrityError{Op: "move", Key: old, Want: TypeOf[T](), Got: next.Type})
	}
	r.Key = k
	return true
}
