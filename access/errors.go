package access

import "errors"

var (
	// ErrRefused is returned when a split asks for coverage that is already
	// claimed or not covered. Treat it as expected contention.
	ErrRefused = errors.New("access: coverage refused")

	// ErrCoverage is returned when an operation reaches outside the token's
	// coverage, or needs rights the token currently lends out.
	ErrCoverage = errors.New("access: outside coverage")

	// ErrReadOnly is returned when a write is attempted through a Ref token or
	// over a container that is not a shell.MutCollection.
	ErrReadOnly = errors.New("access: read-only")

	// ErrReleased is returned when a released token is used.
	ErrReleased = errors.New("access: token released")

	// ErrBusy is returned when a token with outstanding children is released.
	ErrBusy = errors.New("access: token has outstanding children")

	// ErrForeign is returned when a token is merged into a parent it was not
	// split from.
	ErrForeign = errors.New("access: token belongs to another parent")
)
