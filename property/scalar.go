package property

import (
	"encoding/binary"
	"fmt"
)

// ID identifies a property.
type ID uint16

// Scalar is a fixed-width value that can be stored inline.
type Scalar interface {
	~bool | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Property is a scalar type bound to a fixed property ID.
type Property interface {
	Scalar
	PropertyID() ID
}

// Encode returns the little-endian encoding of v.
func Encode[V Scalar](v V) []byte {
	b, err := binary.Append(make([]byte, 0, binary.Size(v)), binary.LittleEndian, v)
	if err != nil {
		// Unreachable: every Scalar has a fixed size.
		panic(err)
	}
	return b
}

// Decode decodes a value written by Encode.
func Decode[V Scalar](b []byte) (V, error) {
	var v V
	if want := binary.Size(v); len(b) != want {
		return v, fmt.Errorf("%w: %T needs %d bytes, got %d", ErrSize, v, want, len(b))
	}
	if _, err := binary.Decode(b, binary.LittleEndian, &v); err != nil {
		return v, err
	}
	return v, nil
}
