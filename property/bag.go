package property

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrNotFound is returned when a bag has no property with the given ID.
	ErrNotFound = errors.New("property: not found")

	// ErrKind is returned when a property is read as a different kind than it
	// was written as.
	ErrKind = errors.New("property: kind mismatch")

	// ErrSize is returned when scalar bytes have the wrong width.
	ErrSize = errors.New("property: wrong size")
)

// DefaultCompressionThreshold is the blob size from which blobs are
// compressed.
const DefaultCompressionThreshold = 256

type kind uint8

const (
	kindScalar kind = iota + 1
	kindBlob
	kindValue
)

type entry struct {
	kind   kind
	comp   Compression
	framed bool // data carries a blob header
	codec  string
	data   []byte
}

// BagOption configures a Bag.
type BagOption func(*Bag)

// WithCompression sets the algorithm used for blobs.
func WithCompression(c Compression) BagOption {
	return func(b *Bag) {
		b.compression = c
	}
}

// WithCompressionThreshold sets the blob size from which blobs are
// compressed.
func WithCompressionThreshold(n int) BagOption {
	return func(b *Bag) {
		b.threshold = n
	}
}

// WithCodec sets the codec used for structured values.
// If nil is passed, Default is used.
func WithCodec(c Codec) BagOption {
	return func(b *Bag) {
		b.codec = c
	}
}

// Bag maps property IDs to encoded values. The zero value is an empty bag
// without blob compression that uses Default for structured values.
type Bag struct {
	entries     map[ID]entry
	compression Compression
	threshold   int
	codec       Codec
}

// NewBag returns an empty bag.
func NewBag(opts ...BagOption) *Bag {
	b := &Bag{threshold: DefaultCompressionThreshold}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bag) put(id ID, e entry) {
	if b.entries == nil {
		b.entries = make(map[ID]entry)
	}
	b.entries[id] = e
}

func (b *Bag) lookup(id ID, k kind) (entry, error) {
	e, ok := b.entries[id]
	if !ok {
		return entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if e.kind != k {
		return entry{}, fmt.Errorf("%w: %d", ErrKind, id)
	}
	return e, nil
}

// Set stores v under its property ID.
func Set[V Property](b *Bag, v V) {
	SetScalar(b, v.PropertyID(), v)
}

// Get reads the property V.
func Get[V Property](b *Bag) (V, error) {
	var zero V
	return GetScalar[V](b, zero.PropertyID())
}

// SetScalar stores v under id.
func SetScalar[V Scalar](b *Bag, id ID, v V) {
	b.put(id, entry{kind: kindScalar, data: Encode(v)})
}

// GetScalar reads the scalar stored under id.
func GetScalar[V Scalar](b *Bag, id ID) (V, error) {
	e, err := b.lookup(id, kindScalar)
	if err != nil {
		var zero V
		return zero, err
	}
	return Decode[V](e.data)
}

// SetBytes stores a copy of data under id, compressed if it is at least as
// large as the bag's threshold.
func (b *Bag) SetBytes(id ID, data []byte) error {
	if b.compression == CompressionNone || len(data) < b.threshold {
		b.put(id, entry{kind: kindBlob, data: slices.Clone(data)})
		return nil
	}
	framed, used, err := compressBlob(data, b.compression)
	if err != nil {
		return err
	}
	b.put(id, entry{kind: kindBlob, comp: used, framed: true, data: framed})
	return nil
}

// Bytes returns the blob stored under id.
func (b *Bag) Bytes(id ID) ([]byte, error) {
	e, err := b.lookup(id, kindBlob)
	if err != nil {
		return nil, err
	}
	if !e.framed {
		return slices.Clone(e.data), nil
	}
	out, err := decompressBlob(e.data, e.comp)
	if err != nil {
		return nil, err
	}
	return slices.Clone(out), nil
}

// Compression reports how the blob under id is stored.
func (b *Bag) Compression(id ID) (Compression, error) {
	e, err := b.lookup(id, kindBlob)
	if err != nil {
		return CompressionNone, err
	}
	return e.comp, nil
}

// SetValue encodes v with the bag's codec and stores it under id.
func (b *Bag) SetValue(id ID, v any) error {
	c := b.codec
	if c == nil {
		c = Default
	}
	data, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("property: encode %d with %s: %w", id, c.Name(), err)
	}
	b.put(id, entry{kind: kindValue, codec: c.Name(), data: data})
	return nil
}

// Value decodes the structured value under id into dst, using the codec it
// was stored with.
func (b *Bag) Value(id ID, dst any) error {
	e, err := b.lookup(id, kindValue)
	if err != nil {
		return err
	}
	c, ok := ByName(e.codec)
	if !ok {
		return fmt.Errorf("property: unknown codec %q", e.codec)
	}
	return c.Unmarshal(e.data, dst)
}

// Has reports whether id is set.
func (b *Bag) Has(id ID) bool {
	_, ok := b.entries[id]
	return ok
}

// Delete removes id. It reports whether id was set.
func (b *Bag) Delete(id ID) bool {
	_, ok := b.entries[id]
	delete(b.entries, id)
	return ok
}

// Len returns the number of properties.
func (b *Bag) Len() int { return len(b.entries) }

// IDs returns the set IDs in ascending order.
func (b *Bag) IDs() []ID {
	return slices.Sorted(maps.Keys(b.entries))
}

// Clone returns a deep copy of b.
func (b *Bag) Clone() *Bag {
	out := *b
	out.entries = make(map[ID]entry, len(b.entries))
	for id, e := range b.entries {
		e.data = slices.Clone(e.data)
		out.entries[id] = e
	}
	return &out
}
