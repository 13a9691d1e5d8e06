package property

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the compression algorithm used for blobs.
type Compression uint8

const (
	// CompressionNone stores blobs as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

// String returns the algorithm name.
func (c Compression) String() string {
	switch c {
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Blob format: [UncompressedSize uint32][CompressedSize uint32][Data...]
// CompressedSize 0 means the data is stored uncompressed.
const blobHeaderSize = 8

func compressBlob(data []byte, c Compression) ([]byte, Compression, error) {
	var (
		compressed []byte
		err        error
	)
	switch c {
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}
	if err != nil {
		return nil, CompressionNone, err
	}

	// Not worth it below a 10% saving.
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		return frame(data, len(data), false), CompressionNone, nil
	}
	return frame(compressed, len(data), true), c, nil
}

func frame(payload []byte, size int, compressed bool) []byte {
	out := make([]byte, blobHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:], uint32(size))
	if compressed {
		binary.LittleEndian.PutUint32(out[4:], uint32(len(payload)))
	}
	copy(out[blobHeaderSize:], payload)
	return out
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func decompressBlob(data []byte, c Compression) ([]byte, error) {
	if len(data) < blobHeaderSize {
		return nil, errors.New("property: blob too small for header")
	}
	size := binary.LittleEndian.Uint32(data[0:])
	csize := binary.LittleEndian.Uint32(data[4:])
	if csize == 0 {
		if uint32(len(data)) < blobHeaderSize+size {
			return nil, errors.New("property: blob data too small")
		}
		return data[blobHeaderSize : blobHeaderSize+size], nil
	}
	if uint32(len(data)) < blobHeaderSize+csize {
		return nil, errors.New("property: compressed blob data too small")
	}
	payload := data[blobHeaderSize : blobHeaderSize+csize]

	switch c {
	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != size {
			return nil, errors.New("property: decompressed size mismatch")
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != size {
			return nil, errors.New("property: decompressed size mismatch")
		}
		return out, nil
	default:
		return nil, errors.New("property: unknown compression")
	}
}
