// Package blockio frames snapshot payloads as self-describing compressed
// blocks. A block is [UncompressedSize uint32][CompressedSize uint32][data];
// CompressedSize == 0 marks raw storage, used when compression does not pay.
package blockio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression algorithm.
type Compression uint8

const (
	// None stores blocks raw.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast).
	LZ4 Compression = 1
	// ZSTD uses ZSTD block compression (better ratio).
	ZSTD Compression = 2
)

// String implements fmt.Stringer.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Valid reports whether c names a known algorithm.
func (c Compression) Valid() bool { return c <= ZSTD }

const headerSize = 8

// MaxBlockSize bounds the uncompressed size accepted by ReadBlock, guarding
// against corrupt headers allocating unbounded memory.
const MaxBlockSize = 1 << 30

// ErrBlockCorrupt marks a block whose header or payload is inconsistent.
var ErrBlockCorrupt = errors.New("blockio: corrupt block")

// zstd encoder/decoder pools; encoders are expensive to build.
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

// WriteBlock compresses data with c and writes one framed block to w.
// Incompressible data (ratio above 0.9) is stored raw.
func WriteBlock(w io.Writer, data []byte, c Compression) error {
	var compressed []byte
	var err error

	switch c {
	case LZ4:
		compressed, err = compressLZ4(data)
	case ZSTD:
		compressed = compressZSTD(data)
	}
	if err != nil {
		return err
	}

	if compressed == nil || float64(len(compressed)) > float64(len(data))*0.9 {
		compressed = nil // store raw
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(compressed)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if compressed != nil {
		_, err = w.Write(compressed)
	} else {
		_, err = w.Write(data)
	}
	return err
}

// ReadBlock reads one framed block from r and returns the uncompressed
// payload. c must match the algorithm used at write time.
func ReadBlock(r io.Reader, c Compression) ([]byte, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	uncompressedSize := binary.LittleEndian.Uint32(hdr[0:])
	compressedSize := binary.LittleEndian.Uint32(hdr[4:])

	if uncompressedSize > MaxBlockSize || compressedSize > MaxBlockSize {
		return nil, fmt.Errorf("%w: implausible block size", ErrBlockCorrupt)
	}

	if compressedSize == 0 {
		data := make([]byte, uncompressedSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, err
		}
		return data, nil
	}

	compressed := make([]byte, compressedSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}

	switch c {
	case LZ4:
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(compressed, result)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBlockCorrupt, err)
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrBlockCorrupt)
		}
		return result, nil

	case ZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		decoded, err := dec.DecodeAll(compressed, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBlockCorrupt, err)
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrBlockCorrupt)
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: compressed payload with compression %q", ErrBlockCorrupt, c)
	}
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

func compressZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, nil)
}
