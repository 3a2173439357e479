// Package compress implements the block compression used by archive shards.
//
// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means Data is stored as-is.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a compression algorithm.
type Type uint8

const (
	// None stores blocks uncompressed.
	None Type = 0
	// LZ4 is fast block compression, suited to hot shards.
	LZ4 Type = 1
	// ZSTD has the better ratio, suited to cold shards.
	ZSTD Type = 2
)

const headerSize = 8

var (
	// ErrUnknownType is returned for an unrecognized Type or name.
	ErrUnknownType = errors.New("unknown compression type")
	// ErrCorrupt is returned when a block fails to decode.
	ErrCorrupt = errors.New("corrupt compressed block")
)

// String returns the stable name of t.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compress.Type(%d)", uint8(t))
	}
}

// Parse maps a stable name back to its Type. The empty string is None.
func Parse(name string) (Type, error) {
	switch name {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownType, name)
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

// Encode compresses data into a block. Data that does not shrink below 90%
// of its size is stored uncompressed.
func Encode(data []byte, t Type) ([]byte, error) {
	var compressed []byte

	switch t {
	case None:
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case ZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, headerSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		copy(out[headerSize:], data)
		return out, nil
	}

	out := make([]byte, headerSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[headerSize:], compressed)
	return out, nil
}

// Decode reverses Encode.
func Decode(block []byte, t Type) ([]byte, error) {
	if len(block) < headerSize {
		return nil, fmt.Errorf("%w: block too small for header", ErrCorrupt)
	}

	size := binary.LittleEndian.Uint32(block[0:])
	csize := binary.LittleEndian.Uint32(block[4:])
	body := block[headerSize:]

	if csize == 0 {
		if uint64(len(body)) < uint64(size) {
			return nil, fmt.Errorf("%w: block data too small", ErrCorrupt)
		}
		return body[:size], nil
	}
	if uint64(len(body)) < uint64(csize) {
		return nil, fmt.Errorf("%w: compressed data too small", ErrCorrupt)
	}
	body = body[:csize]

	switch t {
	case LZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	case ZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint32(len(out)) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
}
