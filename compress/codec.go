// Package compress provides the compression codecs used by opal chunk
// blobs.
//
// Compression is applied at the payload level after column encoding: the
// encoders exploit structure in the data (dictionaries, runs, bit
// packing), and the codecs here squeeze the resulting bytes further with
// general-purpose algorithms. Four codecs are supported, selected by
// format.CompressionType: None, Zstd, S2 and LZ4.
//
// The Zstandard codec has two implementations chosen at build time: the
// cgo-backed valyala/gozstd when cgo is available, and the pure-Go
// klauspost/compress/zstd otherwise. Both produce interoperable streams.
package compress

import (
	"fmt"

	"github.com/opalstore/opal/format"
)

// Compressor compresses a payload. The returned slice is newly allocated
// and owned by the caller; the input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a payload previously produced by the matching
// Compressor. It returns an error for corrupted or mismatched input; no
// partial output is produced.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All codecs in this package are stateless
// values and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a Codec for the given compression type. The target
// string names what is being compressed and only appears in error
// messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
