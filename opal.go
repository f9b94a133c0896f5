// Package opal implements the column encoding layer of an in-memory,
// column-oriented data store.
//
// Given a materialized column of raw typed values with nulls, opal
// produces a compact encoded representation that a query engine can
// iterate over directly, without decompressing, while preserving value
// order, null positions and exact original values on decode.
//
// # Core Features
//
//   - Dictionary encoding: sorted unique dictionary plus bit-packed
//     per-row indices, with a reserved sentinel index for nulls
//   - Run-length encoding: maximal (value, end offset) runs
//   - Bit-packing vectors that pick the narrowest of 8/16/32-bit storage
//   - A uniform decoder layer: random access and restartable sequential
//     iteration over any raw or encoded column
//   - Chunk/table orchestration applying per-column encoding specs
//   - Optional blob serialization with Zstd/S2/LZ4 compression and
//     xxHash64 checksums
//
// # Basic Usage
//
// Encoding the columns of a chunk:
//
//	vals, _ := column.NewValueColumn([]int32{5, 3, 5, 5, 0, 3}, []bool{false, false, false, false, true, false})
//	chunk, _ := table.NewChunk(vals)
//
//	spec := format.ChunkSpec{{Encoding: format.EncodingDictionary}}
//	err := opal.EncodeChunk(chunk, []format.DataType{format.TypeInt32}, spec)
//
// Reading any column back through the decoder layer:
//
//	dec, _ := encoding.DecoderFor[int32](chunk.Column(0))
//	for v, isNull := range dec.All() {
//	    // v is the original value; isNull marks null positions
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the table and
// blob packages. For fine-grained control, use the column, encoding,
// table and blob packages directly.
package opal

import (
	"github.com/opalstore/opal/blob"
	"github.com/opalstore/opal/format"
	"github.com/opalstore/opal/internal/hash"
	"github.com/opalstore/opal/table"
)

// ColumnID computes the xxHash64 identifier a chunk blob stores in place
// of a column name.
func ColumnID(name string) uint64 {
	return hash.ID(name)
}

// EncodeChunk encodes a chunk's columns in place according to the spec.
// See table.EncodeChunk for the full contract.
func EncodeChunk(chunk *table.Chunk, dataTypes []format.DataType, spec format.ChunkSpec) error {
	return table.EncodeChunk(chunk, dataTypes, spec)
}

// EncodeAllChunks encodes every chunk of a table, one spec per chunk.
// See table.EncodeAllChunks for the full contract.
func EncodeAllChunks(t *table.Table, specs []format.ChunkSpec) error {
	return table.EncodeAllChunks(t, specs)
}

// SerializeChunk serializes a chunk to a blob with the given options.
func SerializeChunk(chunk *table.Chunk, names []string, dataTypes []format.DataType, opts ...blob.ChunkEncoderOption) ([]byte, error) {
	encoder, err := blob.NewChunkEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return encoder.Encode(chunk, names, dataTypes)
}

// DeserializeChunk decodes a blob produced by SerializeChunk back into a
// chunk.
func DeserializeChunk(data []byte) (*table.Chunk, error) {
	decoder, err := blob.NewChunkDecoder(data)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}
