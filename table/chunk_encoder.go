package table

import (
	"fmt"

	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/encoding"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// EncodeChunk encodes a chunk's columns according to the given spec.
//
// For each column position, the matching ColumnSpec drives the encoding:
// format.EncodingUnencoded leaves the raw column untouched, anything else
// replaces the column with its encoded representation. Every column to be
// encoded must currently be raw; a column that is already encoded fails
// with errs.ErrAlreadyEncoded. dataTypes declares the expected type of
// each column and must agree with the columns' actual types.
//
// The chunk's MVCC metadata, if any, is compacted as part of encoding.
//
// EncodeChunk is not transactional: it aborts on the first failing column
// and earlier columns of the same call remain encoded. Callers must treat
// a failed encode as leaving the chunk in an unusable intermediate state.
func EncodeChunk(chunk *Chunk, dataTypes []format.DataType, spec format.ChunkSpec) error {
	if len(spec) != chunk.ColumnCount() || len(dataTypes) != chunk.ColumnCount() {
		return fmt.Errorf("%w: chunk has %d columns, %d data types, %d column specs",
			errs.ErrSpecLengthMismatch, chunk.ColumnCount(), len(dataTypes), len(spec))
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	for i := range spec {
		if spec[i].Encoding == format.EncodingUnencoded {
			continue
		}

		col := chunk.Column(i)
		if col.Encoding() != format.EncodingUnencoded {
			return fmt.Errorf("%w: column %d is %s encoded", errs.ErrAlreadyEncoded, i, col.Encoding())
		}

		encoded, err := encodeColumn(col, dataTypes[i], spec[i])
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		chunk.replaceColumn(i, encoded)
	}

	if mvcc := chunk.MVCC(); mvcc != nil {
		mvcc.compact()
	}

	return nil
}

// EncodeChunks encodes the selected chunks of a table, one spec per chunk.
// Chunks without an entry in specs are skipped.
func EncodeChunks(t *Table, chunkIDs []ChunkID, specs map[ChunkID]format.ChunkSpec) error {
	for _, id := range chunkIDs {
		spec, ok := specs[id]
		if !ok {
			continue
		}

		chunk, err := t.Chunk(id)
		if err != nil {
			return err
		}
		if err := EncodeChunk(chunk, t.DataTypes(), spec); err != nil {
			return fmt.Errorf("chunk %d: %w", id, err)
		}
	}

	return nil
}

// EncodeAllChunks encodes every chunk of a table using one spec per chunk,
// in chunk order. specs must hold exactly one ChunkSpec per chunk.
func EncodeAllChunks(t *Table, specs []format.ChunkSpec) error {
	if len(specs) != t.ChunkCount() {
		return fmt.Errorf("%w: table has %d chunks, %d chunk specs",
			errs.ErrSpecLengthMismatch, t.ChunkCount(), len(specs))
	}

	for id, spec := range specs {
		chunk := t.chunks[id]
		if err := EncodeChunk(chunk, t.DataTypes(), spec); err != nil {
			return fmt.Errorf("chunk %d: %w", id, err)
		}
	}

	return nil
}

// encodeColumn resolves the declared data type to the statically typed
// encode path. The switch here is the single place that fans the runtime
// type tag out to generic instantiations.
func encodeColumn(col column.Column, dt format.DataType, spec format.ColumnSpec) (column.Column, error) {
	switch dt {
	case format.TypeInt32:
		return encodeValueColumn[int32](col, spec)
	case format.TypeInt64:
		return encodeValueColumn[int64](col, spec)
	case format.TypeFloat32:
		return encodeValueColumn[float32](col, spec)
	case format.TypeFloat64:
		return encodeValueColumn[float64](col, spec)
	case format.TypeString:
		return encodeValueColumn[string](col, spec)
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedDataType, dt)
	}
}

func encodeValueColumn[T column.Value](col column.Column, spec format.ColumnSpec) (column.Column, error) {
	vc, ok := col.(*column.ValueColumn[T])
	if !ok {
		return nil, fmt.Errorf("%w: column holds %s, declared as %s",
			errs.ErrDataTypeMismatch, col.DataType(), column.DataTypeOf[T]())
	}

	switch spec.Encoding {
	case format.EncodingDictionary:
		return encoding.EncodeDictionary(vc, spec.Vector)
	case format.EncodingRunLength:
		return encoding.EncodeRunLength(vc), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, spec.Encoding)
	}
}
