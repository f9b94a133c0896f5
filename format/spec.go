package format

import (
	"fmt"

	"github.com/opalstore/opal/errs"
)

// ColumnSpec describes how a single column should be encoded.
//
// Vector selects the bit-packing scheme for encodings that store packed
// index data (currently dictionary encoding). VectorAuto picks the
// narrowest width that fits; the other vector types force a fixed width.
// Encodings without packed index data ignore the field.
type ColumnSpec struct {
	Encoding EncodingType
	Vector   VectorType
}

// ChunkSpec holds one ColumnSpec per column of a chunk, in column order.
type ChunkSpec []ColumnSpec

// Validate checks that the spec names a known, encodable combination.
//
// EncodingLegacyDictionary is rejected: the legacy layout exists only for
// reading pre-existing encoded data, never as an encode target.
func (s ColumnSpec) Validate() error {
	switch s.Encoding {
	case EncodingUnencoded, EncodingDictionary, EncodingRunLength:
	case EncodingLegacyDictionary:
		return fmt.Errorf("%w: legacy dictionary encoding is decode-only", errs.ErrUnsupportedEncoding)
	default:
		return fmt.Errorf("%w: %v", errs.ErrUnsupportedEncoding, s.Encoding)
	}

	switch s.Vector {
	case VectorAuto, VectorFixed8, VectorFixed16, VectorFixed32:
	default:
		return fmt.Errorf("%w: invalid vector type %v", errs.ErrUnsupportedEncoding, s.Vector)
	}

	return nil
}

// Validate checks every column spec in the chunk spec.
func (s ChunkSpec) Validate() error {
	for i, cs := range s {
		if err := cs.Validate(); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}

	return nil
}
