package encoding

import (
	"fmt"

	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// DecoderFor resolves a column whose encoding is only known at runtime to
// a statically typed decoder for T.
//
// Resolution happens once; the returned decoder reads the column with no
// per-element dispatch on the encoding. DecoderFor fails with
// errs.ErrUnsupportedEncoding when the column's encoding tag is not a
// known variant, and with errs.ErrDataTypeMismatch when the column holds
// a different data type than T.
func DecoderFor[T column.Value](col column.Column) (ColumnDecoder[T], error) {
	switch c := col.(type) {
	case *column.ValueColumn[T]:
		return c, nil
	case *DictionaryColumn[T]:
		return c, nil
	case *RunLengthColumn[T]:
		return c, nil
	case *LegacyDictionaryColumn[T]:
		return c, nil
	}

	switch col.Encoding() {
	case format.EncodingUnencoded, format.EncodingDictionary,
		format.EncodingRunLength, format.EncodingLegacyDictionary:
		return nil, fmt.Errorf("%w: column holds %s, decoder requested for %s",
			errs.ErrDataTypeMismatch, col.DataType(), column.DataTypeOf[T]())
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, col.Encoding())
	}
}

// Visitor receives a statically typed decoder from Resolve. Exactly one
// method is invoked per Resolve call, matching the column's data type.
type Visitor interface {
	VisitInt32(dec ColumnDecoder[int32]) error
	VisitInt64(dec ColumnDecoder[int64]) error
	VisitFloat32(dec ColumnDecoder[float32]) error
	VisitFloat64(dec ColumnDecoder[float64]) error
	VisitString(dec ColumnDecoder[string]) error
}

// Resolve dispatches a column whose data type and encoding are both only
// known at runtime to the single matching typed decoder and hands it to
// the visitor.
//
// The dt parameter is the caller's declared data type for the column; a
// column holding a different type fails with errs.ErrDataTypeMismatch.
// Unknown data type or encoding tags fail with errs.ErrUnsupportedDataType
// or errs.ErrUnsupportedEncoding. On any error no visitor method is
// called.
func Resolve(col column.Column, dt format.DataType, v Visitor) error {
	switch dt {
	case format.TypeInt32:
		return resolveAs(col, v.VisitInt32)
	case format.TypeInt64:
		return resolveAs(col, v.VisitInt64)
	case format.TypeFloat32:
		return resolveAs(col, v.VisitFloat32)
	case format.TypeFloat64:
		return resolveAs(col, v.VisitFloat64)
	case format.TypeString:
		return resolveAs(col, v.VisitString)
	default:
		return fmt.Errorf("%w: %v", errs.ErrUnsupportedDataType, dt)
	}
}

func resolveAs[T column.Value](col column.Column, visit func(ColumnDecoder[T]) error) error {
	dec, err := DecoderFor[T](col)
	if err != nil {
		return err
	}

	return visit(dec)
}
