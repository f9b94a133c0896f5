package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// unknownColumn fakes a column with an encoding tag outside the known set.
type unknownColumn struct{}

func (unknownColumn) Len() int                      { return 0 }
func (unknownColumn) DataType() format.DataType     { return format.TypeInt32 }
func (unknownColumn) Encoding() format.EncodingType { return format.EncodingType(0x7F) }

func TestDecoderFor_ResolvesAllRepresentations(t *testing.T) {
	raw := mustColumn(t, []int32{1, 2, 2}, nil)

	dict, err := EncodeDictionary(raw, format.VectorAuto)
	require.NoError(t, err)
	rle := EncodeRunLength(raw)
	legacy, err := NewLegacyDictionaryColumn([]int32{1, 2}, []uint32{0, 1, 1}, nil)
	require.NoError(t, err)

	for _, col := range []column.Column{raw, dict, rle, legacy} {
		dec, err := DecoderFor[int32](col)
		require.NoError(t, err, "encoding %s", col.Encoding())
		requireDecodesTo(t, dec, []int32{1, 2, 2}, nil)
	}
}

func TestDecoderFor_DataTypeMismatch(t *testing.T) {
	raw := mustColumn(t, []int32{1, 2}, nil)

	_, err := DecoderFor[int64](raw)
	require.ErrorIs(t, err, errs.ErrDataTypeMismatch)
}

func TestDecoderFor_UnknownEncoding(t *testing.T) {
	_, err := DecoderFor[int32](unknownColumn{})
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
}

// countingVisitor records which typed callback Resolve invoked.
type countingVisitor struct {
	visited format.DataType
	rows    int
}

func (v *countingVisitor) VisitInt32(dec ColumnDecoder[int32]) error {
	v.visited, v.rows = format.TypeInt32, dec.Len()
	return nil
}

func (v *countingVisitor) VisitInt64(dec ColumnDecoder[int64]) error {
	v.visited, v.rows = format.TypeInt64, dec.Len()
	return nil
}

func (v *countingVisitor) VisitFloat32(dec ColumnDecoder[float32]) error {
	v.visited, v.rows = format.TypeFloat32, dec.Len()
	return nil
}

func (v *countingVisitor) VisitFloat64(dec ColumnDecoder[float64]) error {
	v.visited, v.rows = format.TypeFloat64, dec.Len()
	return nil
}

func (v *countingVisitor) VisitString(dec ColumnDecoder[string]) error {
	v.visited, v.rows = format.TypeString, dec.Len()
	return nil
}

func TestResolve_InvokesMatchingVisitor(t *testing.T) {
	col := mustColumn(t, []float64{1.0, 2.0, 2.0}, nil)
	enc, err := EncodeDictionary(col, format.VectorAuto)
	require.NoError(t, err)

	v := &countingVisitor{}
	require.NoError(t, Resolve(enc, format.TypeFloat64, v))
	require.Equal(t, format.TypeFloat64, v.visited)
	require.Equal(t, 3, v.rows)
}

func TestResolve_DeclaredTypeMismatch(t *testing.T) {
	col := mustColumn(t, []float64{1.0}, nil)

	v := &countingVisitor{}
	err := Resolve(col, format.TypeString, v)
	require.ErrorIs(t, err, errs.ErrDataTypeMismatch)
	require.Zero(t, v.visited, "no visitor method may run on error")
}

func TestResolve_UnknownDataType(t *testing.T) {
	col := mustColumn(t, []int32{1}, nil)

	err := Resolve(col, format.DataType(0xEE), &countingVisitor{})
	require.ErrorIs(t, err, errs.ErrUnsupportedDataType)
}

func TestResolve_UnknownEncoding(t *testing.T) {
	err := Resolve(unknownColumn{}, format.TypeInt32, &countingVisitor{})
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
}
