package blob

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/encoding"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
	"github.com/opalstore/opal/section"
	"github.com/opalstore/opal/table"
)

var (
	testNames = []string{"id", "label", "count", "weight", "score"}
	testTypes = []format.DataType{
		format.TypeInt32,
		format.TypeString,
		format.TypeInt64,
		format.TypeFloat64,
		format.TypeFloat32,
	}
)

// buildTestChunk assembles a six-row chunk covering every column
// representation the blob format stores: raw with and without nulls,
// dictionary, run length and legacy dictionary.
func buildTestChunk(t *testing.T) *table.Chunk {
	t.Helper()

	id, err := column.NewValueColumn([]int32{5, 3, 5, 5, 0, 3}, []bool{false, false, false, false, true, false})
	require.NoError(t, err)

	rawLabel, err := column.NewValueColumn([]string{"a", "b", "b", "", "c", "a"}, []bool{false, false, false, true, false, false})
	require.NoError(t, err)
	label, err := encoding.EncodeDictionary(rawLabel, format.VectorAuto)
	require.NoError(t, err)

	rawCount, err := column.NewValueColumn([]int64{7, 7, 7, 3, 3, 9}, nil)
	require.NoError(t, err)
	count := encoding.EncodeRunLength(rawCount)

	weight, err := encoding.NewLegacyDictionaryColumn(
		[]float64{1.5, -2.25},
		[]uint32{0, 1, 1, 0, 0, 1},
		[]bool{false, true, false, false, false, false},
	)
	require.NoError(t, err)

	score, err := column.NewValueColumn([]float32{0.5, 1.5, 2.5, 3.5, 4.5, 5.5}, nil)
	require.NoError(t, err)

	chunk, err := table.NewChunk(id, label, count, weight, score)
	require.NoError(t, err)

	return chunk
}

// requireColumnsEqual compares two columns value by value through the
// decoder layer, so raw and encoded representations of the same data
// compare equal.
func requireColumnsEqual[T column.Value](t *testing.T, want, got column.Column) {
	t.Helper()

	wantDec, err := encoding.DecoderFor[T](want)
	require.NoError(t, err)
	gotDec, err := encoding.DecoderFor[T](got)
	require.NoError(t, err)

	require.Equal(t, wantDec.Len(), gotDec.Len())
	for i := 0; i < wantDec.Len(); i++ {
		wv, wn := wantDec.Get(i)
		gv, gn := gotDec.Get(i)
		require.Equal(t, wn, gn, "null marker at row %d", i)
		require.Equal(t, wv, gv, "value at row %d", i)
	}
}

func requireChunksEqual(t *testing.T, want, got *table.Chunk) {
	t.Helper()

	require.Equal(t, want.ColumnCount(), got.ColumnCount())
	require.Equal(t, want.RowCount(), got.RowCount())

	requireColumnsEqual[int32](t, want.Column(0), got.Column(0))
	requireColumnsEqual[string](t, want.Column(1), got.Column(1))
	requireColumnsEqual[int64](t, want.Column(2), got.Column(2))
	requireColumnsEqual[float64](t, want.Column(3), got.Column(3))
	requireColumnsEqual[float32](t, want.Column(4), got.Column(4))
}

func TestChunkBlobRoundTrip(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			chunk := buildTestChunk(t)

			encoder, err := NewChunkEncoder(WithCompression(ct))
			require.NoError(t, err)
			data, err := encoder.Encode(chunk, testNames, testTypes)
			require.NoError(t, err)

			decoder, err := NewChunkDecoder(data)
			require.NoError(t, err)
			require.Equal(t, 6, decoder.RowCount())
			require.Equal(t, testTypes, decoder.DataTypes())
			require.NoError(t, decoder.VerifyColumnNames(testNames))

			decoded, err := decoder.Decode()
			require.NoError(t, err)
			requireChunksEqual(t, chunk, decoded)

			// Encodings survive serialization, they are not flattened.
			require.Equal(t, format.EncodingDictionary, decoded.Column(1).Encoding())
			require.Equal(t, format.EncodingRunLength, decoded.Column(2).Encoding())
			require.Equal(t, format.EncodingLegacyDictionary, decoded.Column(3).Encoding())
		})
	}
}

func TestChunkBlobRoundTrip_BigEndian(t *testing.T) {
	chunk := buildTestChunk(t)

	encoder, err := NewChunkEncoder(WithBigEndian(), WithCompression(format.CompressionS2))
	require.NoError(t, err)
	data, err := encoder.Encode(chunk, testNames, testTypes)
	require.NoError(t, err)

	decoder, err := NewChunkDecoder(data)
	require.NoError(t, err)

	decoded, err := decoder.Decode()
	require.NoError(t, err)
	requireChunksEqual(t, chunk, decoded)
}

func TestChunkBlobRoundTrip_EmptyChunk(t *testing.T) {
	col, err := column.NewValueColumn([]int32{}, nil)
	require.NoError(t, err)
	chunk, err := table.NewChunk(col)
	require.NoError(t, err)

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)
	data, err := encoder.Encode(chunk, []string{"id"}, []format.DataType{format.TypeInt32})
	require.NoError(t, err)

	decoder, err := NewChunkDecoder(data)
	require.NoError(t, err)
	require.Zero(t, decoder.RowCount())

	decoded, err := decoder.Decode()
	require.NoError(t, err)
	require.Zero(t, decoded.Column(0).Len())
}

func TestChunkDecoder_ColumnIDs(t *testing.T) {
	chunk := buildTestChunk(t)

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)
	data, err := encoder.Encode(chunk, testNames, testTypes)
	require.NoError(t, err)

	decoder, err := NewChunkDecoder(data)
	require.NoError(t, err)

	ids := decoder.ColumnIDs()
	require.Len(t, ids, len(testNames))
	for i, name := range testNames {
		require.Equal(t, ID(name), ids[i])
	}
}

func TestChunkDecoder_VerifyColumnNamesMismatch(t *testing.T) {
	chunk := buildTestChunk(t)

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)
	data, err := encoder.Encode(chunk, testNames, testTypes)
	require.NoError(t, err)

	decoder, err := NewChunkDecoder(data)
	require.NoError(t, err)

	wrong := append([]string(nil), testNames...)
	wrong[2] = "total"
	require.Error(t, decoder.VerifyColumnNames(wrong))
	require.ErrorIs(t, decoder.VerifyColumnNames(testNames[:2]), errs.ErrLengthMismatch)
}

func TestChunkDecoder_ChecksumMismatch(t *testing.T) {
	chunk := buildTestChunk(t)

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)
	data, err := encoder.Encode(chunk, testNames, testTypes)
	require.NoError(t, err)

	// Flip a payload byte; the header and index sections stay intact.
	data[len(data)-1] ^= 0xFF

	_, err = NewChunkDecoder(data)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestChunkDecoder_TruncatedHeader(t *testing.T) {
	_, err := NewChunkDecoder(make([]byte, section.HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestChunkDecoder_TruncatedIndex(t *testing.T) {
	chunk := buildTestChunk(t)

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)
	data, err := encoder.Encode(chunk, testNames, testTypes)
	require.NoError(t, err)

	_, err = NewChunkDecoder(data[:section.HeaderSize+10])
	require.ErrorIs(t, err, errs.ErrCorruptPayload)
}

func TestChunkDecoder_BadCompressionTag(t *testing.T) {
	chunk := buildTestChunk(t)

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)
	data, err := encoder.Encode(chunk, testNames, testTypes)
	require.NoError(t, err)

	data[2] = 0x7F

	_, err = NewChunkDecoder(data)
	require.Error(t, err)
}

func TestChunkEncoder_LengthMismatch(t *testing.T) {
	chunk := buildTestChunk(t)

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)

	_, err = encoder.Encode(chunk, testNames[:3], testTypes)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = encoder.Encode(chunk, testNames, testTypes[:3])
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestChunkEncoder_DataTypeMismatch(t *testing.T) {
	chunk := buildTestChunk(t)

	wrong := append([]format.DataType(nil), testTypes...)
	wrong[0] = format.TypeInt64

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)
	_, err = encoder.Encode(chunk, testNames, wrong)
	require.ErrorIs(t, err, errs.ErrDataTypeMismatch)
}

func TestChunkEncoder_DuplicateColumnName(t *testing.T) {
	chunk := buildTestChunk(t)

	dup := append([]string(nil), testNames...)
	dup[1] = "id"

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)
	_, err = encoder.Encode(chunk, dup, testTypes)
	require.ErrorIs(t, err, errs.ErrDuplicateColumnName)
}

func TestChunkEncoder_EmptyColumnName(t *testing.T) {
	chunk := buildTestChunk(t)

	blank := append([]string(nil), testNames...)
	blank[0] = ""

	encoder, err := NewChunkEncoder()
	require.NoError(t, err)
	_, err = encoder.Encode(chunk, blank, testTypes)
	require.ErrorIs(t, err, errs.ErrInvalidColumnName)
}

func TestNewChunkEncoder_InvalidCompression(t *testing.T) {
	_, err := NewChunkEncoder(WithCompression(format.CompressionType(0x7F)))
	require.Error(t, err)
}
