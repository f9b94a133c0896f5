package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opalstore/opal/errs"
)

func TestColumnSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ColumnSpec
		wantErr error
	}{
		{"unencoded", ColumnSpec{Encoding: EncodingUnencoded}, nil},
		{"dictionary auto", ColumnSpec{Encoding: EncodingDictionary, Vector: VectorAuto}, nil},
		{"dictionary fixed16", ColumnSpec{Encoding: EncodingDictionary, Vector: VectorFixed16}, nil},
		{"run length", ColumnSpec{Encoding: EncodingRunLength}, nil},
		{"legacy dictionary", ColumnSpec{Encoding: EncodingLegacyDictionary}, errs.ErrUnsupportedEncoding},
		{"unknown encoding", ColumnSpec{Encoding: EncodingType(0x7F)}, errs.ErrUnsupportedEncoding},
		{"unknown vector", ColumnSpec{Encoding: EncodingDictionary, Vector: VectorType(0x7F)}, errs.ErrUnsupportedEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestChunkSpecValidate(t *testing.T) {
	spec := ChunkSpec{
		{Encoding: EncodingDictionary},
		{Encoding: EncodingType(0x7F)},
	}
	err := spec.Validate()
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
	require.Contains(t, err.Error(), "column 1")
}

func TestVectorTypeBits(t *testing.T) {
	require.Equal(t, 8, VectorFixed8.Bits())
	require.Equal(t, 16, VectorFixed16.Bits())
	require.Equal(t, 32, VectorFixed32.Bits())
}
