package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opalstore/opal/format"
)

// testPayload builds a compressible payload resembling an encoded column
// section: repetitive small integers with a sprinkle of variation.
func testPayload() []byte {
	var buf bytes.Buffer
	for i := 0; i < 4096; i++ {
		buf.WriteByte(byte(i % 7))
		buf.WriteByte(0)
		buf.WriteByte(byte(i % 3))
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

func TestCodecRoundTrip(t *testing.T) {
	payload := testPayload()

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			if ct != format.CompressionNone {
				require.Less(t, len(compressed), len(payload))
			}

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestCodecRoundTrip_Empty(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestCreateCodec_Invalid(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0x7F), "chunk blob")
	require.Error(t, err)
	require.Contains(t, err.Error(), "chunk blob")
}

func TestGetCodec_Invalid(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7F))
	require.Error(t, err)
}

func TestDecompress_CorruptInput(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress([]byte{0xDE, 0xAD, 0xBE, 0xEF})
			require.Error(t, err)
		})
	}
}
