package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opalstore/opal/endian"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

func TestChunkHeaderRoundTrip(t *testing.T) {
	h := NewChunkHeader(3, 1000)
	h.Flag.SetCompression(format.CompressionZstd)
	h.Checksum = 0xDEADBEEFCAFEF00D

	require.Equal(t, uint32(HeaderSize+3*IndexEntrySize), h.PayloadOffset)

	data := h.Bytes()
	require.Len(t, data, HeaderSize)

	parsed, err := ParseChunkHeader(data)
	require.NoError(t, err)
	require.Equal(t, *h, parsed)
	require.Equal(t, format.CompressionZstd, parsed.Flag.CompressionType())
}

func TestChunkHeaderRoundTrip_BigEndian(t *testing.T) {
	h := NewChunkHeader(2, 64)
	h.Flag.SetBigEndian(true)
	h.Checksum = 42

	parsed, err := ParseChunkHeader(h.Bytes())
	require.NoError(t, err)
	require.Equal(t, *h, parsed)
	require.Equal(t, endian.GetBigEndianEngine(), parsed.Flag.GetEndianEngine())
}

func TestParseChunkHeader_TooShort(t *testing.T) {
	_, err := ParseChunkHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestParseChunkHeader_BadMagic(t *testing.T) {
	data := NewChunkHeader(1, 1).Bytes()
	data[1] ^= 0xFF // clobber the magic number bits

	_, err := ParseChunkHeader(data)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestParseChunkHeader_ReservedBitsSet(t *testing.T) {
	h := NewChunkHeader(1, 1)
	h.Flag.Options |= 0x0002

	_, err := ParseChunkHeader(h.Bytes())
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
}

func TestParseChunkHeader_BadCompression(t *testing.T) {
	h := NewChunkHeader(1, 1)
	h.Flag.Compression = 0x7F

	_, err := ParseChunkHeader(h.Bytes())
	require.Error(t, err)
}

func TestChunkFlagValidate(t *testing.T) {
	f := NewChunkFlag()
	require.NoError(t, f.Validate())

	f.SetBigEndian(true)
	require.NoError(t, f.Validate(), "endianness bit is not a reserved bit")

	f.SetBigEndian(false)
	require.Equal(t, uint16(MagicChunkV1), f.Options)
}
