package section

import (
	"fmt"

	"github.com/opalstore/opal/endian"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// ChunkFlag is the packed option field at the start of the chunk blob
// header.
type ChunkFlag struct {
	// Options is a packed field.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the blob format:
	//   - 0xEC10 (0b1110_1100_0001_0000): chunk blob format v1
	Options uint16

	// Compression is the format.CompressionType applied to the payload
	// section.
	Compression uint8
}

// NewChunkFlag creates a flag for a little-endian v1 chunk blob without
// compression.
func NewChunkFlag() ChunkFlag {
	return ChunkFlag{
		Options:     MagicChunkV1,
		Compression: uint8(format.CompressionNone),
	}
}

// GetEndianEngine returns the endian engine matching the endianness bit.
func (f ChunkFlag) GetEndianEngine() endian.EndianEngine {
	if f.Options&EndiannessMask != 0 {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// SetBigEndian sets or clears the endianness bit.
func (f *ChunkFlag) SetBigEndian(bigEndian bool) {
	if bigEndian {
		f.Options |= EndiannessMask
	} else {
		f.Options &^= EndiannessMask
	}
}

// SetCompression records the payload compression type.
func (f *ChunkFlag) SetCompression(ct format.CompressionType) {
	f.Compression = uint8(ct)
}

// CompressionType returns the payload compression type.
func (f ChunkFlag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// Validate checks the magic number, reserved bits and compression tag.
func (f ChunkFlag) Validate() error {
	if f.Options&MagicNumberMask != MagicChunkV1 {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.Options&MagicNumberMask)
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits set", errs.ErrInvalidHeaderFlags)
	}

	switch format.CompressionType(f.Compression) {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return fmt.Errorf("invalid chunk blob compression: 0x%02X", f.Compression)
	}
}
