// Package section defines the fixed binary sections of an opal chunk blob:
// the header and the per-column index entries.
package section

const (
	// Bit masks for the packed header options field.
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicChunkV1 is the version 1 magic number for the chunk blob format
	// (bits 4-15 of the options field).
	MagicChunkV1 = 0xEC10

	// FlagBigEndian marks a blob whose multi-byte fields use big-endian
	// byte order. The options field itself is always little-endian.
	FlagBigEndian = 0x0001
)

// Offsets and section sizes in the blob.
const (
	HeaderSize        = 32         // fixed header size in bytes
	IndexEntrySize    = 24         // fixed per-column index entry size in bytes
	IndexOffsetOffset = HeaderSize // byte offset where the index section starts
)

// Index entry flag bits.
const (
	EntryFlagNullable = 0x01 // column carries a null bitmap
)
