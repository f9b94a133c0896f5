package section

import (
	"github.com/opalstore/opal/errs"
)

// ChunkHeader is the fixed-size header section at the start of a chunk
// blob.
type ChunkHeader struct {
	// ColumnCount is the number of columns stored in the blob.
	ColumnCount uint32 // byte offset 4-7
	// RowCount is the number of rows in every stored column.
	RowCount uint32 // byte offset 8-11
	// PayloadOffset is the byte offset to the start of the (possibly
	// compressed) payload section, directly after the index section.
	PayloadOffset uint32 // byte offset 12-15
	// Checksum is the xxHash64 of the uncompressed payload section.
	Checksum uint64 // byte offset 16-23

	// Flag is the packed field for options, magic number and compression.
	Flag ChunkFlag // byte offset 0-3
}

// NewChunkHeader creates a header for a blob with the given column and row
// counts. The payload offset and checksum are filled in by the encoder.
func NewChunkHeader(columnCount, rowCount int) *ChunkHeader {
	return &ChunkHeader{
		Flag:          NewChunkFlag(),
		ColumnCount:   uint32(columnCount),
		RowCount:      uint32(rowCount),
		PayloadOffset: IndexOffsetOffset + uint32(columnCount)*IndexEntrySize,
	}
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
func (h *ChunkHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The options field is parsed little-endian regardless of the blob's
	// endianness bit, since it is where that bit lives.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Compression = data[2]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.ColumnCount = engine.Uint32(data[4:8])
	h.RowCount = engine.Uint32(data[8:12])
	h.PayloadOffset = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])

	return nil
}

// Bytes serializes the header into a freshly allocated HeaderSize slice.
func (h *ChunkHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Compression
	engine.PutUint32(b[4:8], h.ColumnCount)
	engine.PutUint32(b[8:12], h.RowCount)
	engine.PutUint32(b[12:16], h.PayloadOffset)
	engine.PutUint64(b[16:24], h.Checksum)

	return b
}

// ParseChunkHeader parses a ChunkHeader from the front of a byte slice.
func ParseChunkHeader(data []byte) (ChunkHeader, error) {
	if len(data) < HeaderSize {
		return ChunkHeader{}, errs.ErrInvalidHeaderSize
	}

	h := ChunkHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return ChunkHeader{}, err
	}

	return h, nil
}
