package section

import (
	"fmt"

	"github.com/opalstore/opal/endian"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// ChunkIndexEntry describes one column of a chunk blob. The index section
// holds one fixed-size entry per column, in column order, directly after
// the header.
type ChunkIndexEntry struct {
	// NameID is the xxHash64 of the column name.
	NameID uint64 // byte offset 0-7
	// DataType is the column's data type tag.
	DataType format.DataType // byte offset 8
	// Encoding is the column's encoding type tag.
	Encoding format.EncodingType // byte offset 9
	// Vector is the bit-packing scheme of the column's index data, or
	// format.VectorAuto for encodings without packed index data.
	Vector format.VectorType // byte offset 10
	// Flags holds per-column flag bits (EntryFlagNullable). byte offset 11
	Flags uint8
	// PayloadOffset is the column payload's byte offset relative to the
	// start of the uncompressed payload section.
	PayloadOffset uint32 // byte offset 12-15
	// PayloadLen is the column payload's length in bytes.
	PayloadLen uint32 // byte offset 16-19
}

// Nullable reports whether the column payload carries a null bitmap.
func (e ChunkIndexEntry) Nullable() bool {
	return e.Flags&EntryFlagNullable != 0
}

// AppendTo serializes the entry and appends it to buf.
func (e ChunkIndexEntry) AppendTo(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint64(buf, e.NameID)
	buf = append(buf, uint8(e.DataType), uint8(e.Encoding), uint8(e.Vector), e.Flags)
	buf = engine.AppendUint32(buf, e.PayloadOffset)
	buf = engine.AppendUint32(buf, e.PayloadLen)
	// Reserved tail pads the entry to IndexEntrySize.
	return append(buf, 0, 0, 0, 0)
}

// ParseChunkIndexEntry parses one entry from a byte slice of at least
// IndexEntrySize bytes.
func ParseChunkIndexEntry(data []byte, engine endian.EndianEngine) (ChunkIndexEntry, error) {
	if len(data) < IndexEntrySize {
		return ChunkIndexEntry{}, fmt.Errorf("%w: index entry needs %d bytes, have %d",
			errs.ErrCorruptPayload, IndexEntrySize, len(data))
	}

	return ChunkIndexEntry{
		NameID:        engine.Uint64(data[0:8]),
		DataType:      format.DataType(data[8]),
		Encoding:      format.EncodingType(data[9]),
		Vector:        format.VectorType(data[10]),
		Flags:         data[11],
		PayloadOffset: engine.Uint32(data[12:16]),
		PayloadLen:    engine.Uint32(data[16:20]),
	}, nil
}
