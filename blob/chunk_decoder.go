package blob

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/compress"
	"github.com/opalstore/opal/encoding"
	"github.com/opalstore/opal/endian"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
	"github.com/opalstore/opal/internal/hash"
	"github.com/opalstore/opal/section"
	"github.com/opalstore/opal/table"
)

// ChunkDecoder reads a chunk blob produced by ChunkEncoder.
//
// NewChunkDecoder parses and validates the header and index sections,
// decompresses the payload and verifies its checksum; Decode then
// materializes the columns. A decoder reads a single blob and is not
// safe for concurrent use.
type ChunkDecoder struct {
	header  section.ChunkHeader
	entries []section.ChunkIndexEntry
	payload []byte
	engine  endian.EndianEngine
}

// NewChunkDecoder parses the blob's fixed sections and prepares the
// payload for decoding.
//
// Corruption is detected here, before any column is materialized: a
// truncated header or index, an unknown magic number or compression tag,
// and a payload whose xxHash64 does not match the stored checksum all
// fail with the matching sentinel error.
func NewChunkDecoder(data []byte) (*ChunkDecoder, error) {
	header, err := section.ParseChunkHeader(data)
	if err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()

	indexEnd := int(header.PayloadOffset)
	wantIndexEnd := section.HeaderSize + int(header.ColumnCount)*section.IndexEntrySize
	if indexEnd != wantIndexEnd || len(data) < indexEnd {
		return nil, fmt.Errorf("%w: index section for %d columns", errs.ErrCorruptPayload, header.ColumnCount)
	}

	entries := make([]section.ChunkIndexEntry, header.ColumnCount)
	for i := range entries {
		offset := section.HeaderSize + i*section.IndexEntrySize
		entry, err := section.ParseChunkIndexEntry(data[offset:offset+section.IndexEntrySize], engine)
		if err != nil {
			return nil, fmt.Errorf("failed to parse index entry %d: %w", i, err)
		}
		entries[i] = entry
	}

	codec, err := compress.GetCodec(header.Flag.CompressionType())
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(data[indexEnd:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress chunk payload: %w", err)
	}

	if got := xxhash.Sum64(payload); got != header.Checksum {
		return nil, fmt.Errorf("%w: stored 0x%016X, computed 0x%016X",
			errs.ErrChecksumMismatch, header.Checksum, got)
	}

	return &ChunkDecoder{
		header:  header,
		entries: entries,
		payload: payload,
		engine:  engine,
	}, nil
}

// Header returns the parsed blob header.
func (d *ChunkDecoder) Header() section.ChunkHeader {
	return d.header
}

// RowCount returns the number of rows in every stored column.
func (d *ChunkDecoder) RowCount() int {
	return int(d.header.RowCount)
}

// ColumnIDs returns the stored xxHash64 column name IDs in column order.
func (d *ChunkDecoder) ColumnIDs() []uint64 {
	ids := make([]uint64, len(d.entries))
	for i, entry := range d.entries {
		ids[i] = entry.NameID
	}

	return ids
}

// DataTypes returns the stored column data type tags in column order.
func (d *ChunkDecoder) DataTypes() []format.DataType {
	types := make([]format.DataType, len(d.entries))
	for i, entry := range d.entries {
		types[i] = entry.DataType
	}

	return types
}

// VerifyColumnNames checks the caller's expected column names against the
// stored name IDs.
func (d *ChunkDecoder) VerifyColumnNames(names []string) error {
	if len(names) != len(d.entries) {
		return fmt.Errorf("%w: blob has %d columns, %d names given",
			errs.ErrLengthMismatch, len(d.entries), len(names))
	}
	for i, name := range names {
		if got := xxhash.Sum64String(name); got != d.entries[i].NameID {
			return fmt.Errorf("column %d name %q does not match stored ID 0x%016X", i, name, d.entries[i].NameID)
		}
	}

	return nil
}

// Decode materializes every column and assembles them into a chunk.
func (d *ChunkDecoder) Decode() (*table.Chunk, error) {
	columns := make([]column.Column, len(d.entries))
	for i, entry := range d.entries {
		end := int(entry.PayloadOffset) + int(entry.PayloadLen)
		if end > len(d.payload) || int(entry.PayloadOffset) > end {
			return nil, fmt.Errorf("column %d: %w", i, truncated("column payload"))
		}

		col, err := d.readColumn(d.payload[entry.PayloadOffset:end], entry)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		columns[i] = col
	}

	return table.NewChunk(columns...)
}

func (d *ChunkDecoder) readColumn(data []byte, entry section.ChunkIndexEntry) (column.Column, error) {
	switch entry.DataType {
	case format.TypeInt32:
		return readTypedColumn[int32](data, d.engine, entry, d.RowCount())
	case format.TypeInt64:
		return readTypedColumn[int64](data, d.engine, entry, d.RowCount())
	case format.TypeFloat32:
		return readTypedColumn[float32](data, d.engine, entry, d.RowCount())
	case format.TypeFloat64:
		return readTypedColumn[float64](data, d.engine, entry, d.RowCount())
	case format.TypeString:
		return readTypedColumn[string](data, d.engine, entry, d.RowCount())
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedDataType, entry.DataType)
	}
}

func readTypedColumn[T column.Value](data []byte, engine endian.EndianEngine, entry section.ChunkIndexEntry, rows int) (column.Column, error) {
	switch entry.Encoding {
	case format.EncodingUnencoded:
		return readValueColumn[T](data, engine, entry, rows)
	case format.EncodingDictionary:
		return readDictionaryColumn[T](data, engine, entry, rows)
	case format.EncodingRunLength:
		return readRunLengthColumn[T](data, engine, rows)
	case format.EncodingLegacyDictionary:
		return readLegacyDictionaryColumn[T](data, engine, entry, rows)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, entry.Encoding)
	}
}

func readValueColumn[T column.Value](data []byte, engine endian.EndianEngine, entry section.ChunkIndexEntry, rows int) (column.Column, error) {
	values, n, err := readValues[T](data, engine, rows)
	if err != nil {
		return nil, err
	}

	var nulls []bool
	if entry.Nullable() {
		nulls, _, err = readBitmap(data[n:], rows)
		if err != nil {
			return nil, err
		}
	}

	return column.NewValueColumn(values, nulls)
}

func readDictionaryColumn[T column.Value](data []byte, engine endian.EndianEngine, entry section.ChunkIndexEntry, rows int) (column.Column, error) {
	if len(data) < 4 {
		return nil, truncated("dictionary size")
	}
	dictSize := int(engine.Uint32(data))

	dict, n, err := readValues[T](data[4:], engine, dictSize)
	if err != nil {
		return nil, err
	}

	vec, _, err := readPackedIndices(data[4+n:], engine, rows, entry.Vector)
	if err != nil {
		return nil, err
	}

	return encoding.NewDictionaryColumn(dict, vec)
}

func readRunLengthColumn[T column.Value](data []byte, engine endian.EndianEngine, rows int) (column.Column, error) {
	if len(data) < 4 {
		return nil, truncated("run count")
	}
	runCount := int(engine.Uint32(data))

	ends, n, err := readUint32s(data[4:], engine, runCount, "run end offsets")
	if err != nil {
		return nil, err
	}
	offset := 4 + n

	nullRuns, n, err := readBitmap(data[offset:], runCount)
	if err != nil {
		return nil, err
	}
	offset += n

	values, _, err := readValues[T](data[offset:], engine, runCount)
	if err != nil {
		return nil, err
	}

	col, err := encoding.NewRunLengthColumn(values, nullRuns, ends)
	if err != nil {
		return nil, err
	}
	if col.Len() != rows {
		return nil, fmt.Errorf("%w: runs cover %d rows, blob declares %d",
			errs.ErrCorruptPayload, col.Len(), rows)
	}

	return col, nil
}

func readLegacyDictionaryColumn[T column.Value](data []byte, engine endian.EndianEngine, entry section.ChunkIndexEntry, rows int) (column.Column, error) {
	if len(data) < 4 {
		return nil, truncated("dictionary size")
	}
	dictSize := int(engine.Uint32(data))

	dict, n, err := readValues[T](data[4:], engine, dictSize)
	if err != nil {
		return nil, err
	}
	offset := 4 + n

	indices, n, err := readUint32s(data[offset:], engine, rows, "legacy dictionary indices")
	if err != nil {
		return nil, err
	}
	offset += n

	var nulls []bool
	if entry.Nullable() {
		nulls, _, err = readBitmap(data[offset:], rows)
		if err != nil {
			return nil, err
		}
	}

	return encoding.NewLegacyDictionaryColumn(dict, indices, nulls)
}

// ID computes the xxHash64 column name ID stored in blob index entries.
func ID(name string) uint64 {
	return hash.ID(name)
}
