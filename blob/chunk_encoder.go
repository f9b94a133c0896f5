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
	"github.com/opalstore/opal/internal/collision"
	"github.com/opalstore/opal/internal/hash"
	"github.com/opalstore/opal/internal/options"
	"github.com/opalstore/opal/internal/pool"
	"github.com/opalstore/opal/section"
	"github.com/opalstore/opal/table"
)

// ChunkEncoder serializes chunks into the blob format described in the
// package documentation. An encoder is immutable after construction and
// may serialize any number of chunks, concurrently if desired.
type ChunkEncoder struct {
	engine      endian.EndianEngine
	codec       compress.Codec
	compression format.CompressionType
	bigEndian   bool
}

// ChunkEncoderOption configures a ChunkEncoder.
type ChunkEncoderOption = options.Option[*ChunkEncoder]

// WithCompression selects the payload compression codec. The default is
// format.CompressionNone.
func WithCompression(ct format.CompressionType) ChunkEncoderOption {
	return options.New(func(e *ChunkEncoder) error {
		switch ct {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			e.compression = ct
			return nil
		default:
			return fmt.Errorf("invalid chunk blob compression: %v", ct)
		}
	})
}

// WithBigEndian stores multi-byte fields in big-endian byte order. The
// default is little-endian.
func WithBigEndian() ChunkEncoderOption {
	return options.NoError(func(e *ChunkEncoder) {
		e.bigEndian = true
		e.engine = endian.GetBigEndianEngine()
	})
}

// NewChunkEncoder creates a chunk blob encoder.
func NewChunkEncoder(opts ...ChunkEncoderOption) (*ChunkEncoder, error) {
	enc := &ChunkEncoder{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}
	if err := options.Apply(enc, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(enc.compression, "chunk payload")
	if err != nil {
		return nil, err
	}
	enc.codec = codec

	return enc, nil
}

// Encode serializes a chunk. names and dataTypes describe the chunk's
// columns in order and must match its column count; only the xxHash64 of
// each name is stored.
func (e *ChunkEncoder) Encode(chunk *table.Chunk, names []string, dataTypes []format.DataType) ([]byte, error) {
	if len(names) != chunk.ColumnCount() || len(dataTypes) != chunk.ColumnCount() {
		return nil, fmt.Errorf("%w: chunk has %d columns, %d names, %d data types",
			errs.ErrLengthMismatch, chunk.ColumnCount(), len(names), len(dataTypes))
	}

	payload := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(payload)

	tracker := collision.NewTracker()
	entries := make([]section.ChunkIndexEntry, chunk.ColumnCount())
	for i := range entries {
		col := chunk.Column(i)
		if col.DataType() != dataTypes[i] {
			return nil, fmt.Errorf("%w: column %d holds %s, declared as %s",
				errs.ErrDataTypeMismatch, i, col.DataType(), dataTypes[i])
		}

		nameID := hash.ID(names[i])
		if err := tracker.TrackColumn(names[i], nameID); err != nil {
			return nil, fmt.Errorf("column %d %q: %w", i, names[i], err)
		}

		entries[i] = section.ChunkIndexEntry{
			NameID:        nameID,
			DataType:      dataTypes[i],
			Encoding:      col.Encoding(),
			PayloadOffset: uint32(payload.Len()),
		}

		buf, err := e.appendColumn(payload.Bytes(), col, dataTypes[i], &entries[i])
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		payload.B = buf
		entries[i].PayloadLen = uint32(payload.Len()) - entries[i].PayloadOffset
	}

	checksum := xxhash.Sum64(payload.Bytes())

	compressed, err := e.codec.Compress(payload.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress chunk payload: %w", err)
	}

	header := section.NewChunkHeader(chunk.ColumnCount(), chunk.RowCount())
	header.Flag.SetBigEndian(e.bigEndian)
	header.Flag.SetCompression(e.compression)
	header.Checksum = checksum

	blob := make([]byte, 0, section.HeaderSize+len(entries)*section.IndexEntrySize+len(compressed))
	blob = append(blob, header.Bytes()...)
	for _, entry := range entries {
		blob = entry.AppendTo(blob, e.engine)
	}
	blob = append(blob, compressed...)

	return blob, nil
}

// appendColumn fans the runtime data type tag out to the statically typed
// serialization path.
func (e *ChunkEncoder) appendColumn(buf []byte, col column.Column, dt format.DataType, entry *section.ChunkIndexEntry) ([]byte, error) {
	switch dt {
	case format.TypeInt32:
		return appendTypedColumn[int32](buf, e.engine, col, entry)
	case format.TypeInt64:
		return appendTypedColumn[int64](buf, e.engine, col, entry)
	case format.TypeFloat32:
		return appendTypedColumn[float32](buf, e.engine, col, entry)
	case format.TypeFloat64:
		return appendTypedColumn[float64](buf, e.engine, col, entry)
	case format.TypeString:
		return appendTypedColumn[string](buf, e.engine, col, entry)
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedDataType, dt)
	}
}

func appendTypedColumn[T column.Value](buf []byte, engine endian.EndianEngine, col column.Column, entry *section.ChunkIndexEntry) ([]byte, error) {
	switch c := col.(type) {
	case *column.ValueColumn[T]:
		if c.Nullable() {
			entry.Flags |= section.EntryFlagNullable
		}
		for _, v := range c.Values() {
			buf = appendValue(buf, engine, v)
		}
		if c.Nullable() {
			buf = appendBitmap(buf, c.Nulls())
		}

		return buf, nil
	case *encoding.DictionaryColumn[T]:
		entry.Vector = c.VectorType()
		buf = engine.AppendUint32(buf, uint32(c.DictionarySize()))
		for _, v := range c.DictionaryValues() {
			buf = appendValue(buf, engine, v)
		}

		return appendPackedIndices(buf, engine, c.Indices()), nil
	case *encoding.RunLengthColumn[T]:
		buf = engine.AppendUint32(buf, uint32(c.RunCount()))
		for _, end := range c.RunEnds() {
			buf = engine.AppendUint32(buf, end)
		}
		buf = appendBitmap(buf, c.RunNulls())
		for _, v := range c.RunValues() {
			buf = appendValue(buf, engine, v)
		}

		return buf, nil
	case *encoding.LegacyDictionaryColumn[T]:
		if c.Nulls() != nil {
			entry.Flags |= section.EntryFlagNullable
		}
		buf = engine.AppendUint32(buf, uint32(c.DictionarySize()))
		for _, v := range c.DictionaryValues() {
			buf = appendValue(buf, engine, v)
		}
		for _, idx := range c.RawIndices() {
			buf = engine.AppendUint32(buf, idx)
		}
		if c.Nulls() != nil {
			buf = appendBitmap(buf, c.Nulls())
		}

		return buf, nil
	default:
		return nil, fmt.Errorf("%w: %s of %s", errs.ErrUnsupportedEncoding, col.Encoding(), col.DataType())
	}
}
