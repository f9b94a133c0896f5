// Package table provides the chunk and table containers that own columns,
// and the orchestrator that applies per-column encoding specifications to
// them.
//
// Encoding a chunk replaces its raw columns with encoded ones in place.
// The package performs no internal locking: the caller must guarantee
// exclusive access to a chunk for the duration of an encode call. Once a
// chunk is encoded, its columns are immutable and safe for unlimited
// concurrent readers.
package table

import (
	"fmt"
	"slices"

	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// ChunkID identifies a chunk within its table by position.
type ChunkID uint32

// MVCC holds per-row versioning metadata attached to a chunk: the
// transaction IDs that created and invalidated each row. Deleted rows
// leave fragmentation in these slices; chunk encoding compacts them.
type MVCC struct {
	// BeginIDs holds the commit ID that made each row visible.
	BeginIDs []uint64
	// EndIDs holds the commit ID that invalidated each row, or
	// MaxCommitID for live rows.
	EndIDs []uint64
}

// MaxCommitID marks a row that has not been invalidated.
const MaxCommitID = ^uint64(0)

// compact reclaims slack capacity left by prior row deletions. Encoding
// is a convenient point for this since the chunk is exclusively held.
func (m *MVCC) compact() {
	m.BeginIDs = slices.Clip(m.BeginIDs)
	m.EndIDs = slices.Clip(m.EndIDs)
}

// Chunk is a horizontal partition of a table's rows: one column reference
// per table column, all of equal length, plus optional MVCC metadata.
type Chunk struct {
	columns []column.Column
	mvcc    *MVCC
}

// NewChunk creates a chunk from the given columns. All columns must have
// the same row count.
func NewChunk(columns ...column.Column) (*Chunk, error) {
	for i := 1; i < len(columns); i++ {
		if columns[i].Len() != columns[0].Len() {
			return nil, fmt.Errorf("%w: column 0 has %d rows, column %d has %d",
				errs.ErrLengthMismatch, columns[0].Len(), i, columns[i].Len())
		}
	}

	return &Chunk{columns: columns}, nil
}

// RowCount returns the number of rows in the chunk.
func (c *Chunk) RowCount() int {
	if len(c.columns) == 0 {
		return 0
	}

	return c.columns[0].Len()
}

// ColumnCount returns the number of columns in the chunk.
func (c *Chunk) ColumnCount() int {
	return len(c.columns)
}

// Column returns the column at position i.
func (c *Chunk) Column(i int) column.Column {
	return c.columns[i]
}

// SetMVCC attaches per-row versioning metadata to the chunk.
func (c *Chunk) SetMVCC(mvcc *MVCC) {
	c.mvcc = mvcc
}

// MVCC returns the chunk's versioning metadata, or nil.
func (c *Chunk) MVCC() *MVCC {
	return c.mvcc
}

// replaceColumn swaps the column reference at position i. The old column
// is dropped once no reader holds it.
func (c *Chunk) replaceColumn(i int, col column.Column) {
	c.columns[i] = col
}

// Table is an ordered collection of chunks sharing a schema. Different
// chunks of the same table may carry different encodings, e.g. an
// append-only hot chunk left raw while older chunks are dictionary
// encoded.
type Table struct {
	names     []string
	dataTypes []format.DataType
	chunks    []*Chunk
}

// NewTable creates an empty table with the given schema. names and
// dataTypes must have the same length.
func NewTable(names []string, dataTypes []format.DataType) (*Table, error) {
	if len(names) != len(dataTypes) {
		return nil, fmt.Errorf("%w: %d column names, %d data types",
			errs.ErrLengthMismatch, len(names), len(dataTypes))
	}

	return &Table{names: names, dataTypes: dataTypes}, nil
}

// AppendChunk adds a chunk to the table. The chunk's column count must
// match the schema.
func (t *Table) AppendChunk(chunk *Chunk) error {
	if chunk.ColumnCount() != len(t.dataTypes) {
		return fmt.Errorf("%w: table has %d columns, chunk has %d",
			errs.ErrLengthMismatch, len(t.dataTypes), chunk.ColumnCount())
	}
	t.chunks = append(t.chunks, chunk)

	return nil
}

// ChunkCount returns the number of chunks in the table.
func (t *Table) ChunkCount() int {
	return len(t.chunks)
}

// Chunk returns the chunk with the given ID, or an error when the ID does
// not exist.
func (t *Table) Chunk(id ChunkID) (*Chunk, error) {
	if int(id) >= len(t.chunks) {
		return nil, fmt.Errorf("%w: chunk %d, table has %d chunks", errs.ErrChunkOutOfRange, id, len(t.chunks))
	}

	return t.chunks[id], nil
}

// ColumnNames returns the table's column names in schema order.
func (t *Table) ColumnNames() []string {
	return t.names
}

// DataTypes returns the table's column data types in schema order.
func (t *Table) DataTypes() []format.DataType {
	return t.dataTypes
}
