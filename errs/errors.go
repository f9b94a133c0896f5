// Package errs defines the sentinel errors shared across opal packages.
//
// All errors represent contract violations by the caller or corrupt input
// data; none are transient, so no error in this package is retryable.
// Callers should match them with errors.Is since most call sites wrap
// them with additional context.
package errs

import "errors"

var (
	// ErrAlreadyEncoded is returned when a chunk encode targets a column
	// that is not in raw (unencoded) form.
	ErrAlreadyEncoded = errors.New("column is already encoded")

	// ErrDataTypeMismatch is returned when a column's declared data type
	// disagrees with its actual values.
	ErrDataTypeMismatch = errors.New("column data type mismatch")

	// ErrUnsupportedEncoding is returned when an encoding type tag is not
	// one of the known variants, or a (data type, encoding) combination
	// has no decoder.
	ErrUnsupportedEncoding = errors.New("unsupported encoding type")

	// ErrUnsupportedDataType is returned when a data type tag is not one
	// of the supported column types.
	ErrUnsupportedDataType = errors.New("unsupported data type")

	// ErrValueOverflow is returned when a value exceeds the requested or
	// the widest supported bit-packing width.
	ErrValueOverflow = errors.New("value exceeds bit-packing width")

	// ErrSpecLengthMismatch is returned when a chunk encoding spec does
	// not provide exactly one column spec per column.
	ErrSpecLengthMismatch = errors.New("encoding spec length mismatch")

	// ErrLengthMismatch is returned when parallel column slices (values,
	// nulls, indices) disagree in length.
	ErrLengthMismatch = errors.New("column slice length mismatch")

	// ErrIndexOutOfRange is returned when a dictionary index points
	// outside the dictionary.
	ErrIndexOutOfRange = errors.New("dictionary index out of range")

	// ErrChunkOutOfRange is returned when a chunk ID does not exist in
	// the target table.
	ErrChunkOutOfRange = errors.New("chunk ID out of range")

	// ErrInvalidColumnName is returned when a blob column name is empty.
	ErrInvalidColumnName = errors.New("invalid column name")

	// ErrDuplicateColumnName is returned when the same column name is
	// used twice within one blob.
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrHashCollision is returned when two distinct column names hash to
	// the same ID; blobs store only IDs, so the collision cannot be
	// represented.
	ErrHashCollision = errors.New("column name hash collision")

	// ErrInvalidHeaderSize is returned when a blob is too short to hold
	// the fixed header.
	ErrInvalidHeaderSize = errors.New("invalid blob header size")

	// ErrInvalidMagicNumber is returned when a blob header does not carry
	// the expected magic number.
	ErrInvalidMagicNumber = errors.New("invalid blob magic number")

	// ErrInvalidHeaderFlags is returned when a blob header carries
	// reserved or otherwise invalid flag bits.
	ErrInvalidHeaderFlags = errors.New("invalid blob header flags")

	// ErrChecksumMismatch is returned when a blob payload checksum does
	// not match the stored checksum.
	ErrChecksumMismatch = errors.New("blob payload checksum mismatch")

	// ErrCorruptPayload is returned when a blob payload is truncated or
	// structurally invalid.
	ErrCorruptPayload = errors.New("corrupt blob payload")
)
