// Package blob serializes encoded chunks to a self-describing binary form
// and back.
//
// A chunk blob has three sections:
//
//	+--------+---------------------+------------------+
//	| header | column index        | payload          |
//	| 32 B   | 24 B per column     | variable         |
//	+--------+---------------------+------------------+
//
// The header carries a magic number, endianness and compression flags,
// column and row counts, and an xxHash64 checksum of the uncompressed
// payload. Each index entry records a column's name hash, data type,
// encoding type, bit-packing scheme and payload location. The payload
// concatenates the per-column encoded data and is optionally compressed
// as a whole with one of the codecs from the compress package.
//
// Column names are stored only as xxHash64 IDs; VerifyColumnNames checks
// a decoded blob against the names the caller expects.
//
// The blob layer is strictly layered on top of the in-memory column
// representations: serialization never changes how columns are encoded,
// and deserialization re-validates the representation invariants before
// handing columns back.
package blob
