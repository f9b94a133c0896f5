// Package encoding implements opal's column encoders, the encoded column
// representations they produce, and the decoder layer that reads them back.
//
// # Encoders
//
// Two encoders are available, selected per column by the chunk orchestrator
// (see the table package):
//
//   - EncodeDictionary: sorted, deduplicated value dictionary plus a
//     bit-packed index sequence. Best for low-cardinality columns.
//   - EncodeRunLength: maximal (value, end offset) runs. Best for sorted
//     or long-run data.
//
// A third representation, LegacyDictionaryColumn, exists only for reading
// pre-existing encoded data with the older dictionary layout; there is no
// encode path for it.
//
// Every encoder consumes a raw column read-only and constructs a new
// immutable encoded column. Decoding reproduces the source column exactly,
// value for value, including null positions.
//
// # Decoding
//
// All columns, raw and encoded alike, satisfy ColumnDecoder[T]: random access
// via Get and a restartable sequential iterator via All. The sequential
// path is cheaper than repeated Get calls: the dictionary iterator walks
// the bit-packed vector directly, and the run-length iterator advances a
// run cursor instead of binary-searching per element.
//
// DecoderFor resolves a runtime-tagged column to a statically typed
// decoder once; Resolve does the same when the data type itself is only
// known at runtime. After resolution the hot per-element loop involves no
// dynamic dispatch on the encoding.
package encoding
