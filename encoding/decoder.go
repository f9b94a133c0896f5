package encoding

import "iter"

// ColumnDecoder provides uniform read access to a column regardless of its
// representation.
//
// Decoders borrow the column they read and must not outlive it. For all i
// in [0, Len()), Get(i) and the i-th element of All agree. All may be
// consumed repeatedly; each call returns a fresh iterator starting at row
// zero.
type ColumnDecoder[T any] interface {
	// Get returns the value at row i and whether it is null. The value is
	// the zero value of T when the row is null.
	Get(i int) (T, bool)

	// Len returns the number of rows.
	Len() int

	// All returns a restartable iterator over (value, isNull) pairs in row
	// order. Sequential iteration is the preferred path for linear scans:
	// its per-element cost does not depend on the encoding.
	All() iter.Seq2[T, bool]
}
