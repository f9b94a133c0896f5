// Package column defines the raw materialized column representation and the
// interface shared by raw and encoded columns.
//
// A ValueColumn holds one typed value per row plus an optional null marker
// per position. It is the input to every column encoder and is never
// mutated by encoding; encoders construct new encoded columns and the
// owning chunk swaps its reference.
package column

import (
	"fmt"
	"iter"

	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// Value is the closed set of column data types.
type Value interface {
	int32 | int64 | float32 | float64 | string
}

// Column is the minimal interface shared by raw and encoded columns.
//
// Concrete columns are immutable after construction and safe for
// concurrent readers.
type Column interface {
	// Len returns the number of rows.
	Len() int

	// DataType returns the column's data type tag.
	DataType() format.DataType

	// Encoding returns the column's encoding type tag.
	// Raw columns report format.EncodingUnencoded.
	Encoding() format.EncodingType
}

// DataTypeOf returns the data type tag for the column type T.
func DataTypeOf[T Value]() format.DataType {
	var zero T
	switch any(zero).(type) {
	case int32:
		return format.TypeInt32
	case int64:
		return format.TypeInt64
	case float32:
		return format.TypeFloat32
	case float64:
		return format.TypeFloat64
	default:
		return format.TypeString
	}
}

// ValueColumn is a raw materialized column: an ordered sequence of typed
// values with an optional null marker per position.
type ValueColumn[T Value] struct {
	values []T
	nulls  []bool // nil when the column is non-nullable
}

// NewValueColumn creates a raw column from parallel value and null slices.
//
// nulls may be nil for a non-nullable column; otherwise it must have the
// same length as values. The slices are retained, not copied; the caller
// must not modify them afterwards.
func NewValueColumn[T Value](values []T, nulls []bool) (*ValueColumn[T], error) {
	if nulls != nil && len(nulls) != len(values) {
		return nil, fmt.Errorf("%w: %d values, %d null markers", errs.ErrLengthMismatch, len(values), len(nulls))
	}

	return &ValueColumn[T]{values: values, nulls: nulls}, nil
}

func (c *ValueColumn[T]) Len() int {
	return len(c.values)
}

func (c *ValueColumn[T]) DataType() format.DataType {
	return DataTypeOf[T]()
}

func (c *ValueColumn[T]) Encoding() format.EncodingType {
	return format.EncodingUnencoded
}

// Nullable reports whether the column carries null markers at all.
func (c *ValueColumn[T]) Nullable() bool {
	return c.nulls != nil
}

// Get returns the value at row i and whether it is null. The value is the
// zero value of T when the row is null.
func (c *ValueColumn[T]) Get(i int) (T, bool) {
	if c.nulls != nil && c.nulls[i] {
		var zero T
		return zero, true
	}

	return c.values[i], false
}

// All returns a restartable iterator over (value, isNull) pairs in row order.
func (c *ValueColumn[T]) All() iter.Seq2[T, bool] {
	return func(yield func(T, bool) bool) {
		for i, v := range c.values {
			if c.nulls != nil && c.nulls[i] {
				var zero T
				if !yield(zero, true) {
					return
				}

				continue
			}
			if !yield(v, false) {
				return
			}
		}
	}
}

// Values returns the backing value slice. The caller must not modify it.
// Null positions hold unspecified values.
func (c *ValueColumn[T]) Values() []T {
	return c.values
}

// Nulls returns the backing null marker slice, or nil for a non-nullable
// column. The caller must not modify it.
func (c *ValueColumn[T]) Nulls() []bool {
	return c.nulls
}
