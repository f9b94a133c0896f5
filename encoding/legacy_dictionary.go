package encoding

import (
	"fmt"
	"iter"

	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// LegacyDictionaryColumn is the older dictionary layout, retained only so
// pre-existing encoded data can still be read. It differs from
// DictionaryColumn in three ways: the dictionary keeps first-occurrence
// order instead of being sorted, indices are stored as plain uint32 values
// without bit packing, and nulls are marked by a separate bitmap rather
// than a sentinel index.
//
// There is deliberately no encode path. NewLegacyDictionaryColumn exists
// to reconstruct columns from pre-existing artifacts (and for tests);
// encoding specs naming this layout are rejected.
type LegacyDictionaryColumn[T column.Value] struct {
	dict    []T
	indices []uint32
	nulls   []bool
}

// NewLegacyDictionaryColumn reconstructs a legacy dictionary column from
// its stored parts. nulls may be nil for a column without nulls; otherwise
// it must match indices in length. Every index at a non-null position must
// point inside the dictionary. Index values at null positions are ignored.
//
// The slices are retained, not copied.
func NewLegacyDictionaryColumn[T column.Value](dict []T, indices []uint32, nulls []bool) (*LegacyDictionaryColumn[T], error) {
	if nulls != nil && len(nulls) != len(indices) {
		return nil, fmt.Errorf("%w: %d indices, %d null markers", errs.ErrLengthMismatch, len(indices), len(nulls))
	}
	for i, idx := range indices {
		if nulls != nil && nulls[i] {
			continue
		}
		if idx >= uint32(len(dict)) {
			return nil, fmt.Errorf("%w: index %d at row %d, dictionary size %d",
				errs.ErrIndexOutOfRange, idx, i, len(dict))
		}
	}

	return &LegacyDictionaryColumn[T]{dict: dict, indices: indices, nulls: nulls}, nil
}

func (c *LegacyDictionaryColumn[T]) Len() int {
	return len(c.indices)
}

func (c *LegacyDictionaryColumn[T]) DataType() format.DataType {
	return column.DataTypeOf[T]()
}

func (c *LegacyDictionaryColumn[T]) Encoding() format.EncodingType {
	return format.EncodingLegacyDictionary
}

// DictionarySize returns the number of unique non-null values.
func (c *LegacyDictionaryColumn[T]) DictionarySize() int {
	return len(c.dict)
}

// DictionaryValues returns the backing dictionary slice, in first-occurrence
// order. The caller must not modify it.
func (c *LegacyDictionaryColumn[T]) DictionaryValues() []T {
	return c.dict
}

// RawIndices returns the backing index slice. The caller must not modify it.
func (c *LegacyDictionaryColumn[T]) RawIndices() []uint32 {
	return c.indices
}

// Nulls returns the backing null bitmap, or nil. The caller must not
// modify it.
func (c *LegacyDictionaryColumn[T]) Nulls() []bool {
	return c.nulls
}

func (c *LegacyDictionaryColumn[T]) Get(i int) (T, bool) {
	if c.nulls != nil && c.nulls[i] {
		var zero T
		return zero, true
	}

	return c.dict[c.indices[i]], false
}

func (c *LegacyDictionaryColumn[T]) All() iter.Seq2[T, bool] {
	return func(yield func(T, bool) bool) {
		for i, idx := range c.indices {
			if c.nulls != nil && c.nulls[i] {
				var zero T
				if !yield(zero, true) {
					return
				}

				continue
			}
			if !yield(c.dict[idx], false) {
				return
			}
		}
	}
}

var _ ColumnDecoder[string] = (*LegacyDictionaryColumn[string])(nil)
