package encoding

import (
	"fmt"
	"iter"
	"slices"

	"github.com/opalstore/opal/bitpack"
	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
	"github.com/opalstore/opal/internal/pool"
)

// DictionaryColumn is a dictionary-encoded column: a strictly sorted,
// deduplicated value dictionary plus a bit-packed index per row.
//
// Nulls are stored as a reserved sentinel index equal to the dictionary
// size, the first index value outside the valid range. The sentinel takes
// part in bit-width selection like any other index value.
type DictionaryColumn[T column.Value] struct {
	dict    []T
	indices bitpack.Vector
}

// Dictionary returns (dict, indices) for a raw column: the sorted unique
// non-null values and one dictionary position per row, with nulls mapped
// to the sentinel uint32(len(dict)).
//
// The index slice is freshly allocated and owned by the caller.
func Dictionary[T column.Value](col *column.ValueColumn[T]) ([]T, []uint32) {
	dict := buildDictionary(col)
	indices := make([]uint32, col.Len())
	lookupIndices(col, dict, indices)

	return dict, indices
}

func buildDictionary[T column.Value](col *column.ValueColumn[T]) []T {
	values := col.Values()
	nulls := col.Nulls()

	dict := make([]T, 0, len(values))
	for i, v := range values {
		if nulls != nil && nulls[i] {
			continue
		}
		dict = append(dict, v)
	}

	slices.Sort(dict)

	return slices.Compact(dict)
}

func lookupIndices[T column.Value](col *column.ValueColumn[T], dict []T, indices []uint32) {
	values := col.Values()
	nulls := col.Nulls()
	sentinel := uint32(len(dict))

	for i, v := range values {
		if nulls != nil && nulls[i] {
			indices[i] = sentinel
			continue
		}
		// The dictionary contains every non-null source value, so the
		// search always hits.
		pos, _ := slices.BinarySearch(dict, v)
		indices[i] = uint32(pos)
	}
}

// EncodeDictionary dictionary-encodes a raw column.
//
// The vector type selects the bit-packing width for the index sequence;
// format.VectorAuto picks the narrowest width that holds the null sentinel
// (and therefore every valid index). An explicit width that cannot hold
// the sentinel fails with errs.ErrValueOverflow.
//
// Edge cases: an all-null column yields an empty dictionary with every
// index equal to sentinel 0; an empty column yields an empty dictionary
// and an empty index vector.
func EncodeDictionary[T column.Value](col *column.ValueColumn[T], vt format.VectorType) (*DictionaryColumn[T], error) {
	dict := buildDictionary(col)

	indices, release := pool.GetUint32Slice(col.Len())
	defer release()
	lookupIndices(col, dict, indices)

	vec, err := bitpack.Build(indices, vt)
	if err != nil {
		return nil, fmt.Errorf("dictionary encoding of %s column: %w", col.DataType(), err)
	}

	return &DictionaryColumn[T]{dict: dict, indices: vec}, nil
}

// NewDictionaryColumn reconstructs a dictionary column from its stored
// parts, validating the representation invariants: the dictionary must be
// strictly sorted with no duplicates, and every index must be at most the
// null sentinel uint32(len(dict)).
//
// The slices are retained, not copied.
func NewDictionaryColumn[T column.Value](dict []T, indices bitpack.Vector) (*DictionaryColumn[T], error) {
	for i := 1; i < len(dict); i++ {
		if dict[i] <= dict[i-1] {
			return nil, fmt.Errorf("%w: dictionary not strictly sorted at position %d",
				errs.ErrCorruptPayload, i)
		}
	}

	sentinel := uint32(len(dict))
	for i := range indices.Len() {
		if idx := indices.Get(i); idx > sentinel {
			return nil, fmt.Errorf("%w: index %d at row %d, null sentinel %d",
				errs.ErrIndexOutOfRange, idx, i, sentinel)
		}
	}

	return &DictionaryColumn[T]{dict: dict, indices: indices}, nil
}

func (c *DictionaryColumn[T]) Len() int {
	return c.indices.Len()
}

func (c *DictionaryColumn[T]) DataType() format.DataType {
	return column.DataTypeOf[T]()
}

func (c *DictionaryColumn[T]) Encoding() format.EncodingType {
	return format.EncodingDictionary
}

// DictionarySize returns the number of unique non-null values.
func (c *DictionaryColumn[T]) DictionarySize() int {
	return len(c.dict)
}

// NullSentinel returns the reserved index value marking null rows.
func (c *DictionaryColumn[T]) NullSentinel() uint32 {
	return uint32(len(c.dict))
}

// VectorType returns the bit-packing width of the index sequence.
func (c *DictionaryColumn[T]) VectorType() format.VectorType {
	return c.indices.Width()
}

// DictionaryValues returns the backing dictionary slice, sorted ascending.
// The caller must not modify it.
func (c *DictionaryColumn[T]) DictionaryValues() []T {
	return c.dict
}

// Indices returns the bit-packed index vector.
func (c *DictionaryColumn[T]) Indices() bitpack.Vector {
	return c.indices
}

func (c *DictionaryColumn[T]) Get(i int) (T, bool) {
	idx := c.indices.Get(i)
	if idx >= uint32(len(c.dict)) {
		var zero T
		return zero, true
	}

	return c.dict[idx], false
}

func (c *DictionaryColumn[T]) All() iter.Seq2[T, bool] {
	return func(yield func(T, bool) bool) {
		sentinel := uint32(len(c.dict))
		for idx := range c.indices.All() {
			if idx >= sentinel {
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

var _ ColumnDecoder[int32] = (*DictionaryColumn[int32])(nil)
