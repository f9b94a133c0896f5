package encoding

import (
	"fmt"
	"iter"
	"sort"

	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// RunLengthColumn is a run-length-encoded column: maximal runs of equal
// values (or equal null state), each recorded as the run's value, its null
// flag and its cumulative end offset (exclusive) in the source column.
//
// Invariants: end offsets are strictly increasing and the last one equals
// the row count; adjacent runs never share the same value and null state.
type RunLengthColumn[T column.Value] struct {
	values   []T
	nullRuns []bool
	ends     []uint32
}

// EncodeRunLength run-length-encodes a raw column in a single left-to-right
// scan. An empty column yields zero runs.
//
// Run count is not bounded: a column alternating every value produces one
// run per row. Choosing this encoding for such data is the caller's
// responsibility.
func EncodeRunLength[T column.Value](col *column.ValueColumn[T]) *RunLengthColumn[T] {
	rl := &RunLengthColumn[T]{}

	var pos uint32
	first := true
	var curVal T
	var curNull bool

	for v, isNull := range col.All() {
		switch {
		case first:
			curVal, curNull = v, isNull
			first = false
		case isNull != curNull || (!isNull && v != curVal):
			rl.closeRun(curVal, curNull, pos)
			curVal, curNull = v, isNull
		}
		pos++
	}
	if !first {
		rl.closeRun(curVal, curNull, pos)
	}

	return rl
}

// NewRunLengthColumn reconstructs a run-length column from its stored
// parts, validating the representation invariants: values, nullRuns and
// ends must have equal lengths and the end offsets must be strictly
// increasing. Adjacent runs sharing the same value and null state are not
// rejected here; only the encoder guarantees maximal runs.
//
// The slices are retained, not copied.
func NewRunLengthColumn[T column.Value](values []T, nullRuns []bool, ends []uint32) (*RunLengthColumn[T], error) {
	if len(values) != len(nullRuns) || len(values) != len(ends) {
		return nil, fmt.Errorf("%w: %d run values, %d null flags, %d end offsets",
			errs.ErrLengthMismatch, len(values), len(nullRuns), len(ends))
	}
	for i := range ends {
		prev := uint32(0)
		if i > 0 {
			prev = ends[i-1]
		}
		if ends[i] <= prev {
			return nil, fmt.Errorf("%w: run end offsets not strictly increasing at run %d",
				errs.ErrCorruptPayload, i)
		}
	}

	return &RunLengthColumn[T]{values: values, nullRuns: nullRuns, ends: ends}, nil
}

func (c *RunLengthColumn[T]) closeRun(v T, isNull bool, end uint32) {
	c.values = append(c.values, v)
	c.nullRuns = append(c.nullRuns, isNull)
	c.ends = append(c.ends, end)
}

func (c *RunLengthColumn[T]) Len() int {
	if len(c.ends) == 0 {
		return 0
	}

	return int(c.ends[len(c.ends)-1])
}

func (c *RunLengthColumn[T]) DataType() format.DataType {
	return column.DataTypeOf[T]()
}

func (c *RunLengthColumn[T]) Encoding() format.EncodingType {
	return format.EncodingRunLength
}

// RunCount returns the number of runs.
func (c *RunLengthColumn[T]) RunCount() int {
	return len(c.values)
}

// RunValues returns the backing run value slice. Null runs hold the zero
// value of T. The caller must not modify it.
func (c *RunLengthColumn[T]) RunValues() []T {
	return c.values
}

// RunNulls returns the backing per-run null flags. The caller must not
// modify it.
func (c *RunLengthColumn[T]) RunNulls() []bool {
	return c.nullRuns
}

// RunEnds returns the backing cumulative end offsets. The caller must not
// modify it.
func (c *RunLengthColumn[T]) RunEnds() []uint32 {
	return c.ends
}

func (c *RunLengthColumn[T]) Get(i int) (T, bool) {
	// First run whose end offset lies beyond i.
	run := sort.Search(len(c.ends), func(r int) bool { return c.ends[r] > uint32(i) })
	if c.nullRuns[run] {
		var zero T
		return zero, true
	}

	return c.values[run], false
}

func (c *RunLengthColumn[T]) All() iter.Seq2[T, bool] {
	return func(yield func(T, bool) bool) {
		var pos uint32
		for run, end := range c.ends {
			for ; pos < end; pos++ {
				if c.nullRuns[run] {
					var zero T
					if !yield(zero, true) {
						return
					}

					continue
				}
				if !yield(c.values[run], false) {
					return
				}
			}
		}
	}
}

var _ ColumnDecoder[int32] = (*RunLengthColumn[int32])(nil)
