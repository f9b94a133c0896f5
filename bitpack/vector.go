// Package bitpack implements fixed-width, byte-aligned storage for unsigned
// integer sequences.
//
// A Vector stores every element using the same width, chosen from 8, 16 or
// 32 bits. The width is fixed at build time from the largest input value,
// so decoding any position is a single slice index with no per-element
// branching on value magnitude. Vectors are immutable once built and safe
// for concurrent readers.
//
// Dictionary encoding uses vectors to hold its index sequence, where the
// null sentinel (dictionary size) participates in width selection like any
// other value.
package bitpack

import (
	"fmt"
	"iter"
	"math"

	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
)

// Vector is a read-only sequence of unsigned integers stored at a uniform
// fixed width.
//
// Get performs random access in O(1). All returns a restartable forward
// iterator producing the same values as repeated Get calls; the iterator
// walks the backing slice directly and is the preferred path for linear
// scans.
type Vector interface {
	// Get returns the value at position i. Panics if i is out of range,
	// matching slice indexing semantics.
	Get(i int) uint32

	// Len returns the number of stored values.
	Len() int

	// Width returns the fixed storage width of this vector.
	Width() format.VectorType

	// All returns a restartable iterator over all values in order.
	All() iter.Seq[uint32]
}

// Build packs values into the narrowest vector that can hold every element.
//
// With format.VectorAuto the width escalates from 8 to 16 to 32 bits based
// on the maximum input value. An explicit vector type forces that width and
// fails with errs.ErrValueOverflow if any value does not fit. The input
// slice is copied; the caller may reuse it after Build returns.
func Build(values []uint32, vt format.VectorType) (Vector, error) {
	if vt == format.VectorAuto {
		vt = FitWidth(maxValue(values))
	}

	switch vt {
	case format.VectorFixed8:
		return buildFixed[uint8](values, vt, math.MaxUint8)
	case format.VectorFixed16:
		return buildFixed[uint16](values, vt, math.MaxUint16)
	case format.VectorFixed32:
		return buildFixed[uint32](values, vt, math.MaxUint32)
	default:
		return nil, fmt.Errorf("invalid vector type: %v", vt)
	}
}

// FitWidth returns the narrowest vector type whose width can hold maxVal.
func FitWidth(maxVal uint32) format.VectorType {
	switch {
	case maxVal <= math.MaxUint8:
		return format.VectorFixed8
	case maxVal <= math.MaxUint16:
		return format.VectorFixed16
	default:
		return format.VectorFixed32
	}
}

func maxValue(values []uint32) uint32 {
	var maxVal uint32
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	return maxVal
}

func buildFixed[U uint8 | uint16 | uint32](values []uint32, vt format.VectorType, limit uint32) (Vector, error) {
	data := make([]U, len(values))
	for i, v := range values {
		if v > limit {
			return nil, fmt.Errorf("%w: value %d does not fit in %d bits", errs.ErrValueOverflow, v, vt.Bits())
		}
		data[i] = U(v)
	}

	return fixedVector[U]{data: data, vt: vt}, nil
}

// fixedVector stores all values in a dense typed slice. The element type
// carries the width, so Get is a plain index plus a widening conversion.
type fixedVector[U uint8 | uint16 | uint32] struct {
	data []U
	vt   format.VectorType
}

func (v fixedVector[U]) Get(i int) uint32 {
	return uint32(v.data[i])
}

func (v fixedVector[U]) Len() int {
	return len(v.data)
}

func (v fixedVector[U]) Width() format.VectorType {
	return v.vt
}

func (v fixedVector[U]) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for _, val := range v.data {
			if !yield(uint32(val)) {
				return
			}
		}
	}
}
