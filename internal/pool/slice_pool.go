package pool

import "sync"

// uint32SlicePool reuses index-sequence scratch slices. Dictionary encoding
// materializes one uint32 index per row before bit packing; the scratch is
// discarded right after packing, which makes it a good pooling candidate.
var uint32SlicePool = sync.Pool{
	New: func() any { return &[]uint32{} },
}

// GetUint32Slice retrieves a uint32 slice of the given length from the pool.
//
// If the pooled slice has insufficient capacity, a new slice is allocated.
// The caller must call the returned cleanup function (typically with defer)
// to return the slice to the pool, and must not use the slice afterwards.
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint32SlicePool.Put(ptr) }
}
