package pool

import "sync"

const (
	// BlobBufferDefaultSize is the initial capacity of buffers handed out by
	// GetBlobBuffer.
	BlobBufferDefaultSize = 1024 * 16 // 16KiB

	// BlobBufferMaxThreshold is the largest buffer the pool retains; bigger
	// buffers are dropped on Put to bound pooled memory.
	BlobBufferMaxThreshold = 1024 * 128 // 128KiB
)

// ByteBuffer is a growable byte slice with append-style helpers, pooled to
// avoid repeated allocation while assembling blob payloads.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer has capacity for n more bytes.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	grown := make([]byte, len(bb.B), len(bb.B)+n)
	copy(grown, bb.B)
	bb.B = grown
}

var blobBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(BlobBufferDefaultSize)
	},
}

// GetBlobBuffer retrieves an empty ByteBuffer from the pool.
func GetBlobBuffer() *ByteBuffer {
	buf, _ := blobBufferPool.Get().(*ByteBuffer)
	buf.Reset()

	return buf
}

// PutBlobBuffer returns a ByteBuffer to the pool. Oversized buffers are
// dropped so the pool does not pin large allocations.
func PutBlobBuffer(buf *ByteBuffer) {
	if buf == nil || buf.Cap() > BlobBufferMaxThreshold {
		return
	}

	blobBufferPool.Put(buf)
}
