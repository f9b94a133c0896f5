package blob

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/opalstore/opal/bitpack"
	"github.com/opalstore/opal/column"
	"github.com/opalstore/opal/endian"
	"github.com/opalstore/opal/errs"
	"github.com/opalstore/opal/format"
	"github.com/opalstore/opal/internal/pool"
)

// Value serialization: numerics are fixed-width in the blob's byte order,
// strings are uvarint-length-prefixed UTF-8.

func appendValue[T column.Value](buf []byte, engine endian.EndianEngine, v T) []byte {
	switch v := any(v).(type) {
	case int32:
		return engine.AppendUint32(buf, uint32(v))
	case int64:
		return engine.AppendUint64(buf, uint64(v))
	case float32:
		return engine.AppendUint32(buf, math.Float32bits(v))
	case float64:
		return engine.AppendUint64(buf, math.Float64bits(v))
	case string:
		buf = binary.AppendUvarint(buf, uint64(len(v)))
		return append(buf, v...)
	default:
		return buf
	}
}

func readValue[T column.Value](data []byte, engine endian.EndianEngine) (T, int, error) {
	var zero T
	switch any(zero).(type) {
	case int32:
		if len(data) < 4 {
			return zero, 0, truncated("int32 value")
		}

		return any(int32(engine.Uint32(data))).(T), 4, nil
	case int64:
		if len(data) < 8 {
			return zero, 0, truncated("int64 value")
		}

		return any(int64(engine.Uint64(data))).(T), 8, nil
	case float32:
		if len(data) < 4 {
			return zero, 0, truncated("float32 value")
		}

		return any(math.Float32frombits(engine.Uint32(data))).(T), 4, nil
	case float64:
		if len(data) < 8 {
			return zero, 0, truncated("float64 value")
		}

		return any(math.Float64frombits(engine.Uint64(data))).(T), 8, nil
	default:
		length, n := binary.Uvarint(data)
		if n <= 0 || uint64(len(data)-n) < length {
			return zero, 0, truncated("string value")
		}

		return any(string(data[n : n+int(length)])).(T), n + int(length), nil
	}
}

func readValues[T column.Value](data []byte, engine endian.EndianEngine, count int) ([]T, int, error) {
	values := make([]T, count)
	offset := 0
	for i := range count {
		v, n, err := readValue[T](data[offset:], engine)
		if err != nil {
			return nil, 0, err
		}
		values[i] = v
		offset += n
	}

	return values, offset, nil
}

// Null bitmaps pack one bit per row, LSB first within each byte.

func appendBitmap(buf []byte, bits []bool) []byte {
	start := len(buf)
	buf = append(buf, make([]byte, (len(bits)+7)/8)...)
	for i, b := range bits {
		if b {
			buf[start+i/8] |= 1 << (i % 8)
		}
	}

	return buf
}

func readBitmap(data []byte, count int) ([]bool, int, error) {
	nbytes := (count + 7) / 8
	if len(data) < nbytes {
		return nil, 0, truncated("null bitmap")
	}

	bits := make([]bool, count)
	for i := range bits {
		bits[i] = data[i/8]&(1<<(i%8)) != 0
	}

	return bits, nbytes, nil
}

// Packed index sequences are written at their vector's fixed width, one
// value after another with no per-element framing.

func appendPackedIndices(buf []byte, engine endian.EndianEngine, vec bitpack.Vector) []byte {
	switch vec.Width() {
	case format.VectorFixed8:
		for v := range vec.All() {
			buf = append(buf, byte(v))
		}
	case format.VectorFixed16:
		for v := range vec.All() {
			buf = engine.AppendUint16(buf, uint16(v))
		}
	default:
		for v := range vec.All() {
			buf = engine.AppendUint32(buf, v)
		}
	}

	return buf
}

func readPackedIndices(data []byte, engine endian.EndianEngine, count int, vt format.VectorType) (bitpack.Vector, int, error) {
	width := vt.Bits() / 8
	if width == 0 {
		return nil, 0, fmt.Errorf("%w: invalid vector type %v for packed indices", errs.ErrCorruptPayload, vt)
	}
	if len(data) < count*width {
		return nil, 0, truncated("packed index sequence")
	}

	indices, release := pool.GetUint32Slice(count)
	defer release()

	switch vt {
	case format.VectorFixed8:
		for i := range count {
			indices[i] = uint32(data[i])
		}
	case format.VectorFixed16:
		for i := range count {
			indices[i] = uint32(engine.Uint16(data[i*2:]))
		}
	default:
		for i := range count {
			indices[i] = engine.Uint32(data[i*4:])
		}
	}

	vec, err := bitpack.Build(indices, vt)
	if err != nil {
		return nil, 0, err
	}

	return vec, count * width, nil
}

func readUint32s(data []byte, engine endian.EndianEngine, count int, what string) ([]uint32, int, error) {
	if len(data) < count*4 {
		return nil, 0, truncated(what)
	}

	out := make([]uint32, count)
	for i := range out {
		out[i] = engine.Uint32(data[i*4:])
	}

	return out, count * 4, nil
}

func truncated(what string) error {
	return fmt.Errorf("%w: insufficient data for %s", errs.ErrCorruptPayload, what)
}
