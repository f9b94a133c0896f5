package format

type (
	DataType        uint8
	EncodingType    uint8
	VectorType      uint8
	CompressionType uint8
)

const (
	TypeInt32   DataType = 0x1 // TypeInt32 represents signed 32-bit integer columns.
	TypeInt64   DataType = 0x2 // TypeInt64 represents signed 64-bit integer columns.
	TypeFloat32 DataType = 0x3 // TypeFloat32 represents 32-bit IEEE 754 columns.
	TypeFloat64 DataType = 0x4 // TypeFloat64 represents 64-bit IEEE 754 columns.
	TypeString  DataType = 0x5 // TypeString represents UTF-8 string columns.

	EncodingUnencoded        EncodingType = 0x0 // EncodingUnencoded leaves a column in raw materialized form.
	EncodingDictionary       EncodingType = 0x1 // EncodingDictionary represents sorted-dictionary encoding with bit-packed indices.
	EncodingRunLength        EncodingType = 0x2 // EncodingRunLength represents run-length encoding.
	EncodingLegacyDictionary EncodingType = 0x3 // EncodingLegacyDictionary represents the legacy dictionary layout (decode-only).

	VectorAuto    VectorType = 0x0 // VectorAuto selects the narrowest fixed width that fits.
	VectorFixed8  VectorType = 0x1 // VectorFixed8 stores each value in 8 bits.
	VectorFixed16 VectorType = 0x2 // VectorFixed16 stores each value in 16 bits.
	VectorFixed32 VectorType = 0x3 // VectorFixed32 stores each value in 32 bits.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (d DataType) String() string {
	switch d {
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeString:
		return "String"
	default:
		return "Unknown"
	}
}

func (e EncodingType) String() string {
	switch e {
	case EncodingUnencoded:
		return "Unencoded"
	case EncodingDictionary:
		return "Dictionary"
	case EncodingRunLength:
		return "RunLength"
	case EncodingLegacyDictionary:
		return "LegacyDictionary"
	default:
		return "Unknown"
	}
}

func (v VectorType) String() string {
	switch v {
	case VectorAuto:
		return "Auto"
	case VectorFixed8:
		return "Fixed8"
	case VectorFixed16:
		return "Fixed16"
	case VectorFixed32:
		return "Fixed32"
	default:
		return "Unknown"
	}
}

// Bits returns the storage width in bits, or 0 for VectorAuto and unknown types.
func (v VectorType) Bits() int {
	switch v {
	case VectorFixed8:
		return 8
	case VectorFixed16:
		return 16
	case VectorFixed32:
		return 32
	default:
		return 0
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
