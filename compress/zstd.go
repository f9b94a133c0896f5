package compress

// ZstdCompressor backs format.CompressionZstd. Zstandard gives the best
// compression ratio of the supported codecs and is the usual choice for
// cold chunks that are serialized once and read rarely.
//
// The Compress and Decompress methods live in zstd_cgo.go and
// zstd_pure.go, selected by the cgo build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
