package enc

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// CompressWriter wraps w with a Zstandard compression stream.
// The returned encoder MUST be closed to flush the stream.
// https://github.com/klauspost/compress/tree/master/zstd
func CompressWriter(w io.Writer) (*zstd.Encoder, error) {
	return zstd.NewWriter(w)
}

// DecompressReader wraps r with a Zstandard decompression stream.
// Close the returned decoder to release its resources.
func DecompressReader(r io.Reader) (*zstd.Decoder, error) {
	return zstd.NewReader(r)
}
