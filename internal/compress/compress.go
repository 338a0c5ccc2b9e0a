package compress

import (
	"fmt"
	"io"
)

// Compress encodes data at rest. Readers and writers stream the same
// encoding as Encode and Decode.
type Compress interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
	NewWriter(w io.Writer) io.WriteCloser
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// New returns the compressor registered under name.
func New(name string) (Compress, error) {
	switch name {
	case "", "nop":
		return NewNop(), nil
	case "gzip":
		return NewGZip(), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}
