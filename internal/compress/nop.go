package compress

import "io"

type Nop struct {
}

func NewNop() Nop {
	return Nop{}
}

func (n Nop) Name() string {
	return "nop"
}

func (n Nop) Encode(data []byte) ([]byte, error) {
	return data, nil
}

func (n Nop) Decode(data []byte) ([]byte, error) {
	return data, nil
}

func (n Nop) NewWriter(w io.Writer) io.WriteCloser {
	return nopWriteCloser{w}
}

func (n Nop) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
