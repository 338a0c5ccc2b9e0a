package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emrgen/wiki/internal/compress"
	"github.com/google/uuid"
)

// ErrInvalidName is returned for blob names that escape the storage root.
var ErrInvalidName = errors.New("invalid blob name")

// Local keeps attachment blobs on the local filesystem, encoded with the
// configured compressor.
type Local struct {
	root     string
	compress compress.Compress
}

// NewLocal creates the storage root if needed.
func NewLocal(root string, c compress.Compress) (*Local, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, err
	}

	return &Local{root: root, compress: c}, nil
}

// Save writes r to a new blob and returns its name and decoded size.
func (l *Local) Save(r io.Reader) (string, int64, error) {
	id := uuid.New().String()
	name := filepath.Join(id[:2], id)

	if err := os.MkdirAll(filepath.Join(l.root, id[:2]), os.ModePerm); err != nil {
		return "", 0, err
	}

	path := filepath.Join(l.root, name)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}

	size, err := l.encode(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("writing blob %s: %w", name, err)
	}

	return filepath.ToSlash(name), size, nil
}

func (l *Local) encode(f *os.File, r io.Reader) (int64, error) {
	w := l.compress.NewWriter(f)
	size, err := io.Copy(w, r)
	if err != nil {
		return 0, err
	}

	return size, w.Close()
}

// Open returns a reader over the decoded blob.
func (l *Local) Open(name string) (io.ReadCloser, error) {
	path, err := l.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := l.compress.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &blobReader{ReadCloser: r, file: f}, nil
}

// Remove deletes a blob.
func (l *Local) Remove(name string) error {
	path, err := l.path(name)
	if err != nil {
		return err
	}

	return os.Remove(path)
}

func (l *Local) path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", ErrInvalidName
	}

	return filepath.Join(l.root, clean), nil
}

type blobReader struct {
	io.ReadCloser
	file *os.File
}

func (b *blobReader) Close() error {
	err := b.ReadCloser.Close()
	if ferr := b.file.Close(); err == nil {
		err = ferr
	}
	return err
}
