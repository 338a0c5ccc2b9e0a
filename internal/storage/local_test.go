package storage

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/emrgen/wiki/internal/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SaveOpen(t *testing.T) {
	for _, c := range []compress.Compress{compress.NewNop(), compress.NewGZip()} {
		t.Run(c.Name(), func(t *testing.T) {
			local, err := NewLocal(t.TempDir(), c)
			require.NoError(t, err)

			content := strings.Repeat("attachment content\n", 20)
			name, size, err := local.Save(strings.NewReader(content))
			require.NoError(t, err)
			assert.Equal(t, int64(len(content)), size)

			r, err := local.Open(name)
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.Equal(t, content, string(data))

			require.NoError(t, local.Remove(name))
			_, err = local.Open(name)
			assert.Error(t, err)
		})
	}
}

func TestLocal_InvalidName(t *testing.T) {
	local, err := NewLocal(t.TempDir(), compress.NewNop())
	require.NoError(t, err)

	for _, name := range []string{"", "../secret", "/etc/passwd"} {
		_, err := local.Open(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestLocal_SaveFailureLeavesNoBlob(t *testing.T) {
	for _, c := range []compress.Compress{compress.NewNop(), compress.NewGZip()} {
		t.Run(c.Name(), func(t *testing.T) {
			root := t.TempDir()
			local, err := NewLocal(root, c)
			require.NoError(t, err)

			boom := errors.New("connection reset")
			r := io.MultiReader(strings.NewReader("partial upload"), iotest.ErrReader(boom))
			name, size, err := local.Save(r)
			assert.ErrorIs(t, err, boom)
			assert.Empty(t, name)
			assert.Zero(t, size)

			var files []string
			err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() {
					files = append(files, path)
				}
				return nil
			})
			require.NoError(t, err)
			assert.Empty(t, files)
		})
	}
}
