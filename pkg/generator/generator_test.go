package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "cards")
	w := NewWriter(dir)

	path, err := w.Write("alice-qr.png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "alice-qr.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.NoError(t, w.Delete(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.Error(t, w.Delete(path))
}

func TestWriterRejectsPaths(t *testing.T) {
	w := NewWriter(t.TempDir())
	for _, name := range []string{"", "../escape.png", "a/b.png", ".hidden"} {
		_, err := w.Write(name, nil)
		assert.Error(t, err, name)
	}
}

func TestNewWriterRelative(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "exports"), NewWriter("exports").OutputDir)
}
