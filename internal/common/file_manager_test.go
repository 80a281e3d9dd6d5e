package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_ReadFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(`<div class="btn"></div>`), 0644))

	content, err := fm.ReadFile(context.Background(), path, DefaultFileReadOptions())
	require.NoError(t, err)
	assert.Equal(t, `<div class="btn"></div>`, string(content))
}

func TestFileManager_ReadFile_Errors(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := fm.ReadFile(context.Background(), filepath.Join(dir, "nope.html"), DefaultFileReadOptions())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := fm.ReadFile(context.Background(), dir, DefaultFileReadOptions())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too large", func(t *testing.T) {
		path := filepath.Join(dir, "big.js")
		require.NoError(t, os.WriteFile(path, make([]byte, 64), 0644))

		_, err := fm.ReadFile(context.Background(), path, FileReadOptions{MaxSize: 16, Timeout: time.Second})
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})
}

func TestFileManager_WriteFile_CreatesDirs(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "nested", "out", "purgecss.config.js")

	require.NoError(t, fm.WriteFile(path, []byte("module.exports = {};\n"), DefaultFileWriteOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "module.exports = {};\n", string(data))
	assert.True(t, fm.FileExists(path))
}

func TestFileManager_EnsureDirectory_RejectsFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	err := fm.EnsureDirectory(path, 0755)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
