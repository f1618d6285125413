package localstorage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaamtranscribe/internal/core/domain"
)

func TestLocalStorageLifecycle(t *testing.T) {
	ctx := context.Background()
	base := filepath.Join(t.TempDir(), "nested", DirName)
	s := NewLocalStorage(base)

	require.NoError(t, s.Prepare(ctx))
	require.DirExists(t, base)

	now := time.UnixMilli(1700000000123)
	path := s.NewPath(domain.FormatWebM, now)
	assert.Equal(t, filepath.Join(base, "video-1700000000123.webm"), path)

	n, err := s.Save(ctx, path, strings.NewReader("payload"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	data, err := s.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, s.Remove(path))
	assert.NoFileExists(t, path)

	// Removing again, or removing nothing, is not an error.
	assert.NoError(t, s.Remove(path))
	assert.NoError(t, s.Remove(""))
}

func TestDefaultBaseDir(t *testing.T) {
	s := NewLocalStorage("")
	assert.Equal(t, filepath.Join(os.TempDir(), DirName), s.BaseDir)
}

func TestReadMissing(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	_, err := s.Read(context.Background(), filepath.Join(s.BaseDir, "nope.mp4"))
	require.Error(t, err)
}

func TestSaveIntoMissingDir(t *testing.T) {
	s := NewLocalStorage(filepath.Join(t.TempDir(), "missing"))
	_, err := s.Save(context.Background(), filepath.Join(s.BaseDir, "v.mp4"), strings.NewReader("x"))
	require.Error(t, err)
}
