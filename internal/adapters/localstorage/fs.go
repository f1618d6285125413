package localstorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"vaamtranscribe/internal/core/domain"
)

// DirName is the scoped directory created under the system temp dir.
const DirName = "vaam-transcribe"

// LocalStorage implements ports.Storage for the local filesystem.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a new LocalStorage instance. An empty baseDir
// means <os.TempDir()>/vaam-transcribe.
func NewLocalStorage(baseDir string) *LocalStorage {
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), DirName)
	}
	return &LocalStorage{BaseDir: baseDir}
}

// Prepare creates the temp directory.
func (s *LocalStorage) Prepare(ctx context.Context) error {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory %s: %w", s.BaseDir, err)
	}
	return nil
}

// NewPath returns a timestamp-derived artifact path.
func (s *LocalStorage) NewPath(format domain.Format, now time.Time) string {
	name := fmt.Sprintf("video-%d%s", now.UnixMilli(), format.Extension())
	return filepath.Join(s.BaseDir, name)
}

// Save writes the video stream to path.
func (s *LocalStorage) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create video file %s: %w", path, err)
	}
	defer file.Close()

	n, err := io.Copy(file, reader)
	if err != nil {
		return n, fmt.Errorf("failed to write video file: %w", err)
	}
	if err := file.Close(); err != nil {
		return n, fmt.Errorf("failed to close video file: %w", err)
	}
	return n, nil
}

// Read loads the whole artifact.
func (s *LocalStorage) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read video file: %w", err)
	}
	return data, nil
}

// Remove deletes the artifact.
func (s *LocalStorage) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
