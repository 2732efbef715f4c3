package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DirStorage writes reports as files under one directory, the operating system's
// temp directory by default.
type DirStorage struct {
	dir string
}

// NewDirStorage creates dir when needed.
func NewDirStorage(dir string) (*DirStorage, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "contenttools-reports")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &DirStorage{dir: dir}, nil
}

// Dir returns the directory reports are written to.
func (s *DirStorage) Dir() string {
	return s.dir
}

// Save writes data to a new file.
func (s *DirStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	key := NewKey(name)
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o640); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return key, nil
}

// Open opens a previously saved report. Keys are validated so they cannot escape dir.
func (s *DirStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !ValidKey(key) {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	return f, nil
}

var _ Storage = (*DirStorage)(nil)
