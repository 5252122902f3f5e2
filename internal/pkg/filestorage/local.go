package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/yigit/unicatalog/internal/pkg/logger"
)

// LocalStorage reads files from a directory on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance. basePath must be an
// existing directory.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Storage directory not accessible")
		return nil, fmt.Errorf("failed to access storage directory %s: %w", basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage path %s is not a directory", basePath)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Open opens a file directly under the base path. Names with directory
// components are rejected as not found.
func (ls *LocalStorage) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, ErrFileNotFound
	}

	f, err := os.Open(filepath.Join(ls.basePath, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}

func (ls *LocalStorage) List(_ context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(ls.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, FileInfo{Name: e.Name(), FileSize: info.Size()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (ls *LocalStorage) Location() string {
	return ls.basePath
}
