package filestorage

import (
	"context"
	"errors"
	"io"
)

// ErrFileNotFound is returned by Open when the named file does not exist.
var ErrFileNotFound = errors.New("file not found")

// FileInfo represents information about a stored file
type FileInfo struct {
	Name     string // Name relative to the storage root
	FileSize int64  // Size in bytes
}

// FileStorage is a read-only view over a flat set of named files
type FileStorage interface {
	// Open returns the file's content; ErrFileNotFound if it is absent
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// List describes every file under the storage root, sorted by name
	List(ctx context.Context) ([]FileInfo, error)

	// Location names the storage root for log lines
	Location() string
}
