package fsx

import (
	"context"
	"io"
	"path"
)

// FileReader reads stored files.
type FileReader interface {
	// ReadFile returns the full contents of the file at path.
	ReadFile(ctx context.Context, filePath string) ([]byte, error)
}

// FileWriter writes files to storage.
type FileWriter interface {
	// WriteFile stores data at path, replacing any existing file.
	WriteFile(ctx context.Context, filePath string, data []byte) error

	// WriteFileStream stores the contents of r at path.
	WriteFileStream(ctx context.Context, filePath string, r io.Reader) error
}

// FileSystem is the full storage interface used by upload handlers.
type FileSystem interface {
	FileReader
	FileWriter

	// Delete removes the file at path. Deleting a missing file is not an error.
	Delete(ctx context.Context, filePath string) error

	// Join builds a storage path from segments using the backend's separator.
	Join(segments ...string) string
}

// JoinPath is the default slash-separated join used by most backends.
func JoinPath(segments ...string) string {
	return path.Join(segments...)
}
