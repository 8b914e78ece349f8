package fsxlocal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/interview-ace/ace/pkg/fsx"
)

// LocalFileSystem implements fsx.FileSystem on a directory tree. It is the
// default backend for single-node deployments and local development.
type LocalFileSystem struct {
	root string
}

// NewLocalFileSystem creates a file system rooted at dir, creating it if
// needed.
func NewLocalFileSystem(root string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &LocalFileSystem{root: root}, nil
}

func (f *LocalFileSystem) resolve(filePath string) string {
	return filepath.Join(f.root, filepath.FromSlash(filePath))
}

// ReadFile returns the contents of the file at path.
func (f *LocalFileSystem) ReadFile(_ context.Context, filePath string) ([]byte, error) {
	data, err := os.ReadFile(f.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	return data, nil
}

// WriteFile stores data at path, creating parent directories as needed.
func (f *LocalFileSystem) WriteFile(_ context.Context, filePath string, data []byte) error {
	full := f.resolve(filePath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", filePath, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filePath, err)
	}
	return nil
}

// WriteFileStream stores the contents of r at path.
func (f *LocalFileSystem) WriteFileStream(_ context.Context, filePath string, r io.Reader) error {
	full := f.resolve(filePath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", filePath, err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create %s: %w", filePath, err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(full)
		return fmt.Errorf("write %s: %w", filePath, err)
	}
	return dst.Close()
}

// Delete removes the file at path. A missing file is not an error.
func (f *LocalFileSystem) Delete(_ context.Context, filePath string) error {
	if err := os.Remove(f.resolve(filePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", filePath, err)
	}
	return nil
}

// Join builds a slash-separated storage path.
func (f *LocalFileSystem) Join(segments ...string) string {
	return fsx.JoinPath(segments...)
}
