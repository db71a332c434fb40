package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystemRemote stores objects as files below a root directory, typically
// a network mount or a synced folder.
type FileSystemRemote struct {
	name string
	root string
}

// NewFileSystemRemote creates a remote rooted at root, creating it if needed.
func NewFileSystemRemote(name, root string) (*FileSystemRemote, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create remote root: %w", err)
	}
	return &FileSystemRemote{name: name, root: root}, nil
}

func (v *FileSystemRemote) Name() string { return v.name }

func (v *FileSystemRemote) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key: %s", key)
	}
	return filepath.Join(v.root, clean), nil
}

// Put writes the object to a temporary file and renames it into place so a
// reader never sees a partial file.
func (v *FileSystemRemote) Put(_ context.Context, key string, r io.Reader, size int64) error {
	dest, err := v.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write object: %w", err)
	}
	if written != size {
		os.Remove(tmpPath)
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move object into place: %w", err)
	}
	return nil
}

func (v *FileSystemRemote) Get(_ context.Context, key string, w io.Writer) error {
	src, err := v.path(key)
	if err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("failed to open object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read object: %w", err)
	}
	return nil
}

// ValidateSetup verifies that the root exists, is a directory and is writable.
func (v *FileSystemRemote) ValidateSetup(context.Context) error {
	info, err := os.Stat(v.root)
	if err != nil {
		return fmt.Errorf("remote root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("remote root is not a directory: %s", v.root)
	}

	probe, err := os.CreateTemp(v.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("remote root not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

var _ Remote = (*FileSystemRemote)(nil)
