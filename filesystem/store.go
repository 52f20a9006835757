// Package filesystem provides the file system storage backend for docserver.
// All operations are sandboxed to an *os.Root and writes are atomic using a
// temp file renamed into place.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/sagarc03/docserver"
)

// Store provides file system storage operations.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Stat returns file info for path. Returns docserver.ErrNotFound if nothing
// exists there, including when a parent component is a regular file.
func (s *Store) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.root.Stat(path)
	if err != nil {
		if isNotExist(err) {
			return nil, docserver.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return info, nil
}

// Read returns the whole file at path.
// Returns docserver.ErrNotFound if the file does not exist.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(path)
	if err != nil {
		if isNotExist(err) {
			return nil, docserver.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "path", path, "err", closeErr)
		}
	}()

	data, err := io.ReadAll(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Write atomically writes content to the given path using a temp file and rename.
// It creates intermediate directories as needed and returns the number of bytes
// written. The operation respects context cancellation.
func (s *Store) Write(ctx context.Context, path string, content io.Reader) (docserver.SaveResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return docserver.SaveResult{}, ctxErr
	}

	destDir := filepath.Dir(path)
	if destDir != "." {
		if err := s.root.MkdirAll(destDir, 0o755); err != nil {
			return docserver.SaveResult{}, fmt.Errorf("could not create intermediate directories: %w", err)
		}
	}

	// The temp file lives next to the target so the rename stays on one device.
	tmpFile := filepath.Join(destDir, tmpFileName())
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return docserver.SaveResult{}, fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	written, err := io.Copy(t, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return docserver.SaveResult{}, fmt.Errorf("could not copy file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return docserver.SaveResult{}, fmt.Errorf("could not sync written file: %w", err)
	}

	if err := t.Close(); err != nil {
		return docserver.SaveResult{}, fmt.Errorf("could not close written file: %w", err)
	}

	if renameErr := s.root.Rename(tmpFile, path); renameErr != nil {
		return docserver.SaveResult{}, fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true

	return docserver.SaveResult{BytesWritten: written}, nil
}

// Delete removes a file or an empty directory. Returns docserver.ErrNotFound
// if nothing exists at path.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.root.Remove(path)
	if err != nil {
		if isNotExist(err) {
			return docserver.ErrNotFound
		}
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
