package docserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
)

const indexFile = "index.html"

// FileStorage defines the file operations DocumentService needs.
// Paths are relative to the public root and already validated by a Resolver.
//
// All methods accept a context for cancellation. Implementations should
// check it before touching the filesystem.
type FileStorage interface {
	// Stat returns file info for path, or ErrNotFound if it does not exist.
	Stat(ctx context.Context, path string) (fs.FileInfo, error)

	// Read returns the full contents of the file at path.
	// Returns ErrNotFound if the file does not exist.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write stores content at path, replacing any existing file and creating
	// missing parent directories.
	Write(ctx context.Context, path string, content io.Reader) (SaveResult, error)

	// Delete removes the file or empty directory at path without recursing.
	// Returns ErrNotFound if nothing exists at path.
	Delete(ctx context.Context, path string) error
}

// DocumentService implements read, write and delete of documents under the
// public root.
type DocumentService struct {
	storage FileStorage
}

func NewDocumentService(storage FileStorage) (*DocumentService, error) {
	if storage == nil {
		return nil, errors.New("new document service: storage cannot be nil")
	}
	return &DocumentService{storage: storage}, nil
}

// Get reads the document at p.
//
// Directory requests (empty path or trailing slash) target index.html inside
// the directory. A path naming an existing directory without a trailing
// slash is also redirected to its index.html.
//
// Error types returned:
//   - ErrNotFound: neither p nor the index.html target exist
//   - context.Canceled or context.DeadlineExceeded
//   - Wrapped storage errors for any other read failure
func (s *DocumentService) Get(ctx context.Context, p ResolvedPath) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}

	target := p.Rel
	if p.DirRequest {
		target = filepath.Join(p.Rel, indexFile)
	}

	info, err := s.storage.Stat(ctx, p.Rel)
	if err != nil {
		return Document{}, fmt.Errorf("get document %s: %w", p.Rel, err)
	}

	if !p.DirRequest && info.IsDir() {
		target = filepath.Join(p.Rel, indexFile)
	}

	if target != p.Rel {
		if _, err := s.storage.Stat(ctx, target); err != nil {
			return Document{}, fmt.Errorf("get document %s: %w", target, err)
		}
	}

	content, err := s.storage.Read(ctx, target)
	if err != nil {
		return Document{}, fmt.Errorf("get document %s: %w", target, err)
	}

	return Document{
		Path:        filepath.ToSlash(target),
		ContentType: ContentTypeFor(target),
		Content:     content,
	}, nil
}

// Put writes content to p, overwriting any existing file.
// PutResult.Created is true when no file existed at p beforehand.
func (s *DocumentService) Put(ctx context.Context, p ResolvedPath, content io.Reader) (PutResult, error) {
	if err := ctx.Err(); err != nil {
		return PutResult{}, fmt.Errorf("put document: %w", err)
	}

	existed := true
	if _, err := s.storage.Stat(ctx, p.Rel); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return PutResult{}, fmt.Errorf("put document %s: %w", p.Rel, err)
		}
		existed = false
	}

	saveResult, err := s.storage.Write(ctx, p.Rel, content)
	if err != nil {
		return PutResult{}, fmt.Errorf("put document %s: write failed: %w", p.Rel, err)
	}

	return PutResult{Created: !existed, BytesWritten: saveResult.BytesWritten}, nil
}

// Delete removes the file at p. Non-empty directories are not removed and
// surface as a storage error.
func (s *DocumentService) Delete(ctx context.Context, p ResolvedPath) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if _, err := s.storage.Stat(ctx, p.Rel); err != nil {
		return fmt.Errorf("delete document %s: %w", p.Rel, err)
	}

	if err := s.storage.Delete(ctx, p.Rel); err != nil {
		return fmt.Errorf("delete document %s: %w", p.Rel, err)
	}

	return nil
}
