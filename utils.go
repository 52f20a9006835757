package docserver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Resolver maps URL paths onto a public root directory.
type Resolver struct {
	root string
}

// NewResolver creates a Resolver for root. The root is made absolute and
// cleaned; it does not need to exist yet.
func NewResolver(root string) (*Resolver, error) {
	if root == "" {
		return nil, errors.New("new resolver: root cannot be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("new resolver: %w", err)
	}

	return &Resolver{root: abs}, nil
}

// Root returns the absolute public root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps a decoded URL path to a ResolvedPath.
// Leading slashes are stripped, the remainder is joined with the root and
// cleaned. Returns ErrForbidden if the result falls outside the root.
func (r *Resolver) Resolve(requestPath string) (ResolvedPath, error) {
	rel := strings.TrimLeft(requestPath, "/")
	if rel == "" {
		rel = "."
	}

	full := filepath.Join(r.root, filepath.FromSlash(rel))
	if !IsWithinRoot(r.root, full) {
		return ResolvedPath{}, fmt.Errorf("resolve %q: %w", requestPath, ErrForbidden)
	}

	relToRoot, err := filepath.Rel(r.root, full)
	if err != nil {
		return ResolvedPath{}, fmt.Errorf("resolve %q: %w", requestPath, ErrForbidden)
	}

	return ResolvedPath{
		Abs:        full,
		Rel:        relToRoot,
		DirRequest: requestPath == "" || strings.HasSuffix(requestPath, "/"),
	}, nil
}

// IsWithinRoot reports whether the cleaned absolute path p is root itself or
// lies beneath it. The check is lexical; symlinks are not evaluated.
func IsWithinRoot(root, p string) bool {
	if p == root {
		return true
	}

	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return strings.HasPrefix(p, prefix)
}
