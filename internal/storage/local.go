// Package storage provides object storage backends for uploaded media.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes objects under a filesystem root and serves them from a
// base URL. It is the default backend for single-node deployments; hosts
// with a CDN or bucket plug in their own interfaces.ObjectStorage instead.
type LocalStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage constructs a filesystem-backed store. Root is created on
// first write, not here, so construction never touches the disk.
func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Put streams content to root/key and returns its public URL. Keys are
// slash-separated; path traversal segments are rejected.
func (s *LocalStorage) Put(ctx context.Context, key string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("storage: invalid object key %q", key)
	}

	target := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("storage: create directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("storage: create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("storage: write object: %w", err)
	}

	return s.baseURL + "/" + filepath.ToSlash(clean), nil
}
