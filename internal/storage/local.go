package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes media into a directory served as static files. Used for
// development and for deployments without a hosted object store.
type LocalStore struct {
	dir     string
	urlPath string
}

// NewLocalStore creates a store rooted at dir, publicly reachable under
// urlPath.
func NewLocalStore(dir, urlPath string) *LocalStore {
	return &LocalStore{dir: dir, urlPath: strings.TrimRight(urlPath, "/")}
}

// Put writes an object file. With overwrite disabled an existing file fails
// with ErrKeyExists.
func (l *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", ErrKeyExists
		}
		return "", fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return l.PublicURL(key), nil
}

// PublicURL returns the static-file URL for a key.
func (l *LocalStore) PublicURL(key string) string {
	return l.urlPath + "/" + key
}
