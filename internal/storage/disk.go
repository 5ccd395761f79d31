package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ObjectStore is the interface to the object-storage backend holding
// uploaded cover images.
type ObjectStore interface {
	// Put stores data at key, overwriting any existing object (last write wins).
	Put(ctx context.Context, key string, data []byte) error
	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
	// PublicURL returns the URL the stored object is served from.
	PublicURL(key string) string
}

// DiskStore is an ObjectStore backed by the local filesystem.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates a disk-backed object store rooted at root. baseURL
// is prepended to keys when deriving public URLs.
func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *DiskStore) path(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, cleaned), nil
}

func (s *DiskStore) Put(ctx context.Context, key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write object %q: %w", key, err)
	}
	return nil
}

func (s *DiskStore) Exists(ctx context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *DiskStore) PublicURL(key string) string {
	return s.baseURL + "/media/" + key
}
