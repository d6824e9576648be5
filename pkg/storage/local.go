package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStore implements ObjectStore over a directory tree. It exists for
// tests and local development; table URIs keep their s3:// form and map onto
// bucket/key paths under the root.
type LocalStore struct {
	root string
}

// NewLocalStore creates a store rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) resolve(path string) string {
	bucket, key := splitBucketKey(path)
	return filepath.Join(s.root, bucket, filepath.FromSlash(key))
}

// List walks the tree under the prefix and returns matching paths with the
// prefix's original scheme preserved.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bucket, key := splitBucketKey(prefix)
	base := filepath.Join(s.root, bucket)

	var paths []string
	err := filepath.WalkDir(base, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		object := filepath.ToSlash(rel)
		if key != "" && !strings.HasPrefix(object, key) {
			return nil
		}
		paths = append(paths, "s3://"+bucket+"/"+object)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list %q: %w", prefix, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Get reads the file backing the object path.
func (s *LocalStore) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("storage: get %q: %w", path, err)
	}
	return data, nil
}

// Put writes the file backing the object path, creating parent directories.
func (s *LocalStore) Put(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("storage: put %q: %w", path, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("storage: put %q: %w", path, err)
	}
	return nil
}
