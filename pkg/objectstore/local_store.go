package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PublicRoute is where LocalStore objects are expected to be served from. It
// mirrors the hosted storage layout so URLs survive a backend swap.
const PublicRoute = "/storage/v1/object/public"

// LocalStore keeps objects on the filesystem under {root}/{bucket}/.
type LocalStore struct {
	root    string
	bucket  string
	baseURL string
}

// NewLocalStore creates the bucket directory if it does not exist.
func NewLocalStore(root, bucket, baseURL string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, bucket), 0o755); err != nil {
		return nil, fmt.Errorf("create bucket directory: %w", err)
	}
	return &LocalStore{
		root:    abs,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// BucketDir is the directory to mount at PublicRoute/{bucket}.
func (s *LocalStore) BucketDir() string {
	return filepath.Join(s.root, s.bucket)
}

func (s *LocalStore) Bucket() string {
	return s.bucket
}

// resolve keeps every path inside the bucket directory.
func (s *LocalStore) resolve(path string) (string, error) {
	dir := s.BucketDir()
	abs := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+path)))
	if abs == dir || !strings.HasPrefix(abs, dir+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes bucket", path)
	}
	return abs, nil
}

func (s *LocalStore) Upload(_ context.Context, path string, body io.Reader, _ string, upsert bool) error {
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}
	if !upsert {
		if _, err := os.Stat(abs); err == nil {
			return fmt.Errorf("%s: %w", path, ErrObjectExists)
		}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), abs); err != nil {
		return fmt.Errorf("commit object: %w", err)
	}
	return nil
}

func (s *LocalStore) Remove(_ context.Context, paths []string) error {
	var errs []error
	for _, p := range paths {
		abs, err := s.resolve(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("delete %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func (s *LocalStore) PublicURL(path string) string {
	return fmt.Sprintf("%s%s/%s/%s", s.baseURL, PublicRoute, s.bucket, escapePath(path))
}
