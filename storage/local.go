package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads below a directory that the HTTP server exposes
// at urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

func (s *LocalStore) Dir() string       { return s.dir }
func (s *LocalStore) URLPrefix() string { return s.urlPrefix }

func (s *LocalStore) resolve(objectName string) (string, error) {
	clean := path.Clean("/" + objectName)
	if objectName == "" || clean == "/" || strings.Contains(objectName, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidObjectName, objectName)
	}
	return filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *LocalStore) Put(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	target, err := s.resolve(objectName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", objectName, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write %s: %w", objectName, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", objectName, err)
	}
	return s.urlPrefix + "/" + strings.TrimPrefix(path.Clean("/"+objectName), "/"), nil
}

// Delete removes every named object. Missing files are ignored; the first
// other error is returned after all deletions were attempted.
func (s *LocalStore) Delete(_ context.Context, objectNames []string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		target, err := s.resolve(obj)
		if err == nil {
			err = os.Remove(target)
			if errors.Is(err, fs.ErrNotExist) {
				err = nil
			}
		}
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

func (s *LocalStore) ObjectName(publicURL string) (string, error) {
	prefix := s.urlPrefix + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", fmt.Errorf("not a local upload url")
	}
	obj := strings.TrimPrefix(publicURL, prefix)
	if obj == "" {
		return "", fmt.Errorf("missing object path")
	}
	return obj, nil
}
