package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore uses the service account file at credentialsPath (relative to
// the working directory) or application default credentials when empty.
func NewGCSStore(ctx context.Context, bucket, credentialsPath string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, filepath.Join(wd, credentialsPath)))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Put(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "no-cache"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

func (s *GCSStore) Delete(ctx context.Context, objectNames []string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		err := s.client.Bucket(s.bucket).Object(obj).Delete(ctx)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

func (s *GCSStore) ObjectName(publicURL string) (string, error) {
	return ObjectNameFromGCSPublicURL(s.bucket, publicURL)
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

// ObjectNameFromGCSPublicURL accepts both storage.googleapis.com/<bucket>/<object>
// and <bucket>.storage.googleapis.com/<object>.
func ObjectNameFromGCSPublicURL(bucket string, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	host := strings.ToLower(u.Host)
	p := strings.TrimPrefix(u.Path, "/")

	if host == "storage.googleapis.com" {
		prefix := bucket + "/"
		if !strings.HasPrefix(p, prefix) {
			return "", fmt.Errorf("url bucket mismatch")
		}
		return strings.TrimPrefix(p, prefix), nil
	}

	if host == strings.ToLower(bucket)+".storage.googleapis.com" {
		if p == "" {
			return "", fmt.Errorf("missing object path")
		}
		return p, nil
	}

	return "", fmt.Errorf("not a gcs public url")
}
