package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/princinho/rentalbackend/config"
	"github.com/princinho/rentalbackend/models"
)

var ErrInvalidObjectName = errors.New("invalid object name")

// BlobStore stores uploaded media and hands out public URLs for it.
type BlobStore interface {
	Put(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectNames []string) error
	ObjectName(publicURL string) (string, error)
}

// Open returns the blob store selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch cfg.StorageDriver {
	case config.StorageLocal:
		return NewLocalStore(cfg.UploadDir, cfg.UploadURLPrefix), nil
	case config.StorageGCS:
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.CredentialsFile)
	case config.StorageR2:
		return NewR2Store(ctx, R2Options{
			Bucket:       cfg.R2Bucket,
			AccessKeyID:  cfg.R2AccessKeyID,
			SecretKey:    cfg.R2SecretKey,
			Endpoint:     cfg.R2Endpoint,
			PublicDomain: cfg.R2PublicDomain,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func contentTypeFor(fh *multipart.FileHeader, ext string) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(ext)
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}

// UploadFile stores fh under folder/<unix>-<uuid><ext>.
func UploadFile(ctx context.Context, blobs BlobStore, folder string, fh *multipart.FileHeader) (*models.MediaItem, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".bin"
	}
	now := time.Now().UTC()
	objectName := fmt.Sprintf("%s/%d-%s%s", strings.Trim(folder, "/"), now.Unix(), uuid.New().String(), ext)
	ct := contentTypeFor(fh, ext)

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	url, err := blobs.Put(ctx, objectName, ct, f)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
	}

	return &models.MediaItem{
		ID:         uuid.New().String(),
		FileName:   fh.Filename,
		ObjectName: objectName,
		URL:        url,
		MimeType:   ct,
		SizeBytes:  fh.Size,
		UploadedAt: now,
	}, nil
}

// UploadFiles uploads every file or none: on failure the already stored
// objects are deleted again.
func UploadFiles(ctx context.Context, blobs BlobStore, folder string, files []*multipart.FileHeader) ([]*models.MediaItem, error) {
	items := make([]*models.MediaItem, 0, len(files))
	for _, fh := range files {
		item, err := UploadFile(ctx, blobs, folder, fh)
		if err != nil {
			_ = blobs.Delete(ctx, ObjectNames(items))
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func ObjectNames(items []*models.MediaItem) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.ObjectName)
	}
	return names
}

// ObjectNamesFromURLs maps public URLs back to object names, skipping URLs
// the store does not own.
func ObjectNamesFromURLs(blobs BlobStore, urls []string) []string {
	names := make([]string, 0, len(urls))
	for _, u := range urls {
		if obj, err := blobs.ObjectName(u); err == nil {
			names = append(names, obj)
		}
	}
	return names
}
