package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Options struct {
	Bucket       string
	AccessKeyID  string
	SecretKey    string
	Endpoint     string // https://<account-id>.r2.cloudflarestorage.com
	PublicDomain string // custom domain or r2.dev URL
}

// R2Store talks to Cloudflare R2 through its S3-compatible API.
type R2Store struct {
	s3     *s3.Client
	bucket string
	domain string
}

func NewR2Store(ctx context.Context, o R2Options) (*R2Store, error) {
	if o.Bucket == "" || o.AccessKeyID == "" || o.SecretKey == "" || o.Endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(opts *s3.Options) {
		opts.BaseEndpoint = aws.String(o.Endpoint)
		opts.UsePathStyle = true // required for R2
	})

	return &R2Store{
		s3:     client,
		bucket: o.Bucket,
		domain: strings.TrimRight(o.PublicDomain, "/"),
	}, nil
}

func (s *R2Store) Put(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(objectName),
		Body:         r,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", err
	}
	return s.publicURL(objectName), nil
}

func (s *R2Store) Delete(ctx context.Context, objectNames []string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(obj),
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

func (s *R2Store) ObjectName(publicURL string) (string, error) {
	return objectNameFromR2URL(s.domain, s.bucket, publicURL)
}

func (s *R2Store) publicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.domain, s.bucket, objectName)
}

func objectNameFromR2URL(domain, bucket, raw string) (string, error) {
	prefix := domain + "/" + bucket + "/"
	if domain != "" && strings.HasPrefix(raw, prefix) {
		obj := strings.TrimPrefix(raw, prefix)
		if obj == "" {
			return "", fmt.Errorf("no object path in url")
		}
		return obj, nil
	}
	return "", fmt.Errorf("not a recognised R2 public url")
}
