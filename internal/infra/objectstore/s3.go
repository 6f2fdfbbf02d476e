package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/mobile-barber/internal/config"
)

type S3Uploader struct {
	client *s3.Client
	bucket string
}

// ErrMissingCredentials is returned when a bucket is set without both static keys.
var ErrMissingCredentials = errors.New("S3_BUCKET requires S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY")

// NewS3Uploader returns nil, nil when no bucket is configured.
func NewS3Uploader(cfg *config.Config) (*S3Uploader, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}
	if cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "" {
		return nil, ErrMissingCredentials
	}

	opts := s3.Options{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
	}
	if cfg.S3Endpoint != "" {
		// S3-compatible stores (MinIO, R2) need path-style addressing
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Uploader{client: s3.New(opts), bucket: cfg.S3Bucket}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body []byte) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}
	return nil
}
