package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
)

// minioAPI is the subset of *minio.Client used by [MinioSink]; tests inject
// a fake.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}

func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}

func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

// MinioSink uploads export files to an S3-compatible bucket.
type MinioSink struct {
	api    minioAPI
	bucket string
	prefix string
}

// NewMinioSink connects to cfg.Endpoint and makes sure cfg.Bucket exists.
func NewMinioSink(ctx context.Context, cfg config.Export) (*MinioSink, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return newMinioSinkWithAPI(ctx, minioClientWrapper{c: client}, cfg.Bucket, cfg.Prefix)
}

func newMinioSinkWithAPI(ctx context.Context, api minioAPI, bucket, prefix string) (*MinioSink, error) {
	s := &MinioSink{api: api, bucket: bucket, prefix: prefix}

	exists, err := api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return s, nil
}

// Put uploads data as <prefix><name> with a text/csv content type.
func (s *MinioSink) Put(ctx context.Context, name string, data []byte) (string, error) {
	key := s.prefix + name

	_, err := s.api.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// NewExportSink selects the MinIO sink when a bucket is configured and the
// directory sink otherwise.
func NewExportSink(ctx context.Context, cfg config.Export) (ExportSink, error) {
	if cfg.Bucket != "" {
		return NewMinioSink(ctx, cfg)
	}
	return NewDirSink(cfg.Dir)
}
