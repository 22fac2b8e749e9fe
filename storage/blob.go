package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"coursetracker/config"
)

// blobAPI is the slice of the MinIO client the store needs. It exists so
// tests can swap in a fake without a running object store.
type blobAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// BlobStore uploads named byte payloads to an object store bucket and
// hands back durable references.
type BlobStore struct {
	api     blobAPI
	bucket  string
	baseURL string
}

// New dials the object store and ensures the configured bucket exists.
func New(ctx context.Context, cfg *config.Config) (*BlobStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store client: %w", err)
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}

	return NewWithAPI(ctx, client, cfg.BlobBucket, fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint))
}

// NewWithAPI allows injecting a mockable API (used in tests).
func NewWithAPI(ctx context.Context, api blobAPI, bucket, baseURL string) (*BlobStore, error) {
	s := &BlobStore{
		api:     api,
		bucket:  bucket,
		baseURL: baseURL,
	}

	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return s, nil
}

func (s *BlobStore) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload writes the payload under key and returns the durable URL of the
// stored object. The returned URL is only handed out after the write has
// been acknowledged.
func (s *BlobStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.api.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return s.ObjectURL(key), nil
}

// Remove deletes the object under key.
func (s *BlobStore) Remove(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// List streams every object in the bucket.
func (s *BlobStore) List(ctx context.Context) <-chan minio.ObjectInfo {
	return s.api.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{})
}

// ObjectURL returns the durable reference for an object key.
func (s *BlobStore) ObjectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key)
}
