package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBlobAPI implements blobAPI without a running object store.
type fakeBlobAPI struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error

	putKeys []string
	putErr  error

	removedKeys []string
	removeErr   error

	objects []minio.ObjectInfo
}

func (f *fakeBlobAPI) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeBlobAPI) MakeBucket(_ context.Context, _ string, _ minio.MakeBucketOptions) error {
	return f.makeBucketErr
}

func (f *fakeBlobAPI) PutObject(_ context.Context, _ string, objectName string, _ io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	f.putKeys = append(f.putKeys, objectName)
	return minio.UploadInfo{Key: objectName}, nil
}

func (f *fakeBlobAPI) RemoveObject(_ context.Context, _ string, objectName string, _ minio.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removedKeys = append(f.removedKeys, objectName)
	return nil
}

func (f *fakeBlobAPI) ListObjects(_ context.Context, _ string, _ minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(f.objects))
	for _, obj := range f.objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func TestNewWithAPI_BucketExists(t *testing.T) {
	api := &fakeBlobAPI{bucketExists: true}
	s, err := NewWithAPI(context.Background(), api, "bucket", "http://localhost:9000")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNewWithAPI_CreatesBucket(t *testing.T) {
	api := &fakeBlobAPI{bucketExists: false}
	s, err := NewWithAPI(context.Background(), api, "bucket", "http://localhost:9000")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNewWithAPI_BucketCheckError(t *testing.T) {
	api := &fakeBlobAPI{bucketExistsErr: errors.New("boom")}
	s, err := NewWithAPI(context.Background(), api, "bucket", "http://localhost:9000")
	assert.Nil(t, s)
	assert.ErrorContains(t, err, "failed to ensure bucket exists")
}

func TestNewWithAPI_MakeBucketError(t *testing.T) {
	api := &fakeBlobAPI{bucketExists: false, makeBucketErr: errors.New("denied")}
	s, err := NewWithAPI(context.Background(), api, "bucket", "http://localhost:9000")
	assert.Nil(t, s)
	assert.Error(t, err)
}

func TestUpload_ReturnsDurableURL(t *testing.T) {
	api := &fakeBlobAPI{bucketExists: true}
	s, err := NewWithAPI(context.Background(), api, "bucket", "http://localhost:9000")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "2026-09-01T10:00:00Z-notes.pdf", bytes.NewReader([]byte("data")), 4, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/bucket/2026-09-01T10:00:00Z-notes.pdf", url)
	assert.Equal(t, []string{"2026-09-01T10:00:00Z-notes.pdf"}, api.putKeys)
}

func TestUpload_Error(t *testing.T) {
	api := &fakeBlobAPI{bucketExists: true, putErr: errors.New("unreachable")}
	s, err := NewWithAPI(context.Background(), api, "bucket", "http://localhost:9000")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "key", bytes.NewReader(nil), 0, "")
	assert.Empty(t, url)
	assert.ErrorContains(t, err, "failed to upload object")
}

func TestRemove(t *testing.T) {
	api := &fakeBlobAPI{bucketExists: true}
	s, err := NewWithAPI(context.Background(), api, "bucket", "http://localhost:9000")
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), "key"))
	assert.Equal(t, []string{"key"}, api.removedKeys)
}

func TestObjectURL(t *testing.T) {
	api := &fakeBlobAPI{bucketExists: true}
	s, err := NewWithAPI(context.Background(), api, "assignment-api-bucket", "https://blobs.example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://blobs.example.com/assignment-api-bucket/k.pdf", s.ObjectURL("k.pdf"))
}
