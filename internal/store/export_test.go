package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSink_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static")
	sink, err := NewDirSink(dir)
	require.NoError(t, err)

	loc, err := sink.Put(context.Background(), "teams.csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "teams.csv"), loc)

	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(got))
}

func TestDirSink_PutStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewDirSink(dir)
	require.NoError(t, err)

	loc, err := sink.Put(context.Background(), "../escape.csv", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.csv"), loc)
}

type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	putErr  error
	putKey  string
	putBody []byte
	putOpts minio.PutObjectOptions
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minio.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, objectName string, reader *bytes.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	f.putKey = objectName
	f.putOpts = opts
	f.putBody = make([]byte, reader.Len())
	_, _ = reader.Read(f.putBody)
	return minio.UploadInfo{Key: objectName}, nil
}

func TestMinioSink_CreatesMissingBucket(t *testing.T) {
	api := &fakeMinio{bucketExists: false}
	_, err := newMinioSinkWithAPI(context.Background(), api, "reports", "")
	require.NoError(t, err)
	assert.True(t, api.madeBucket)
}

func TestMinioSink_BucketErrors(t *testing.T) {
	_, err := newMinioSinkWithAPI(context.Background(), &fakeMinio{bucketExistsErr: errors.New("boom")}, "b", "")
	assert.ErrorContains(t, err, "failed to check bucket existence")

	_, err = newMinioSinkWithAPI(context.Background(), &fakeMinio{makeBucketErr: errors.New("denied")}, "b", "")
	assert.ErrorContains(t, err, "failed to create bucket")
}

func TestMinioSink_Put(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	sink, err := newMinioSinkWithAPI(context.Background(), api, "reports", "daily/")
	require.NoError(t, err)

	loc, err := sink.Put(context.Background(), "teams.csv", []byte("TeamID\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/daily/teams.csv", loc)
	assert.Equal(t, "daily/teams.csv", api.putKey)
	assert.Equal(t, "TeamID\n1\n", string(api.putBody))
	assert.Equal(t, "text/csv", api.putOpts.ContentType)
}

func TestMinioSink_PutError(t *testing.T) {
	api := &fakeMinio{bucketExists: true, putErr: errors.New("network")}
	sink, err := newMinioSinkWithAPI(context.Background(), api, "reports", "")
	require.NoError(t, err)

	_, err = sink.Put(context.Background(), "teams.csv", nil)
	assert.ErrorContains(t, err, "failed to upload object")
}
