package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore persists the history snapshot as a single object in MinIO.
type ObjectStore struct {
	client     *minio.Client
	bucketName string
	objectKey  string
	region     string
}

// NewObjectStore buat koneksi MinIO
func NewObjectStore(ctx context.Context, endpoint, region, bucket, objectKey, accessKey, secretKey string, useSSL bool) (*ObjectStore, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	// pastikan bucket ada
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	if objectKey == "" {
		objectKey = "history.json"
	}
	return &ObjectStore{client: cli, bucketName: bucket, objectKey: objectKey, region: region}, nil
}

// Load reads the snapshot object. A missing object means no history yet.
func (s *ObjectStore) Load(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, s.objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// GetObject is lazy: kesalahan baru muncul di read pertama
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *ObjectStore) Save(ctx context.Context, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucketName, s.objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}
