package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/foxxcyber/fridgelist/internal/storage"
)

var _ storage.Backend = (*StorageService)(nil)

// StorageService keeps records as objects in an S3-compatible bucket
type StorageService struct {
	client     *minio.Client
	bucketName string
	region     string
	prefix     string
}

// UploadResult contains information about an uploaded object
type UploadResult struct {
	Bucket      string
	Key         string
	Size        int64
	ContentType string
	ETag        string
}

// NewStorageService creates a new S3 storage service
func NewStorageService(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool) (*StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &StorageService{
		client:     client,
		bucketName: bucketName,
		region:     region,
		prefix:     "records",
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *StorageService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{
			Region: s.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload uploads an object
func (s *StorageService) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	info, err := s.client.PutObject(ctx, s.bucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &UploadResult{
		Bucket:      info.Bucket,
		Key:         info.Key,
		Size:        info.Size,
		ContentType: contentType,
		ETag:        info.ETag,
	}, nil
}

// Download returns the full content of an object. A missing object
// yields storage.ErrRecordNotFound.
func (s *StorageService) Download(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}

// Delete deletes an object
func (s *StorageService) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

func (s *StorageService) recordKey(owner, key string) string {
	return path.Join(s.prefix, owner, key+".json")
}

// GetRecord implements storage.Backend
func (s *StorageService) GetRecord(ctx context.Context, owner, key string) ([]byte, error) {
	return s.Download(ctx, s.recordKey(owner, key))
}

// PutRecord implements storage.Backend
func (s *StorageService) PutRecord(ctx context.Context, owner, key string, value []byte) error {
	_, err := s.Upload(ctx, s.recordKey(owner, key), bytes.NewReader(value), int64(len(value)), "application/json")
	return err
}

// DeleteRecord implements storage.Backend. S3 treats removing a missing
// object as success.
func (s *StorageService) DeleteRecord(ctx context.Context, owner, key string) error {
	return s.Delete(ctx, s.recordKey(owner, key))
}
