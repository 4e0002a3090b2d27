package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fileportal/backend-go/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/encrypt"
)

// listPageSize caps the number of keys per listing page. The store may
// return fewer.
const listPageSize = 1000

// MinioStore implements ObjectStore against any S3-compatible endpoint.
// The low-level Core client is used for listing so real continuation tokens
// and truncation flags cross the ObjectStore boundary unchanged.
type MinioStore struct {
	core *minio.Core
}

// NewMinioStore builds a store client from configuration. Credentials are
// read-only shared state; the returned client is safe for concurrent use.
func NewMinioStore(cfg config.S3Config) (*MinioStore, error) {
	core, err := minio.NewCore(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioStore{core: core}, nil
}

func (s *MinioStore) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64) error {
	_, err := s.core.Client.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:          "application/octet-stream",
		ServerSideEncryption: encrypt.NewSSE(),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (s *MinioStore) RemoveObject(ctx context.Context, bucket, key string) error {
	err := s.core.Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return fmt.Errorf("remove object %q: %w", key, ErrNotFound)
		}
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

func (s *MinioStore) ListPage(ctx context.Context, bucket, prefix, continuationToken string) (Page, error) {
	// Core.ListObjectsV2 does not take a context; honor the caller's
	// deadline at page granularity.
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	result, err := s.core.ListObjectsV2(bucket, prefix, "", continuationToken, "", listPageSize)
	if err != nil {
		return Page{}, fmt.Errorf("list bucket %q: %w", bucket, err)
	}

	page := Page{
		NextToken: result.NextContinuationToken,
		Truncated: result.IsTruncated,
	}
	for _, obj := range result.Contents {
		page.Objects = append(page.Objects, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return page, nil
}

func (s *MinioStore) PresignedGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	u, err := s.core.Client.PresignedGetObject(ctx, bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", key, err)
	}
	return u.String(), nil
}

func (s *MinioStore) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.core.Client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	// GetObject is lazy; stat now so a missing key fails at open time
	// instead of surfacing as a read error downstream.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("get object %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	return obj, nil
}

func (s *MinioStore) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	src := minio.CopySrcOptions{Bucket: srcBucket, Object: srcKey}
	dst := minio.CopyDestOptions{Bucket: dstBucket, Object: dstKey}
	if _, err := s.core.Client.CopyObject(ctx, dst, src); err != nil {
		if isNoSuchKey(err) {
			return fmt.Errorf("copy object %q: %w", srcKey, ErrNotFound)
		}
		return fmt.Errorf("copy object %q to %q: %w", srcKey, dstBucket, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.StatusCode == http.StatusNotFound
	}
	return false
}

var _ ObjectStore = (*MinioStore)(nil)
