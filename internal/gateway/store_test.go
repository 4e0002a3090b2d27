package gateway

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/fileportal/backend-go/internal/storage"
	"github.com/rs/zerolog"
)

// fakeStore implements storage.ObjectStore with overridable behavior per
// operation. Unset operations succeed with zero values.
type fakeStore struct {
	putFn     func(ctx context.Context, bucket, key string, reader io.Reader, size int64) error
	removeFn  func(ctx context.Context, bucket, key string) error
	listFn    func(ctx context.Context, bucket, prefix, token string) (storage.Page, error)
	presignFn func(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	getFn     func(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	copyFn    func(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error
}

func (f *fakeStore) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64) error {
	if f.putFn != nil {
		return f.putFn(ctx, bucket, key, reader, size)
	}
	return nil
}

func (f *fakeStore) RemoveObject(ctx context.Context, bucket, key string) error {
	if f.removeFn != nil {
		return f.removeFn(ctx, bucket, key)
	}
	return nil
}

func (f *fakeStore) ListPage(ctx context.Context, bucket, prefix, token string) (storage.Page, error) {
	if f.listFn != nil {
		return f.listFn(ctx, bucket, prefix, token)
	}
	return storage.Page{}, nil
}

func (f *fakeStore) PresignedGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	if f.presignFn != nil {
		return f.presignFn(ctx, bucket, key, ttl)
	}
	return "", nil
}

func (f *fakeStore) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if f.getFn != nil {
		return f.getFn(ctx, bucket, key)
	}
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (f *fakeStore) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	if f.copyFn != nil {
		return f.copyFn(ctx, srcBucket, srcKey, dstBucket, dstKey)
	}
	return nil
}

// pagedListFn serves a fixed page sequence, returning each page for the
// continuation token of its predecessor.
func pagedListFn(pages []storage.Page) func(ctx context.Context, bucket, prefix, token string) (storage.Page, error) {
	tokens := make(map[string]storage.Page)
	prev := ""
	for _, p := range pages {
		tokens[prev] = p
		prev = p.NextToken
	}
	return func(ctx context.Context, bucket, prefix, token string) (storage.Page, error) {
		return tokens[token], nil
	}
}

const (
	testBucket    = "uploads"
	testAuditAcct = "624943132737"
)

func newTestGateway(store storage.ObjectStore) *Gateway {
	gw, err := New(store, Config{
		Bucket:         testBucket,
		BackupBucket:   "uploads-cold",
		AuditBucket:    "trail-bucket",
		AuditAccountID: testAuditAcct,
	}, nil, zerolog.Nop())
	if err != nil {
		panic(err)
	}
	return gw
}
