// Package storage defines the contract consumed from the remote object
// store. Implementations are swapped at startup; everything above this
// package talks to the ObjectStore interface only.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound reports a key that does not exist in the store.
// Implementations wrap their provider-specific missing-key errors with it.
var ErrNotFound = errors.New("object not found")

// ObjectInfo is the listing metadata for a single stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Page is one bounded batch of a bucket listing. Pages are produced only by
// the remote store; NextToken resumes the listing where this page ended.
type Page struct {
	Objects   []ObjectInfo
	NextToken string
	Truncated bool
}

// ObjectStore captures the object store operations the gateway needs.
type ObjectStore interface {
	// PutObject streams data to the store under the given key with
	// server-side encryption. size must be the exact byte count.
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64) error

	// RemoveObject deletes an object. Removing a missing key is not an
	// error.
	RemoveObject(ctx context.Context, bucket, key string) error

	// ListPage fetches one listing page. An empty continuation token
	// starts a fresh listing.
	ListPage(ctx context.Context, bucket, prefix, continuationToken string) (Page, error)

	// PresignedGetURL returns a time-limited direct-download URL for key.
	PresignedGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)

	// GetObject returns the object body. A missing key fails here with
	// ErrNotFound, not on first read. The caller closes the reader.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	// CopyObject performs a server-side copy between buckets.
	CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error
}
