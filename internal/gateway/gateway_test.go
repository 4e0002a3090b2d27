package gateway

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fileportal/backend-go/internal/alerts"
	"github.com/fileportal/backend-go/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAddressingConfig(t *testing.T) {
	_, err := New(&fakeStore{}, Config{}, nil, zerolog.Nop())
	require.Error(t, err)
	assert.Equal(t, KindConfiguration, KindOf(err))

	_, err = New(&fakeStore{}, Config{Bucket: "uploads"}, nil, zerolog.Nop())
	require.Error(t, err)
	assert.Equal(t, KindConfiguration, KindOf(err))
}

func TestUploadGeneratesOpaqueKey(t *testing.T) {
	var putKey string
	store := &fakeStore{
		putFn: func(ctx context.Context, bucket, key string, reader io.Reader, size int64) error {
			putKey = key
			return nil
		},
	}
	gw := newTestGateway(store)

	key, err := gw.Upload(context.Background(), strings.NewReader("content"), "quarterly-report.pdf", 7)
	require.NoError(t, err)
	assert.Equal(t, putKey, key)
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	// The original filename never reaches the store.
	assert.NotContains(t, key, "quarterly-report")
	assert.Contains(t, gw.Alerts(), "File uploaded: quarterly-report.pdf")
}

func TestUploadKeysNeverReused(t *testing.T) {
	gw := newTestGateway(&fakeStore{})

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := gw.Upload(context.Background(), strings.NewReader("x"), "a.txt", 1)
		require.NoError(t, err)
		assert.False(t, seen[key], "key %q reused", key)
		seen[key] = true
	}
}

func TestUploadEmptyStreamRejectedBeforeNetwork(t *testing.T) {
	called := false
	store := &fakeStore{
		putFn: func(ctx context.Context, bucket, key string, reader io.Reader, size int64) error {
			called = true
			return nil
		},
	}
	gw := newTestGateway(store)

	_, err := gw.Upload(context.Background(), strings.NewReader(""), "empty.txt", 0)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.False(t, called)
	assert.Contains(t, gw.Alerts(), "Failed upload attempt: 'empty.txt' (empty file)")
}

func TestUploadFailurePropagatesAndBooks(t *testing.T) {
	store := &fakeStore{
		putFn: func(ctx context.Context, bucket, key string, reader io.Reader, size int64) error {
			return fmt.Errorf("access denied")
		},
	}
	gw := newTestGateway(store)

	_, err := gw.Upload(context.Background(), strings.NewReader("x"), "doc.txt", 1)
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	// Both effects are required: the propagated error and the ledger entry.
	assert.Contains(t, gw.Alerts(), "Failed upload attempt: 'doc.txt'")
}

func TestDeleteMissingKeyIsSuccess(t *testing.T) {
	store := &fakeStore{
		removeFn: func(ctx context.Context, bucket, key string) error {
			return fmt.Errorf("remove object %q: %w", key, storage.ErrNotFound)
		},
	}
	gw := newTestGateway(store)

	require.NoError(t, gw.Delete(context.Background(), "already-gone"))
	assert.Contains(t, gw.Alerts(), "File deleted: already-gone")
}

func TestDeleteFailurePropagatesAndBooks(t *testing.T) {
	store := &fakeStore{
		removeFn: func(ctx context.Context, bucket, key string) error {
			return fmt.Errorf("access denied")
		},
	}
	gw := newTestGateway(store)

	err := gw.Delete(context.Background(), "k1")
	require.Error(t, err)
	assert.Contains(t, gw.Alerts(), "Failed delete attempt: 'k1'")
}

func TestListAllDegradesToEmptyOnOutage(t *testing.T) {
	store := &fakeStore{
		listFn: func(ctx context.Context, bucket, prefix, token string) (storage.Page, error) {
			return storage.Page{}, fmt.Errorf("store unavailable")
		},
	}
	gw := newTestGateway(store)

	assert.Empty(t, gw.ListAll(context.Background()))
	assert.Zero(t, gw.TotalFiles(context.Background()))
}

func TestListAllReturnsKeys(t *testing.T) {
	store := &fakeStore{
		listFn: pagedListFn([]storage.Page{
			{Objects: objs("k1", "k2"), NextToken: "t", Truncated: true},
			{Objects: objs("k3")},
		}),
	}
	gw := newTestGateway(store)

	assert.Equal(t, []string{"k1", "k2", "k3"}, gw.ListAll(context.Background()))
	assert.Equal(t, 3, gw.TotalFiles(context.Background()))
}

func TestPresignedURLUsesConfiguredTTL(t *testing.T) {
	var gotTTL time.Duration
	store := &fakeStore{
		presignFn: func(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
			gotTTL = ttl
			return "https://store.example/" + key + "?sig=abc", nil
		},
	}
	gw := newTestGateway(store)

	u := gw.PresignedURL(context.Background(), "k1")
	assert.Equal(t, "https://store.example/k1?sig=abc", u)
	assert.Equal(t, PresignTTL, gotTTL)
}

func TestPresignedURLDegradesToEmpty(t *testing.T) {
	store := &fakeStore{
		presignFn: func(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
			return "", fmt.Errorf("signing failed")
		},
	}
	gw := newTestGateway(store)

	assert.Empty(t, gw.PresignedURL(context.Background(), "k1"))
}

func TestBackupCopiesIntoColdBucket(t *testing.T) {
	var gotSrc, gotDst string
	store := &fakeStore{
		copyFn: func(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
			gotSrc = srcBucket + "/" + srcKey
			gotDst = dstBucket + "/" + dstKey
			return nil
		},
	}
	gw := newTestGateway(store)

	require.NoError(t, gw.Backup(context.Background(), "k1"))
	assert.Equal(t, testBucket+"/k1", gotSrc)
	assert.Equal(t, "uploads-cold/k1", gotDst)
	assert.Contains(t, gw.Alerts(), "File 'k1' backed up to cold storage")
}

func TestBackupWithoutBucketIsConfigurationFailure(t *testing.T) {
	gw, err := New(&fakeStore{}, Config{
		Bucket:         testBucket,
		AuditBucket:    "trail-bucket",
		AuditAccountID: testAuditAcct,
	}, alerts.NewLedger(), zerolog.Nop())
	require.NoError(t, err)

	err = gw.Backup(context.Background(), "k1")
	require.Error(t, err)
	assert.Equal(t, KindConfiguration, KindOf(err))
}

func TestAlertPassthrough(t *testing.T) {
	gw := newTestGateway(&fakeStore{})

	gw.RecordAlert("a")
	gw.RecordAlert("a")
	gw.RecordAlert("b")
	assert.Equal(t, []string{"a", "b"}, gw.Alerts())

	gw.ClearAlerts()
	assert.Empty(t, gw.Alerts())
}
