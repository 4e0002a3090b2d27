package gateway

import (
	"context"
	"fmt"
	"testing"

	"github.com/fileportal/backend-go/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalStorageBytesFullWalk(t *testing.T) {
	store := &fakeStore{
		listFn: pagedListFn([]storage.Page{
			{Objects: []storage.ObjectInfo{
				{Key: "a", Size: 1_048_576},
				{Key: "b", Size: 2_097_152},
			}, NextToken: "t1", Truncated: true},
			{Objects: []storage.ObjectInfo{
				{Key: "c", Size: 500_000},
			}, Truncated: false},
		}),
	}
	gw := newTestGateway(store)

	total, err := gw.totalStorageBytes(context.Background(), testBucket)
	require.NoError(t, err)
	assert.Equal(t, int64(3_645_728), total)

	// 3,645,728 / 1,048,576 truncates to 3.
	assert.Equal(t, int64(3), gw.TotalStorageMB(context.Background()))
}

func TestTotalStorageMBTruncatesNotRounds(t *testing.T) {
	store := &fakeStore{
		listFn: pagedListFn([]storage.Page{
			// 1.9 MiB must report 1, not 2.
			{Objects: []storage.ObjectInfo{{Key: "a", Size: 1_992_294}}},
		}),
	}
	gw := newTestGateway(store)

	assert.Equal(t, int64(1), gw.TotalStorageMB(context.Background()))
}

func TestTotalStorageMBTreatsAbsentSizeAsZero(t *testing.T) {
	store := &fakeStore{
		listFn: pagedListFn([]storage.Page{
			{Objects: []storage.ObjectInfo{
				{Key: "a", Size: 0},
				{Key: "b", Size: -1},
				{Key: "c", Size: 2 * bytesPerMB},
			}},
		}),
	}
	gw := newTestGateway(store)

	assert.Equal(t, int64(2), gw.TotalStorageMB(context.Background()))
}

func TestTotalStorageMBDegradesToZeroOnFailure(t *testing.T) {
	pages := 0
	store := &fakeStore{
		listFn: func(ctx context.Context, bucket, prefix, token string) (storage.Page, error) {
			pages++
			if pages == 1 {
				return storage.Page{
					Objects:   []storage.ObjectInfo{{Key: "a", Size: 5 * bytesPerMB}},
					NextToken: "t1",
					Truncated: true,
				}, nil
			}
			return storage.Page{}, fmt.Errorf("timeout")
		},
	}
	gw := newTestGateway(store)

	// A partial walk must never produce a partial sum.
	assert.Equal(t, int64(0), gw.TotalStorageMB(context.Background()))
}
