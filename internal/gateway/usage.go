package gateway

import (
	"context"

	"github.com/fileportal/backend-go/internal/storage"
)

const bytesPerMB = 1024 * 1024

// totalStorageBytes walks every page of the target bucket and sums object
// sizes. The result is always the product of one complete walk, never a
// sample; absent sizes count as zero. O(object count) per call, nothing is
// cached here: callers on a hot path apply their own caching policy.
func (g *Gateway) totalStorageBytes(ctx context.Context, bucket string) (int64, error) {
	var total int64
	err := g.eachPage(ctx, bucket, "", func(page storage.Page) error {
		for _, obj := range page.Objects {
			if obj.Size > 0 {
				total += obj.Size
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// TotalStorageMB reports the upload bucket's total size in whole megabytes,
// truncating. Concurrent callers are coalesced onto a single in-flight
// walk; every returned value still comes from one complete walk. Degrades
// to 0 with a logged failure when the walk aborts.
func (g *Gateway) TotalStorageMB(ctx context.Context) int64 {
	v, err, _ := g.usageGroup.Do(g.bucket, func() (interface{}, error) {
		total, err := g.totalStorageBytes(ctx, g.bucket)
		if err != nil {
			return int64(0), err
		}
		return total / bytesPerMB, nil
	})
	if err != nil {
		g.log.Error().Err(err).Str("bucket", g.bucket).Msg("storage usage walk failed")
		return 0
	}
	return v.(int64)
}
