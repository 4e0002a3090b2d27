package gateway

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fileportal/backend-go/internal/storage"
)

// auditLogSuffix is the fixed suffix of audit record keys. Keys under the
// same prefix without it (manifests, digests) are silently excluded.
const auditLogSuffix = ".json.gz"

// auditPrefix builds the fixed key prefix the external log producer writes
// under. The exact shape is an interoperability contract.
func auditPrefix(accountID string) string {
	return fmt.Sprintf("AWSLogs/%s/CloudTrail/", accountID)
}

// auditLogs walks the audit bucket under the account's CloudTrail prefix
// and returns the matching keys sorted newest-first by last-modified time.
// The ordering is a hard contract of the log viewer.
func (g *Gateway) auditLogs(ctx context.Context) ([]storage.ObjectInfo, error) {
	objects, err := g.collectAll(ctx, g.auditBucket, auditPrefix(g.auditAccountID))
	if err != nil {
		return nil, err
	}

	logs := objects[:0]
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, auditLogSuffix) {
			logs = append(logs, obj)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].LastModified.After(logs[j].LastModified)
	})
	return logs, nil
}

// readAuditLog fetches one audit record and decompresses it to UTF-8 text.
// A missing key and a malformed gzip body fail with distinct kinds; the
// content is fully materialized so truncated output is never returned.
func (g *Gateway) readAuditLog(ctx context.Context, key string) (string, error) {
	body, err := g.store.GetObject(ctx, g.auditBucket, key)
	if err != nil {
		return "", &Error{Kind: classify(err), Op: "read audit log " + key, Err: err}
	}
	defer body.Close()

	zr, err := gzip.NewReader(body)
	if err != nil {
		return "", &Error{Kind: KindDecompression, Op: "read audit log " + key, Err: err}
	}
	defer zr.Close()

	content, err := io.ReadAll(zr)
	if err != nil {
		return "", &Error{Kind: KindDecompression, Op: "read audit log " + key, Err: err}
	}
	return string(content), nil
}
