// Package gateway is the single entry point to the remote object store: it
// uploads and deletes blobs, drains paginated listings, issues time-limited
// download links, reads compressed audit records and aggregates storage
// usage. Read paths degrade to zero values with a logged failure so a store
// outage never crashes the dashboard; write paths propagate failures and
// additionally book them in the alert ledger.
package gateway

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fileportal/backend-go/internal/alerts"
	"github.com/fileportal/backend-go/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// PresignTTL is how long issued download links stay valid.
const PresignTTL = 15 * time.Minute

// Config carries the deployment-specific addressing parameters. Bucket
// names and the audit account id are configuration, never literals inside
// the operations.
type Config struct {
	Bucket         string
	BackupBucket   string
	AuditBucket    string
	AuditAccountID string
}

// Gateway aggregates the store client, the pagination walker, the audit
// reader, the usage aggregator and the alert ledger behind one facade. A
// single instance is shared by all concurrent request handlers; the ledger
// is the only mutable state and synchronizes itself.
type Gateway struct {
	store          storage.ObjectStore
	bucket         string
	backupBucket   string
	auditBucket    string
	auditAccountID string
	ledger         *alerts.Ledger
	usageGroup     singleflight.Group
	log            zerolog.Logger
}

// New validates the addressing configuration and builds the facade.
// Missing required parameters are a configuration failure: the gateway
// refuses construction rather than serving requests it cannot complete.
func New(store storage.ObjectStore, cfg Config, ledger *alerts.Ledger, log zerolog.Logger) (*Gateway, error) {
	var missing []string
	if strings.TrimSpace(cfg.Bucket) == "" {
		missing = append(missing, "bucket")
	}
	if strings.TrimSpace(cfg.AuditBucket) == "" {
		missing = append(missing, "audit bucket")
	}
	if strings.TrimSpace(cfg.AuditAccountID) == "" {
		missing = append(missing, "audit account id")
	}
	if len(missing) > 0 {
		return nil, &Error{
			Kind: KindConfiguration,
			Op:   "construct gateway",
			Err:  fmt.Errorf("missing %s", strings.Join(missing, ", ")),
		}
	}
	if ledger == nil {
		ledger = alerts.NewLedger()
	}

	return &Gateway{
		store:          store,
		bucket:         cfg.Bucket,
		backupBucket:   cfg.BackupBucket,
		auditBucket:    cfg.AuditBucket,
		auditAccountID: cfg.AuditAccountID,
		ledger:         ledger,
		log:            log,
	}, nil
}

// Upload stores the stream under a freshly generated key (random identifier
// plus the original extension, so keys never collide and never leak the
// uploader's filename). A zero-length stream is rejected before any network
// call. Failures propagate to the caller and book a failed-attempt entry.
func (g *Gateway) Upload(ctx context.Context, reader io.Reader, originalName string, size int64) (string, error) {
	if size <= 0 {
		g.ledger.Record(fmt.Sprintf("Failed upload attempt: '%s' (empty file)", originalName))
		return "", &Error{
			Kind: KindInvalidInput,
			Op:   "upload",
			Err:  fmt.Errorf("empty file %q", originalName),
		}
	}

	key := uuid.New().String() + filepath.Ext(originalName)
	if err := g.store.PutObject(ctx, g.bucket, key, reader, size); err != nil {
		g.ledger.Record(fmt.Sprintf("Failed upload attempt: '%s'", originalName))
		g.log.Error().Err(err).Str("file", originalName).Msg("upload failed")
		return "", &Error{Kind: classify(err), Op: "upload", Err: err}
	}

	g.ledger.Record(fmt.Sprintf("File uploaded: %s", originalName))
	return key, nil
}

// Delete removes the object under key. Deleting a missing key succeeds, so
// retried deletes stay idempotent. Other failures propagate and book a
// failed-attempt entry.
func (g *Gateway) Delete(ctx context.Context, key string) error {
	if err := g.store.RemoveObject(ctx, g.bucket, key); err != nil {
		if classify(err) == KindNotFound {
			g.ledger.Record(fmt.Sprintf("File deleted: %s", key))
			return nil
		}
		g.ledger.Record(fmt.Sprintf("Failed delete attempt: '%s'", key))
		g.log.Error().Err(err).Str("key", key).Msg("delete failed")
		return &Error{Kind: classify(err), Op: "delete", Err: err}
	}

	g.ledger.Record(fmt.Sprintf("File deleted: %s", key))
	return nil
}

// Backup copies the object into the configured cold-storage bucket. An
// unset backup bucket is a configuration failure, not a silent no-op.
func (g *Gateway) Backup(ctx context.Context, key string) error {
	if g.backupBucket == "" {
		return &Error{
			Kind: KindConfiguration,
			Op:   "backup",
			Err:  fmt.Errorf("no backup bucket configured"),
		}
	}

	if err := g.store.CopyObject(ctx, g.bucket, key, g.backupBucket, key); err != nil {
		g.ledger.Record(fmt.Sprintf("Failed backup attempt: '%s'", key))
		g.log.Error().Err(err).Str("key", key).Msg("backup failed")
		return &Error{Kind: classify(err), Op: "backup", Err: err}
	}

	g.ledger.Record(fmt.Sprintf("File '%s' backed up to cold storage", key))
	return nil
}

// ListAll returns every key in the upload bucket, in store listing order.
// Degrades to an empty slice with a logged failure.
func (g *Gateway) ListAll(ctx context.Context) []string {
	objects, err := g.collectAll(ctx, g.bucket, "")
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		keys = append(keys, obj.Key)
	}
	return keys
}

// TotalFiles counts the objects in the upload bucket. Degrades to 0.
func (g *Gateway) TotalFiles(ctx context.Context) int {
	return len(g.ListAll(ctx))
}

// PresignedURL issues a download link valid for PresignTTL. Degrades to an
// empty string with a logged failure.
func (g *Gateway) PresignedURL(ctx context.Context, key string) string {
	u, err := g.store.PresignedGetURL(ctx, g.bucket, key, PresignTTL)
	if err != nil {
		g.log.Error().Err(err).Str("key", key).Msg("presign failed")
		return ""
	}
	return u
}

// ListAuditLogs returns the audit record keys for the configured account,
// newest first. Degrades to an empty slice with a logged failure.
func (g *Gateway) ListAuditLogs(ctx context.Context) []string {
	logs, err := g.auditLogs(ctx)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(logs))
	for _, obj := range logs {
		keys = append(keys, obj.Key)
	}
	return keys
}

// TotalAuditLogs counts the audit records for the configured account.
// Degrades to 0.
func (g *Gateway) TotalAuditLogs(ctx context.Context) int {
	return len(g.ListAuditLogs(ctx))
}

// AuditLogContent returns the decompressed text of one audit record.
// Degrades to an empty string with a logged failure carrying the failure
// class (missing key vs malformed payload).
func (g *Gateway) AuditLogContent(ctx context.Context, key string) string {
	content, err := g.readAuditLog(ctx, key)
	if err != nil {
		g.log.Error().
			Err(err).
			Str("key", key).
			Str("kind", string(KindOf(err))).
			Msg("audit log read failed")
		return ""
	}
	return content
}

// RecordAlert books an operational event in the shared ledger.
func (g *Gateway) RecordAlert(message string) {
	g.ledger.Record(message)
}

// Alerts returns a snapshot of the ledger in insertion order.
func (g *Gateway) Alerts() []string {
	return g.ledger.List()
}

// ClearAlerts empties the ledger.
func (g *Gateway) ClearAlerts() {
	g.ledger.Clear()
}
