package gateway

import (
	"context"

	"github.com/fileportal/backend-go/internal/storage"
)

// eachPage drains a paged bucket listing, invoking fn for every page in
// arrival order. The walk follows continuation tokens until the store
// reports the listing complete; a truncated page without a token is treated
// as the final page rather than looping forever. The caller's deadline is
// checked between pages so a timed-out walk aborts instead of finishing a
// stale iteration.
func (g *Gateway) eachPage(ctx context.Context, bucket, prefix string, fn func(storage.Page) error) error {
	var token string
	for {
		if err := ctx.Err(); err != nil {
			return &Error{Kind: KindListing, Op: "list " + bucket, Err: err}
		}

		page, err := g.store.ListPage(ctx, bucket, prefix, token)
		if err != nil {
			return &Error{Kind: KindListing, Op: "list " + bucket, Err: err}
		}
		if err := fn(page); err != nil {
			return err
		}

		if !page.Truncated || page.NextToken == "" {
			return nil
		}
		token = page.NextToken
	}
}

// collectAll walks every page of a listing and returns the complete object
// set. A mid-walk failure surfaces as a listing error; the keys gathered so
// far are logged as partial context and never returned as a partial result.
func (g *Gateway) collectAll(ctx context.Context, bucket, prefix string) ([]storage.ObjectInfo, error) {
	var objects []storage.ObjectInfo
	err := g.eachPage(ctx, bucket, prefix, func(page storage.Page) error {
		objects = append(objects, page.Objects...)
		return nil
	})
	if err != nil {
		g.log.Error().
			Err(err).
			Str("bucket", bucket).
			Str("prefix", prefix).
			Int("partial_keys", len(objects)).
			Msg("bucket listing aborted mid-walk")
		return nil, err
	}
	return objects, nil
}
