package gateway

import (
	"errors"
	"fmt"

	"github.com/fileportal/backend-go/internal/storage"
)

// Kind classifies a gateway failure. Read-path operations log the kind and
// degrade; write-path operations propagate it to the caller.
type Kind string

const (
	// KindTransport covers network failures, timeouts and any store
	// error without a more specific class.
	KindTransport Kind = "transport"
	// KindNotFound reports a missing key.
	KindNotFound Kind = "not_found"
	// KindDecompression reports an audit payload that is not valid gzip.
	KindDecompression Kind = "decompression"
	// KindListing reports a page walk aborted before completion.
	KindListing Kind = "listing"
	// KindConfiguration reports a missing deployment parameter. It is
	// fatal: the gateway refuses construction.
	KindConfiguration Kind = "configuration"
	// KindInvalidInput reports a request rejected before any network
	// call was attempted.
	KindInvalidInput Kind = "invalid_input"
)

// Error is the tagged failure type for all gateway operations.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure class of err, or KindTransport when err
// carries no gateway classification.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindTransport
}

// classify maps a raw store error to its failure class.
func classify(err error) Kind {
	if errors.Is(err, storage.ErrNotFound) {
		return KindNotFound
	}
	return KindTransport
}
