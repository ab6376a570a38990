// Package cleanup removes expired record documents and purges their
// attachments.
//
// Removal is an operator-driven maintenance operation, never triggered by
// reconciliation or publication.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventmem/eventmem-go/pkg/store"
)

// AttachmentPurger deletes an uploaded attachment given its URL.
//
// Attachment storage is a capability boundary: the sweeper never talks to
// an object store directly, only through this interface.
type AttachmentPurger interface {
	Purge(ctx context.Context, url string) error
}

// NopPurger is an AttachmentPurger that does nothing. It is the default
// when records carry no externally stored attachments.
type NopPurger struct{}

// Purge implements AttachmentPurger.
func (NopPurger) Purge(ctx context.Context, url string) error { return nil }

// Sweeper finds and removes expired records.
type Sweeper struct {
	store  store.RecordStore
	purger AttachmentPurger
	logger *slog.Logger
}

// NewSweeper creates a sweeper over the given store.
//
// A nil purger defaults to NopPurger and a nil logger to slog.Default().
func NewSweeper(st store.RecordStore, purger AttachmentPurger, logger *slog.Logger) *Sweeper {
	if purger == nil {
		purger = NopPurger{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{store: st, purger: purger, logger: logger}
}

// FindExpired returns the records whose expires date has passed.
//
// Malformed documents are left alone: without a parseable expires date
// their lifetime cannot be determined, so deletion stays a human decision.
func (s *Sweeper) FindExpired(ctx context.Context, today time.Time) ([]*store.Record, error) {
	records, _, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var expired []*store.Record
	for _, record := range records {
		if record.IsExpired(today) {
			expired = append(expired, record)
		}
	}
	return expired, nil
}

// Cleanup deletes all expired records and purges their attachments.
//
// Purge failures are logged and do not block document deletion; a delete
// failure aborts the sweep. Returns the identities deleted so far in
// either case.
func (s *Sweeper) Cleanup(ctx context.Context, today time.Time) ([]string, error) {
	expired, err := s.FindExpired(ctx, today)
	if err != nil {
		return nil, err
	}

	var deleted []string
	for _, record := range expired {
		for _, url := range record.Attachments {
			if err := s.purger.Purge(ctx, url); err != nil {
				s.logger.Warn("failed to purge attachment",
					"identity", record.Identity, "url", url, "error", err)
			}
		}
		if err := s.store.Delete(ctx, record.Identity); err != nil {
			return deleted, fmt.Errorf("delete expired record %s: %w", record.Identity, err)
		}
		deleted = append(deleted, record.Identity)
	}
	return deleted, nil
}
