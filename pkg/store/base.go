// Package store provides interfaces and types for record storage backends.
//
// It defines the RecordStore interface that all storage implementations must
// satisfy, along with the Record document model and its validation rules.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates in record documents (ISO 8601).
const DateLayout = "2006-01-02"

// Predefined errors for storage operations.
var (
	// ErrNotFound indicates that a requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrWrite indicates that persisting a record failed.
	// When this error is returned, the previously stored document content
	// is left intact (no partial or truncated writes).
	ErrWrite = errors.New("write failed")
)

// Record represents one event memory persisted as a single document.
//
// A record contains:
//   - Identity: The storage-derived slug identifying the document
//   - Target: The date the event concerns (drives categorization)
//   - Expires: The date after which the record leaves publication
//   - Title, Time, Place: Optional descriptive fields
//   - Body: Human-authored narrative content, opaque to all logic
//
// Example:
//
//	record := &store.Record{
//	    Identity: "2026-03-01-team-meeting",
//	    Target:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
//	    Expires:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
//	    Title:    "Team Meeting",
//	    Place:    "Room A",
//	}
type Record struct {
	// Identity is the storage-derived slug (document filename without
	// extension). It is immutable for the life of the record; updates
	// rewrite content, never rename.
	Identity string

	// Target is the date the event concerns. Required.
	Target time.Time

	// Expires is the date after which the record is no longer eligible
	// for publication. Required, and must not be before Target.
	Expires time.Time

	// Title is a short event name. Optional.
	Title string

	// Time is a free-form clock time label (conventionally "HH:MM"). Optional.
	Time string

	// Place is the event location. Optional.
	Place string

	// Body is the narrative content after the metadata block,
	// preserved verbatim across reconciliation.
	Body string

	// Attachments holds URLs of uploaded files associated with the record.
	Attachments []string

	// UserID identifies the owner of the record. Optional.
	UserID string
}

// MalformedDocument reports a stored document that failed required-field or
// date-order validation. Malformed documents are excluded from both
// reconciliation matching and publication, but never abort a full-store load.
type MalformedDocument struct {
	// Identity is the slug of the offending document.
	Identity string

	// Reason describes why the document could not be parsed.
	Reason string
}

// Validate checks the record's required-field and date-order invariants.
//
// A record is valid when Target and Expires are both set and
// Expires is not before Target. Returns a descriptive error otherwise.
func (r *Record) Validate() error {
	if r.Target.IsZero() {
		return fmt.Errorf("missing target date")
	}
	if r.Expires.IsZero() {
		return fmt.Errorf("missing expires date")
	}
	if r.Expires.Before(r.Target) {
		return fmt.Errorf("expires %s before target %s",
			FormatDate(r.Expires), FormatDate(r.Target))
	}
	return nil
}

// IsExpired reports whether the record has passed its expiration date.
//
// A record expires strictly after its Expires date: on the Expires date
// itself it is still alive.
func (r *Record) IsExpired(today time.Time) bool {
	return DateOnly(today).After(r.Expires)
}

// Clone returns a deep copy of the record.
//
// Callers that merge draft values into a stored record should work on a
// clone so a failed persist leaves the loaded set untouched.
func (r *Record) Clone() *Record {
	out := *r
	if r.Attachments != nil {
		out.Attachments = append([]string(nil), r.Attachments...)
	}
	return &out
}

// RecordStore defines the interface for record storage backends.
//
// Implementations persist one record per document under a configured
// directory. The store performs I/O and parsing only; it holds no decision
// logic. Concurrent writers are unsupported (single-operator model).
type RecordStore interface {
	// LoadAll enumerates all documents and parses each into a Record.
	//
	// Per-document parse failures are isolated: a bad document is reported
	// in the malformed list and never fails the whole call. Records are
	// returned in document-name order.
	LoadAll(ctx context.Context) ([]*Record, []MalformedDocument, error)

	// Save persists a single record to its document.
	//
	// Writing is atomic from the caller's perspective: either the document
	// fully reflects the new content or the previous content remains.
	// Failures are reported as ErrWrite.
	Save(ctx context.Context, record *Record) error

	// Identities enumerates the identity of every document in the store,
	// in document-name order.
	//
	// Unlike LoadAll it includes malformed documents and records hidden
	// by owner filtering: an identity is occupied by whatever file holds
	// it, parseable or not. Callers minting new identities must check
	// against this full set, never against the parsed records alone.
	Identities(ctx context.Context) ([]string, error)

	// Delete removes the document for the given identity.
	// Returns ErrNotFound if no such document exists.
	Delete(ctx context.Context, identity string) error

	// Close closes the store and releases resources.
	Close() error
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) into a UTC midnight time.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// FormatDate formats a time as an ISO calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnly strips the clock-time component, returning UTC midnight of the
// same calendar day. Record dates always carry this form; normalizing the
// caller-supplied "today" keeps comparisons purely calendar-based.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// NormalizeLabel lowercases a label and collapses internal whitespace,
// producing the comparison key used for title and place matching and for
// tie-break ordering.
func NormalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
