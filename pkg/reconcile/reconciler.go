// Package reconcile decides whether an extracted event draft creates a new
// record or updates an existing one, and produces the merged record to
// persist.
//
// The matching predicate is pure and total so its ambiguous-case policy is
// a visible contract: zero or multiple candidate matches always resolve to
// CREATE, never to a guess about which record to update.
package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/eventmem/eventmem-go/pkg/extract"
	"github.com/eventmem/eventmem-go/pkg/store"
)

// DefaultExpiryDays is the default horizon past the target date after
// which a newly created record expires.
const DefaultExpiryDays = 30

// ErrValidation indicates that a draft cannot be reconciled: it lacks a
// parseable target date, or creating it would produce a record whose
// expires date precedes its target date.
var ErrValidation = errors.New("invalid draft")

// Action is the outcome of a reconciliation decision.
type Action string

const (
	// ActionCreate indicates a new record was created.
	ActionCreate Action = "create"

	// ActionUpdate indicates an existing record was updated in place.
	ActionUpdate Action = "update"
)

// Reconciler produces the record to persist for a draft.
//
// It is pure and deterministic given its inputs: it performs no I/O and
// never mutates the records it is given.
type Reconciler struct {
	// expiryDays is the horizon past the target date used when a draft
	// supplies no expires date.
	expiryDays int
}

// New creates a new reconciler.
//
// expiryDays is the default expiration horizon in days past the target
// date. If 0, DefaultExpiryDays is used.
func New(expiryDays int) *Reconciler {
	if expiryDays == 0 {
		expiryDays = DefaultExpiryDays
	}
	return &Reconciler{expiryDays: expiryDays}
}

// Matches reports whether a draft refers to an existing record.
//
// A draft matches a record if and only if their target dates are equal and
// at least one of the following holds:
//   - both have non-empty titles that are equal under case-insensitive,
//     whitespace-normalized comparison
//   - one of the two has an empty title and both have non-empty places
//     that are equal under the same normalization
//
// The place fallback requires both places to be non-empty: two untitled,
// placeless drafts on the same date would otherwise always collide.
func Matches(draft *extract.Draft, record *store.Record) bool {
	if !store.SameDay(draft.Target, record.Target) {
		return false
	}

	draftTitle := store.NormalizeLabel(draft.Title)
	recordTitle := store.NormalizeLabel(record.Title)
	if draftTitle != "" && recordTitle != "" {
		return draftTitle == recordTitle
	}

	draftPlace := store.NormalizeLabel(draft.Place)
	recordPlace := store.NormalizeLabel(record.Place)
	return draftPlace != "" && recordPlace != "" && draftPlace == recordPlace
}

// Decide chooses between CREATE and UPDATE for a draft against the current
// record set.
//
// Exactly one matching record yields ActionUpdate with that record. Zero or
// multiple matches yield ActionCreate with a nil record: ambiguity favors a
// duplicate-avoidance false negative over an incorrect merge.
func Decide(draft *extract.Draft, records []*store.Record) (Action, *store.Record) {
	var match *store.Record
	for _, record := range records {
		if !Matches(draft, record) {
			continue
		}
		if match != nil {
			return ActionCreate, nil
		}
		match = record
	}
	if match == nil {
		return ActionCreate, nil
	}
	return ActionUpdate, match
}

// Reconcile produces the record to persist for a draft.
//
// It validates the draft, decides CREATE versus UPDATE, and either merges
// the draft into a clone of the matched record or derives a fresh record
// with an identity deduplicated against every occupied identity.
//
// identities lists all document identities in the store, including
// malformed documents and records hidden by owner filtering; a created
// record never reuses one, so it can never rename over a document the
// matching set did not see.
//
// Returns ErrValidation (wrapped) if the draft lacks a target date or the
// resulting record would have expires < target.
func (rc *Reconciler) Reconcile(draft *extract.Draft, records []*store.Record, identities []string) (Action, *store.Record, error) {
	if draft == nil || draft.Target.IsZero() {
		return "", nil, fmt.Errorf("%w: missing target date", ErrValidation)
	}

	action, existing := Decide(draft, records)
	if action == ActionUpdate {
		merged := Merge(existing, draft)
		if merged.Expires.Before(merged.Target) {
			return "", nil, fmt.Errorf("%w: expires %s before target %s", ErrValidation,
				store.FormatDate(merged.Expires), store.FormatDate(merged.Target))
		}
		return ActionUpdate, merged, nil
	}

	record, err := rc.newRecord(draft, records, identities)
	if err != nil {
		return "", nil, err
	}
	return ActionCreate, record, nil
}

// Merge applies a draft to a clone of an existing record.
//
// For each of title, time, place, expires, and attachments the draft value
// replaces the stored value only when the draft supplies a non-empty value.
// Draft body text is appended to the stored body separated by a blank line,
// never replacing prior text. Target and identity are never changed by a
// merge: moving an event to another date is modeled as creating a new
// record and retiring the old one.
func Merge(existing *store.Record, draft *extract.Draft) *store.Record {
	merged := existing.Clone()

	if draft.Title != "" {
		merged.Title = draft.Title
	}
	if draft.Time != "" {
		merged.Time = draft.Time
	}
	if draft.Place != "" {
		merged.Place = draft.Place
	}
	if !draft.Expires.IsZero() {
		merged.Expires = draft.Expires
	}
	if len(draft.Attachments) > 0 {
		merged.Attachments = append([]string(nil), draft.Attachments...)
	}
	if draft.Body != "" {
		if merged.Body == "" {
			merged.Body = draft.Body
		} else {
			merged.Body = merged.Body + "\n\n" + draft.Body
		}
	}
	return merged
}

// newRecord derives a fresh record from a draft.
func (rc *Reconciler) newRecord(draft *extract.Draft, records []*store.Record, identities []string) (*store.Record, error) {
	expires := draft.Expires
	if expires.IsZero() {
		expires = draft.Target.AddDate(0, 0, rc.expiryDays)
	}
	if expires.Before(draft.Target) {
		return nil, fmt.Errorf("%w: expires %s before target %s", ErrValidation,
			store.FormatDate(expires), store.FormatDate(draft.Target))
	}

	taken := make(map[string]bool, len(identities)+len(records))
	for _, identity := range identities {
		taken[identity] = true
	}
	for _, record := range records {
		taken[record.Identity] = true
	}

	return &store.Record{
		Identity:    uniqueIdentity(Slugify(draft.Target, draft.Title, draft.Slug), taken),
		Target:      draft.Target,
		Expires:     expires,
		Title:       draft.Title,
		Time:        draft.Time,
		Place:       draft.Place,
		Body:        draft.Body,
		Attachments: draft.Attachments,
	}, nil
}

// uniqueIdentity deduplicates an identity against the existing set by
// suffixing an increasing counter.
func uniqueIdentity(identity string, taken map[string]bool) string {
	if !taken[identity] {
		return identity
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", identity, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// Slugify derives a document identity from the target date and the title.
//
// The identity is "<target>-<slug>" where the slug comes from the hint when
// one is supplied (useful for non-ASCII titles) and from the title
// otherwise. When neither yields any slug characters the date alone is the
// identity.
func Slugify(target time.Time, title, hint string) string {
	prefix := store.FormatDate(target)
	if clean := slugText(hint); clean != "" {
		return prefix + "-" + clean
	}
	if clean := slugText(title); clean != "" {
		return prefix + "-" + clean
	}
	return prefix
}

// slugText reduces text to lowercase ASCII letters, digits, and single
// hyphens.
func slugText(s string) string {
	var out []byte
	lastHyphen := true // suppress leading hyphen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, byte(r))
			lastHyphen = false
		case r >= 'A' && r <= 'Z':
			out = append(out, byte(r-'A'+'a'))
			lastHyphen = false
		default:
			if !lastHyphen {
				out = append(out, '-')
				lastHyphen = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
