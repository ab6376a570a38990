package core

import (
	"github.com/eventmem/eventmem-go/pkg/publish"
	"github.com/eventmem/eventmem-go/pkg/store"
)

// Conversions between the public core types and the storage-level types.
// The store package defines its own Record to keep the dependency direction
// one way; these helpers bridge the two at the client surface.

// recordFromStore converts a storage record to the public type.
func recordFromStore(r *store.Record) *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		Identity: r.Identity,
		Target:   r.Target,
		Expires:  r.Expires,
		Title:    r.Title,
		Time:     r.Time,
		Place:    r.Place,
		Body:     r.Body,
		UserID:   r.UserID,
	}
	if r.Attachments != nil {
		out.Attachments = append([]string(nil), r.Attachments...)
	}
	return out
}

// recordsFromStore converts a slice of storage records.
func recordsFromStore(records []*store.Record) []*Record {
	if records == nil {
		return nil
	}
	out := make([]*Record, len(records))
	for i, r := range records {
		out[i] = recordFromStore(r)
	}
	return out
}

// malformedFromStore converts the store's malformed-document reports.
func malformedFromStore(malformed []store.MalformedDocument) []MalformedDocument {
	if malformed == nil {
		return nil
	}
	out := make([]MalformedDocument, len(malformed))
	for i, m := range malformed {
		out[i] = MalformedDocument{Identity: m.Identity, Reason: m.Reason}
	}
	return out
}

// planFromPublish converts a publish plan to the public type, attaching the
// malformed-document reports from the same load.
func planFromPublish(plan *publish.Plan, malformed []store.MalformedDocument) *PagePlan {
	return &PagePlan{
		ThisWeek:      recordsFromStore(plan.ThisWeek),
		Upcoming:      recordsFromStore(plan.Upcoming),
		ExcludedCount: plan.ExcludedCount,
		Malformed:     malformedFromStore(malformed),
	}
}
