// Package core provides the main eventmem client and the public types for
// committing and publishing event memories.
package core

import (
	"time"

	"github.com/eventmem/eventmem-go/pkg/reconcile"
)

// Record represents a single event memory stored in the system.
//
// A record contains:
//   - Identity: The storage-derived slug, immutable for the record's life
//   - Target: The date the event concerns
//   - Expires: The date after which the record leaves publication
//   - Title, Time, Place: Optional descriptive fields
//   - Body: Human-authored narrative content, opaque to all logic
//
// Example:
//
//	record := &core.Record{
//	    Identity: "2026-03-01-team-meeting",
//	    Target:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
//	    Expires:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
//	    Title:    "Team Meeting",
//	    Place:    "Room A",
//	}
type Record struct {
	// Identity is the storage-derived slug identifying the record's
	// document. Stable once created, never recomputed from content.
	Identity string `json:"identity"`

	// Target is the date the event concerns.
	Target time.Time `json:"target"`

	// Expires is the date after which the record is no longer eligible
	// for publication. Never before Target.
	Expires time.Time `json:"expires"`

	// Title is a short event name (optional).
	Title string `json:"title,omitempty"`

	// Time is a free-form clock time label (optional).
	Time string `json:"time,omitempty"`

	// Place is the event location (optional).
	Place string `json:"place,omitempty"`

	// Body is the narrative content, preserved verbatim across updates.
	Body string `json:"body,omitempty"`

	// Attachments holds URLs of uploaded files associated with the record.
	Attachments []string `json:"attachments,omitempty"`

	// UserID identifies the owner of the record (optional).
	UserID string `json:"user_id,omitempty"`
}

// MalformedDocument reports a stored document that failed required-field or
// date-order validation during a load.
type MalformedDocument struct {
	// Identity is the slug of the offending document.
	Identity string `json:"identity"`

	// Reason describes why the document could not be parsed.
	Reason string `json:"reason"`
}

// Action is the outcome of a commit decision.
type Action = reconcile.Action

// Re-exported decision outcomes.
const (
	// ActionCreate indicates the commit created a new record.
	ActionCreate = reconcile.ActionCreate

	// ActionUpdate indicates the commit updated an existing record.
	ActionUpdate = reconcile.ActionUpdate
)

// CommitResult reports what a commit did.
type CommitResult struct {
	// CommitID uniquely identifies this commit operation for tracing.
	CommitID int64 `json:"commit_id"`

	// Action is the decision taken: create or update.
	Action Action `json:"action"`

	// Identity is the slug of the record that was written.
	Identity string `json:"identity"`

	// Record is the record as persisted.
	Record *Record `json:"record"`
}

// PagePlan is the categorized view of the record set for rendering.
type PagePlan struct {
	// ThisWeek holds records targeted inside the current week window,
	// ordered ascending by target date.
	ThisWeek []*Record `json:"this_week"`

	// Upcoming holds records targeted on or after today but past the
	// week window, ordered ascending by target date.
	Upcoming []*Record `json:"upcoming"`

	// ExcludedCount is the number of records in neither bucket
	// (expired, malformed, or already past but not yet expired).
	ExcludedCount int `json:"excluded_count"`

	// Malformed lists the documents that failed to parse, for warning
	// output. They are already counted in ExcludedCount.
	Malformed []MalformedDocument `json:"malformed,omitempty"`
}
