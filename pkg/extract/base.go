// Package extract provides interfaces and utilities for turning free-form
// operator messages into structured event drafts.
//
// It defines the Extractor interface that all provider implementations
// (OpenAI, Anthropic, Gemini) must satisfy, along with the Draft and
// Request types and the shared prompt/response handling.
package extract

import (
	"context"
	"errors"
	"time"

	"github.com/eventmem/eventmem-go/pkg/store"
)

// ErrExtraction indicates that the extraction call failed or returned an
// unusable response.
var ErrExtraction = errors.New("extraction failed")

// Draft is the structured output of the extraction step, not yet persisted.
//
// Optional fields are left at their zero values when the message carried no
// corresponding information; the reconciler treats empty fields as
// "no change" when merging into an existing record.
type Draft struct {
	// Target is the candidate event date. Zero when the model could not
	// determine one; the reconciler rejects such drafts.
	Target time.Time

	// Expires is the candidate expiration date. Zero means "use the
	// configured horizon past Target".
	Expires time.Time

	// Title is a short event name in markdown format. Optional.
	Title string

	// Slug is an ASCII-only identifier hint for the document filename,
	// useful when the title is not ASCII. Optional.
	Slug string

	// Time is a clock time label such as "14:00". Optional.
	Time string

	// Place is the event location. Optional.
	Place string

	// Body is new narrative text to record. Optional; on update it is
	// appended to the stored body, never replacing prior text.
	Body string

	// Attachments holds URLs of uploaded files relevant to the event.
	Attachments []string

	// Source is the original free-text message, carried for traceability
	// only and never parsed further.
	Source string
}

// Request carries the inputs for one extraction call.
type Request struct {
	// Message is the free-form operator text describing the event.
	Message string

	// Today anchors relative date references in the message.
	Today time.Time

	// Existing summarizes the current record set so the model can reuse
	// titles and places consistently.
	Existing []*store.Record

	// Attachments holds URLs of files already uploaded for this message.
	Attachments []string
}

// Extractor defines the interface for extraction providers.
//
// Implementations call an external model and are therefore the only
// suspension point in a commit; they must honor context cancellation.
// Callers own the retry-or-fail policy. The reconciler never depends on a
// concrete provider, only on this interface, so tests substitute a
// deterministic double.
type Extractor interface {
	// Extract turns a free-form message into a structured draft.
	//
	// Returns ErrExtraction (wrapped) if the provider call fails or its
	// response cannot be parsed.
	Extract(ctx context.Context, req *Request) (*Draft, error)

	// Close closes the extractor and releases resources.
	Close() error
}
