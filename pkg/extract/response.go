package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eventmem/eventmem-go/pkg/store"
)

// draftResponse is the wire form of the model's JSON reply.
type draftResponse struct {
	Target      *string  `json:"target"`
	Expires     *string  `json:"expires"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Time        string   `json:"time"`
	Place       string   `json:"place"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments"`
}

// ParseDraft parses a model response into a Draft.
//
// The response must be a single JSON object; surrounding code fences are
// tolerated and stripped. Null or absent optional fields yield zero values.
// A target or expires field that is present but not a valid ISO date is an
// error (wrapping ErrExtraction) rather than being silently dropped.
func ParseDraft(response string, req *Request) (*Draft, error) {
	response = removeCodeBlocks(response)

	var wire draftResponse
	if err := json.Unmarshal([]byte(response), &wire); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON response: %v", ErrExtraction, err)
	}

	draft := &Draft{
		Title:       wire.Title,
		Slug:        wire.Slug,
		Time:        wire.Time,
		Place:       wire.Place,
		Body:        wire.Body,
		Attachments: wire.Attachments,
		Source:      req.Message,
	}

	if wire.Target != nil && *wire.Target != "" {
		target, err := store.ParseDate(*wire.Target)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid target date %q", ErrExtraction, *wire.Target)
		}
		draft.Target = target
	}
	if wire.Expires != nil && *wire.Expires != "" {
		expires, err := store.ParseDate(*wire.Expires)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid expires date %q", ErrExtraction, *wire.Expires)
		}
		draft.Expires = expires
	}

	if len(draft.Attachments) == 0 && len(req.Attachments) > 0 {
		draft.Attachments = append([]string(nil), req.Attachments...)
	}

	return draft, nil
}

// removeCodeBlocks removes code blocks (```json ... ```) from a response.
func removeCodeBlocks(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")
	return strings.TrimSpace(response)
}
