package extract

import (
	"fmt"
	"strings"

	"github.com/eventmem/eventmem-go/pkg/store"
)

// BuildPrompt assembles the extraction prompt from the operator message,
// summaries of the existing records, and today's date.
//
// The model is asked only for the structured fields of the event; deciding
// whether those fields create a new record or update an existing one is
// local logic and deliberately kept out of the model's hands.
func BuildPrompt(req *Request) string {
	var summaries []string
	for _, record := range req.Existing {
		parts := []string{"target=" + store.FormatDate(record.Target)}
		if record.Title != "" {
			parts = append(parts, "title="+record.Title)
		}
		if record.Time != "" {
			parts = append(parts, "time="+record.Time)
		}
		if record.Place != "" {
			parts = append(parts, "place="+record.Place)
		}
		parts = append(parts, "expires="+store.FormatDate(record.Expires))
		summaries = append(summaries, "- "+strings.Join(parts, ", "))
	}

	existingBlock := "(none)"
	if len(summaries) > 0 {
		existingBlock = strings.Join(summaries, "\n")
	}

	attachmentsBlock := ""
	if len(req.Attachments) > 0 {
		var urls []string
		for _, url := range req.Attachments {
			urls = append(urls, "- "+url)
		}
		attachmentsBlock = fmt.Sprintf("\nAttached file URLs (already uploaded):\n%s\n", strings.Join(urls, "\n"))
	}

	return fmt.Sprintf(`Today's date: %s

Existing events:
%s

User message: %s
%s
Respond in the same language as the user's message.
When the message refers to an event already listed above, reuse its exact title and place wording so the events can be matched.

Respond with a single JSON object (no markdown fences) containing:
- "target": ISO 8601 date string for when the event occurs, or null if the message gives no determinable date
- "expires": ISO 8601 date string for when the event can be forgotten, or null to use the default horizon
- "title": short event name in markdown format, or null
- "slug": ASCII-only short identifier suitable for a filename (e.g. "work-lunch"), or null
- "time": time of day as a string (e.g. "10:00") or null
- "place": location string or null
- "body": event description in markdown format (use [text](url) for any links), or null
- "attachments": list of attachment URLs relevant to this event, or null if none`,
		store.FormatDate(req.Today), existingBlock, req.Message, attachmentsBlock)
}
