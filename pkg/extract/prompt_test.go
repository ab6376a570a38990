package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventmem/eventmem-go/pkg/extract"
	"github.com/eventmem/eventmem-go/pkg/store"
)

func TestBuildPrompt(t *testing.T) {
	req := &extract.Request{
		Message: "Team meeting moved to 2pm",
		Today:   date(2026, 2, 18),
		Existing: []*store.Record{
			{
				Target:  date(2026, 3, 1),
				Expires: date(2026, 3, 31),
				Title:   "Team Meeting",
				Place:   "Room A",
			},
		},
	}

	prompt := extract.BuildPrompt(req)
	assert.Contains(t, prompt, "Today's date: 2026-02-18")
	assert.Contains(t, prompt, "- target=2026-03-01, title=Team Meeting, place=Room A, expires=2026-03-31")
	assert.Contains(t, prompt, "User message: Team meeting moved to 2pm")
	assert.NotContains(t, prompt, "Attached file URLs")
}

func TestBuildPromptNoExisting(t *testing.T) {
	prompt := extract.BuildPrompt(&extract.Request{Message: "hi", Today: date(2026, 2, 18)})
	assert.Contains(t, prompt, "(none)")
}

func TestBuildPromptAttachments(t *testing.T) {
	req := &extract.Request{
		Message:     "flyer attached",
		Today:       date(2026, 2, 18),
		Attachments: []string{"https://example.com/flyer.png"},
	}

	prompt := extract.BuildPrompt(req)
	assert.Contains(t, prompt, "Attached file URLs (already uploaded):")
	assert.Contains(t, prompt, "- https://example.com/flyer.png")
}
