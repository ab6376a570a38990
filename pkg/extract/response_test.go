package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventmem/eventmem-go/pkg/extract"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDraft(t *testing.T) {
	req := &extract.Request{Message: "Team meeting moved to 2pm on March 1st"}
	response := `{
		"target": "2026-03-01",
		"expires": "2026-03-15",
		"title": "Team Meeting",
		"slug": "team-meeting",
		"time": "14:00",
		"place": "Room A",
		"body": "Moved to the afternoon.",
		"attachments": ["https://example.com/agenda.pdf"]
	}`

	draft, err := extract.ParseDraft(response, req)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 3, 1), draft.Target)
	assert.Equal(t, date(2026, 3, 15), draft.Expires)
	assert.Equal(t, "Team Meeting", draft.Title)
	assert.Equal(t, "team-meeting", draft.Slug)
	assert.Equal(t, "14:00", draft.Time)
	assert.Equal(t, "Room A", draft.Place)
	assert.Equal(t, "Moved to the afternoon.", draft.Body)
	assert.Equal(t, []string{"https://example.com/agenda.pdf"}, draft.Attachments)
	assert.Equal(t, req.Message, draft.Source)
}

func TestParseDraftStripsCodeFences(t *testing.T) {
	response := "```json\n{\"target\": \"2026-03-01\", \"title\": \"Bake Sale\"}\n```"

	draft, err := extract.ParseDraft(response, &extract.Request{})
	require.NoError(t, err)
	assert.Equal(t, date(2026, 3, 1), draft.Target)
	assert.Equal(t, "Bake Sale", draft.Title)
}

func TestParseDraftNullFields(t *testing.T) {
	response := `{"target": null, "expires": null, "title": null, "time": null, "place": null, "body": null, "attachments": null}`

	draft, err := extract.ParseDraft(response, &extract.Request{})
	require.NoError(t, err)
	assert.True(t, draft.Target.IsZero())
	assert.True(t, draft.Expires.IsZero())
	assert.Empty(t, draft.Title)
	assert.Empty(t, draft.Attachments)
}

func TestParseDraftErrors(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not JSON", "the event is on march first"},
		{"bad target date", `{"target": "next tuesday"}`},
		{"bad expires date", `{"target": "2026-03-01", "expires": "soon"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extract.ParseDraft(tt.response, &extract.Request{})
			assert.ErrorIs(t, err, extract.ErrExtraction)
		})
	}
}

func TestParseDraftFallsBackToRequestAttachments(t *testing.T) {
	req := &extract.Request{Attachments: []string{"https://example.com/flyer.png"}}

	draft, err := extract.ParseDraft(`{"target": "2026-03-01"}`, req)
	require.NoError(t, err)
	assert.Equal(t, req.Attachments, draft.Attachments)

	// A model-supplied list wins over the request's.
	draft, err = extract.ParseDraft(`{"target": "2026-03-01", "attachments": ["https://example.com/other.png"]}`, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/other.png"}, draft.Attachments)
}
