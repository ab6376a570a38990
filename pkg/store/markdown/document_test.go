package markdown_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventmem/eventmem-go/pkg/store"
	"github.com/eventmem/eventmem-go/pkg/store/markdown"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDocumentRoundTrip(t *testing.T) {
	record := &store.Record{
		Identity:    "2026-03-01-team-meeting",
		Target:      date(2026, 3, 1),
		Expires:     date(2026, 4, 1),
		Title:       "Team Meeting",
		Time:        "14:00",
		Place:       "Room A",
		Body:        "Agenda:\n\n- budget\n- planning",
		Attachments: []string{"https://example.com/agenda.pdf"},
		UserID:      "north-office",
	}

	data, err := markdown.EncodeDocument(record)
	require.NoError(t, err)

	decoded, err := markdown.DecodeDocument(record.Identity, data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestDocumentRoundTripMinimal(t *testing.T) {
	record := &store.Record{
		Identity: "2026-03-01",
		Target:   date(2026, 3, 1),
		Expires:  date(2026, 3, 31),
	}

	data, err := markdown.EncodeDocument(record)
	require.NoError(t, err)

	decoded, err := markdown.DecodeDocument(record.Identity, data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestEncodeDocumentFormat(t *testing.T) {
	record := &store.Record{
		Identity: "2026-03-01-bake-sale",
		Target:   date(2026, 3, 1),
		Expires:  date(2026, 3, 8),
		Title:    "Bake Sale",
		Body:     "Cookies and pies.",
	}

	data, err := markdown.EncodeDocument(record)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.Contains(t, text, "target: \"2026-03-01\"")
	assert.Contains(t, text, "expires: \"2026-03-08\"")
	assert.Contains(t, text, "title: Bake Sale")
	assert.True(t, strings.HasSuffix(text, "Cookies and pies.\n"))
}

func TestDecodeDocumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no frontmatter",
			content: "just some text\n",
		},
		{
			name:    "unterminated frontmatter",
			content: "---\ntarget: \"2026-03-01\"\n",
		},
		{
			name:    "invalid yaml",
			content: "---\n: : :\n---\n",
		},
		{
			name:    "missing target",
			content: "---\nexpires: \"2026-03-08\"\n---\n",
		},
		{
			name:    "missing expires",
			content: "---\ntarget: \"2026-03-01\"\n---\n",
		},
		{
			name:    "unparseable target",
			content: "---\ntarget: \"soon\"\nexpires: \"2026-03-08\"\n---\n",
		},
		{
			name:    "expires before target",
			content: "---\ntarget: \"2026-03-08\"\nexpires: \"2026-03-01\"\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := markdown.DecodeDocument("doc", []byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDecodeDocumentIdentityFromCaller(t *testing.T) {
	content := "---\ntarget: \"2026-03-01\"\nexpires: \"2026-03-08\"\ntitle: Bake Sale\n---\n\nBody here.\n"

	record, err := markdown.DecodeDocument("2026-03-01-bake-sale", []byte(content))
	require.NoError(t, err)

	// Identity comes from the filename, never from content.
	assert.Equal(t, "2026-03-01-bake-sale", record.Identity)
	assert.Equal(t, "Bake Sale", record.Title)
	assert.Equal(t, "Body here.", record.Body)
}
