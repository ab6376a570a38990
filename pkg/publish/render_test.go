package publish_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventmem/eventmem-go/pkg/publish"
	"github.com/eventmem/eventmem-go/pkg/store"
)

func TestRenderEmptyPlan(t *testing.T) {
	renderer := publish.NewRenderer("")

	page, err := renderer.Render(&publish.Plan{})
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Upcoming Events</title>")
	assert.Contains(t, page, "<h2>This Week</h2>")
	assert.Contains(t, page, "<h2>Upcoming</h2>")
	assert.Equal(t, 2, strings.Count(page, "<p>No events.</p>"))
}

func TestRenderSections(t *testing.T) {
	renderer := publish.NewRenderer("Village Notices")

	plan := &publish.Plan{
		ThisWeek: []*store.Record{
			{
				Identity: "2026-02-20-team-meeting",
				Target:   date(2026, 2, 20),
				Expires:  date(2026, 3, 20),
				Title:    "Team Meeting",
				Time:     "14:00",
				Place:    "Room A",
				Body:     "Quarterly review with **numbers**.",
			},
		},
		Upcoming: []*store.Record{
			{
				Identity: "2026-03-01-bake-sale",
				Target:   date(2026, 3, 1),
				Expires:  date(2026, 3, 31),
				Title:    "Bake Sale",
			},
		},
	}

	page, err := renderer.Render(plan)
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Village Notices</title>")
	assert.Contains(t, page, "<strong>Team Meeting</strong>")
	assert.Contains(t, page, "2026-02-20 · 14:00 · Room A")
	// The body renders as markdown.
	assert.Contains(t, page, "<strong>numbers</strong>")
	assert.Contains(t, page, "<strong>Bake Sale</strong>")
	assert.Contains(t, page, "2026-03-01")
	assert.Equal(t, 0, strings.Count(page, "No events."))
}

func TestRenderUntitledUsesBody(t *testing.T) {
	renderer := publish.NewRenderer("")

	plan := &publish.Plan{
		ThisWeek: []*store.Record{
			{
				Identity: "2026-02-20-a1b2",
				Target:   date(2026, 2, 20),
				Expires:  date(2026, 3, 20),
				Body:     "Dentist at *ten*.",
			},
		},
	}

	page, err := renderer.Render(plan)
	require.NoError(t, err)

	// The body stands in for the missing title and is not repeated below.
	assert.Contains(t, page, "<strong>Dentist at <em>ten</em>.</strong>")
	assert.NotContains(t, page, "<div>")
}

func TestRenderEscapesDetails(t *testing.T) {
	renderer := publish.NewRenderer("")

	plan := &publish.Plan{
		ThisWeek: []*store.Record{
			{
				Identity: "2026-02-20-injection",
				Target:   date(2026, 2, 20),
				Expires:  date(2026, 3, 20),
				Title:    "Safe Title",
				Place:    "<script>alert(1)</script>",
			},
		},
	}

	page, err := renderer.Render(plan)
	require.NoError(t, err)
	assert.NotContains(t, page, "<script>")
}

func TestRenderWithCustomTemplate(t *testing.T) {
	renderer, err := publish.NewRendererWithTemplate("Custom", `{{.SiteTitle}}: {{len .Sections}} sections`)
	require.NoError(t, err)

	page, err := renderer.Render(&publish.Plan{})
	require.NoError(t, err)
	assert.Equal(t, "Custom: 2 sections", page)

	_, err = publish.NewRendererWithTemplate("Custom", `{{.Broken`)
	assert.Error(t, err)
}
