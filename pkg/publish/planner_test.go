package publish_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventmem/eventmem-go/pkg/publish"
	"github.com/eventmem/eventmem-go/pkg/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekWindow(t *testing.T) {
	planner := publish.NewPlanner(time.Monday)

	// Wednesday 2026-02-18 sits in the Monday week 02-16 through 02-22.
	start, end := planner.WeekWindow(date(2026, 2, 18))
	assert.Equal(t, date(2026, 2, 16), start)
	assert.Equal(t, date(2026, 2, 22), end)

	// On the week-start day itself the window begins today.
	start, end = planner.WeekWindow(date(2026, 2, 16))
	assert.Equal(t, date(2026, 2, 16), start)
	assert.Equal(t, date(2026, 2, 22), end)

	// A Sunday start shifts the same Wednesday into 02-15 through 02-21.
	sunday := publish.NewPlanner(time.Sunday)
	start, end = sunday.WeekWindow(date(2026, 2, 18))
	assert.Equal(t, date(2026, 2, 15), start)
	assert.Equal(t, date(2026, 2, 21), end)

	// Clock time within the day never moves the window.
	start, _ = planner.WeekWindow(time.Date(2026, 2, 18, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, date(2026, 2, 16), start)
}

func TestPlanBuckets(t *testing.T) {
	planner := publish.NewPlanner(time.Monday)
	today := date(2026, 2, 18)

	records := []*store.Record{
		{Identity: "in-week", Target: date(2026, 2, 20), Expires: date(2026, 3, 20), Title: "In Week"},
		{Identity: "upcoming", Target: date(2026, 3, 1), Expires: date(2026, 3, 31), Title: "Upcoming"},
		{Identity: "earlier-this-week", Target: date(2026, 2, 16), Expires: date(2026, 3, 16), Title: "Earlier This Week"},
		{Identity: "past-alive", Target: date(2026, 2, 10), Expires: date(2026, 2, 25), Title: "Past Alive"},
		{Identity: "expired", Target: date(2026, 1, 5), Expires: date(2026, 2, 1), Title: "Expired"},
	}

	plan := planner.Plan(today, records, nil)

	require.Len(t, plan.ThisWeek, 2)
	assert.Equal(t, "earlier-this-week", plan.ThisWeek[0].Identity)
	assert.Equal(t, "in-week", plan.ThisWeek[1].Identity)

	require.Len(t, plan.Upcoming, 1)
	assert.Equal(t, "upcoming", plan.Upcoming[0].Identity)

	// The past-but-unexpired record and the expired record show nowhere.
	assert.Equal(t, 2, plan.ExcludedCount)
}

func TestPlanCountsMalformed(t *testing.T) {
	planner := publish.NewPlanner(time.Monday)
	malformed := []store.MalformedDocument{
		{Identity: "2026-03-01-broken", Reason: "missing expires"},
	}

	plan := planner.Plan(date(2026, 2, 18), nil, malformed)
	assert.Empty(t, plan.ThisWeek)
	assert.Empty(t, plan.Upcoming)
	assert.Equal(t, 1, plan.ExcludedCount)
}

func TestPlanAliveOnExpiryDate(t *testing.T) {
	planner := publish.NewPlanner(time.Monday)
	today := date(2026, 2, 18)

	// A record is alive through its expires date and drops out the day after.
	record := &store.Record{Identity: "last-day", Target: date(2026, 2, 17), Expires: date(2026, 2, 18), Title: "Last Day"}
	plan := planner.Plan(today, []*store.Record{record}, nil)
	require.Len(t, plan.ThisWeek, 1)

	plan = planner.Plan(today.AddDate(0, 0, 1), []*store.Record{record}, nil)
	assert.Empty(t, plan.ThisWeek)
	assert.Equal(t, 1, plan.ExcludedCount)
}

func TestPlanOrdering(t *testing.T) {
	planner := publish.NewPlanner(time.Monday)
	today := date(2026, 2, 16)

	records := []*store.Record{
		{Identity: "untitled", Target: date(2026, 2, 17), Expires: date(2026, 3, 17), Place: "Room B"},
		{Identity: "zebra", Target: date(2026, 2, 17), Expires: date(2026, 3, 17), Title: "Zebra Run"},
		{Identity: "later", Target: date(2026, 2, 18), Expires: date(2026, 3, 18), Title: "Apple Fair"},
		{Identity: "brunch", Target: date(2026, 2, 17), Expires: date(2026, 3, 17), Title: "  brunch "},
	}

	plan := planner.Plan(today, records, nil)
	require.Len(t, plan.ThisWeek, 4)

	// Target date first, then normalized title with untitled records last.
	assert.Equal(t, "brunch", plan.ThisWeek[0].Identity)
	assert.Equal(t, "zebra", plan.ThisWeek[1].Identity)
	assert.Equal(t, "untitled", plan.ThisWeek[2].Identity)
	assert.Equal(t, "later", plan.ThisWeek[3].Identity)
}

func TestPlanIsDeterministic(t *testing.T) {
	planner := publish.NewPlanner(time.Monday)
	today := date(2026, 2, 18)
	records := []*store.Record{
		{Identity: "a", Target: date(2026, 2, 20), Expires: date(2026, 3, 20), Title: "A"},
		{Identity: "b", Target: date(2026, 3, 1), Expires: date(2026, 3, 31), Title: "B"},
	}

	first := planner.Plan(today, records, nil)
	second := planner.Plan(today, records, nil)
	assert.Equal(t, first, second)
}
