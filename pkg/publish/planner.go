// Package publish computes the categorized view of the record set for
// rendering and turns it into a single static HTML page.
//
// The planner is pure: given the same today and the same records it always
// produces the same plan, regardless of call count or wall-clock time.
package publish

import (
	"sort"
	"time"

	"github.com/eventmem/eventmem-go/pkg/store"
)

// Plan is the categorized, ordered, filtered view of the record set.
//
// Every non-expired, well-formed record lands in exactly one of ThisWeek,
// Upcoming, or neither; ExcludedCount counts the records shown in neither
// bucket (expired, malformed, or already past but not yet expired).
type Plan struct {
	// ThisWeek holds records whose target falls inside the current week
	// window, ordered ascending by target date.
	ThisWeek []*store.Record

	// Upcoming holds records whose target is on or after today but past
	// the week window, ordered ascending by target date.
	Upcoming []*store.Record

	// ExcludedCount is the number of records appearing in neither bucket.
	ExcludedCount int
}

// Planner categorizes records into This-Week and Upcoming buckets.
type Planner struct {
	// weekStart is the weekday on which the publication week begins.
	weekStart time.Weekday
}

// NewPlanner creates a planner whose week begins on the given weekday.
func NewPlanner(weekStart time.Weekday) *Planner {
	return &Planner{weekStart: weekStart}
}

// WeekWindow returns the inclusive bounds of the week containing today.
//
// The window starts at the most recent occurrence of the configured
// week-start weekday (today itself when the weekdays coincide) and spans
// seven days.
func (p *Planner) WeekWindow(today time.Time) (start, end time.Time) {
	today = store.DateOnly(today)
	daysSince := (int(today.Weekday()) - int(p.weekStart) + 7) % 7
	start = today.AddDate(0, 0, -daysSince)
	return start, start.AddDate(0, 0, 6)
}

// Plan partitions the record set for rendering.
//
// Expired records (expires < today) and documents reported malformed by the
// store are discarded and counted as excluded. Of the remainder, a record
// goes to ThisWeek when its target falls inside the week window (inclusive
// both ends), to Upcoming when its target is on or after today, and to
// neither when it is already past but still unexpired.
//
// Both buckets are sorted ascending by target date; ties are broken by
// normalized title with empty titles last, and enumeration order is
// preserved beyond that.
func (p *Planner) Plan(today time.Time, records []*store.Record, malformed []store.MalformedDocument) *Plan {
	today = store.DateOnly(today)
	weekStart, weekEnd := p.WeekWindow(today)

	plan := &Plan{ExcludedCount: len(malformed)}
	for _, record := range records {
		switch {
		case record.IsExpired(today):
			plan.ExcludedCount++
		case !record.Target.Before(weekStart) && !record.Target.After(weekEnd):
			plan.ThisWeek = append(plan.ThisWeek, record)
		case !record.Target.Before(today):
			plan.Upcoming = append(plan.Upcoming, record)
		default:
			// Past but not yet expired: alive only for update matching.
			plan.ExcludedCount++
		}
	}

	sortRecords(plan.ThisWeek)
	sortRecords(plan.Upcoming)
	return plan
}

// sortRecords orders a bucket ascending by target date, breaking ties by
// normalized title with empty titles last. The sort is stable so remaining
// ties preserve enumeration order.
func sortRecords(records []*store.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Target.Equal(b.Target) {
			return a.Target.Before(b.Target)
		}
		at, bt := store.NormalizeLabel(a.Title), store.NormalizeLabel(b.Title)
		if (at == "") != (bt == "") {
			return bt == ""
		}
		return at < bt
	})
}
