package cleanup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventmem/eventmem-go/pkg/cleanup"
	"github.com/eventmem/eventmem-go/pkg/store"
	"github.com/eventmem/eventmem-go/pkg/store/markdown"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// recordingPurger records purged URLs and optionally fails on one of them.
type recordingPurger struct {
	purged  []string
	failURL string
}

func (p *recordingPurger) Purge(ctx context.Context, url string) error {
	p.purged = append(p.purged, url)
	if url == p.failURL {
		return errors.New("purge failed")
	}
	return nil
}

func seedStore(t *testing.T, records ...*store.Record) *markdown.Store {
	t.Helper()
	st, err := markdown.New(&markdown.Config{Dir: t.TempDir()})
	require.NoError(t, err)
	for _, record := range records {
		require.NoError(t, st.Save(context.Background(), record))
	}
	return st
}

func TestFindExpired(t *testing.T) {
	st := seedStore(t,
		&store.Record{
			Identity: "2026-01-05-expired",
			Target:   date(2026, 1, 5),
			Expires:  date(2026, 2, 1),
			Title:    "Expired",
		},
		&store.Record{
			Identity: "2026-03-01-alive",
			Target:   date(2026, 3, 1),
			Expires:  date(2026, 3, 31),
			Title:    "Alive",
		},
	)

	sweeper := cleanup.NewSweeper(st, nil, nil)
	expired, err := sweeper.FindExpired(context.Background(), date(2026, 2, 18))
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "2026-01-05-expired", expired[0].Identity)
}

func TestCleanupDeletesExpiredAndPurgesAttachments(t *testing.T) {
	st := seedStore(t,
		&store.Record{
			Identity:    "2026-01-05-expired",
			Target:      date(2026, 1, 5),
			Expires:     date(2026, 2, 1),
			Title:       "Expired",
			Attachments: []string{"https://example.com/a.pdf", "https://example.com/b.pdf"},
		},
		&store.Record{
			Identity: "2026-03-01-alive",
			Target:   date(2026, 3, 1),
			Expires:  date(2026, 3, 31),
			Title:    "Alive",
		},
	)

	purger := &recordingPurger{}
	sweeper := cleanup.NewSweeper(st, purger, nil)

	deleted, err := sweeper.Cleanup(context.Background(), date(2026, 2, 18))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-05-expired"}, deleted)
	assert.Equal(t, []string{"https://example.com/a.pdf", "https://example.com/b.pdf"}, purger.purged)

	records, _, err := st.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-03-01-alive", records[0].Identity)
}

func TestCleanupSurvivesPurgeFailure(t *testing.T) {
	st := seedStore(t,
		&store.Record{
			Identity:    "2026-01-05-expired",
			Target:      date(2026, 1, 5),
			Expires:     date(2026, 2, 1),
			Title:       "Expired",
			Attachments: []string{"https://example.com/gone.pdf"},
		},
	)

	purger := &recordingPurger{failURL: "https://example.com/gone.pdf"}
	sweeper := cleanup.NewSweeper(st, purger, nil)

	// A failing purge is logged, not fatal: the document is still deleted.
	deleted, err := sweeper.Cleanup(context.Background(), date(2026, 2, 18))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-05-expired"}, deleted)
}

func TestCleanupNothingExpired(t *testing.T) {
	st := seedStore(t,
		&store.Record{
			Identity: "2026-03-01-alive",
			Target:   date(2026, 3, 1),
			Expires:  date(2026, 3, 31),
			Title:    "Alive",
		},
	)

	sweeper := cleanup.NewSweeper(st, nil, nil)
	deleted, err := sweeper.Cleanup(context.Background(), date(2026, 2, 18))
	require.NoError(t, err)
	assert.Empty(t, deleted)
}
