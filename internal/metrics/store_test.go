package metrics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func at(s *Store, t time.Time) {
	s.now = func() time.Time { return t }
}

func TestHashIP(t *testing.T) {
	s := newTestStore(t)

	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))
	assert.NotContains(t, h, "203")

	other := newTestStore(t)
	assert.NotEqual(t, h, other.HashIP("203.0.113.7"), "salt must differ per store")
}

func TestRecordVisitAndStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	at(s, now.Add(-10*24*time.Hour))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.1", "old-agent", "/"))
	at(s, now.Add(-3*24*time.Hour))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.2", "agent", "/"))
	at(s, now.Add(-time.Hour))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.1", "agent", "/"))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.3", "agent", "/contact-form"))

	at(s, now)
	stats, err := s.Stats(ctx, 2)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)

	require.Len(t, stats.TopPaths, 2)
	assert.Equal(t, PathCount{Path: "/", Views: 3}, stats.TopPaths[0])

	require.Len(t, stats.RecentVisitors, 2)
	assert.Equal(t, "/contact-form", stats.RecentVisitors[0].Path)
	assert.True(t, now.Add(-time.Hour).Equal(stats.RecentVisitors[0].Timestamp))
	assert.Equal(t, s.HashIP("10.0.0.3"), stats.RecentVisitors[0].HashedIP)
	assert.Empty(t, stats.Outcomes)
}

func TestRecordOutcome(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.RecordOutcome(ctx, "a", "success"))
	require.NoError(t, s.RecordOutcome(ctx, "b", "fallback_success"))
	require.NoError(t, s.RecordOutcome(ctx, "c", "success"))
	assert.Error(t, s.RecordOutcome(ctx, "a", "error"), "ids are unique")

	stats, err := s.Stats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"success": 2, "fallback_success": 1}, stats.Outcomes)
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	at(s, now.AddDate(-2, 0, 0))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.1", "", "/"))
	require.NoError(t, s.RecordOutcome(ctx, "old", "success"))
	at(s, now.AddDate(0, -1, 0))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.2", "", "/"))

	at(s, now)
	removed, err := s.Cleanup(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	stats, err := s.Stats(ctx, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors)
	assert.Empty(t, stats.Outcomes)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.RecordVisit(context.Background(), "10.0.0.1", "", "/"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	stats, err := s.Stats(context.Background(), 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors)
}
