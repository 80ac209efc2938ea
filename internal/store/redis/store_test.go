package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkhub/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, time.Hour), mr
}

func TestNilStoreIsDisabled(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, time.Hour)

	assert.Nil(t, s)
	assert.False(t, s.Enabled())

	n, err := s.IncrementUsage(ctx, "1")
	assert.NoError(t, err)
	assert.Zero(t, n)

	stats, err := s.GetUsageStats(ctx)
	assert.NoError(t, err)
	assert.Empty(t, stats)

	_, err = s.GetTheme(ctx, "visitor")
	assert.ErrorIs(t, err, ErrNoPreference)
	assert.NoError(t, s.SaveTheme(ctx, "visitor", domain.ThemeDark))
	assert.NoError(t, s.DeleteTheme(ctx, "visitor"))

	_, err = s.GetSnapshot(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.NoError(t, s.SaveSnapshot(ctx, Snapshot{}))
}

func TestUsage(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	n, err := s.IncrementUsage(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.IncrementUsage(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = s.IncrementUsage(ctx, "6")
	require.NoError(t, err)

	stats, err := s.GetUsageStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"1": 2, "6": 1}, stats)
}

func TestUsageSkipsCorruptedCounters(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	mr.HSet(KeyUsage, "1", "3", "2", "not-a-number")

	stats, err := s.GetUsageStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"1": 3}, stats)
}

func TestTheme(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	_, err := s.GetTheme(ctx, "v1")
	assert.ErrorIs(t, err, ErrNoPreference)

	require.NoError(t, s.SaveTheme(ctx, "v1", domain.ThemeDark))
	theme, err := s.GetTheme(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)
	assert.Equal(t, time.Hour, mr.TTL(ThemeKey("v1")))

	require.NoError(t, s.DeleteTheme(ctx, "v1"))
	_, err = s.GetTheme(ctx, "v1")
	assert.ErrorIs(t, err, ErrNoPreference)
}

func TestThemeExpires(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.SaveTheme(ctx, "v1", domain.ThemeLight))
	mr.FastForward(2 * time.Hour)

	_, err := s.GetTheme(ctx, "v1")
	assert.ErrorIs(t, err, ErrNoPreference)
}

func TestThemeCorruptedValue(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, mr.Set(ThemeKey("v1"), "sepia"))

	_, err := s.GetTheme(ctx, "v1")
	assert.ErrorIs(t, err, ErrNoPreference)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.GetSnapshot(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	saved := Snapshot{
		Version: "abc",
		Source:  "builtin",
		SavedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Links: []domain.Link{
			{ID: "1", Title: "GST Portal", URL: "https://www.gst.gov.in", Category: "Tax & Business", Keywords: []string{"gst verify"}},
		},
	}
	require.NoError(t, s.SaveSnapshot(ctx, saved))

	got, err := s.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.Version, got.Version)
	assert.Equal(t, saved.Source, got.Source)
	assert.True(t, saved.SavedAt.Equal(got.SavedAt))
	assert.Equal(t, saved.Links, got.Links)
}

func TestSnapshotCorrupted(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, mr.Set(KeySnapshot, "{not json"))

	_, err := s.GetSnapshot(ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSnapshot)
}
