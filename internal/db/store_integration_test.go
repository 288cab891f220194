package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

// integrationStore connects to TEST_DATABASE_URL and applies the migrations.
// The test is skipped when the variable is unset.
func integrationStore(t *testing.T) (Store, *sqlx.DB) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	conn, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, RunMigrations(conn, "../../migrations"))
	return NewStore(conn), conn
}

func TestStoreIntegration(t *testing.T) {
	store, _ := integrationStore(t)
	ctx := context.Background()
	now := time.Now()

	device, err := store.CreateDevice(ctx, "Lobby", "1F", model.LayoutSplit, 60)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.DeleteDevice(ctx, device.ID) })

	playlist, err := store.CreatePlaylist(ctx, "Morning", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.DeletePlaylist(ctx, playlist.ID) })

	newContent := func(title string, c model.Content) model.Content {
		c.Title, c.Type, c.Duration = title, model.ContentText, 5
		created, err := store.CreateContent(ctx, c)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.DeleteContent(ctx, created.ID) })
		return created
	}
	past := now.Add(-time.Hour)
	a := newContent("A", model.Content{})
	b := newContent("B", model.Content{})
	expired := newContent("C", model.Content{EndDate: &past})

	t.Run("playlist membership", func(t *testing.T) {
		first, err := store.AddContentToPlaylist(ctx, playlist.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, first.DisplayOrder)
		assert.Equal(t, model.ZoneMain, first.Zone)

		second, err := store.AddContentToPlaylist(ctx, playlist.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, second.DisplayOrder)

		_, err = store.AddContentToPlaylist(ctx, playlist.ID, a.ID)
		assert.ErrorIs(t, err, ErrConflict)

		_, err = store.AddContentToPlaylist(ctx, playlist.ID, expired.ID)
		require.NoError(t, err)

		require.NoError(t, store.UpdatePlaylistContentZone(ctx, playlist.ID, second.ID, model.ZoneSub))
		require.NoError(t, store.ReorderPlaylistContents(ctx, playlist.ID, []string{second.ID, first.ID}))

		items, err := store.ListPlaylistContents(ctx, playlist.ID)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, b.ID, items[0].ContentID)
		assert.Equal(t, model.ZoneSub, items[0].Zone)
		assert.Equal(t, a.ID, items[1].ContentID)
	})

	t.Run("assignment", func(t *testing.T) {
		require.NoError(t, store.AssignPlaylistToDevice(ctx, device.ID, playlist.ID))

		got, err := store.GetDevicePlaylist(ctx, device.ID)
		require.NoError(t, err)
		assert.Equal(t, playlist.ID, got.ID)

		entries, err := store.ListDeviceEntries(ctx, device.ID)
		require.NoError(t, err)
		assert.Len(t, entries, 3)

		assert.ErrorIs(t, store.AssignPlaylistToDevice(ctx, device.ID, "missing-playlist"), ErrNotFound)
		// the failed assignment rolled back, the old one survives
		_, err = store.GetDevicePlaylist(ctx, device.ID)
		assert.NoError(t, err)
	})

	t.Run("content delete cascades", func(t *testing.T) {
		require.NoError(t, store.DeleteContent(ctx, expired.ID))
		items, err := store.ListPlaylistContents(ctx, playlist.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("schedules by range", func(t *testing.T) {
		day := time.Date(2031, 5, 14, 9, 0, 0, 0, time.UTC)
		s, err := store.CreateSchedule(ctx, day, "Board meeting")
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.DeleteSchedule(ctx, s.ID) })

		in, err := store.ListSchedulesBetween(ctx, day.Add(-time.Hour), day.Add(time.Hour))
		require.NoError(t, err)
		assert.Len(t, in, 1)

		out, err := store.ListSchedulesBetween(ctx, day.Add(time.Hour), day.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
