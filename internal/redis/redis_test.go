package redis

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresence(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := NewClient(ctx, addr, os.Getenv("REDIS_USERNAME"), os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		t.Skipf("redis not available, skipping test: %v", err)
	}
	defer rdb.Close()

	p := NewPresence(rdb, time.Minute)
	device := "test-" + uuid.NewString()
	defer rdb.Del(context.Background(), presenceKey(device))

	_, ok, err := p.LastSeen(ctx, device)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC)
	require.NoError(t, p.Touch(ctx, device, at))

	got, ok, err := p.LastSeen(ctx, device)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, at, got)
}

func TestPresenceKey(t *testing.T) {
	assert.Equal(t, "device:abc:last_seen", presenceKey("abc"))
}

func newMiniPresence(t *testing.T, ttl time.Duration) (*Presence, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	rdb, err := NewClient(context.Background(), m.Addr(), "", "")
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })
	return NewPresence(rdb, ttl), m
}

func TestPresenceStoresUnixSecondsWithTTL(t *testing.T) {
	p, m := newMiniPresence(t, 30*time.Second)
	ctx := context.Background()

	at := time.Date(2025, time.March, 5, 9, 0, 0, 0, time.FixedZone("KST", 9*3600))
	require.NoError(t, p.Touch(ctx, "lobby", at))

	raw, err := m.Get("device:lobby:last_seen")
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(at.Unix(), 10), raw)
	assert.Equal(t, 30*time.Second, m.TTL("device:lobby:last_seen"))

	got, ok, err := p.LastSeen(ctx, "lobby")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Equal(at))
	assert.Equal(t, time.UTC, got.Location())
}

func TestPresenceExpiresAfterTTL(t *testing.T) {
	p, m := newMiniPresence(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, p.Touch(ctx, "lobby", time.Now()))
	m.FastForward(31 * time.Second)

	_, ok, err := p.LastSeen(ctx, "lobby")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPresenceRejectsCorruptValue(t *testing.T) {
	p, m := newMiniPresence(t, time.Minute)
	require.NoError(t, m.Set("device:lobby:last_seen", "yesterday"))

	_, ok, err := p.LastSeen(context.Background(), "lobby")
	assert.Error(t, err)
	assert.False(t, ok)
}
