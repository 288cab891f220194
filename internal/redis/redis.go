package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewClient connects to redis and verifies the connection with a PING.
func NewClient(ctx context.Context, address, username, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", address, err)
	}
	return rdb, nil
}

// Presence records when each device last polled its status. A device whose
// key has expired is considered offline.
type Presence struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPresence(rdb *redis.Client, ttl time.Duration) *Presence {
	return &Presence{rdb: rdb, ttl: ttl}
}

func presenceKey(deviceID string) string {
	return fmt.Sprintf("device:%s:last_seen", deviceID)
}

// Touch marks the device as seen at the given time.
func (p *Presence) Touch(ctx context.Context, deviceID string, at time.Time) error {
	if err := p.rdb.Set(ctx, presenceKey(deviceID), at.UTC().Unix(), p.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("device_id", deviceID).Msg("[presence] failed to record poll")
		return err
	}
	return nil
}

// LastSeen returns when the device last polled. ok is false when it has not
// polled within the presence window.
func (p *Presence) LastSeen(ctx context.Context, deviceID string) (at time.Time, ok bool, err error) {
	secs, err := p.rdb.Get(ctx, presenceKey(deviceID)).Int64()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(secs, 0).UTC(), true, nil
}
