package signage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/db"
	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrDeviceInactive = errors.New("device is inactive")
)

// Source is the read side of the store that resolution depends on.
type Source interface {
	GetDevice(ctx context.Context, id string) (model.Device, error)
	ListDeviceEntries(ctx context.Context, deviceID string) ([]model.DeviceEntry, error)
	ListActiveNotices(ctx context.Context) ([]model.Notice, error)
	ListSchedulesBetween(ctx context.Context, from, to time.Time) ([]model.Schedule, error)
}

type Resolver struct {
	src Source
}

func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve computes the device's current status from the store. Nothing is
// cached; every call reads current rows.
func (r *Resolver) Resolve(ctx context.Context, deviceID string, now time.Time) (Status, error) {
	device, err := r.src.GetDevice(ctx, deviceID)
	if errors.Is(err, db.ErrNotFound) {
		return Status{}, ErrDeviceNotFound
	}
	if err != nil {
		return Status{}, fmt.Errorf("load device: %w", err)
	}
	if !device.IsActive {
		return Status{}, ErrDeviceInactive
	}

	entries, err := r.src.ListDeviceEntries(ctx, deviceID)
	if err != nil {
		return Status{}, fmt.Errorf("load device entries: %w", err)
	}

	active, err := r.src.ListActiveNotices(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("load notices: %w", err)
	}
	notices := make([]string, len(active))
	for i, n := range active {
		notices[i] = n.Message
	}

	from, to := WeekRange(now)
	rows, err := r.src.ListSchedulesBetween(ctx, from, to)
	if err != nil {
		return Status{}, fmt.Errorf("load schedules: %w", err)
	}
	schedules := make([]ScheduleEntry, len(rows))
	for i, s := range rows {
		schedules[i] = ScheduleEntry{ID: s.ID, Date: s.Date, Content: s.Content}
	}

	ratio := device.SplitRatio
	if ratio <= 0 {
		ratio = model.DefaultSplitRatio
	}

	st := Status{
		Device: DeviceInfo{
			Name:       device.Name,
			LayoutMode: device.LayoutMode,
			SplitRatio: ratio,
		},
		Contents:  Eligible(entries, now),
		Notices:   notices,
		Schedules: schedules,
	}
	st.Version = StatusVersion(st)

	log.Debug().
		Str("device_id", deviceID).
		Int("entries", len(entries)).
		Int("eligible", len(st.Contents)).
		Msg("[signage] resolved device status")
	return st, nil
}

// Eligible keeps the entries that may be shown at now, in their original
// order.
func Eligible(entries []model.DeviceEntry, now time.Time) []Item {
	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		if !e.EligibleAt(now) {
			continue
		}
		out = append(out, itemFromEntry(e))
	}
	return out
}

// Partition splits items by zone, preserving relative order. Items without a
// zone belong to MAIN.
func Partition(items []Item) (main, sub []Item) {
	main, sub = []Item{}, []Item{}
	for _, it := range items {
		if it.Zone == model.ZoneSub {
			sub = append(sub, it)
			continue
		}
		main = append(main, it)
	}
	return main, sub
}

// WeekRange returns the Sunday-to-Saturday week containing now, in now's
// location, as inclusive bounds.
func WeekRange(now time.Time) (from, to time.Time) {
	y, m, d := now.Date()
	from = time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	to = from.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return from, to
}
