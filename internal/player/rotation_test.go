package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

var t0 = time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC)

func item(id string, secs int) signage.Item {
	return signage.Item{
		ID:       id,
		Title:    id,
		Type:     model.ContentImage,
		URL:      "/uploads/" + id + ".png",
		Duration: secs,
		IsActive: true,
		Zone:     model.ZoneMain,
	}
}

func currentID(t *testing.T, r Rotation) string {
	t.Helper()
	cur, ok := r.Current()
	require.True(t, ok, "rotation is empty")
	return cur.ID
}

func TestRotationStartsEmpty(t *testing.T) {
	var r Rotation
	_, ok := r.Current()
	assert.False(t, ok)

	r, rearm := r.Update(nil, t0)
	assert.False(t, rearm)
	_, ok = r.Current()
	assert.False(t, ok)

	r, advanced := r.Tick(t0.Add(time.Hour))
	assert.False(t, advanced)
}

func TestRotationCyclesByDuration(t *testing.T) {
	r, rearm := Rotation{}.Update([]signage.Item{item("A", 5), item("B", 3)}, t0)
	require.True(t, rearm)
	assert.Equal(t, "A", currentID(t, r))
	assert.Equal(t, t0.Add(5*time.Second), r.Deadline())

	r, advanced := r.Tick(t0.Add(4 * time.Second))
	assert.False(t, advanced)
	assert.Equal(t, "A", currentID(t, r))

	r, advanced = r.Tick(t0.Add(5 * time.Second))
	assert.True(t, advanced)
	assert.Equal(t, "B", currentID(t, r))
	assert.Equal(t, t0.Add(8*time.Second), r.Deadline())

	r, advanced = r.Tick(t0.Add(8 * time.Second))
	assert.True(t, advanced)
	assert.Equal(t, "A", currentID(t, r))
	assert.Equal(t, 0, r.Index())
}

func TestRotationIdenticalUpdateKeepsElapsedTime(t *testing.T) {
	r, _ := Rotation{}.Update([]signage.Item{item("A", 5), item("B", 3)}, t0)

	// A fresh copy of the same sequence, as a poll would decode it.
	r, rearm := r.Update([]signage.Item{item("A", 5), item("B", 3)}, t0.Add(3*time.Second))
	assert.False(t, rearm)
	assert.Equal(t, t0.Add(5*time.Second), r.Deadline())

	r, advanced := r.Tick(t0.Add(5 * time.Second))
	assert.True(t, advanced)
	assert.Equal(t, "B", currentID(t, r))
}

func TestRotationResetsIndexWhenOutOfRange(t *testing.T) {
	r, _ := Rotation{}.Update([]signage.Item{item("A", 1), item("B", 1), item("C", 1)}, t0)
	r, _ = r.Tick(t0.Add(1 * time.Second))
	r, _ = r.Tick(t0.Add(2 * time.Second))
	require.Equal(t, "C", currentID(t, r))

	r, rearm := r.Update([]signage.Item{item("A", 4), item("B", 1)}, t0.Add(2500*time.Millisecond))
	assert.True(t, rearm)
	assert.Equal(t, 0, r.Index())
	assert.Equal(t, "A", currentID(t, r))
	assert.Equal(t, t0.Add(6500*time.Millisecond), r.Deadline())
}

func TestRotationRearmsOnlyWhenShowingItemChanges(t *testing.T) {
	r, _ := Rotation{}.Update([]signage.Item{item("A", 5), item("B", 3)}, t0)
	r, _ = r.Tick(t0.Add(5 * time.Second))
	require.Equal(t, "B", currentID(t, r))
	deadline := r.Deadline()

	// Another position changes, B stays at index 1.
	r, rearm := r.Update([]signage.Item{item("X", 9), item("B", 3)}, t0.Add(6*time.Second))
	assert.False(t, rearm)
	assert.Equal(t, "B", currentID(t, r))
	assert.Equal(t, deadline, r.Deadline())

	// The showing item is edited in place.
	edited := item("B", 30)
	edited.Title = "B v2"
	r, rearm = r.Update([]signage.Item{item("X", 9), edited}, t0.Add(7*time.Second))
	assert.False(t, rearm)
	assert.Equal(t, deadline, r.Deadline())
	cur, _ := r.Current()
	assert.Equal(t, "B v2", cur.Title)

	// Index 1 now holds a different item.
	r, rearm = r.Update([]signage.Item{item("B", 3), item("Y", 2)}, t0.Add(7*time.Second))
	assert.True(t, rearm)
	assert.Equal(t, "Y", currentID(t, r))
	assert.Equal(t, t0.Add(9*time.Second), r.Deadline())
}

func TestRotationClearingEmptiesZone(t *testing.T) {
	r, _ := Rotation{}.Update([]signage.Item{item("A", 5)}, t0)
	r, rearm := r.Update([]signage.Item{}, t0.Add(time.Second))
	assert.True(t, rearm)
	_, ok := r.Current()
	assert.False(t, ok)
	assert.True(t, r.Deadline().IsZero())
}

func TestRotationDefaultsDuration(t *testing.T) {
	r, _ := Rotation{}.Update([]signage.Item{item("A", 0)}, t0)
	assert.Equal(t, t0.Add(10*time.Second), r.Deadline())
}

func TestRotationLateTickDoesNotDrift(t *testing.T) {
	r, _ := Rotation{}.Update([]signage.Item{item("A", 5), item("B", 3)}, t0)

	r, _ = r.Tick(t0.Add(5*time.Second + 200*time.Millisecond))
	assert.Equal(t, t0.Add(8*time.Second), r.Deadline())

	// A whole item behind: restart from now.
	r, _ = r.Tick(t0.Add(time.Minute))
	assert.Equal(t, "A", currentID(t, r))
	assert.Equal(t, t0.Add(time.Minute+5*time.Second), r.Deadline())
}
