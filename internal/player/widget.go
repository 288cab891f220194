package player

import (
	"time"

	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

// DefaultWidgetInterval is how long each schedule entry stays in the top
// widget when the week has more than one.
const DefaultWidgetInterval = 5 * time.Second

// scheduleWidget cycles the week's schedule entries on a fixed interval.
type scheduleWidget struct {
	clock    Clock
	interval time.Duration
	entries  []signage.ScheduleEntry
	index    int
	timer    Timer
}

func (w *scheduleWidget) C() <-chan time.Time {
	if w.timer == nil {
		return nil
	}
	return w.timer.C()
}

// Update replaces the entries. The timer is re-armed only when the number of
// entries changes; an edit that keeps the count, such as renaming an entry,
// swaps the text in place and keeps the current cycle position and timing.
func (w *scheduleWidget) Update(entries []signage.ScheduleEntry) {
	resize := len(entries) != len(w.entries)
	w.entries = entries
	if w.index >= len(entries) {
		w.index = 0
	}
	if resize {
		w.arm()
	}
}

func (w *scheduleWidget) Fire() {
	if len(w.entries) > 0 {
		w.index = (w.index + 1) % len(w.entries)
	}
	w.arm()
}

func (w *scheduleWidget) Current() (signage.ScheduleEntry, bool) {
	if len(w.entries) == 0 {
		return signage.ScheduleEntry{}, false
	}
	return w.entries[w.index], true
}

func (w *scheduleWidget) Stop() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *scheduleWidget) arm() {
	w.Stop()
	if len(w.entries) <= 1 {
		return
	}
	w.timer = w.clock.NewTimer(w.interval)
}
