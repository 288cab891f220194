package player

import (
	"time"

	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

// Rotation is the state of one zone's cyclic playback: the sequence, which
// item is showing and when it is due to be replaced. It is a value; Update
// and Tick return the next state and leave the receiver untouched.
type Rotation struct {
	items    []signage.Item
	index    int
	deadline time.Time
	version  string
}

func (r Rotation) Current() (signage.Item, bool) {
	if len(r.items) == 0 {
		return signage.Item{}, false
	}
	return r.items[r.index], true
}

func (r Rotation) Index() int          { return r.index }
func (r Rotation) Len() int            { return len(r.items) }
func (r Rotation) Deadline() time.Time { return r.deadline }
func (r Rotation) Version() string     { return r.version }

// Update installs a new sequence. An identical sequence is ignored so the
// in-flight item keeps its elapsed time. Otherwise the index is kept when
// still in range and reset to 0 when not. rearm reports that the showing
// item changed identity and the deadline was restarted.
func (r Rotation) Update(items []signage.Item, now time.Time) (next Rotation, rearm bool) {
	version := signage.SequenceVersion(items)
	if version == r.version {
		return r, false
	}

	prev, had := r.Current()

	next = Rotation{
		items:    items,
		index:    r.index,
		deadline: r.deadline,
		version:  version,
	}
	if next.index >= len(items) {
		next.index = 0
	}

	cur, has := next.Current()
	switch {
	case !has:
		next.deadline = time.Time{}
		return next, had
	case !had || cur.ID != prev.ID:
		next.deadline = now.Add(cur.ShowFor())
		return next, true
	}
	return next, false
}

// Tick advances to the following item, wrapping at the end, once the
// deadline has been reached. The next deadline counts from the previous one
// so late timers do not drift the cycle, unless the player fell a whole item
// behind.
func (r Rotation) Tick(now time.Time) (next Rotation, advanced bool) {
	if len(r.items) == 0 || now.Before(r.deadline) {
		return r, false
	}
	next = r
	next.index = (r.index + 1) % len(r.items)

	start := r.deadline
	show := next.items[next.index].ShowFor()
	if !start.Add(show).After(now) {
		start = now
	}
	next.deadline = start.Add(show)
	return next, true
}
