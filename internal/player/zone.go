package player

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

// Zone owns a Rotation and the timer that drives it. It is not safe for
// concurrent use; the player's event loop is its only caller.
type Zone struct {
	name  model.Zone
	clock Clock
	rot   Rotation
	timer Timer
}

func NewZone(name model.Zone, clock Clock) *Zone {
	return &Zone{name: name, clock: clock}
}

// C fires when the showing item's time is up. It is nil, and so never
// ready, while the zone is empty.
func (z *Zone) C() <-chan time.Time {
	if z.timer == nil {
		return nil
	}
	return z.timer.C()
}

func (z *Zone) Current() (signage.Item, bool) { return z.rot.Current() }
func (z *Zone) Rotation() Rotation            { return z.rot }

// Update hands the zone a freshly polled sequence and reports whether what
// it shows has changed.
func (z *Zone) Update(items []signage.Item) bool {
	before := z.shown()
	next, rearm := z.rot.Update(items, z.clock.Now())
	z.rot = next
	if rearm {
		z.arm()
	}
	return z.shown() != before
}

// Fire advances the rotation after C has delivered. It reports whether the
// zone now shows something else; a single-item zone just restarts its item.
func (z *Zone) Fire() bool {
	before := z.shown()
	next, advanced := z.rot.Tick(z.clock.Now())
	z.rot = next
	z.arm()
	if advanced {
		cur, _ := z.rot.Current()
		log.Debug().
			Str("zone", string(z.name)).
			Str("content_id", cur.ID).
			Int("index", z.rot.Index()).
			Msg("[player] rotate")
	}
	return advanced && z.shown() != before
}

// Stop cancels the outstanding timer. The zone forgets its sequence so a
// later Update starts from the first item.
func (z *Zone) Stop() {
	if z.timer != nil {
		z.timer.Stop()
		z.timer = nil
	}
	z.rot = Rotation{}
}

func (z *Zone) arm() {
	if z.timer != nil {
		z.timer.Stop()
		z.timer = nil
	}
	if _, ok := z.rot.Current(); !ok {
		return
	}
	z.timer = z.clock.NewTimer(z.rot.Deadline().Sub(z.clock.Now()))
}

// shown fingerprints the visible item, "" when empty.
func (z *Zone) shown() string {
	cur, ok := z.rot.Current()
	if !ok {
		return ""
	}
	return signage.SequenceVersion([]signage.Item{cur})
}
