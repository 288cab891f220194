// Package player drives a signage screen: it polls the device status, keeps
// each zone rotating through its content and emits frames describing what
// the screen shows.
package player

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

const DefaultPollInterval = 5 * time.Second

type Config struct {
	PollInterval   time.Duration
	WidgetInterval time.Duration
	Clock          Clock

	// Weather feeds the info panel; nil leaves the panel without a reading.
	Weather         WeatherSource
	WeatherInterval time.Duration
	// Location labels the info panel, e.g. the town the weather is for.
	Location string
}

type Player struct {
	fetcher Fetcher
	sink    Sink
	clock   Clock
	poll    time.Duration

	main   *Zone
	sub    *Zone
	widget *scheduleWidget

	weather      WeatherSource
	weatherEvery time.Duration
	weatherTimer Timer
	reading      *Weather
	location     string
	minuteTimer  Timer

	status    signage.Status
	loaded    bool
	connected bool
}

func New(fetcher Fetcher, sink Sink, cfg Config) *Player {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.WidgetInterval <= 0 {
		cfg.WidgetInterval = DefaultWidgetInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.WeatherInterval <= 0 {
		cfg.WeatherInterval = DefaultWeatherInterval
	}
	return &Player{
		fetcher: fetcher,
		sink:    sink,
		clock:   cfg.Clock,
		poll:    cfg.PollInterval,
		main:    NewZone(model.ZoneMain, cfg.Clock),
		sub:     NewZone(model.ZoneSub, cfg.Clock),
		widget:  &scheduleWidget{clock: cfg.Clock, interval: cfg.WidgetInterval},

		weather:      cfg.Weather,
		weatherEvery: cfg.WeatherInterval,
		location:     cfg.Location,
	}
}

// Run polls immediately and then every poll interval until ctx is done.
// Failed polls never stop the loop; the next tick retries.
func (p *Player) Run(ctx context.Context) error {
	defer p.stop()

	p.refresh(ctx)
	pollTimer := p.clock.NewTimer(p.poll)
	defer func() { pollTimer.Stop() }()
	if p.weather != nil {
		p.refreshWeather(ctx)
		p.weatherTimer = p.clock.NewTimer(p.weatherEvery)
	}
	p.armMinute()
	p.emit()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("[player] loop stopped")
			return nil

		case <-pollTimer.C():
			changed := p.refresh(ctx)
			pollTimer = p.clock.NewTimer(p.poll)
			p.armMinute()
			if changed {
				p.emit()
			}

		case <-timerC(p.weatherTimer):
			changed := p.refreshWeather(ctx)
			p.weatherTimer = p.clock.NewTimer(p.weatherEvery)
			if changed && p.showsInfo() {
				p.emit()
			}

		case <-timerC(p.minuteTimer):
			p.armMinute()
			if p.showsInfo() {
				p.emit()
			}

		case <-p.main.C():
			if p.main.Fire() && p.connected {
				p.emit()
			}

		case <-p.sub.C():
			if p.sub.Fire() && p.connected {
				p.emit()
			}

		case <-p.widget.C():
			p.widget.Fire()
			if p.connected {
				p.emit()
			}
		}
	}
}

// refresh fetches the status and applies it, reporting whether the frame
// needs to be re-emitted.
func (p *Player) refresh(ctx context.Context) bool {
	version := ""
	if p.loaded {
		version = p.status.Version
	}

	st, changed, err := p.fetcher.Fetch(ctx, version)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		log.Warn().Err(err).Msg("[player] poll failed")
		was := p.connected || !p.loaded
		p.connected = false
		return was
	}

	reconnected := !p.connected
	p.connected = true
	if !changed || (p.loaded && st.Version != "" && st.Version == p.status.Version) {
		return reconnected
	}

	p.apply(st)
	return true
}

// refreshWeather fetches a new reading, keeping the last one on failure. It
// reports whether the reading changed.
func (p *Player) refreshWeather(ctx context.Context) bool {
	w, err := p.weather.Current(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Msg("[player] weather fetch failed")
		}
		return false
	}
	if p.reading != nil && *p.reading == w {
		return false
	}
	p.reading = &w
	log.Debug().
		Float64("temperature", w.Temperature).
		Str("condition", string(w.Condition)).
		Msg("[player] weather updated")
	return true
}

// showsInfo reports whether the current frame carries the info panel.
func (p *Player) showsInfo() bool {
	if !p.connected || !p.loaded {
		return false
	}
	return signage.Layout(p.status.Device.LayoutMode, p.status.Device.SplitRatio).HasSub
}

// armMinute schedules a redraw at the next minute boundary while the info
// panel's clock is on screen.
func (p *Player) armMinute() {
	if p.minuteTimer != nil {
		p.minuteTimer.Stop()
		p.minuteTimer = nil
	}
	if !p.showsInfo() {
		return
	}
	now := p.clock.Now()
	next := now.Truncate(time.Minute).Add(time.Minute)
	p.minuteTimer = p.clock.NewTimer(next.Sub(now))
}

func timerC(t Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C()
}

func (p *Player) apply(st signage.Status) {
	main, sub := signage.Partition(st.Contents)
	geo := signage.Layout(st.Device.LayoutMode, st.Device.SplitRatio)
	if !geo.HasSub {
		sub = nil
	}
	p.main.Update(main)
	p.sub.Update(sub)

	if geo.HasWidget {
		p.widget.Update(st.Schedules)
	} else {
		p.widget.Update(nil)
	}

	p.status = st
	p.loaded = true
	log.Info().
		Str("version", st.Version).
		Str("layout", string(st.Device.LayoutMode)).
		Int("main", len(main)).
		Int("sub", len(sub)).
		Msg("[player] status applied")
}

// Frame describes the screen as of now.
func (p *Player) Frame() Frame {
	f := Frame{At: p.clock.Now(), Connected: p.connected}
	switch {
	case !p.connected:
		f.Message = ConnectionLostMessage
		return f
	case !p.loaded:
		f.Message = LoadingMessage
		return f
	}

	st := p.status
	f.Device = st.Device
	f.Geometry = signage.Layout(st.Device.LayoutMode, st.Device.SplitRatio)
	f.Main = panel(model.ZoneMain, f.Geometry.Main, p.main)
	if f.Geometry.HasSub {
		f.Sub = panel(model.ZoneSub, f.Geometry.Sub, p.sub)
	}
	if f.Geometry.HasWidget {
		w := &WidgetPanel{Rect: f.Geometry.Widget, Message: NoSchedulesMessage}
		if e, ok := p.widget.Current(); ok {
			w.Schedule = &e
			w.Message = ""
		}
		f.Widget = w
	}
	if f.Geometry.HasSub {
		info := &InfoPanel{Rect: f.Geometry.Sub, Time: f.At, Location: p.location}
		if p.reading != nil {
			w := *p.reading
			info.Weather = &w
		}
		f.Info = info
	}
	if line, ok := signage.Ticker(st.Notices); ok {
		f.Ticker = line
	}
	return f
}

func (p *Player) emit() {
	p.sink.Show(p.Frame())
}

func (p *Player) stop() {
	p.main.Stop()
	p.sub.Stop()
	p.widget.Stop()
	for _, t := range []Timer{p.weatherTimer, p.minuteTimer} {
		if t != nil {
			t.Stop()
		}
	}
	p.weatherTimer, p.minuteTimer = nil, nil
}
