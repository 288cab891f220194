package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

type fetchResult struct {
	st      signage.Status
	changed bool
	err     error
}

// scriptedFetcher replays results in order, repeating the last one.
type scriptedFetcher struct {
	mu       sync.Mutex
	results  []fetchResult
	calls    int
	versions []string
}

func (f *scriptedFetcher) Fetch(_ context.Context, version string) (signage.Status, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.results[min(f.calls, len(f.results)-1)]
	f.calls++
	f.versions = append(f.versions, version)
	return r.st, r.changed, r.err
}

func status(mode model.LayoutMode, items ...signage.Item) signage.Status {
	st := signage.Status{
		Device:   signage.DeviceInfo{Name: "Lobby", LayoutMode: mode, SplitRatio: 50},
		Contents: items,
		Notices:  []string{},
	}
	st.Version = signage.StatusVersion(st)
	return st
}

type harness struct {
	clock  *manualClock
	frames chan Frame
	cancel context.CancelFunc
	done   chan error
}

func start(t *testing.T, f Fetcher, poll time.Duration) *harness {
	t.Helper()
	return startWith(t, f, Config{PollInterval: poll})
}

func startWith(t *testing.T, f Fetcher, cfg Config) *harness {
	t.Helper()
	h := &harness{
		clock:  newManualClock(t0),
		frames: make(chan Frame, 32),
		done:   make(chan error, 1),
	}
	cfg.Clock = h.clock
	p := New(f, SinkFunc(func(fr Frame) { h.frames <- fr }), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- p.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case <-h.done:
		case <-time.After(2 * time.Second):
			t.Error("player did not stop")
		}
	})
	return h
}

func (h *harness) next(t *testing.T) Frame {
	t.Helper()
	select {
	case fr := <-h.frames:
		return fr
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return Frame{}
	}
}

func (h *harness) quiet(t *testing.T) {
	t.Helper()
	select {
	case fr := <-h.frames:
		t.Fatalf("unexpected frame: %+v", fr)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPlayerFullDeviceCyclesEligibleItems(t *testing.T) {
	a := item("a", 10)
	b := item("b", 20)
	f := &scriptedFetcher{results: []fetchResult{{st: status(model.LayoutFull, a, b), changed: true}}}
	h := start(t, f, time.Hour)

	fr := h.next(t)
	require.True(t, fr.Connected)
	require.NotNil(t, fr.Main)
	assert.Equal(t, "a", fr.Main.ContentID)
	assert.Equal(t, TreatmentImage, fr.Main.Treatment)
	assert.Equal(t, 2, fr.Main.Count)
	assert.Nil(t, fr.Sub)
	assert.Nil(t, fr.Widget)
	assert.Empty(t, fr.Ticker)

	h.clock.Advance(10 * time.Second)
	assert.Equal(t, "b", h.next(t).Main.ContentID)

	h.clock.Advance(20 * time.Second)
	assert.Equal(t, "a", h.next(t).Main.ContentID)

	h.clock.Advance(10 * time.Second)
	assert.Equal(t, "b", h.next(t).Main.ContentID)
}

func TestPlayerUnchangedPollKeepsTimer(t *testing.T) {
	st := status(model.LayoutFull, item("A", 5), item("B", 3))
	f := &scriptedFetcher{results: []fetchResult{
		{st: st, changed: true},
		{changed: false},
	}}
	h := start(t, f, 3*time.Second)

	assert.Equal(t, "A", h.next(t).Main.ContentID)

	h.clock.Advance(3 * time.Second)
	h.quiet(t)

	h.clock.Advance(2 * time.Second)
	assert.Equal(t, "B", h.next(t).Main.ContentID)

	f.mu.Lock()
	defer f.mu.Unlock()
	require.GreaterOrEqual(t, len(f.versions), 2)
	assert.Equal(t, "", f.versions[0])
	assert.Equal(t, st.Version, f.versions[1])
}

func TestPlayerShowsConnectionLostAndRecovers(t *testing.T) {
	st := status(model.LayoutSplit, item("A", 5))
	st.Contents = append(st.Contents, signage.Item{ID: "S", Type: model.ContentText, Title: "Hi", Body: "Welcome", Zone: model.ZoneSub, Duration: 5})
	st.Notices = []string{"Fire drill at 2pm"}
	st.Version = signage.StatusVersion(st)

	f := &scriptedFetcher{results: []fetchResult{
		{err: errors.New("dial tcp: connection refused")},
		{st: st, changed: true},
	}}
	h := start(t, f, 5*time.Second)

	fr := h.next(t)
	assert.False(t, fr.Connected)
	assert.Equal(t, ConnectionLostMessage, fr.Message)
	assert.Nil(t, fr.Main)

	h.clock.Advance(5 * time.Second)
	fr = h.next(t)
	require.True(t, fr.Connected)
	require.NotNil(t, fr.Sub)
	assert.Equal(t, TreatmentText, fr.Sub.Treatment)
	assert.Equal(t, "Welcome", fr.Sub.Body)
	assert.Equal(t, "A", fr.Main.ContentID)
	require.NotNil(t, fr.Widget)
	assert.Equal(t, NoSchedulesMessage, fr.Widget.Message)
	assert.Equal(t, "Fire drill at 2pm", fr.Ticker)
}

func TestPlayerRotatesWeekSchedules(t *testing.T) {
	st := status(model.LayoutSplitH)
	st.Schedules = []signage.ScheduleEntry{
		{ID: "s1", Date: t0, Content: "Assembly"},
		{ID: "s2", Date: t0.Add(24 * time.Hour), Content: "Parents evening"},
	}
	st.Version = signage.StatusVersion(st)
	f := &scriptedFetcher{results: []fetchResult{{st: st, changed: true}}}
	h := start(t, f, time.Hour)

	fr := h.next(t)
	require.NotNil(t, fr.Widget)
	require.NotNil(t, fr.Widget.Schedule)
	assert.Equal(t, "Assembly", fr.Widget.Schedule.Content)
	assert.Equal(t, TreatmentBlank, fr.Main.Treatment)

	h.clock.Advance(DefaultWidgetInterval)
	assert.Equal(t, "Parents evening", h.next(t).Widget.Schedule.Content)

	h.clock.Advance(DefaultWidgetInterval)
	assert.Equal(t, "Assembly", h.next(t).Widget.Schedule.Content)
}

func TestPlayerStopsTimersOnTeardown(t *testing.T) {
	st := status(model.LayoutFull, item("A", 5), item("B", 3))
	f := &scriptedFetcher{results: []fetchResult{{st: st, changed: true}}}
	h := start(t, f, time.Hour)
	h.next(t)

	h.cancel()
	select {
	case err := <-h.done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("player did not stop")
	}
	assert.Equal(t, 0, h.clock.Active())
	h.done <- nil
}

type weatherResult struct {
	w   Weather
	err error
}

// scriptedWeather replays readings in order, repeating the last one.
type scriptedWeather struct {
	mu      sync.Mutex
	results []weatherResult
	calls   int
}

func (s *scriptedWeather) Current(context.Context) (Weather, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.results[min(s.calls, len(s.results)-1)]
	s.calls++
	return r.w, r.err
}

func TestPlayerInfoPanelShowsClockAndWeather(t *testing.T) {
	st := status(model.LayoutSplit, item("A", 3600))
	f := &scriptedFetcher{results: []fetchResult{{st: st, changed: true}}}
	mild := Weather{Temperature: 12.5, Code: 2, Condition: ConditionCloudy, ObservedAt: "2025-03-05T09:00"}
	wet := Weather{Temperature: 9, Code: 61, Condition: ConditionRain, ObservedAt: "2025-03-05T09:00"}
	src := &scriptedWeather{results: []weatherResult{{w: mild}, {w: wet}}}
	h := startWith(t, f, Config{
		PollInterval:    time.Hour,
		Weather:         src,
		WeatherInterval: 30 * time.Second,
		Location:        "Springfield",
	})

	fr := h.next(t)
	require.NotNil(t, fr.Info)
	assert.Equal(t, fr.Geometry.Sub, fr.Info.Rect)
	assert.Equal(t, t0, fr.Info.Time)
	assert.Equal(t, "Springfield", fr.Info.Location)
	require.NotNil(t, fr.Info.Weather)
	assert.Equal(t, mild, *fr.Info.Weather)

	h.clock.Advance(30 * time.Second)
	fr = h.next(t)
	require.NotNil(t, fr.Info.Weather)
	assert.Equal(t, wet, *fr.Info.Weather)

	// Same reading again: only the minute tick redraws.
	h.clock.Advance(30 * time.Second)
	fr = h.next(t)
	assert.Equal(t, t0.Add(time.Minute), fr.Info.Time)
	assert.Equal(t, wet, *fr.Info.Weather)
	h.quiet(t)
}

func TestPlayerInfoPanelKeepsLastReadingOnFailure(t *testing.T) {
	st := status(model.LayoutSplitH, item("A", 3600))
	f := &scriptedFetcher{results: []fetchResult{{st: st, changed: true}}}
	sunny := Weather{Temperature: 20, Code: 0, Condition: ConditionClear}
	src := &scriptedWeather{results: []weatherResult{
		{err: errors.New("unexpected status code: 503")},
		{w: sunny},
		{err: errors.New("network error: timeout")},
	}}
	h := startWith(t, f, Config{PollInterval: time.Hour, Weather: src, WeatherInterval: 20 * time.Second})

	fr := h.next(t)
	require.NotNil(t, fr.Info)
	assert.Nil(t, fr.Info.Weather)

	h.clock.Advance(20 * time.Second)
	fr = h.next(t)
	require.NotNil(t, fr.Info.Weather)
	assert.Equal(t, sunny, *fr.Info.Weather)

	h.clock.Advance(20 * time.Second)
	h.quiet(t)

	h.clock.Advance(20 * time.Second)
	fr = h.next(t)
	assert.Equal(t, t0.Add(time.Minute), fr.Info.Time)
	require.NotNil(t, fr.Info.Weather)
	assert.Equal(t, sunny, *fr.Info.Weather)
}

func TestPlayerInfoPanelOnlyInSplitLayouts(t *testing.T) {
	st := status(model.LayoutFull, item("A", 3600))
	f := &scriptedFetcher{results: []fetchResult{{st: st, changed: true}}}
	src := &scriptedWeather{results: []weatherResult{{w: Weather{Temperature: 5, Condition: ConditionClear}}}}
	h := startWith(t, f, Config{PollInterval: time.Hour, Weather: src, WeatherInterval: 30 * time.Minute})

	fr := h.next(t)
	assert.Nil(t, fr.Info)

	// No clock on screen, so the minute boundary passes silently.
	h.clock.Advance(time.Minute)
	h.quiet(t)
}
