package player

import (
	"time"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
	"github.com/Nixie-Tech-LLC/signage/internal/signage"
)

const (
	LoadingMessage        = "Loading System..."
	ConnectionLostMessage = "Connection Lost - Retrying..."
	NoSchedulesMessage    = "No schedules this week"
)

// Treatment is how a panel presents its item.
type Treatment string

const (
	TreatmentBlank Treatment = "blank"
	TreatmentImage Treatment = "image"
	TreatmentVideo Treatment = "video"
	TreatmentText  Treatment = "text"
)

// Panel is one zone's region of the screen and what it currently shows.
type Panel struct {
	Zone      model.Zone   `json:"zone"`
	Rect      signage.Rect `json:"rect"`
	Treatment Treatment    `json:"treatment"`
	ContentID string       `json:"contentId,omitempty"`
	Title     string       `json:"title,omitempty"`
	URL       string       `json:"url,omitempty"`
	Poster    string       `json:"poster,omitempty"`
	Body      string       `json:"body,omitempty"`
	Loop      bool         `json:"loop,omitempty"`
	Muted     bool         `json:"muted,omitempty"`
	Index     int          `json:"index"`
	Count     int          `json:"count"`
}

type WidgetPanel struct {
	Rect     signage.Rect           `json:"rect"`
	Schedule *signage.ScheduleEntry `json:"schedule,omitempty"`
	Message  string                 `json:"message,omitempty"`
}

// InfoPanel overlays the top of the sub zone in split layouts with the
// local time and the last weather reading. Weather is nil until a reading
// has succeeded.
type InfoPanel struct {
	Rect     signage.Rect `json:"rect"`
	Time     time.Time    `json:"time"`
	Location string       `json:"location,omitempty"`
	Weather  *Weather     `json:"weather,omitempty"`
}

// Frame is a complete description of the screen at a moment.
type Frame struct {
	At        time.Time          `json:"at"`
	Connected bool               `json:"connected"`
	Message   string             `json:"message,omitempty"`
	Device    signage.DeviceInfo `json:"device"`
	Geometry  signage.Geometry   `json:"geometry"`
	Main      *Panel             `json:"main,omitempty"`
	Sub       *Panel             `json:"sub,omitempty"`
	Widget    *WidgetPanel       `json:"widget,omitempty"`
	Info      *InfoPanel         `json:"info,omitempty"`
	Ticker    string             `json:"ticker,omitempty"`
}

// Sink receives every frame the player produces.
type Sink interface {
	Show(Frame)
}

type SinkFunc func(Frame)

func (f SinkFunc) Show(fr Frame) { f(fr) }

func panel(zone model.Zone, rect signage.Rect, z *Zone) *Panel {
	p := &Panel{Zone: zone, Rect: rect, Treatment: TreatmentBlank, Count: z.Rotation().Len()}
	item, ok := z.Current()
	if !ok {
		return p
	}
	p.ContentID = item.ID
	p.Title = item.Title
	p.Index = z.Rotation().Index()

	m, err := item.Media()
	if err != nil {
		return p
	}
	switch m := m.(type) {
	case model.Image:
		p.Treatment = TreatmentImage
		p.URL = m.URL
	case model.Video:
		p.Treatment = TreatmentVideo
		p.URL = m.URL
		p.Poster = m.Thumbnail
		p.Loop = true
		p.Muted = true
	case model.Text:
		p.Treatment = TreatmentText
		p.Title = m.Title
		p.Body = m.Body
	}
	return p
}
