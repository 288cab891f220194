// Package signage resolves what a device should be showing and describes how
// it is laid out on screen.
package signage

import (
	"time"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

// DeviceInfo is the slice of a device the player needs to lay itself out.
type DeviceInfo struct {
	Name       string           `json:"name"`
	LayoutMode model.LayoutMode `json:"layoutMode"`
	SplitRatio int              `json:"splitRatio"`
}

// Item is one eligible content item tagged with the zone and order it was
// placed at in its playlist.
type Item struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Type         model.ContentType `json:"type"`
	URL          string            `json:"url"`
	Thumbnail    string            `json:"thumbnail"`
	Body         string            `json:"body"`
	Duration     int               `json:"duration"`
	IsActive     bool              `json:"isActive"`
	StartDate    *time.Time        `json:"startDate,omitempty"`
	EndDate      *time.Time        `json:"endDate,omitempty"`
	Zone         model.Zone        `json:"zone"`
	DisplayOrder int               `json:"displayOrder"`
}

func itemFromEntry(e model.DeviceEntry) Item {
	return Item{
		ID:           e.ID,
		Title:        e.Title,
		Type:         e.Type,
		URL:          e.URL,
		Thumbnail:    e.Thumbnail,
		Body:         e.Body,
		Duration:     e.Duration,
		IsActive:     e.IsActive,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Zone:         e.Zone,
		DisplayOrder: e.DisplayOrder,
	}
}

// Media narrows the item to the variant its type describes.
func (i Item) Media() (model.Media, error) {
	return model.NewMedia(i.Type, i.Title, i.URL, i.Thumbnail, i.Body)
}

// ShowFor is how long the item stays on screen. Non-positive durations fall
// back to model.DefaultDuration seconds.
func (i Item) ShowFor() time.Duration {
	secs := i.Duration
	if secs <= 0 {
		secs = model.DefaultDuration
	}
	return time.Duration(secs) * time.Second
}

type ScheduleEntry struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
}

// Status is the body of GET /signage-status/:deviceId.
type Status struct {
	Device    DeviceInfo      `json:"device"`
	Contents  []Item          `json:"contents"`
	Notices   []string        `json:"notices"`
	Schedules []ScheduleEntry `json:"schedules"`
	Version   string          `json:"version"`
}
