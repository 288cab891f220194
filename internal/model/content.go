package model

import "time"

type ContentType string

const (
	ContentImage ContentType = "IMAGE"
	ContentVideo ContentType = "VIDEO"
	ContentText  ContentType = "TEXT"
)

// DefaultDuration is the display time in seconds used when a content item
// carries no positive duration.
const DefaultDuration = 10

func (t ContentType) Valid() bool {
	switch t {
	case ContentImage, ContentVideo, ContentText:
		return true
	}
	return false
}

type Content struct {
	ID        string      `db:"id"          json:"id"`
	Title     string      `db:"title"       json:"title"`
	Type      ContentType `db:"type"        json:"type"`
	URL       string      `db:"url"         json:"url"`
	Thumbnail string      `db:"thumbnail"   json:"thumbnail"`
	Body      string      `db:"body"        json:"body"`
	Duration  int         `db:"duration"    json:"duration"`
	IsActive  bool        `db:"is_active"   json:"isActive"`
	StartDate *time.Time  `db:"start_date"  json:"startDate,omitempty"`
	EndDate   *time.Time  `db:"end_date"    json:"endDate,omitempty"`
	CreatedAt time.Time   `db:"created_at"  json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at"  json:"updatedAt"`
}

// EligibleAt reports whether the content may be shown at now. Both window
// bounds are inclusive.
func (c Content) EligibleAt(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartDate != nil && c.StartDate.After(now) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(now) {
		return false
	}
	return true
}

func (c Content) Media() (Media, error) {
	return NewMedia(c.Type, c.Title, c.URL, c.Thumbnail, c.Body)
}
