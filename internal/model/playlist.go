package model

import "time"

type Zone string

const (
	ZoneMain Zone = "MAIN"
	ZoneSub  Zone = "SUB"
)

func (z Zone) Valid() bool {
	return z == ZoneMain || z == ZoneSub
}

type Playlist struct {
	ID          string            `db:"id"           json:"id"`
	Name        string            `db:"name"         json:"name"`
	Description string            `db:"description"  json:"description"`
	CreatedAt   time.Time         `db:"created_at"   json:"createdAt"`
	UpdatedAt   time.Time         `db:"updated_at"   json:"updatedAt"`
	Items       []PlaylistContent `db:"-"            json:"items,omitempty"`
}

// PlaylistContent places a content item in a playlist at a zone and order.
type PlaylistContent struct {
	ID           string    `db:"id"             json:"id"`
	PlaylistID   string    `db:"playlist_id"    json:"playlistId"`
	ContentID    string    `db:"content_id"     json:"contentId"`
	Zone         Zone      `db:"zone"           json:"zone"`
	DisplayOrder int       `db:"display_order"  json:"displayOrder"`
	CreatedAt    time.Time `db:"created_at"     json:"createdAt"`
	Content      *Content  `db:"-"              json:"content,omitempty"`
}

type DevicePlaylist struct {
	DeviceID   string    `db:"device_id"    json:"deviceId"`
	PlaylistID string    `db:"playlist_id"  json:"playlistId"`
	IsActive   bool      `db:"is_active"    json:"isActive"`
	AssignedAt time.Time `db:"assigned_at"  json:"assignedAt"`
}

// DeviceEntry is one row of the device → playlist → content join, already
// tagged with the zone and order it was placed at.
type DeviceEntry struct {
	Content
	Zone         Zone `db:"zone"`
	DisplayOrder int  `db:"display_order"`
}
