package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

type CreateDeviceRequest struct {
	Name       string           `json:"name"       binding:"required"`
	Location   string           `json:"location"`
	LayoutMode model.LayoutMode `json:"layoutMode" binding:"omitempty,layout_mode"`
	SplitRatio *int             `json:"splitRatio" binding:"omitempty,min=1,max=100"`
}

type UpdateDeviceRequest struct {
	Name       *string           `json:"name"       binding:"omitempty,min=1"`
	Location   *string           `json:"location"`
	LayoutMode *model.LayoutMode `json:"layoutMode" binding:"omitempty,layout_mode"`
	SplitRatio *int              `json:"splitRatio" binding:"omitempty,min=1,max=100"`
}

// SetActiveRequest toggles the isActive flag of a device, content item or
// notice.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// AssignPlaylistRequest replaces the device's playlist; an empty id clears it.
type AssignPlaylistRequest struct {
	PlaylistID string `json:"playlistId"`
}

// UpdateContentRequest edits a content item. Dates are RFC 3339 or
// YYYY-MM-DD; an empty or missing date clears that bound.
type UpdateContentRequest struct {
	Title     *string `json:"title"    binding:"omitempty,min=1"`
	Body      *string `json:"body"`
	Duration  *int    `json:"duration" binding:"omitempty,min=1"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

type AddPlaylistContentRequest struct {
	ContentID string `json:"contentId" binding:"required"`
}

type UpdateZoneRequest struct {
	Zone model.Zone `json:"zone" binding:"required,zone"`
}

type ReorderPlaylistRequest struct {
	ItemIDs []string `json:"itemIds" binding:"required,min=1,dive,required"`
}

type CreateNoticeRequest struct {
	Message string `json:"message" binding:"required"`
}

type CreateScheduleRequest struct {
	Date    string `json:"date"    binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp. A calendar
// date is read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ParseOptionalDate is ParseDate where the empty string means no date.
func ParseOptionalDate(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateContentForm is the multipart form of a new content item. The media
// file and thumbnail file travel as the "file" and "thumbnail" parts.
type CreateContentForm struct {
	Title     string            `form:"title"     binding:"required"`
	Type      model.ContentType `form:"type"      binding:"required,content_type"`
	Duration  *int              `form:"duration"  binding:"omitempty,min=1"`
	Body      string            `form:"body"`
	URL       string            `form:"url"`
	Thumbnail string            `form:"thumbnail"`
	StartDate string            `form:"startDate"`
	EndDate   string            `form:"endDate"`
}
