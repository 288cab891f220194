package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/signage/internal/model"
)

type DeviceResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Location   string           `json:"location"`
	LayoutMode model.LayoutMode `json:"layoutMode"`
	SplitRatio int              `json:"splitRatio"`
	IsActive   bool             `json:"isActive"`
	CreatedAt  string           `json:"createdAt"`
	UpdatedAt  string           `json:"updatedAt"`
}

type PresenceResponse struct {
	DeviceID string  `json:"deviceId"`
	Online   bool    `json:"online"`
	LastSeen *string `json:"lastSeen"`
}

type ContentResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Type      model.ContentType `json:"type"`
	URL       string            `json:"url"`
	Thumbnail string            `json:"thumbnail"`
	Body      string            `json:"body"`
	Duration  int               `json:"duration"`
	IsActive  bool              `json:"isActive"`
	StartDate *string           `json:"startDate"`
	EndDate   *string           `json:"endDate"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
}

type PlaylistItemResponse struct {
	ID           string           `json:"id"`
	ContentID    string           `json:"contentId"`
	Zone         model.Zone       `json:"zone"`
	DisplayOrder int              `json:"displayOrder"`
	Content      *ContentResponse `json:"content,omitempty"`
}

type PlaylistResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
	Items       []PlaylistItemResponse `json:"items"`
}

type NoticeResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

type ScheduleResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func NewDeviceResponse(d model.Device) DeviceResponse {
	return DeviceResponse{
		ID:         d.ID,
		Name:       d.Name,
		Location:   d.Location,
		LayoutMode: d.LayoutMode,
		SplitRatio: d.SplitRatio,
		IsActive:   d.IsActive,
		CreatedAt:  formatTime(d.CreatedAt),
		UpdatedAt:  formatTime(d.UpdatedAt),
	}
}

func NewPresenceResponse(deviceID string, lastSeen time.Time, online bool) PresenceResponse {
	resp := PresenceResponse{DeviceID: deviceID, Online: online}
	if online {
		resp.LastSeen = formatOptional(&lastSeen)
	}
	return resp
}

func NewContentResponse(c model.Content) ContentResponse {
	return ContentResponse{
		ID:        c.ID,
		Title:     c.Title,
		Type:      c.Type,
		URL:       c.URL,
		Thumbnail: c.Thumbnail,
		Body:      c.Body,
		Duration:  c.Duration,
		IsActive:  c.IsActive,
		StartDate: formatOptional(c.StartDate),
		EndDate:   formatOptional(c.EndDate),
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func NewPlaylistItemResponse(it model.PlaylistContent) PlaylistItemResponse {
	resp := PlaylistItemResponse{
		ID:           it.ID,
		ContentID:    it.ContentID,
		Zone:         it.Zone,
		DisplayOrder: it.DisplayOrder,
	}
	if it.Content != nil {
		c := NewContentResponse(*it.Content)
		resp.Content = &c
	}
	return resp
}

func NewPlaylistResponse(p model.Playlist) PlaylistResponse {
	items := make([]PlaylistItemResponse, len(p.Items))
	for i, it := range p.Items {
		items[i] = NewPlaylistItemResponse(it)
	}
	return PlaylistResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
		Items:       items,
	}
}

func NewNoticeResponse(n model.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        n.ID,
		Message:   n.Message,
		IsActive:  n.IsActive,
		CreatedAt: formatTime(n.CreatedAt),
	}
}

func NewScheduleResponse(s model.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:        s.ID,
		Date:      formatTime(s.Date),
		Content:   s.Content,
		CreatedAt: formatTime(s.CreatedAt),
	}
}
