package model

import "time"

type LayoutMode string

const (
	LayoutFull   LayoutMode = "FULL"
	LayoutSplit  LayoutMode = "SPLIT"
	LayoutSplitH LayoutMode = "SPLIT_H"
)

const DefaultSplitRatio = 50

func (m LayoutMode) Valid() bool {
	switch m {
	case LayoutFull, LayoutSplit, LayoutSplitH:
		return true
	}
	return false
}

// Device represents a display registered in the system.
type Device struct {
	ID         string     `db:"id"           json:"id"`
	Name       string     `db:"name"         json:"name"`
	Location   string     `db:"location"     json:"location"`
	LayoutMode LayoutMode `db:"layout_mode"  json:"layoutMode"`
	SplitRatio int        `db:"split_ratio"  json:"splitRatio"`
	IsActive   bool       `db:"is_active"    json:"isActive"`
	CreatedAt  time.Time  `db:"created_at"   json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at"   json:"updatedAt"`
}
