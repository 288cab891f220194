package model

import "time"

// Schedule is a one-off calendar entry shown by the top widget.
type Schedule struct {
	ID        string    `db:"id"          json:"id"`
	Date      time.Time `db:"date"        json:"date"`
	Content   string    `db:"content"     json:"content"`
	CreatedAt time.Time `db:"created_at"  json:"createdAt"`
}

type Notice struct {
	ID        string    `db:"id"          json:"id"`
	Message   string    `db:"message"     json:"message"`
	IsActive  bool      `db:"is_active"   json:"isActive"`
	CreatedAt time.Time `db:"created_at"  json:"createdAt"`
}
