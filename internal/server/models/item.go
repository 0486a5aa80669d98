package models

import "time"

// Item is a single to-do entry owned by exactly one user. JSON field names
// match the wire contract consumed by the web client.
type Item struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	IsComplete bool      `json:"isComplete"`
	CreatedAt  time.Time `json:"createdAt"`
	UserID     int64     `json:"userId"`
}
