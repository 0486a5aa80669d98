package models

import "time"

// Item is the client-side view of a to-do item as returned by the server.
type Item struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	IsComplete bool      `json:"isComplete"`
	CreatedAt  time.Time `json:"createdAt"`
	UserID     int64     `json:"userId"`
}

// AuthResult is the payload returned by register and login calls.
type AuthResult struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}
