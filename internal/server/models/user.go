// Package models defines the server-side domain entities.
package models

import "time"

// User is a registered account. Username is unique; PasswordHash is a bcrypt
// hash and never leaves the server.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
