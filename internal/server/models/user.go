// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account able to obtain bearer tokens. PasswordHash is a bcrypt
// hash and never leaves the server.
type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
