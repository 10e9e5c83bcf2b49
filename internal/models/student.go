package models

import "time"

// Student is identified by its unique email address. Suspended students never
// receive notifications.
type Student struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Suspended bool      `db:"suspended" json:"suspended"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
