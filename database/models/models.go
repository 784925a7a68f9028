package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
// Password always holds a bcrypt hash, never the plaintext.
// Admin status lives on the row and is checked on every guarded
// request, so revoking it takes effect without invalidating sessions.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null"`
	Email    string
	Password string `gorm:"not null"`
	IsAdmin  bool   `gorm:"default:false"`
}

// Event represents a happening users can register for.
// Available seats are derived from Capacity and the registration
// count; they are never stored.
type Event struct {
	gorm.Model
	Title         string `gorm:"not null;index"`
	Description   string
	Date          time.Time
	Location      string
	Capacity      int  `gorm:"not null"`
	OrganizerID   uint `gorm:"not null"`
	Registrations []Registration
}

// Registration associates a user with an event. The composite unique
// index enforces at most one row per (user, event) pair at the store
// level, independent of the workflow's own duplicate check.
// No gorm.Model here: a soft-deleted row would still occupy the unique
// index and block re-registering after a cancellation, so cancels must
// delete for real.
type Registration struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_event"`
	EventID   uint `gorm:"not null;uniqueIndex:idx_user_event"`
}
