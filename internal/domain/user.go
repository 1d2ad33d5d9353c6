package domain

import "time"

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for gallery accounts. HasPurchased is the
// authoritative purchase record; the flag carried inside issued tokens is a
// point-in-time copy of it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	HasPurchased bool
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
