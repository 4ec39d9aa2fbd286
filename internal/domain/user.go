package domain

import "time"

type User struct {
	ID        uint
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Recipient is a resolved notification target. Email or Phone may be empty;
// a channel without an address is skipped, which is not a delivery failure.
type Recipient struct {
	UserID uint
	Name   string
	Email  string
	Phone  string
}
