package domain

import "time"

// User is a registered account holder. IDs are assigned by the store,
// start at 1, and never change; ID 0 means "no such user".
type User struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	RegistrationDate time.Time `json:"registration_date"`
	IsActive         bool      `json:"is_active"`
	Wallet           string    `json:"wallet"`
}

// Exists reports whether the record refers to a stored user.
func (u User) Exists() bool {
	return u.ID != 0
}
