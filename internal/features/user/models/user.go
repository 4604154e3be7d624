package models

import "time"

// User is a buyer identified by phone number. The phone is the login
// identity; registration is idempotent per phone.
type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Label returns the display label used in rankings: the name when set,
// otherwise the phone.
func (u *User) Label() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Phone
}

// UserCreate is the login/registration input.
type UserCreate struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
}
