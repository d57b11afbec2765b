package domain

import "time"

type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// Authenticated reports whether u identifies a signed-in user.
func (u *User) Authenticated() bool {
	return u != nil && u.ID != ""
}
