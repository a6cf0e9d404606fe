package models

import (
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the part of a User that leaves the repository: the session
// snapshot and the auth slice both hold it.
type PublicUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

// Profile is the author snapshot joined onto a post at read time.
func (u User) Profile() *Profile {
	p := &Profile{Email: u.Email}
	if u.FullName != "" {
		name := u.FullName
		p.FullName = &name
	}
	return p
}

type Session struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
