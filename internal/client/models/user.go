// Package models defines the MicroLearn client data types: users, lessons,
// quizzes and learning progress, with the JSON shapes used by the backend.
package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// User is the verified identity of the session owner.
type User struct {
	ID        string    `json:"_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// IsEmpty reports whether u is the zero ("{}") user.
func (u User) IsEmpty() bool {
	return u.ID == "" && u.Username == "" && u.Email == ""
}

// Initial returns the upper-cased first letter of the username, or "U".
func (u User) Initial() string {
	r, size := utf8.DecodeRuneInString(u.Username)
	if size == 0 || r == utf8.RuneError {
		return "U"
	}
	return strings.ToUpper(string(r))
}

// Profile holds the public profile fields of a user.
type Profile struct {
	ID        string    `json:"_id,omitempty"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
